package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	apperrors "github.com/vladimiradmaev/recipe-planner/internal/errors"
	"github.com/vladimiradmaev/recipe-planner/internal/logger"
	"github.com/vladimiradmaev/recipe-planner/internal/reqctx"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"requestId,omitempty"`
}

// respondError logs err by severity and aborts with its mapped status
func respondError(c *gin.Context, err error) {
	ctx := c.Request.Context()
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.NewInternalError(err)
	}
	apperrors.NewHandler(logger.FromContext(ctx)).Handle(ctx, appErr)

	c.AbortWithStatusJSON(apperrors.HTTPStatus(appErr), errorResponse{
		Error:     apperrors.PublicMessage(appErr),
		Code:      appErr.Code,
		RequestID: reqctx.RequestID(ctx),
	})
}

// queryInt parses an optional integer query parameter
func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewValidationError(name + " must be an integer").WithContext(name, raw)
	}
	return n, nil
}

// bindJSON decodes the request body, reporting malformed input as a validation error
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, apperrors.NewValidationError("malformed request body").WithContext("cause", err.Error()))
		return false
	}
	return true
}

func userID(c *gin.Context) string {
	return reqctx.UserID(c.Request.Context())
}

func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
