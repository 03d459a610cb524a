package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	apperrors "github.com/vladimiradmaev/recipe-planner/internal/errors"
	"github.com/vladimiradmaev/recipe-planner/internal/interfaces"
	"github.com/vladimiradmaev/recipe-planner/internal/logger"
	"github.com/vladimiradmaev/recipe-planner/internal/reqctx"
)

const requestIDHeader = "X-Request-Id"

// RequestID propagates an incoming request id or generates one, and seeds the
// request context that later middleware and services read from.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)

		rc := reqctx.RequestContext{
			RequestID: requestID,
			Locale:    primaryLocale(c.GetHeader("Accept-Language")),
		}
		c.Request = c.Request.WithContext(reqctx.With(c.Request.Context(), rc))
		c.Next()
	}
}

func primaryLocale(header string) string {
	first, _, _ := strings.Cut(header, ",")
	tag, _, _ := strings.Cut(first, ";")
	tag = strings.TrimSpace(tag)
	if tag == "" || tag == "*" {
		return "en"
	}
	return tag
}

// RequestLog emits one structured line per request
func RequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.FromContext(c.Request.Context()).Info(
			"http_request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

// Auth verifies an HS256 bearer token, registers its subject on first sight and
// stores the subject as the request's user id.
func Auth(secret []byte, users interfaces.UserServiceInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			respondError(c, apperrors.NewUnauthorizedError("missing bearer token"))
			return
		}

		claims := jwt.RegisteredClaims{}
		_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
			return secret, nil
		},
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithLeeway(30*time.Second),
		)
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "token expired"
			}
			respondError(c, apperrors.NewUnauthorizedError(msg))
			return
		}

		user, err := users.EnsureUser(c.Request.Context(), claims.Subject)
		if err != nil {
			respondError(c, err)
			return
		}

		rc, _ := reqctx.From(c.Request.Context())
		rc.UserID = user.ID
		c.Request = c.Request.WithContext(reqctx.With(c.Request.Context(), rc))
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
