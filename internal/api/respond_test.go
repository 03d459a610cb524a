package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	apperrors "github.com/vladimiradmaev/recipe-planner/internal/errors"
)

func TestRespondErrorStatusAndBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name     string
		err      error
		status   int
		code     string
		contains string
	}{
		{"foreign error is hidden", errors.New("pq: password authentication failed"), http.StatusInternalServerError, "INTERNAL", "Internal server error"},
		{"timeout", apperrors.NewTimeoutError("product search", context.DeadlineExceeded), http.StatusGatewayTimeout, "TIMEOUT", "timed out"},
		{"validation", apperrors.NewValidationError("servings must be at least 1"), http.StatusBadRequest, "VALIDATION", "servings"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(RequestID())
			r.GET("/fail", func(c *gin.Context) { respondError(c, tc.err) })

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))

			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Code != tc.code {
				t.Fatalf("code = %q, want %q", body.Code, tc.code)
			}
			if !strings.Contains(body.Error, tc.contains) {
				t.Fatalf("error = %q, want it to contain %q", body.Error, tc.contains)
			}
			if strings.Contains(body.Error, "pq:") {
				t.Fatalf("internal detail leaked: %q", body.Error)
			}
			if body.RequestID == "" {
				t.Fatal("missing request id")
			}
		})
	}
}
