package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", NewValidationError("bad"), http.StatusBadRequest},
		{"unauthorized", NewUnauthorizedError("no token"), http.StatusUnauthorized},
		{"entitlement", NewEntitlementError("meal planning"), http.StatusPaymentRequired},
		{"not found", NewNotFoundError("recipe"), http.StatusNotFound},
		{"timeout", NewTimeoutError("search", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{"database", NewDatabaseError(errors.New("reset")), http.StatusInternalServerError},
		{"foreign", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("list: %w", NewNotFoundError("plan")), http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HTTPStatus(tc.err); got != tc.want {
				t.Fatalf("HTTPStatus = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestPublicMessageHidesInternals(t *testing.T) {
	if got := PublicMessage(errors.New("pq: password authentication failed")); got != "Internal server error" {
		t.Fatalf("foreign error leaked: %q", got)
	}
	if got := PublicMessage(NewNotFoundError("recipe")); got != "recipe not found" {
		t.Fatalf("PublicMessage = %q", got)
	}
}

func TestDatabaseErrorUnwraps(t *testing.T) {
	cause := errors.New("reset")
	err := NewDatabaseError(cause).WithContext("recipe_id", "r1")
	if !errors.Is(err, cause) {
		t.Fatal("cause lost")
	}
	if TypeOf(err) != ErrorTypeDatabase {
		t.Fatalf("TypeOf = %s", TypeOf(err))
	}
}
