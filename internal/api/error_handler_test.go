package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/reviewhub/catalog-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response not JSON: %v", err)
	}
	return rec.Code, body
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"validation", domain.ErrValidation, http.StatusBadRequest},
		{"invalid credential", domain.ErrInvalidCredential, http.StatusBadRequest},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"throttled", domain.ErrTooManyRequests, http.StatusTooManyRequests},
		{"slug exists", domain.ErrSlugExists, http.StatusConflict},
		{"review exists", domain.ErrReviewExists, http.StatusConflict},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"title not found", domain.ErrTitleNotFound, http.StatusNotFound},
		{"comment not found", domain.ErrCommentNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := renderError(t, tc.err)
			if code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, code)
			}
			if body.Error == "" {
				t.Fatalf("empty error message")
			}
		})
	}
}

func TestHTTPErrorHandler_WrappedErrorsStillMap(t *testing.T) {
	code, _ := renderError(t, fmt.Errorf("loading review: %w", domain.ErrReviewNotFound))
	if code != http.StatusNotFound {
		t.Fatalf("expected 404 for wrapped not-found, got %d", code)
	}
}

func TestHTTPErrorHandler_ConflictKeepsFieldDetail(t *testing.T) {
	code, body := renderError(t, &domain.ConflictError{Fields: []string{"email"}})
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if body.Error != "conflict on email" {
		t.Fatalf("unexpected message: %q", body.Error)
	}
}

func TestHTTPErrorHandler_InvalidCredentialIsGeneric(t *testing.T) {
	_, body := renderError(t, domain.ErrInvalidCredential)
	if body.Error != "invalid username or confirmation code" {
		t.Fatalf("message leaks detail: %q", body.Error)
	}
}

func TestHTTPErrorHandler_EchoErrorPassesThrough(t *testing.T) {
	code, body := renderError(t, echo.NewHTTPError(http.StatusMethodNotAllowed, "method not allowed"))
	if code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", code)
	}
	if body.Error != "method not allowed" {
		t.Fatalf("unexpected message: %q", body.Error)
	}
}

func TestHTTPErrorHandler_UnknownErrorIs500(t *testing.T) {
	code, body := renderError(t, fmt.Errorf("mongo: connection reset"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if body.Error != "internal server error" {
		t.Fatalf("internal detail leaked: %q", body.Error)
	}
}
