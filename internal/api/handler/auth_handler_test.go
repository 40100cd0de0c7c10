package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/reviewhub/catalog-api/internal/core/domain"
)

type stubAuthService struct {
	requestErr  error
	exchangeErr error
	token       string

	gotUsername string
	gotEmail    string
	gotSecret   string
}

func (s *stubAuthService) RequestCredential(_ context.Context, username, email string) error {
	s.gotUsername, s.gotEmail = username, email
	return s.requestErr
}

func (s *stubAuthService) ExchangeCredential(_ context.Context, username, secret string) (string, error) {
	s.gotUsername, s.gotSecret = username, secret
	if s.exchangeErr != nil {
		return "", s.exchangeErr
	}
	return s.token, nil
}

func newJSONContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Signup(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc)

	c, rec := newJSONContext(t, http.MethodPost, "/auth/signup", `{"username":"alice","email":"a@x.com"}`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.gotUsername != "alice" || svc.gotEmail != "a@x.com" {
		t.Fatalf("service called with %q/%q", svc.gotUsername, svc.gotEmail)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp["username"] != "alice" || resp["email"] != "a@x.com" {
		t.Fatalf("unexpected body: %v", resp)
	}
}

func TestAuthHandler_Signup_InvalidEmail(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newJSONContext(t, http.MethodPost, "/auth/signup", `{"username":"alice","email":"not-an-email"}`)
	err := h.Signup(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Signup_MissingUsername(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newJSONContext(t, http.MethodPost, "/auth/signup", `{"email":"a@x.com"}`)
	err := h.Signup(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Signup_ServiceErrorPassedThrough(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{requestErr: domain.ErrTooManyRequests})

	c, _ := newJSONContext(t, http.MethodPost, "/auth/signup", `{"username":"alice","email":"a@x.com"}`)
	if err := h.Signup(c); !errors.Is(err, domain.ErrTooManyRequests) {
		t.Fatalf("expected ErrTooManyRequests, got %v", err)
	}
}

func TestAuthHandler_Token(t *testing.T) {
	svc := &stubAuthService{token: "jwt-token"}
	h := NewAuthHandler(svc)

	c, rec := newJSONContext(t, http.MethodPost, "/auth/token", `{"username":"alice","confirmation_code":"SECRET"}`)
	if err := h.Token(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.gotSecret != "SECRET" {
		t.Fatalf("service called with secret %q", svc.gotSecret)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp["token"] != "jwt-token" {
		t.Fatalf("unexpected body: %v", resp)
	}
}

func TestAuthHandler_Token_MissingCode(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newJSONContext(t, http.MethodPost, "/auth/token", `{"username":"alice"}`)
	err := h.Token(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Token_InvalidCredential(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{exchangeErr: domain.ErrInvalidCredential})

	c, _ := newJSONContext(t, http.MethodPost, "/auth/token", `{"username":"alice","confirmation_code":"STALE"}`)
	if err := h.Token(c); !errors.Is(err, domain.ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}
}
