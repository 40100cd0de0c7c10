package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/reviewhub/catalog-api/internal/core/domain"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func runAuth(t *testing.T, required bool, authHeader string) (domain.Actor, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var captured domain.Actor
	h := Auth(testSecret, required)(func(c echo.Context) error {
		captured = ActorFrom(c)
		return nil
	})
	return captured, h(c)
}

func TestAuth_ValidToken(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":       "u1",
		"username":  "alice",
		"role":      "moderator",
		"superuser": true,
		"exp":       time.Now().Add(time.Hour).Unix(),
	})

	actor, err := runAuth(t, false, "Bearer "+token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !actor.Authenticated || actor.UserID != "u1" || actor.Username != "alice" {
		t.Fatalf("unexpected actor: %+v", actor)
	}
	if actor.Role != domain.RoleModerator || !actor.IsSuperuser {
		t.Fatalf("role/superuser not carried over: %+v", actor)
	}
}

func TestAuth_NoHeaderOptional(t *testing.T) {
	actor, err := runAuth(t, false, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if actor.Authenticated {
		t.Fatalf("expected anonymous actor, got %+v", actor)
	}
}

func TestAuth_NoHeaderRequired(t *testing.T) {
	_, err := runAuth(t, true, "")
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestAuth_MalformedHeader(t *testing.T) {
	_, err := runAuth(t, false, "Token abc")
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestAuth_ExpiredToken(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	_, err := runAuth(t, false, "Bearer "+token)
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestAuth_WrongSigningMethod(t *testing.T) {
	// HS384 is signed with the right secret but must still be rejected
	// because only HS256 is accepted.
	token := signToken(t, jwt.SigningMethodHS384, jwt.MapClaims{
		"sub": "u1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	_, err := runAuth(t, false, "Bearer "+token)
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func TestAuth_GarbageToken(t *testing.T) {
	_, err := runAuth(t, false, "Bearer not.a.jwt")
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}

func assertHTTPStatus(t *testing.T, err error, want int) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != want {
		t.Fatalf("expected status %d, got %d", want, he.Code)
	}
}
