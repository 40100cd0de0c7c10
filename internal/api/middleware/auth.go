package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/reviewhub/catalog-api/internal/core/domain"
)

// actorKey is the echo context key under which the request actor is stored.
const actorKey = "actor"

// ActorFrom returns the actor resolved for this request. Requests that never
// passed through the auth middleware resolve to the anonymous actor.
func ActorFrom(c echo.Context) domain.Actor {
	if actor, ok := c.Get(actorKey).(domain.Actor); ok {
		return actor
	}
	return domain.Anonymous()
}

// Auth resolves the request actor from a bearer JWT. When required is true,
// requests without a valid token are rejected with 401; otherwise they
// proceed as the anonymous actor, leaving access decisions to the route's
// policy.
func Auth(jwtSecret string, required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				if required {
					return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
				}
				c.Set(actorKey, domain.Anonymous())
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(actorKey, actorFromClaims(claims))
			return next(c)
		}
	}
}

func actorFromClaims(claims jwt.MapClaims) domain.Actor {
	actor := domain.Actor{Authenticated: true}
	if sub, ok := claims["sub"].(string); ok {
		actor.UserID = sub
	}
	if username, ok := claims["username"].(string); ok {
		actor.Username = username
	}
	if role, ok := claims["role"].(string); ok {
		actor.Role = domain.Role(role)
	}
	if super, ok := claims["superuser"].(bool); ok {
		actor.IsSuperuser = super
	}
	return actor
}
