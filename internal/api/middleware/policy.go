package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/reviewhub/catalog-api/internal/api/metrics"
	"github.com/reviewhub/catalog-api/internal/core/authz"
)

// Require enforces a policy's collection-level check for the given action
// kind before the handler runs. Anonymous actors get 401 so clients know
// authenticating could help; everyone else gets 403.
//
// Object-level checks happen in the services once the resource is loaded.
func Require(policy authz.Policy, action authz.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor := ActorFrom(c)
			if !policy.AllowsCollection(actor, action) {
				metrics.AuthzDenialsTotal.WithLabelValues(policy.Name(), "collection").Inc()
				if !actor.Authenticated {
					return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
				}
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			}
			return next(c)
		}
	}
}
