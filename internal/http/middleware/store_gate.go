package middleware

import (
	"net/http"

	"paperstore/internal/services"

	"github.com/labstack/echo/v4"
)

// RequireOpenStore middleware rejects order-placing requests outside the
// configured working window. Browsing endpoints stay reachable; only the
// routes mounted behind this gate are blocked.
func RequireOpenStore(hoursService *services.HoursService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			status := hoursService.Status()
			if !status.Open {
				return echo.NewHTTPError(http.StatusForbidden, map[string]interface{}{
					"error":  "store is closed",
					"window": status.Window,
				})
			}
			return next(c)
		}
	}
}
