package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestID tags every request with an X-Request-ID, honoring one the
// caller already carries. The ID is echoed on the response and stored in
// the context so log lines and trace spans for one storefront request can
// be correlated.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get("X-Request-ID")
			if id == "" {
				id = uuid.New().String()
			}

			c.Response().Header().Set("X-Request-ID", id)
			c.Set("request_id", id)

			return next(c)
		}
	}
}
