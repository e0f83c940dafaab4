package middleware

import (
	"net/http"
	"strings"

	"paperstore/internal/auth"
	"paperstore/pkg/models"

	"github.com/labstack/echo/v4"
)

// JWTAuth middleware validates JWT tokens
func JWTAuth(authService *auth.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Get token from Authorization header
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
			}

			// Check if header starts with "Bearer "
			if !strings.HasPrefix(authHeader, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header format")
			}

			tokenString := authHeader[7:] // Remove "Bearer " prefix
			if tokenString == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
			}

			claims, err := authService.ValidateToken(tokenString)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			// Store claims in context
			c.Set("claims", claims)
			c.Set("user_id", claims.SubjectID)
			c.Set("user_email", claims.Email)
			c.Set("user_phone", claims.Phone)
			c.Set("user_role", claims.Role)

			return next(c)
		}
	}
}

// RequireRole middleware ensures user has required role
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userRole := c.Get("user_role")
			if userRole == nil {
				return echo.NewHTTPError(http.StatusForbidden, "User role not found")
			}

			roleStr := userRole.(string)
			for _, role := range roles {
				if roleStr == role {
					return next(c)
				}
			}

			return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
		}
	}
}

// SuperAdminOnly middleware ensures only super admins can access
func SuperAdminOnly() echo.MiddlewareFunc {
	return RequireRole(models.RoleSuperAdmin)
}

// StaffOnly middleware allows any back-office role
func StaffOnly() echo.MiddlewareFunc {
	return RequireRole(models.RoleSuperAdmin, models.RoleAdmin, models.RoleFinance)
}

// CustomerOnly middleware ensures the caller authenticated via OTP
func CustomerOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userRole := c.Get("user_role")
			if userRole == nil {
				return echo.NewHTTPError(http.StatusForbidden, "User role not found")
			}

			if userRole.(string) != models.RoleCustomer {
				return echo.NewHTTPError(http.StatusForbidden, "Customer access required")
			}

			// Customer tokens always carry the verified phone number
			phone := c.Get("user_phone")
			if phone == nil || phone.(string) == "" {
				return echo.NewHTTPError(http.StatusForbidden, "Verified phone required")
			}

			return next(c)
		}
	}
}
