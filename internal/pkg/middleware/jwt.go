package middleware

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	jwtpkg "github.com/piresc/roadassist/internal/pkg/jwt"
	"github.com/piresc/roadassist/internal/pkg/models"
	"github.com/piresc/roadassist/internal/pkg/reqctx"
	"github.com/piresc/roadassist/internal/utils"
)

const (
	ContextUserID   = "user_id"
	ContextUserRole = "user_role"
	ContextVerified = "user_verified"
)

// JWTAuthMiddleware creates a middleware for JWT authentication
func JWTAuthMiddleware(config models.JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return utils.UnauthorizedResponse(c, "Authorization header is required")
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return utils.UnauthorizedResponse(c, "Invalid authorization format")
			}

			claims, err := jwtpkg.ValidateToken(parts[1], config.Secret)
			if err != nil {
				return utils.UnauthorizedResponse(c, "Invalid token")
			}

			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextUserRole, claims.Role)
			c.Set(ContextVerified, claims.Verified)
			SetUserID(c, claims.UserID.String())
			c.SetRequest(c.Request().WithContext(reqctx.WithUserID(c.Request().Context(), claims.UserID)))

			return next(c)
		}
	}
}

// RequireRole rejects callers whose token carries a different role
func RequireRole(roles ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextUserRole).(models.Role)
			for _, r := range roles {
				if role == r {
					return next(c)
				}
			}
			return utils.ForbiddenResponse(c, "This action is not available for your account type")
		}
	}
}

// RequireVerified rejects callers whose account has not been verified
func RequireVerified() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if ok, _ := c.Get(ContextVerified).(bool); !ok {
				return utils.ForbiddenResponse(c, "Account verification is required")
			}
			return next(c)
		}
	}
}

// Caller returns the authenticated user set by JWTAuthMiddleware
func Caller(c echo.Context) (uuid.UUID, models.Role, bool) {
	id, ok := c.Get(ContextUserID).(uuid.UUID)
	if !ok {
		return uuid.Nil, "", false
	}
	role, _ := c.Get(ContextUserRole).(models.Role)
	return id, role, true
}
