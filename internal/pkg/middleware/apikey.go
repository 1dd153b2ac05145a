package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/roadassist/internal/pkg/models"
	"github.com/piresc/roadassist/internal/utils"
)

const (
	APIKeyHeader = "X-API-Key"
)

// APIKeyMiddleware guards internal endpoints called by other services
type APIKeyMiddleware struct {
	key string
}

func NewAPIKeyMiddleware(cfg *models.APIKeyConfig) *APIKeyMiddleware {
	return &APIKeyMiddleware{key: cfg.Internal}
}

// ValidateAPIKey rejects requests without the configured internal key
func (m *APIKeyMiddleware) ValidateAPIKey() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			apiKey := c.Request().Header.Get(APIKeyHeader)
			if apiKey == "" {
				return utils.ErrorResponseHandler(c, http.StatusUnauthorized, "API key is required")
			}

			if m.key == "" || subtle.ConstantTimeCompare([]byte(apiKey), []byte(m.key)) != 1 {
				return utils.ErrorResponseHandler(c, http.StatusUnauthorized, "Invalid API key")
			}

			return next(c)
		}
	}
}
