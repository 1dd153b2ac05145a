package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/piresc/roadassist/internal/pkg/middleware"
	"github.com/piresc/roadassist/internal/pkg/models"
)

// RegisterRoutes registers the provider routes on an authenticated group
func (h *Handler) RegisterRoutes(api *echo.Group) {
	providers := api.Group("/providers")
	providers.POST("/search", h.matchingHTTP.SearchProviders)
	providers.PUT("/me/status", h.matchingHTTP.SetStatus, middleware.RequireRole(models.RoleProvider))
}
