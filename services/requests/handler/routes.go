package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/piresc/roadassist/internal/pkg/middleware"
	"github.com/piresc/roadassist/internal/pkg/models"
)

// RegisterRoutes registers the request routes on an authenticated group
func (h *Handler) RegisterRoutes(api *echo.Group) {
	customer := middleware.RequireRole(models.RoleCustomer)
	provider := middleware.RequireRole(models.RoleProvider)
	otpLimit := middleware.OTPRateLimiter(h.cfg.RateLimit.OTPRequests, h.cfg.RateLimit.OTPWindow, h.redisClient)

	reqs := api.Group("/requests")
	reqs.POST("", h.requestHTTP.CreateRequest, customer, middleware.RequireVerified())
	reqs.GET("/active", h.requestHTTP.ActiveRequest)
	reqs.GET("/history", h.requestHTTP.History)
	reqs.PATCH("/:id", h.requestHTTP.UpdateRequest)
	reqs.PUT("/:id/accept", h.requestHTTP.AcceptRequest, provider)
	reqs.PUT("/:id/arrive", h.requestHTTP.MarkArrived, provider)
	reqs.PUT("/:id/cancel", h.requestHTTP.CancelRequest)
	reqs.POST("/:id/verify-otp", h.requestHTTP.VerifyOTP, otpLimit)
	reqs.POST("/:id/photo", h.requestHTTP.UploadPhoto, customer)
	reqs.GET("/:id/reconcile", h.requestHTTP.Reconcile)
}

// RegisterInternalRoutes registers the operator routes guarded by the internal API key
func (h *Handler) RegisterInternalRoutes(e *echo.Echo) {
	internal := e.Group("/internal", middleware.NewAPIKeyMiddleware(&h.cfg.APIKey).ValidateAPIKey())
	internal.POST("/announcements", h.announce.Announce)
}
