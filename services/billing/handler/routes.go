package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/piresc/roadassist/internal/pkg/middleware"
	"github.com/piresc/roadassist/internal/pkg/models"
)

// RegisterRoutes registers the bill and payment routes on an authenticated group
func (h *Handler) RegisterRoutes(api *echo.Group) {
	customer := middleware.RequireRole(models.RoleCustomer)

	reqs := api.Group("/requests")
	reqs.POST("/:id/bill", h.billingHTTP.SendBill, middleware.RequireRole(models.RoleProvider))
	reqs.POST("/:id/payment-session", h.billingHTTP.CreatePaymentSession, customer)
	reqs.POST("/:id/confirm-payment", h.billingHTTP.ConfirmPayment, customer)
}
