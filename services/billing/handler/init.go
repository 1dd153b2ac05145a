package handler

import (
	"github.com/piresc/roadassist/services/billing"
	httpHandler "github.com/piresc/roadassist/services/billing/handler/http"
)

// Handler combines all handlers for the billing service
type Handler struct {
	billingHTTP *httpHandler.BillingHandler
}

// NewHandler creates a new combined handler
func NewHandler(billingUC billing.BillingUC) *Handler {
	return &Handler{
		billingHTTP: httpHandler.NewBillingHandler(billingUC),
	}
}
