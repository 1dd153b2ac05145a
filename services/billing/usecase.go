package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/piresc/roadassist/internal/pkg/models"
)

// go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/roadassist/services/billing BillingUC

// BillingUC defines the interface for bill and payment use cases
type BillingUC interface {
	ComposeBill(ctx context.Context, requestID, providerID uuid.UUID, input models.BillInput) (*models.RequestView, error)
	CreatePaymentSession(ctx context.Context, requestID, customerID uuid.UUID, customer models.CustomerInfo) (*models.PaymentSession, error)
	ConfirmPayment(ctx context.Context, requestID, customerID uuid.UUID, confirm models.ConfirmPaymentRequest) (*models.RequestView, error)
}
