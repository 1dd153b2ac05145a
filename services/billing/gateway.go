package billing

import (
	"context"

	"github.com/piresc/roadassist/internal/pkg/models"
)

// go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/roadassist/services/billing PaymentGateway,RoomEmitter,EventPublisher

// PaymentGateway opens checkouts and reports their outcome
type PaymentGateway interface {
	Name() string
	CreateOrder(ctx context.Context, order models.PaymentOrder) (*models.PaymentSession, error)
	Verify(ctx context.Context, orderID string) (*models.PaymentVerification, error)
}

// RoomEmitter delivers realtime events to connected clients
type RoomEmitter interface {
	Emit(room, event string, payload interface{}) int
}

// EventPublisher publishes request lifecycle events for downstream consumers
type EventPublisher interface {
	Publish(ctx context.Context, subject string, event models.RequestEvent) error
}
