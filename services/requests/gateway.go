package requests

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/roadassist/internal/pkg/models"
)

// go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/roadassist/services/requests Matcher,RoomEmitter,EventPublisher,ExpiryScheduler,Notifier,PhotoStore

// Matcher is the part of the matching service the request flow relies on
type Matcher interface {
	Search(ctx context.Context, query models.SearchQuery) ([]models.ProviderCandidate, error)
	Quote(ctx context.Context, providerID uuid.UUID, query models.SearchQuery) (*models.ProviderCandidate, error)
	CheckEligible(ctx context.Context, providerID uuid.UUID, req *models.ServiceRequest) error
	UpdateLocation(ctx context.Context, providerID uuid.UUID, location models.Location) error
}

// RoomEmitter delivers realtime events to connected clients
type RoomEmitter interface {
	Emit(room, event string, payload interface{}) int
	EvictExcept(room string, keep ...uuid.UUID) int
	Reachable(ctx context.Context, userID uuid.UUID) bool
}

// EventPublisher publishes request lifecycle events for downstream consumers
type EventPublisher interface {
	Publish(ctx context.Context, subject string, event models.RequestEvent) error
}

// ExpiryScheduler arranges for a pending request to be expired at a later time
type ExpiryScheduler interface {
	ScheduleExpiry(ctx context.Context, requestID uuid.UUID, at time.Time) error
}

// Notifier pushes a notification to a user who has no live connection
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, title, body string, data map[string]string) error
}

// PhotoStore uploads problem photos and returns their public URL
type PhotoStore interface {
	Upload(ctx context.Context, r io.Reader, path string) (string, error)
}
