package requests

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/roadassist/internal/pkg/models"
)

// go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/roadassist/services/requests RequestRepo

// RequestRepo persists service requests in Postgres and their live tracking state in Redis
type RequestRepo interface {
	Create(ctx context.Context, req *models.ServiceRequest) (uuid.UUID, error)
	Get(ctx context.Context, id uuid.UUID) (*models.ServiceRequest, error)
	FindActiveForCustomer(ctx context.Context, customerID uuid.UUID) (*models.ServiceRequest, error)
	FindActiveForProvider(ctx context.Context, providerID uuid.UUID) (*models.ServiceRequest, error)
	FindPendingForCustomer(ctx context.Context, customerID uuid.UUID) (*models.ServiceRequest, error)
	Update(ctx context.Context, id uuid.UUID, patch models.RequestPatch) (*models.ServiceRequest, error)
	UpdateState(ctx context.Context, req *models.ServiceRequest, expectedVersion int64) error
	ListHistory(ctx context.Context, participantID uuid.UUID, role models.Role) ([]*models.ServiceRequest, error)

	// Live state
	SaveOffers(ctx context.Context, requestID uuid.UUID, providerIDs []uuid.UUID, ttl time.Duration) error
	IsOffered(ctx context.Context, requestID, providerID uuid.UUID) (bool, error)
	RecordLocation(ctx context.Context, update *models.LocationUpdate, ttl time.Duration) (bool, error)
	LastLocation(ctx context.Context, requestID uuid.UUID) (*models.LocationUpdate, error)
	ClearLiveState(ctx context.Context, requestID uuid.UUID) error
}
