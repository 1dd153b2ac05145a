package matching

import (
	"context"

	"github.com/google/uuid"
	"github.com/piresc/roadassist/internal/pkg/models"
)

// go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/roadassist/services/matching MatchingUC

// MatchingUC ranks providers for a request and keeps their live status
type MatchingUC interface {
	Search(ctx context.Context, query models.SearchQuery) ([]models.ProviderCandidate, error)
	Quote(ctx context.Context, providerID uuid.UUID, query models.SearchQuery) (*models.ProviderCandidate, error)
	CheckEligible(ctx context.Context, providerID uuid.UUID, req *models.ServiceRequest) error
	SetStatus(ctx context.Context, providerID uuid.UUID, status models.ProviderStatusRequest) error
	UpdateLocation(ctx context.Context, providerID uuid.UUID, location models.Location) error
}
