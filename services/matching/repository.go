package matching

import (
	"context"

	"github.com/google/uuid"
	"github.com/piresc/roadassist/internal/pkg/models"
)

// go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/roadassist/services/matching MatchingRepo

// MatchingRepo keeps live provider positions in Redis and reads the provider catalog from Postgres
type MatchingRepo interface {
	// Live state
	SetOnline(ctx context.Context, providerID uuid.UUID, location models.Location) error
	SetOffline(ctx context.Context, providerID uuid.UUID) error
	IsOnline(ctx context.Context, providerID uuid.UUID) (bool, error)
	UpdateLocation(ctx context.Context, providerID uuid.UUID, location models.Location) (bool, error)
	GetLocation(ctx context.Context, providerID uuid.UUID) (*models.Location, error)
	NearbyProviders(ctx context.Context, origin models.Location, radiusKm float64, limit int) ([]models.NearbyProvider, error)

	// Catalog
	GetProvider(ctx context.Context, providerID uuid.UUID) (*models.Provider, error)
	GetProviders(ctx context.Context, providerIDs []uuid.UUID) ([]*models.Provider, error)
	ServiceCategories(ctx context.Context, names []string) (map[string]models.ServiceCategory, error)
}
