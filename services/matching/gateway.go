package matching

import (
	"context"

	"github.com/piresc/roadassist/internal/pkg/models"
)

// go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/roadassist/services/matching DistanceProvider

// DistanceProvider returns the road distance in meters between two points
type DistanceProvider interface {
	Distance(ctx context.Context, from, to models.Location) (float64, error)
}
