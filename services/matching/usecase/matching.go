package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/piresc/roadassist/internal/pkg/apperrors"
	"github.com/piresc/roadassist/internal/pkg/logger"
	"github.com/piresc/roadassist/internal/pkg/models"
	nrpkg "github.com/piresc/roadassist/internal/pkg/newrelic"
	"github.com/piresc/roadassist/internal/utils"
	"github.com/piresc/roadassist/services/matching"
)

const defaultSearchRadiusKm = 10

// MatchingUC implements the matching use case interface
type MatchingUC struct {
	cfg      *models.Config
	repo     matching.MatchingRepo
	distance matching.DistanceProvider
	pricing  PricingPolicy
}

// NewMatchingUC creates a new matching use case. distance may be nil, in
// which case great-circle distance is used.
func NewMatchingUC(
	cfg *models.Config,
	repo matching.MatchingRepo,
	distance matching.DistanceProvider,
) *MatchingUC {
	return &MatchingUC{
		cfg:      cfg,
		repo:     repo,
		distance: distance,
		pricing:  NewPricingPolicy(cfg.Pricing),
	}
}

// Search ranks the online providers around the origin that can do every
// requested service. An empty result is not an error.
func (uc *MatchingUC) Search(ctx context.Context, query models.SearchQuery) ([]models.ProviderCandidate, error) {
	return nrpkg.TraceUseCaseWithReturn(ctx, "MatchingUC.Search", func(ctx context.Context) ([]models.ProviderCandidate, error) {
		query, err := uc.validateQuery(ctx, query)
		if err != nil {
			return nil, err
		}

		radius := uc.cfg.Matching.SearchRadiusKm
		if radius <= 0 {
			radius = defaultSearchRadiusKm
		}
		nearby, err := uc.repo.NearbyProviders(ctx, query.Origin, radius, 0)
		if err != nil {
			return nil, err
		}

		candidates := make([]models.ProviderCandidate, 0, len(nearby))
		if len(nearby) == 0 {
			return candidates, nil
		}

		ids := make([]uuid.UUID, len(nearby))
		positions := make(map[uuid.UUID]models.Location, len(nearby))
		for i, n := range nearby {
			ids[i] = n.ID
			positions[n.ID] = n.Location
		}

		providers, err := uc.repo.GetProviders(ctx, ids)
		if err != nil {
			return nil, err
		}

		for _, p := range providers {
			if !p.Online || p.Category != query.Category || !p.OffersAll(query.Services) {
				continue
			}
			loc := positions[p.ID]
			p.Location = &loc
			candidates = append(candidates, uc.pricing.Estimate(p, query, uc.distanceKm(ctx, query.Origin, loc)))
		}

		sortCandidates(candidates)
		if limit := uc.cfg.Matching.MaxCandidates; limit > 0 && len(candidates) > limit {
			candidates = candidates[:limit]
		}

		logger.Debug("Provider search finished",
			logger.String("category", string(query.Category)),
			logger.Int("nearby", len(nearby)),
			logger.Int("candidates", len(candidates)))
		return candidates, nil
	})
}

// Quote prices one specific provider for the query
func (uc *MatchingUC) Quote(ctx context.Context, providerID uuid.UUID, query models.SearchQuery) (*models.ProviderCandidate, error) {
	query, err := uc.validateQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	provider, err := uc.repo.GetProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if reason, err := uc.ineligible(ctx, provider, query.Category, query.Services); err != nil {
		return nil, err
	} else if reason != "" {
		return nil, apperrors.NewValidationError("provider_id", reason)
	}

	loc, err := uc.repo.GetLocation(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, apperrors.NewValidationError("provider_id", "provider has not shared a location yet")
	}
	provider.Location = loc

	candidate := uc.pricing.Estimate(provider, query, uc.distanceKm(ctx, query.Origin, *loc))
	return &candidate, nil
}

// CheckEligible fails when the provider cannot take req
func (uc *MatchingUC) CheckEligible(ctx context.Context, providerID uuid.UUID, req *models.ServiceRequest) error {
	provider, err := uc.repo.GetProvider(ctx, providerID)
	if err != nil {
		return err
	}
	reason, err := uc.ineligible(ctx, provider, req.Category, req.Services)
	if err != nil {
		return err
	}
	if reason != "" {
		return apperrors.NewInvalidTransition(string(req.Status()), "accept", reason)
	}
	return nil
}

// ineligible returns a non-empty reason when the provider cannot serve the services
func (uc *MatchingUC) ineligible(ctx context.Context, p *models.Provider, category models.ServiceCategory, services []string) (string, error) {
	online, err := uc.repo.IsOnline(ctx, p.ID)
	if err != nil {
		return "", err
	}
	switch {
	case !online || !p.Online:
		return "provider is offline", nil
	case p.Category != category:
		return fmt.Sprintf("provider does not serve %s requests", category), nil
	case !p.OffersAll(services):
		return "provider does not offer every requested service", nil
	}
	return "", nil
}

// SetStatus takes the provider online at a location or offline
func (uc *MatchingUC) SetStatus(ctx context.Context, providerID uuid.UUID, status models.ProviderStatusRequest) error {
	return nrpkg.TraceUseCase(ctx, "MatchingUC.SetStatus", func(ctx context.Context) error {
		if !status.Online {
			return uc.repo.SetOffline(ctx, providerID)
		}
		if status.Location == nil || !status.Location.Valid() {
			return apperrors.NewValidationError("location", "a valid location is required to go online")
		}
		if err := uc.repo.SetOnline(ctx, providerID, *status.Location); err != nil {
			return err
		}
		logger.Info("Provider online", logger.String("provider_id", providerID.String()))
		return nil
	})
}

// UpdateLocation refreshes the live position of an online provider.
// Offline providers are not indexed.
func (uc *MatchingUC) UpdateLocation(ctx context.Context, providerID uuid.UUID, location models.Location) error {
	if !location.Valid() {
		return apperrors.NewValidationError("location", "coordinates are out of range")
	}
	online, err := uc.repo.IsOnline(ctx, providerID)
	if err != nil {
		return err
	}
	if !online {
		return nil
	}
	_, err = uc.repo.UpdateLocation(ctx, providerID, location)
	return err
}

func (uc *MatchingUC) validateQuery(ctx context.Context, query models.SearchQuery) (models.SearchQuery, error) {
	if !query.Origin.Valid() {
		return query, apperrors.NewValidationError("origin", "coordinates are out of range")
	}
	if !query.Category.Valid() {
		return query, apperrors.NewValidationError("category", fmt.Sprintf("unknown category %q", query.Category))
	}

	services := make([]string, 0, len(query.Services))
	seen := make(map[string]bool, len(query.Services))
	for _, s := range query.Services {
		s = strings.TrimSpace(s)
		if s == "" {
			return query, apperrors.NewValidationError("services", "service names must not be empty")
		}
		if !seen[s] {
			seen[s] = true
			services = append(services, s)
		}
	}
	if len(services) == 0 {
		return query, apperrors.NewValidationError("services", "pick at least one service")
	}
	query.Services = services

	known, err := uc.repo.ServiceCategories(ctx, services)
	if err != nil {
		return query, err
	}
	for _, s := range services {
		if c, ok := known[s]; ok && c != query.Category {
			return query, apperrors.NewValidationError("services",
				fmt.Sprintf("%s is a %s service and cannot be requested as %s", s, c, query.Category))
		}
	}
	return query, nil
}

func (uc *MatchingUC) distanceKm(ctx context.Context, from, to models.Location) float64 {
	if uc.distance != nil {
		meters, err := uc.distance.Distance(ctx, from, to)
		if err == nil {
			return meters / 1000
		}
		logger.WarnCtx(ctx, "Road distance unavailable, using great-circle distance", logger.Err(err))
	}
	return utils.CalculateDistance(from, to)
}

// sortCandidates orders by estimate, then rating, then distance
func sortCandidates(c []models.ProviderCandidate) {
	sort.SliceStable(c, func(i, j int) bool {
		if c[i].TotalEstimate != c[j].TotalEstimate {
			return c[i].TotalEstimate < c[j].TotalEstimate
		}
		if c[i].Provider.Rating != c[j].Provider.Rating {
			return c[i].Provider.Rating > c[j].Provider.Rating
		}
		return c[i].DistanceKm < c[j].DistanceKm
	})
}
