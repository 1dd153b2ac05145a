package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/piresc/roadassist/internal/pkg/apperrors"
	"github.com/piresc/roadassist/internal/pkg/models"
)

const providerColumns = `id, name, COALESCE(phone, '') AS phone, category, online, rating, rating_count`

const offeringColumns = `o.provider_id, o.name, c.category, o.base_fee, o.per_km_fee, COALESCE(o.fuel_rate_per_litre, 0) AS fuel_rate_per_litre`

// GetProvider loads one provider with its offerings
func (r *MatchingRepo) GetProvider(ctx context.Context, providerID uuid.UUID) (*models.Provider, error) {
	var provider models.Provider
	query := `SELECT ` + providerColumns + ` FROM providers WHERE id = $1`
	if err := r.db.GetContext(ctx, &provider, query, providerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NewNotFound("provider", providerID.String())
		}
		return nil, fmt.Errorf("failed to get provider: %w", err)
	}

	offerings, err := r.offerings(ctx, []uuid.UUID{providerID})
	if err != nil {
		return nil, err
	}
	provider.Offerings = offerings[providerID]
	return &provider, nil
}

// GetProviders loads the providers with the given ids. Unknown ids are skipped.
func (r *MatchingRepo) GetProviders(ctx context.Context, providerIDs []uuid.UUID) ([]*models.Provider, error) {
	if len(providerIDs) == 0 {
		return []*models.Provider{}, nil
	}

	var providers []*models.Provider
	query := `SELECT ` + providerColumns + ` FROM providers WHERE id = ANY($1::uuid[])`
	if err := r.db.SelectContext(ctx, &providers, query, idArray(providerIDs)); err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}

	offerings, err := r.offerings(ctx, providerIDs)
	if err != nil {
		return nil, err
	}
	for _, p := range providers {
		p.Offerings = offerings[p.ID]
	}
	return providers, nil
}

func (r *MatchingRepo) offerings(ctx context.Context, providerIDs []uuid.UUID) (map[uuid.UUID][]models.ServiceOffering, error) {
	var rows []models.ServiceOffering
	query := `SELECT ` + offeringColumns + `
		FROM provider_offerings o
		JOIN service_catalog c ON c.name = o.name
		WHERE o.provider_id = ANY($1::uuid[])
		ORDER BY o.provider_id, o.name`
	if err := r.db.SelectContext(ctx, &rows, query, idArray(providerIDs)); err != nil {
		return nil, fmt.Errorf("failed to list provider offerings: %w", err)
	}

	byProvider := make(map[uuid.UUID][]models.ServiceOffering, len(providerIDs))
	for _, o := range rows {
		byProvider[o.ProviderID] = append(byProvider[o.ProviderID], o)
	}
	return byProvider, nil
}

// ServiceCategories maps each known service name to its category.
// Names missing from the catalog are absent from the result.
func (r *MatchingRepo) ServiceCategories(ctx context.Context, names []string) (map[string]models.ServiceCategory, error) {
	result := make(map[string]models.ServiceCategory, len(names))
	if len(names) == 0 {
		return result, nil
	}

	rows, err := r.db.QueryxContext(ctx,
		`SELECT name, category FROM service_catalog WHERE name = ANY($1)`,
		pq.StringArray(names))
	if err != nil {
		return nil, fmt.Errorf("failed to look up services: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			name     string
			category models.ServiceCategory
		)
		if err := rows.Scan(&name, &category); err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		result[name] = category
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate services: %w", err)
	}
	return result, nil
}

func idArray(ids []uuid.UUID) pq.StringArray {
	out := make(pq.StringArray, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
