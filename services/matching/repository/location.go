package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/piresc/roadassist/internal/pkg/apperrors"
	"github.com/piresc/roadassist/internal/pkg/constants"
	"github.com/piresc/roadassist/internal/pkg/database"
	"github.com/piresc/roadassist/internal/pkg/logger"
	"github.com/piresc/roadassist/internal/pkg/models"
	"github.com/piresc/roadassist/internal/utils"
)

const defaultGeohashPrecision = 7

// MatchingRepo implements the matching repository interface
type MatchingRepo struct {
	cfg         *models.Config
	db          *sqlx.DB
	redisClient *database.RedisClient
}

// NewMatchingRepository creates a new matching repository
func NewMatchingRepository(
	cfg *models.Config,
	db *sqlx.DB,
	redisClient *database.RedisClient,
) *MatchingRepo {
	return &MatchingRepo{
		cfg:         cfg,
		db:          db,
		redisClient: redisClient,
	}
}

func (r *MatchingRepo) precision() uint {
	if r.cfg.Matching.GeohashPrecision == 0 {
		return defaultGeohashPrecision
	}
	return r.cfg.Matching.GeohashPrecision
}

func locationKey(providerID uuid.UUID) string {
	return fmt.Sprintf(constants.KeyProviderLocation, providerID.String())
}

// setOnlineFlag mirrors the live status into the catalog
func (r *MatchingRepo) setOnlineFlag(ctx context.Context, providerID uuid.UUID, online bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE providers SET online = $1, updated_at = NOW() WHERE id = $2`,
		online, providerID)
	if err != nil {
		return fmt.Errorf("failed to update provider status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("provider", providerID.String())
	}
	return nil
}

// SetOnline marks the provider available at location
func (r *MatchingRepo) SetOnline(ctx context.Context, providerID uuid.UUID, location models.Location) error {
	if err := r.setOnlineFlag(ctx, providerID, true); err != nil {
		return err
	}

	id := providerID.String()
	if err := r.redisClient.GeoAdd(ctx, constants.KeyProviderGeo, location.Longitude, location.Latitude, id); err != nil {
		return fmt.Errorf("failed to add to geo index: %w", err)
	}
	if err := r.redisClient.SAdd(ctx, constants.KeyOnlineProviders, id); err != nil {
		return fmt.Errorf("failed to add to online set: %w", err)
	}
	return r.storeLocation(ctx, providerID, location, utils.EncodeLocation(location, r.precision()))
}

// SetOffline removes the provider from every live index
func (r *MatchingRepo) SetOffline(ctx context.Context, providerID uuid.UUID) error {
	if err := r.setOnlineFlag(ctx, providerID, false); err != nil {
		return err
	}

	id := providerID.String()
	if err := r.redisClient.GeoRemove(ctx, constants.KeyProviderGeo, id); err != nil {
		return fmt.Errorf("failed to remove from geo index: %w", err)
	}
	if err := r.redisClient.SRem(ctx, constants.KeyOnlineProviders, id); err != nil {
		return fmt.Errorf("failed to remove from online set: %w", err)
	}
	if err := r.redisClient.Delete(ctx, locationKey(providerID)); err != nil {
		return fmt.Errorf("failed to remove location data: %w", err)
	}
	return nil
}

// IsOnline reports whether the provider is in the online set
func (r *MatchingRepo) IsOnline(ctx context.Context, providerID uuid.UUID) (bool, error) {
	online, err := r.redisClient.SIsMember(ctx, constants.KeyOnlineProviders, providerID.String())
	if err != nil {
		return false, fmt.Errorf("failed to check provider availability: %w", err)
	}
	return online, nil
}

// UpdateLocation stores the latest position. The GEO index is only touched
// when the position leaves its geohash cell; the result reports whether it was.
func (r *MatchingRepo) UpdateLocation(ctx context.Context, providerID uuid.UUID, location models.Location) (bool, error) {
	prev, err := r.redisClient.HGetAll(ctx, locationKey(providerID))
	if err != nil {
		return false, fmt.Errorf("failed to read last location: %w", err)
	}

	cell := utils.EncodeLocation(location, r.precision())
	reindex := prev[constants.FieldGeohash] != cell
	if reindex {
		if err := r.redisClient.GeoAdd(ctx, constants.KeyProviderGeo, location.Longitude, location.Latitude, providerID.String()); err != nil {
			return false, fmt.Errorf("failed to update geo index: %w", err)
		}
	}

	if err := r.storeLocation(ctx, providerID, location, cell); err != nil {
		return false, err
	}
	return reindex, nil
}

func (r *MatchingRepo) storeLocation(ctx context.Context, providerID uuid.UUID, location models.Location, cell string) error {
	ts := location.Timestamp
	if ts.IsZero() {
		ts = models.Now()
	}

	key := locationKey(providerID)
	fields := map[string]interface{}{
		constants.FieldLatitude:  strconv.FormatFloat(location.Latitude, 'f', -1, 64),
		constants.FieldLongitude: strconv.FormatFloat(location.Longitude, 'f', -1, 64),
		constants.FieldGeohash:   cell,
		constants.FieldTimestamp: strconv.FormatInt(ts.UnixMilli(), 10),
	}
	if err := r.redisClient.HMSet(ctx, key, fields); err != nil {
		return fmt.Errorf("failed to store location: %w", err)
	}
	if ttl := r.cfg.Matching.LocationTTL; ttl > 0 {
		if err := r.redisClient.Expire(ctx, key, ttl); err != nil {
			return fmt.Errorf("failed to set location expiry: %w", err)
		}
	}
	return nil
}

// GetLocation returns the last known position, or nil when it expired
func (r *MatchingRepo) GetLocation(ctx context.Context, providerID uuid.UUID) (*models.Location, error) {
	data, err := r.redisClient.HGetAll(ctx, locationKey(providerID))
	if err != nil {
		return nil, fmt.Errorf("failed to get location: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(data[constants.FieldLatitude], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(data[constants.FieldLongitude], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude: %w", err)
	}
	loc := &models.Location{Latitude: lat, Longitude: lng}
	if ms, err := strconv.ParseInt(data[constants.FieldTimestamp], 10, 64); err == nil {
		loc.Timestamp = time.UnixMilli(ms).UTC()
	}
	return loc, nil
}

// NearbyProviders returns online providers within radiusKm of origin, nearest first
func (r *MatchingRepo) NearbyProviders(ctx context.Context, origin models.Location, radiusKm float64, limit int) ([]models.NearbyProvider, error) {
	results, err := r.redisClient.GeoRadius(ctx, constants.KeyProviderGeo, origin.Longitude, origin.Latitude, radiusKm, "km")
	if err != nil {
		return nil, fmt.Errorf("failed to find nearby providers: %w", err)
	}

	nearby := make([]models.NearbyProvider, 0, len(results))
	for _, result := range results {
		if limit > 0 && len(nearby) >= limit {
			break
		}

		online, err := r.redisClient.SIsMember(ctx, constants.KeyOnlineProviders, result.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to check provider availability: %w", err)
		}
		if !online {
			continue
		}

		id, err := uuid.Parse(result.Name)
		if err != nil {
			logger.Warn("Skipping malformed member in provider geo index",
				logger.String("member", result.Name))
			continue
		}
		nearby = append(nearby, models.NearbyProvider{
			ID: id,
			Location: models.Location{
				Latitude:  result.Latitude,
				Longitude: result.Longitude,
			},
			DistanceKm: result.Dist,
		})
	}

	return nearby, nil
}
