package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/piresc/roadassist/internal/pkg/apperrors"
	"github.com/piresc/roadassist/internal/pkg/constants"
	"github.com/piresc/roadassist/internal/pkg/database"
	"github.com/piresc/roadassist/internal/pkg/models"
	"github.com/piresc/roadassist/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func setupMockRedis(t *testing.T) (*database.RedisClient, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return &database.RedisClient{Client: client}, mr
}

func testConfig() *models.Config {
	return &models.Config{
		Matching: models.MatchingConfig{
			LocationTTL:      time.Minute,
			GeohashPrecision: 7,
		},
	}
}

var statusQuery = regexp.QuoteMeta(`UPDATE providers SET online = $1, updated_at = NOW() WHERE id = $2`)

func TestSetOnline_IndexesProvider(t *testing.T) {
	// Arrange
	db, mock := setupMockDB(t)
	redisClient, mr := setupMockRedis(t)
	repo := NewMatchingRepository(testConfig(), db, redisClient)

	providerID := uuid.New()
	loc := models.Location{Latitude: 12.9716, Longitude: 77.5946}
	mock.ExpectExec(statusQuery).WithArgs(true, providerID).WillReturnResult(sqlmock.NewResult(0, 1))

	// Act
	err := repo.SetOnline(context.Background(), providerID, loc)

	// Assert
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	online, err := repo.IsOnline(context.Background(), providerID)
	require.NoError(t, err)
	assert.True(t, online)

	key := "provider:location:" + providerID.String()
	assert.Equal(t, utils.EncodeLocation(loc, 7), mr.HGet(key, constants.FieldGeohash))
	assert.Equal(t, time.Minute, mr.TTL(key))

	got, err := repo.GetLocation(context.Background(), providerID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.InDelta(t, loc.Latitude, got.Latitude, 1e-9)
	assert.InDelta(t, loc.Longitude, got.Longitude, 1e-9)
	assert.False(t, got.Timestamp.IsZero())
}

func TestSetOnline_UnknownProvider(t *testing.T) {
	db, mock := setupMockDB(t)
	redisClient, _ := setupMockRedis(t)
	repo := NewMatchingRepository(testConfig(), db, redisClient)

	providerID := uuid.New()
	mock.ExpectExec(statusQuery).WithArgs(true, providerID).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetOnline(context.Background(), providerID, models.Location{Latitude: 1, Longitude: 1})

	var notFound *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	online, _ := repo.IsOnline(context.Background(), providerID)
	assert.False(t, online)
}

func TestSetOnline_DatabaseError(t *testing.T) {
	db, mock := setupMockDB(t)
	redisClient, _ := setupMockRedis(t)
	repo := NewMatchingRepository(testConfig(), db, redisClient)

	providerID := uuid.New()
	mock.ExpectExec(statusQuery).WillReturnError(errors.New("connection refused"))

	err := repo.SetOnline(context.Background(), providerID, models.Location{Latitude: 1, Longitude: 1})

	assert.ErrorContains(t, err, "failed to update provider status")
}

func TestSetOffline_ClearsLiveState(t *testing.T) {
	db, mock := setupMockDB(t)
	redisClient, mr := setupMockRedis(t)
	repo := NewMatchingRepository(testConfig(), db, redisClient)
	ctx := context.Background()

	providerID := uuid.New()
	mock.ExpectExec(statusQuery).WithArgs(true, providerID).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(statusQuery).WithArgs(false, providerID).WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetOnline(ctx, providerID, models.Location{Latitude: 12.97, Longitude: 77.59}))
	require.NoError(t, repo.SetOffline(ctx, providerID))

	online, err := repo.IsOnline(ctx, providerID)
	require.NoError(t, err)
	assert.False(t, online)
	assert.False(t, mr.Exists("provider:location:"+providerID.String()))

	nearby, err := repo.NearbyProviders(ctx, models.Location{Latitude: 12.97, Longitude: 77.59}, 5, 0)
	require.NoError(t, err)
	assert.Empty(t, nearby)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateLocation_SkipsReindexWithinCell(t *testing.T) {
	db, mock := setupMockDB(t)
	redisClient, _ := setupMockRedis(t)
	repo := NewMatchingRepository(testConfig(), db, redisClient)
	ctx := context.Background()

	providerID := uuid.New()
	mock.ExpectExec(statusQuery).WithArgs(true, providerID).WillReturnResult(sqlmock.NewResult(0, 1))
	start := models.Location{Latitude: 12.971600, Longitude: 77.594600}
	require.NoError(t, repo.SetOnline(ctx, providerID, start))

	// a few meters away, same precision 7 cell
	reindexed, err := repo.UpdateLocation(ctx, providerID, models.Location{Latitude: 12.971610, Longitude: 77.594610})
	require.NoError(t, err)
	assert.False(t, reindexed)

	// geo index still holds the original point
	pos, err := redisClient.Client.GeoPos(ctx, constants.KeyProviderGeo, providerID.String()).Result()
	require.NoError(t, err)
	require.NotNil(t, pos[0])
	assert.InDelta(t, start.Latitude, pos[0].Latitude, 1e-4)

	// but the hash has the newest point
	got, err := repo.GetLocation(ctx, providerID)
	require.NoError(t, err)
	assert.InDelta(t, 12.971610, got.Latitude, 1e-9)

	// a kilometer away moves cells
	far := models.Location{Latitude: 12.98, Longitude: 77.60}
	reindexed, err = repo.UpdateLocation(ctx, providerID, far)
	require.NoError(t, err)
	assert.True(t, reindexed)

	pos, err = redisClient.Client.GeoPos(ctx, constants.KeyProviderGeo, providerID.String()).Result()
	require.NoError(t, err)
	assert.InDelta(t, far.Latitude, pos[0].Latitude, 1e-4)
}

func TestGetLocation_Expired(t *testing.T) {
	db, mock := setupMockDB(t)
	redisClient, mr := setupMockRedis(t)
	repo := NewMatchingRepository(testConfig(), db, redisClient)
	ctx := context.Background()

	providerID := uuid.New()
	mock.ExpectExec(statusQuery).WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.SetOnline(ctx, providerID, models.Location{Latitude: 1, Longitude: 1}))

	mr.FastForward(2 * time.Minute)

	got, err := repo.GetLocation(ctx, providerID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNearbyProviders(t *testing.T) {
	redisClient, _ := setupMockRedis(t)
	repo := NewMatchingRepository(testConfig(), nil, redisClient)
	ctx := context.Background()

	near, nearest, offline, far := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	origin := models.Location{Latitude: 12.9716, Longitude: 77.5946}

	add := func(id uuid.UUID, lat, lng float64, online bool) {
		require.NoError(t, redisClient.GeoAdd(ctx, constants.KeyProviderGeo, lng, lat, id.String()))
		if online {
			require.NoError(t, redisClient.SAdd(ctx, constants.KeyOnlineProviders, id.String()))
		}
	}
	add(near, 12.9800, 77.6000, true)
	add(nearest, 12.9720, 77.5950, true)
	add(offline, 12.9716, 77.5946, false)
	add(far, 13.5000, 78.0000, true)
	require.NoError(t, redisClient.GeoAdd(ctx, constants.KeyProviderGeo, 77.5946, 12.9716, "not-a-uuid"))
	require.NoError(t, redisClient.SAdd(ctx, constants.KeyOnlineProviders, "not-a-uuid"))

	t.Run("online within radius nearest first", func(t *testing.T) {
		got, err := repo.NearbyProviders(ctx, origin, 5, 0)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, nearest, got[0].ID)
		assert.Equal(t, near, got[1].ID)
		assert.Less(t, got[0].DistanceKm, got[1].DistanceKm)
	})

	t.Run("limit", func(t *testing.T) {
		got, err := repo.NearbyProviders(ctx, origin, 5, 1)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, nearest, got[0].ID)
	})

	t.Run("nothing around", func(t *testing.T) {
		got, err := repo.NearbyProviders(ctx, models.Location{Latitude: -33.86, Longitude: 151.2}, 5, 0)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestNearbyProviders_RedisDown(t *testing.T) {
	redisClient, mr := setupMockRedis(t)
	repo := NewMatchingRepository(testConfig(), nil, redisClient)
	mr.Close()

	_, err := repo.NearbyProviders(context.Background(), models.Location{Latitude: 1, Longitude: 1}, 5, 0)

	assert.ErrorContains(t, err, "failed to find nearby providers")
}
