package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/roadassist/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordLocation(t *testing.T) {
	repo, _, mr := newRepo(t)
	ctx := context.Background()
	requestID, providerID := uuid.New(), uuid.New()

	sample := func(ts int64, lat float64) *models.LocationUpdate {
		return &models.LocationUpdate{
			RequestID:  requestID,
			ProviderID: providerID,
			Latitude:   lat,
			Longitude:  77.5946,
			Heading:    90,
			Speed:      8.5,
			ClientTS:   ts,
		}
	}

	first := sample(1700000000000, 12.9716)
	ok, err := repo.RecordLocation(ctx, first, time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(1), first.Seq)
	assert.False(t, first.ServerTS.IsZero())

	second := sample(1700000002000, 12.9720)
	ok, err = repo.RecordLocation(ctx, second, time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(2), second.Seq)

	t.Run("older sample is dropped", func(t *testing.T) {
		late := sample(1700000001000, 12.9000)

		ok, err := repo.RecordLocation(ctx, late, time.Hour)

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Zero(t, late.Seq)
	})

	t.Run("last location keeps the newest sample", func(t *testing.T) {
		got, err := repo.LastLocation(ctx, requestID)

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, providerID, got.ProviderID)
		assert.InDelta(t, 12.9720, got.Latitude, 1e-9)
		assert.InDelta(t, 77.5946, got.Longitude, 1e-9)
		assert.Equal(t, 90.0, got.Heading)
		assert.Equal(t, 8.5, got.Speed)
		assert.Equal(t, int64(1700000002000), got.ClientTS)
		assert.Equal(t, int64(2), got.Seq)
	})

	assert.Equal(t, time.Hour, mr.TTL("request:location:"+requestID.String()))
	assert.Equal(t, time.Hour, mr.TTL("request:seq:"+requestID.String()))
}

func TestLastLocation_None(t *testing.T) {
	repo, _, _ := newRepo(t)

	got, err := repo.LastLocation(context.Background(), uuid.New())

	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestOffers(t *testing.T) {
	repo, _, mr := newRepo(t)
	ctx := context.Background()
	requestID := uuid.New()
	offered, other := uuid.New(), uuid.New()

	require.NoError(t, repo.SaveOffers(ctx, requestID, []uuid.UUID{offered}, 10*time.Minute))

	ok, err := repo.IsOffered(ctx, requestID, offered)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.IsOffered(ctx, requestID, other)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, 10*time.Minute, mr.TTL("request:offers:"+requestID.String()))
}

func TestSaveOffers_NoProviders(t *testing.T) {
	repo, _, mr := newRepo(t)
	requestID := uuid.New()

	require.NoError(t, repo.SaveOffers(context.Background(), requestID, nil, time.Minute))

	assert.False(t, mr.Exists("request:offers:"+requestID.String()))
}

func TestClearLiveState(t *testing.T) {
	repo, _, mr := newRepo(t)
	ctx := context.Background()
	requestID := uuid.New()

	require.NoError(t, repo.SaveOffers(ctx, requestID, []uuid.UUID{uuid.New()}, 0))
	_, err := repo.RecordLocation(ctx, &models.LocationUpdate{
		RequestID: requestID, ProviderID: uuid.New(), Latitude: 1, Longitude: 1, ClientTS: 1,
	}, 0)
	require.NoError(t, err)

	require.NoError(t, repo.ClearLiveState(ctx, requestID))

	assert.False(t, mr.Exists("request:offers:"+requestID.String()))
	assert.False(t, mr.Exists("request:location:"+requestID.String()))
	assert.False(t, mr.Exists("request:seq:"+requestID.String()))
}

func TestRecordLocation_RedisDown(t *testing.T) {
	repo, _, mr := newRepo(t)
	mr.Close()

	_, err := repo.RecordLocation(context.Background(), &models.LocationUpdate{RequestID: uuid.New(), ClientTS: 1}, 0)

	assert.ErrorContains(t, err, "failed to record location")
}
