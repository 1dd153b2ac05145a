package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/piresc/roadassist/internal/pkg/constants"
	"github.com/piresc/roadassist/internal/pkg/models"
)

// recordLocation drops samples whose client timestamp is not newer than the
// stored one, then stamps the next sequence number and stores the sample.
// Returns -1 for a dropped sample.
var recordLocation = redis.NewScript(`
local last = tonumber(redis.call('HGET', KEYS[1], 'ts') or '0')
if tonumber(ARGV[1]) <= last then
	return -1
end
local seq = redis.call('INCR', KEYS[2])
redis.call('HSET', KEYS[1], 'ts', ARGV[1], 'lat', ARGV[2], 'lng', ARGV[3], 'heading', ARGV[4],
	'speed', ARGV[5], 'server_ts', ARGV[6], 'provider_id', ARGV[7], 'seq', seq)
if tonumber(ARGV[8]) > 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[8])
	redis.call('PEXPIRE', KEYS[2], ARGV[8])
end
return seq
`)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// SaveOffers remembers which providers were offered a pending request
func (r *RequestRepo) SaveOffers(ctx context.Context, requestID uuid.UUID, providerIDs []uuid.UUID, ttl time.Duration) error {
	if len(providerIDs) == 0 {
		return nil
	}
	key := fmt.Sprintf(constants.KeyRequestOffers, requestID)
	members := make([]interface{}, len(providerIDs))
	for i, id := range providerIDs {
		members[i] = id.String()
	}

	err := r.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, key, members...)
		if ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save offers: %w", err)
	}
	return nil
}

// IsOffered reports whether providerID was offered the request
func (r *RequestRepo) IsOffered(ctx context.Context, requestID, providerID uuid.UUID) (bool, error) {
	ok, err := r.redisClient.SIsMember(ctx, fmt.Sprintf(constants.KeyRequestOffers, requestID), providerID.String())
	if err != nil {
		return false, fmt.Errorf("failed to check offer: %w", err)
	}
	return ok, nil
}

// RecordLocation stores update as the last known provider position of its
// request. It sets Seq and ServerTS on update and returns false when the
// sample is older than the stored one.
func (r *RequestRepo) RecordLocation(ctx context.Context, update *models.LocationUpdate, ttl time.Duration) (bool, error) {
	serverTS := models.Now()
	keys := []string{
		fmt.Sprintf(constants.KeyRequestLocation, update.RequestID),
		fmt.Sprintf(constants.KeyRequestSeq, update.RequestID),
	}
	seq, err := recordLocation.Run(ctx, r.redisClient.Client, keys,
		update.ClientTS,
		formatFloat(update.Latitude),
		formatFloat(update.Longitude),
		formatFloat(update.Heading),
		formatFloat(update.Speed),
		serverTS.UnixMilli(),
		update.ProviderID.String(),
		ttl.Milliseconds(),
	).Int64()
	if err != nil {
		return false, fmt.Errorf("failed to record location: %w", err)
	}
	if seq < 0 {
		return false, nil
	}

	update.Seq = seq
	update.ServerTS = serverTS
	return true, nil
}

// LastLocation returns the last recorded provider position of a request, or nil
func (r *RequestRepo) LastLocation(ctx context.Context, requestID uuid.UUID) (*models.LocationUpdate, error) {
	fields, err := r.redisClient.HGetAll(ctx, fmt.Sprintf(constants.KeyRequestLocation, requestID))
	if err != nil {
		return nil, fmt.Errorf("failed to get last location: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	update := &models.LocationUpdate{RequestID: requestID}
	update.Latitude, _ = strconv.ParseFloat(fields[constants.FieldLatitude], 64)
	update.Longitude, _ = strconv.ParseFloat(fields[constants.FieldLongitude], 64)
	update.Heading, _ = strconv.ParseFloat(fields[constants.FieldHeading], 64)
	update.Speed, _ = strconv.ParseFloat(fields[constants.FieldSpeed], 64)
	update.ClientTS, _ = strconv.ParseInt(fields[constants.FieldTimestamp], 10, 64)
	update.Seq, _ = strconv.ParseInt(fields[constants.FieldSeq], 10, 64)
	if ms, err := strconv.ParseInt(fields[constants.FieldServerTS], 10, 64); err == nil {
		update.ServerTS = time.UnixMilli(ms).UTC()
	}
	if id, err := uuid.Parse(fields[constants.FieldProvider]); err == nil {
		update.ProviderID = id
	}
	return update, nil
}

// ClearLiveState drops the tracking and offer keys of a finished request
func (r *RequestRepo) ClearLiveState(ctx context.Context, requestID uuid.UUID) error {
	err := r.redisClient.Delete(ctx,
		fmt.Sprintf(constants.KeyRequestLocation, requestID),
		fmt.Sprintf(constants.KeyRequestSeq, requestID),
		fmt.Sprintf(constants.KeyRequestOffers, requestID),
	)
	if err != nil {
		return fmt.Errorf("failed to clear live state: %w", err)
	}
	return nil
}
