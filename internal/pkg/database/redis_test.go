package database

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redismock/v8"
	"github.com/piresc/roadassist/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *RedisClient) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	return mr, &RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
}

func TestNewRedisClient_ConnectionError(t *testing.T) {
	config := models.RedisConfig{Host: "127.0.0.1", Port: 1, PoolSize: 1}

	client, err := NewRedisClient(config)

	assert.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}

func TestNewRedisClient_Miniredis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	config := models.RedisConfig{Host: mr.Host(), Port: port, PoolSize: 2}

	client, err := NewRedisClient(config)

	require.NoError(t, err)
	defer client.Close()
	assert.NoError(t, client.Ping(context.Background()))
}

func TestRedisClient_Set(t *testing.T) {
	db, mock := redismock.NewClientMock()
	client := &RedisClient{Client: db}

	mock.ExpectSet("test:key", "test-value", time.Hour).SetVal("OK")

	err := client.Set(context.Background(), "test:key", "test-value", time.Hour)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisClient_Set_Error(t *testing.T) {
	db, mock := redismock.NewClientMock()
	client := &RedisClient{Client: db}

	mock.ExpectSet("test:key", "test-value", time.Hour).SetErr(errors.New("redis down"))

	err := client.Set(context.Background(), "test:key", "test-value", time.Hour)

	assert.EqualError(t, err, "redis down")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisClient_Incr(t *testing.T) {
	_, client := setupMiniredis(t)
	ctx := context.Background()

	first, err := client.Incr(ctx, "request:seq:abc")
	require.NoError(t, err)
	second, err := client.Incr(ctx, "request:seq:abc")
	require.NoError(t, err)

	assert.Equal(t, int64(1), first)
	assert.Equal(t, int64(2), second)
}

func TestRedisClient_HashAndExpire(t *testing.T) {
	mr, client := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, client.HMSet(ctx, "provider:location:p1", map[string]interface{}{"lat": "12.9", "lng": "77.6"}))
	require.NoError(t, client.Expire(ctx, "provider:location:p1", time.Minute))

	got, err := client.HGetAll(ctx, "provider:location:p1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"lat": "12.9", "lng": "77.6"}, got)
	assert.Equal(t, time.Minute, mr.TTL("provider:location:p1"))

	mr.FastForward(2 * time.Minute)
	got, err = client.HGetAll(ctx, "provider:location:p1")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRedisClient_Geo(t *testing.T) {
	_, client := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, client.GeoAdd(ctx, "providers:geo", 77.5946, 12.9716, "near"))
	require.NoError(t, client.GeoAdd(ctx, "providers:geo", 77.7000, 13.1000, "far"))

	found, err := client.GeoRadius(ctx, "providers:geo", 77.5946, 12.9716, 5, "km")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "near", found[0].Name)

	require.NoError(t, client.GeoRemove(ctx, "providers:geo", "near"))
	found, err = client.GeoRadius(ctx, "providers:geo", 77.5946, 12.9716, 5, "km")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestRedisClient_Sets(t *testing.T) {
	_, client := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, client.SAdd(ctx, "providers:online", "p1", "p2"))
	require.NoError(t, client.SRem(ctx, "providers:online", "p2"))

	ok, err := client.SIsMember(ctx, "providers:online", "p1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.SIsMember(ctx, "providers:online", "p2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisClient_SortedSets(t *testing.T) {
	_, client := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, client.ZAdd(ctx, "ws:presence:u1", 100, "c1"))
	require.NoError(t, client.ZAdd(ctx, "ws:presence:u1", 300, "c2"))

	n, err := client.ZCount(ctx, "ws:presence:u1", "200", "+inf")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, client.ZRem(ctx, "ws:presence:u1", "c2"))
	n, err = client.ZCount(ctx, "ws:presence:u1", "-inf", "+inf")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRedisClient_SetNXAndDelete(t *testing.T) {
	_, client := setupMiniredis(t)
	ctx := context.Background()

	set, err := client.SetNX(ctx, "lock", "1", time.Minute)
	require.NoError(t, err)
	assert.True(t, set)

	set, err = client.SetNX(ctx, "lock", "2", time.Minute)
	require.NoError(t, err)
	assert.False(t, set)

	require.NoError(t, client.Delete(ctx, "lock"))
	_, err = client.Get(ctx, "lock")
	assert.ErrorIs(t, err, redis.Nil)
}

func TestRedisClient_TxPipelined(t *testing.T) {
	_, client := setupMiniredis(t)
	ctx := context.Background()

	err := client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, "a", "1", 0)
		p.Set(ctx, "b", "2", 0)
		return nil
	})
	require.NoError(t, err)

	v, err := client.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "2", v)
	assert.Same(t, client.Client, client.GetClient())
}
