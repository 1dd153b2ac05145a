package websocket

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/roadassist/internal/pkg/constants"
)

// Presence tracks which users hold a live connection on any node
type Presence interface {
	Touch(ctx context.Context, userID uuid.UUID, connID string) error
	Remove(ctx context.Context, userID uuid.UUID, connID string) error
	Online(ctx context.Context, userID uuid.UUID) (bool, error)
}

// PresenceStore is the part of the Redis client presence needs
type PresenceStore interface {
	ZAdd(ctx context.Context, key string, score float64, member string) error
	ZRem(ctx context.Context, key string, members ...interface{}) error
	ZCount(ctx context.Context, key, min, max string) (int64, error)
	Expire(ctx context.Context, key string, expiration time.Duration) error
}

// RedisPresence keeps one sorted set per user holding connection ids scored
// by the time they lapse. Entries of a node that stops refreshing them expire
// after ttl.
type RedisPresence struct {
	store PresenceStore
	ttl   time.Duration
	now   func() time.Time
}

func NewRedisPresence(store PresenceStore, ttl time.Duration) *RedisPresence {
	return &RedisPresence{store: store, ttl: ttl, now: time.Now}
}

func presenceKey(userID uuid.UUID) string {
	return fmt.Sprintf(constants.KeyUserPresence, userID.String())
}

// Touch marks the connection live for another ttl
func (p *RedisPresence) Touch(ctx context.Context, userID uuid.UUID, connID string) error {
	key := presenceKey(userID)
	lapse := p.now().Add(p.ttl).UnixMilli()
	if err := p.store.ZAdd(ctx, key, float64(lapse), connID); err != nil {
		return fmt.Errorf("failed to record presence: %w", err)
	}
	if err := p.store.Expire(ctx, key, p.ttl); err != nil {
		return fmt.Errorf("failed to set presence expiry: %w", err)
	}
	return nil
}

// Remove forgets the connection
func (p *RedisPresence) Remove(ctx context.Context, userID uuid.UUID, connID string) error {
	if err := p.store.ZRem(ctx, presenceKey(userID), connID); err != nil {
		return fmt.Errorf("failed to clear presence: %w", err)
	}
	return nil
}

// Online reports whether any connection of the user has not lapsed
func (p *RedisPresence) Online(ctx context.Context, userID uuid.UUID) (bool, error) {
	n, err := p.store.ZCount(ctx, presenceKey(userID), strconv.FormatInt(p.now().UnixMilli(), 10), "+inf")
	if err != nil {
		return false, fmt.Errorf("failed to read presence: %w", err)
	}
	return n > 0, nil
}
