package websocket

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/piresc/roadassist/internal/pkg/database"
	"github.com/piresc/roadassist/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPresence(t *testing.T) (*RedisPresence, *time.Time) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := &database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	clock := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	p := NewRedisPresence(client, time.Minute)
	p.now = func() time.Time { return clock }
	return p, &clock
}

func TestRedisPresence(t *testing.T) {
	ctx := context.Background()
	p, clock := newPresence(t)
	userID := uuid.New()

	online, err := p.Online(ctx, userID)
	require.NoError(t, err)
	assert.False(t, online)

	require.NoError(t, p.Touch(ctx, userID, "c1"))
	require.NoError(t, p.Touch(ctx, userID, "c2"))
	online, err = p.Online(ctx, userID)
	require.NoError(t, err)
	assert.True(t, online)

	require.NoError(t, p.Remove(ctx, userID, "c1"))
	online, err = p.Online(ctx, userID)
	require.NoError(t, err)
	assert.True(t, online, "c2 is still connected")

	*clock = clock.Add(2 * time.Minute)
	online, err = p.Online(ctx, userID)
	require.NoError(t, err)
	assert.False(t, online, "unrefreshed connections lapse")
}

type fakePresence struct {
	online map[uuid.UUID]bool
	err    error
}

func (f *fakePresence) Touch(context.Context, uuid.UUID, string) error  { return nil }
func (f *fakePresence) Remove(context.Context, uuid.UUID, string) error { return nil }
func (f *fakePresence) Online(_ context.Context, userID uuid.UUID) (bool, error) {
	return f.online[userID], f.err
}

func TestRouter_Reachable(t *testing.T) {
	ctx := context.Background()
	local := newFakeConn(models.RoleCustomer)
	remoteUser, nobody := uuid.New(), uuid.New()

	r := NewRouter()
	r.Register(local)
	require.NoError(t, r.JoinRoom(local.ID(), UserRoom(local.userID)))

	assert.True(t, r.Reachable(ctx, local.userID))
	assert.False(t, r.Reachable(ctx, remoteUser), "without presence only local connections count")

	r.SetPresence(&fakePresence{online: map[uuid.UUID]bool{remoteUser: true}})
	assert.True(t, r.Reachable(ctx, remoteUser))
	assert.False(t, r.Reachable(ctx, nobody))

	r.SetPresence(&fakePresence{err: errors.New("redis down")})
	assert.False(t, r.Reachable(ctx, remoteUser))
}
