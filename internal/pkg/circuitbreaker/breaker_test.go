package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestBreaker(threshold uint32) (*CircuitBreaker, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cfg := DefaultConfig("cashfree")
	cfg.FailureThreshold = threshold
	cfg.Timeout = 10 * time.Second
	cb := New(cfg, nil)
	cb.now = clock.now
	cb.expiry = clock.now().Add(cfg.Interval)
	return cb, clock
}

var errDown = errors.New("down")

func fail(context.Context) error    { return errDown }
func succeed(context.Context) error { return nil }

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cb, _ := newTestBreaker(3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(ctx, fail), errDown)
	}

	assert.Equal(t, StateOpen, cb.State())
	called := false
	err := cb.Execute(ctx, func(context.Context) error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitBreakerOpen)
	assert.False(t, called)
}

func TestCircuitBreaker_HalfOpenRecovers(t *testing.T) {
	var transitions []string
	cb, clock := newTestBreaker(1)
	cb.config.OnStateChange = func(_ string, from, to State) {
		transitions = append(transitions, from.String()+"->"+to.String())
	}
	ctx := context.Background()

	require.ErrorIs(t, cb.Execute(ctx, fail), errDown)
	clock.advance(11 * time.Second)

	require.NoError(t, cb.Execute(ctx, succeed))

	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, []string{"CLOSED->OPEN", "OPEN->HALF_OPEN", "HALF_OPEN->CLOSED"}, transitions)
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb, clock := newTestBreaker(1)
	ctx := context.Background()

	_ = cb.Execute(ctx, fail)
	clock.advance(11 * time.Second)
	_ = cb.Execute(ctx, fail)

	assert.Equal(t, StateOpen, cb.State())
	assert.ErrorIs(t, cb.Execute(ctx, succeed), ErrCircuitBreakerOpen)
}

func TestCircuitBreaker_IgnoresNonFailures(t *testing.T) {
	cb, _ := newTestBreaker(1)
	clientErr := errors.New("400 bad request")
	cb.config.IsFailure = func(err error) bool { return err != nil && err != clientErr }

	for i := 0; i < 5; i++ {
		_ = cb.Execute(context.Background(), func(context.Context) error { return clientErr })
	}

	assert.Equal(t, StateClosed, cb.State())
}

func TestManager_OneBreakerPerName(t *testing.T) {
	cfg := DefaultConfig("")
	cfg.FailureThreshold = 1
	m := NewManager(cfg, nil)
	ctx := context.Background()

	_ = m.Execute(ctx, "stripe", fail)
	require.NoError(t, m.Execute(ctx, "cashfree", succeed))

	assert.Same(t, m.Get("stripe"), m.Get("stripe"))
	stats := m.GetStats()
	assert.Equal(t, "OPEN", stats["stripe"].State)
	assert.Equal(t, "CLOSED", stats["cashfree"].State)
}
