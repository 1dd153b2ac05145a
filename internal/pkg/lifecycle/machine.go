package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/roadassist/internal/pkg/apperrors"
	"github.com/piresc/roadassist/internal/pkg/models"
	"github.com/piresc/roadassist/internal/utils"
)

// Store is the persistence the machine reads from and writes through
type Store interface {
	Get(ctx context.Context, id uuid.UUID) (*models.ServiceRequest, error)
	UpdateState(ctx context.Context, req *models.ServiceRequest, expectedVersion int64) error
}

// Guard vets a proposed transition while the request lock is held
type Guard func(ctx context.Context, before, after *models.ServiceRequest) error

// Transition is a persisted state change
type Transition struct {
	Before *models.ServiceRequest
	After  *models.ServiceRequest
}

// Machine serializes transitions per request and persists them with an
// optimistic version check, so concurrent writers on other nodes lose
// with a StaleTransitionError instead of overwriting.
type Machine struct {
	store      Store
	locks      *Locker
	now        func() time.Time
	codeLength int
	newCode    func(n int) (string, error)
}

type Option func(*Machine)

func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

func WithCodeLength(n int) Option {
	return func(m *Machine) {
		if n > 0 {
			m.codeLength = n
		}
	}
}

func WithCodeGenerator(fn func(n int) (string, error)) Option {
	return func(m *Machine) { m.newCode = fn }
}

func NewMachine(store Store, opts ...Option) *Machine {
	m := &Machine{
		store:      store,
		locks:      NewLocker(),
		now:        models.Now,
		codeLength: 4,
		newCode:    utils.GenerateNumericCode,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Snapshot reads the request under its lock. Callers that go on to await an
// external service must pass the snapshot's Version to FireAt.
func (m *Machine) Snapshot(ctx context.Context, id uuid.UUID) (*models.ServiceRequest, error) {
	unlock := m.locks.Lock(id)
	defer unlock()
	return m.store.Get(ctx, id)
}

// Fire applies ev to the current state of request id
func (m *Machine) Fire(ctx context.Context, id uuid.UUID, ev Event, guards ...Guard) (*Transition, error) {
	return m.fire(ctx, id, -1, ev, guards)
}

// FireAt applies ev only if the request is still at expectedVersion
func (m *Machine) FireAt(ctx context.Context, id uuid.UUID, expectedVersion int64, ev Event, guards ...Guard) (*Transition, error) {
	return m.fire(ctx, id, expectedVersion, ev, guards)
}

func (m *Machine) fire(ctx context.Context, id uuid.UUID, expected int64, ev Event, guards []Guard) (*Transition, error) {
	unlock := m.locks.Lock(id)
	defer unlock()

	cur, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if expected >= 0 && cur.Version != expected {
		return nil, apperrors.NewStaleTransition(id.String())
	}

	if acc, ok := ev.(ProviderAccepts); ok && acc.SecurityCode == "" {
		if _, pending := cur.State.(models.StatePending); pending {
			code, err := m.newCode(m.codeLength)
			if err != nil {
				return nil, fmt.Errorf("failed to generate security code: %w", err)
			}
			acc.SecurityCode = code
			ev = acc
		}
	}

	next, err := Apply(cur, ev, m.now())
	if err != nil {
		return nil, err
	}

	for _, g := range guards {
		if err := g(ctx, cur, next); err != nil {
			return nil, err
		}
	}

	next.Version = cur.Version + 1
	if err := m.store.UpdateState(ctx, next, cur.Version); err != nil {
		return nil, err
	}
	return &Transition{Before: cur, After: next}, nil
}
