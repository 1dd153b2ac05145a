package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/piresc/roadassist/internal/pkg/apperrors"
	"github.com/piresc/roadassist/internal/pkg/lifecycle"
	"github.com/piresc/roadassist/internal/pkg/models"
	"github.com/piresc/roadassist/services/requests/mocks"
)

var now = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

// memStore backs the repository mock's lifecycle methods so the real
// machine can run against it
type memStore struct {
	mu  sync.Mutex
	req *models.ServiceRequest
}

func (s *memStore) get(_ context.Context, id uuid.UUID) (*models.ServiceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.req == nil || s.req.ID != id {
		return nil, apperrors.NewNotFound("request", id.String())
	}
	cp := *s.req
	return &cp, nil
}

func (s *memStore) update(_ context.Context, req *models.ServiceRequest, expected int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.req.Version != expected {
		return apperrors.NewStaleTransition(req.ID.String())
	}
	cp := *req
	s.req = &cp
	return nil
}

func (s *memStore) put(req *models.ServiceRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *req
	s.req = &cp
}

func (s *memStore) current() *models.ServiceRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *s.req
	return &cp
}

type fixture struct {
	uc        *RequestUC
	repo      *mocks.MockRequestRepo
	matcher   *mocks.MockMatcher
	emitter   *mocks.MockRoomEmitter
	publisher *mocks.MockEventPublisher
	scheduler *mocks.MockExpiryScheduler
	notifier  *mocks.MockNotifier
	photos    *mocks.MockPhotoStore
	store     *memStore
}

func newFixture(t *testing.T, cfg *models.Config) *fixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	if cfg == nil {
		cfg = &models.Config{}
	}
	f := &fixture{
		repo:      mocks.NewMockRequestRepo(ctrl),
		matcher:   mocks.NewMockMatcher(ctrl),
		emitter:   mocks.NewMockRoomEmitter(ctrl),
		publisher: mocks.NewMockEventPublisher(ctrl),
		scheduler: mocks.NewMockExpiryScheduler(ctrl),
		notifier:  mocks.NewMockNotifier(ctrl),
		photos:    mocks.NewMockPhotoStore(ctrl),
		store:     &memStore{},
	}
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).DoAndReturn(f.store.get).AnyTimes()
	f.repo.EXPECT().UpdateState(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(f.store.update).AnyTimes()

	machine := lifecycle.NewMachine(f.repo,
		lifecycle.WithClock(func() time.Time { return now }),
		lifecycle.WithCodeGenerator(func(int) (string, error) { return "4821", nil }))

	f.uc = NewRequestUC(cfg, f.repo, machine, f.matcher, f.emitter, f.publisher, f.scheduler, f.notifier, f.photos)
	return f
}

// allowEvents accepts any emit and publish not expected more specifically
func (f *fixture) allowEvents() {
	f.emitter.EXPECT().Emit(gomock.Any(), gomock.Any(), gomock.Any()).Return(1).AnyTimes()
	f.emitter.EXPECT().EvictExcept(gomock.Any(), gomock.Any(), gomock.Any()).Return(0).AnyTimes()
	f.emitter.EXPECT().Reachable(gomock.Any(), gomock.Any()).Return(false).AnyTimes()
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func pendingRequest(customerID uuid.UUID) *models.ServiceRequest {
	return &models.ServiceRequest{
		ID:         uuid.New(),
		CustomerID: customerID,
		Category:   models.CategoryMechanic,
		Services:   []string{"Spark Plug"},
		Origin:     models.Location{Latitude: 12.9716, Longitude: 77.5946},
		Address:    "MG Road",
		Pricing:    models.Pricing{BaseFee: 50, DistanceFee: 20, TotalAmount: 70, DistanceKm: 2.5},
		State:      models.StatePending{},
		CreatedAt:  now,
		UpdatedAt:  now,
		Version:    1,
	}
}

func withState(req *models.ServiceRequest, state models.RequestState, version int64) *models.ServiceRequest {
	req.State = state
	req.Version = version
	return req
}

func candidate(providerID uuid.UUID, name string, base, distance float64) models.ProviderCandidate {
	return models.ProviderCandidate{
		Provider:      models.ProviderSummary{ID: providerID, Name: name},
		DistanceKm:    2.5,
		Breakdown:     []models.ServiceQuote{{Name: "Spark Plug", BaseFee: base}},
		BaseFeeTotal:  base,
		DistanceFee:   distance,
		TotalEstimate: base + distance,
	}
}

// roomConn is a websocket.Conn that records the events delivered to it
type roomConn struct {
	id     string
	userID uuid.UUID
	role   models.Role

	mu   sync.Mutex
	msgs []models.WSMessage
}

func (c *roomConn) ID() string        { return c.id }
func (c *roomConn) UserID() uuid.UUID { return c.userID }
func (c *roomConn) Role() models.Role { return c.role }
func (c *roomConn) Close()            {}

func (c *roomConn) Send(msg []byte) bool {
	var m models.WSMessage
	if err := json.Unmarshal(msg, &m); err != nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, m)
	return true
}

func (c *roomConn) events() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.msgs))
	for i, m := range c.msgs {
		out[i] = m.Event
	}
	return out
}
