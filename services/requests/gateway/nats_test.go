package gateway

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	natsserver "github.com/nats-io/nats-server/v2/test"
	"github.com/piresc/roadassist/internal/pkg/constants"
	"github.com/piresc/roadassist/internal/pkg/models"
	natspkg "github.com/piresc/roadassist/internal/pkg/nats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventGW_Publish(t *testing.T) {
	// Arrange
	opts := natsserver.DefaultTestOptions
	opts.Port = -1
	s := natsserver.RunServer(&opts)
	defer s.Shutdown()

	client, err := natspkg.NewClient(s.ClientURL(), "requests-test")
	require.NoError(t, err)
	defer client.Close()

	got := make(chan []byte, 1)
	_, err = client.Subscribe(constants.SubjectRequestCancelled, func(data []byte) error {
		got <- data
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, client.GetConn().Flush())

	event := models.RequestEvent{
		RequestID:  uuid.New(),
		CustomerID: uuid.New(),
		Category:   models.CategoryMechanic,
		Status:     models.StatusCancelled,
		Reason:     "no provider accepted in time",
		OccurredAt: time.Date(2024, 3, 1, 9, 35, 0, 0, time.UTC),
	}

	// Act
	err = NewEventGW(client).Publish(context.Background(), constants.SubjectRequestCancelled, event)

	// Assert
	require.NoError(t, err)
	select {
	case data := <-got:
		var published models.RequestEvent
		require.NoError(t, json.Unmarshal(data, &published))
		assert.Equal(t, event, published)
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}
}

func TestEventGW_PublishClosed(t *testing.T) {
	opts := natsserver.DefaultTestOptions
	opts.Port = -1
	s := natsserver.RunServer(&opts)
	defer s.Shutdown()

	client, err := natspkg.NewClient(s.ClientURL(), "requests-test")
	require.NoError(t, err)
	client.Close()

	err = NewEventGW(client).Publish(context.Background(), constants.SubjectRequestCreated, models.RequestEvent{})

	assert.ErrorContains(t, err, "failed to publish request.created")
}
