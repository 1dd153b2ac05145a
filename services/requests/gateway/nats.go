package gateway

import (
	"context"
	"fmt"

	"github.com/piresc/roadassist/internal/pkg/models"
	natspkg "github.com/piresc/roadassist/internal/pkg/nats"
	"github.com/piresc/roadassist/services/requests"
)

// EventGW publishes request lifecycle events to NATS
type EventGW struct {
	natsClient *natspkg.Client
}

// NewEventGW creates a new request event gateway
func NewEventGW(client *natspkg.Client) requests.EventPublisher {
	return &EventGW{
		natsClient: client,
	}
}

// Publish sends event on subject
func (g *EventGW) Publish(ctx context.Context, subject string, event models.RequestEvent) error {
	if err := g.natsClient.PublishJSON(subject, event); err != nil {
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}
	return nil
}
