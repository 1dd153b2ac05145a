package nats

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/piresc/roadassist/internal/pkg/logger"
)

// StreamConfig describes a JetStream stream that retains published subjects
type StreamConfig struct {
	Name     string
	Subjects []string
	MaxAge   time.Duration
	MaxMsgs  int64
	Storage  jetstream.StorageType
}

// DefaultStreams returns the streams the dispatch service relies on.
// Request events are kept for downstream consumers; room relay traffic is
// transient and never stored.
func DefaultStreams() []StreamConfig {
	return []StreamConfig{
		{
			Name:     "REQUEST_STREAM",
			Subjects: []string{"request.>"},
			MaxAge:   7 * 24 * time.Hour,
			MaxMsgs:  1000000,
			Storage:  jetstream.FileStorage,
		},
	}
}

// EnsureStreams creates the streams or updates them in place
func (c *Client) EnsureStreams(ctx context.Context, streams ...StreamConfig) error {
	for _, s := range streams {
		_, err := c.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
			Name:      s.Name,
			Subjects:  s.Subjects,
			Retention: jetstream.LimitsPolicy,
			Storage:   s.Storage,
			MaxAge:    s.MaxAge,
			MaxMsgs:   s.MaxMsgs,
			Discard:   jetstream.DiscardOld,
			Replicas:  1,
		})
		if err != nil {
			return fmt.Errorf("failed to ensure stream %s: %w", s.Name, err)
		}
		logger.Info("JetStream stream ready",
			logger.String("stream", s.Name),
			logger.Strings("subjects", s.Subjects))
	}
	return nil
}
