package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/piresc/roadassist/internal/pkg/constants"
	"github.com/piresc/roadassist/internal/pkg/logger"
	"github.com/piresc/roadassist/internal/pkg/models"
)

// TaskEnqueuer is the part of the asynq client the scheduler needs
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ExpiryGW schedules delayed expiry of pending requests on asynq
type ExpiryGW struct {
	client TaskEnqueuer
	queue  string
}

// NewExpiryGW creates a scheduler that enqueues on queue
func NewExpiryGW(client TaskEnqueuer, queue string) *ExpiryGW {
	return &ExpiryGW{client: client, queue: queue}
}

// NewExpiryTask builds the task that expires requestID at fireAt
func NewExpiryTask(requestID uuid.UUID, fireAt time.Time, queue string) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(models.RequestExpiryPayload{RequestID: requestID})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(constants.TaskRequestExpire, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID("expire:" + requestID.String()),
		asynq.MaxRetry(3),
	}
	if queue != "" {
		opts = append(opts, asynq.Queue(queue))
	}
	return task, opts, nil
}

// ScheduleExpiry enqueues the expiry of requestID. Scheduling the same
// request twice is not an error.
func (g *ExpiryGW) ScheduleExpiry(ctx context.Context, requestID uuid.UUID, at time.Time) error {
	task, opts, err := NewExpiryTask(requestID, at, g.queue)
	if err != nil {
		return fmt.Errorf("failed to build expiry task: %w", err)
	}

	info, err := g.client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to schedule expiry: %w", err)
	}

	logger.InfoCtx(ctx, "Scheduled request expiry",
		logger.String("request_id", requestID.String()),
		logger.String("task_id", info.ID),
		logger.String("process_at", at.Format(time.RFC3339)))
	return nil
}
