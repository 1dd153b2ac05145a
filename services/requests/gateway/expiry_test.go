package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/piresc/roadassist/internal/pkg/constants"
	"github.com/piresc/roadassist/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnqueuer struct {
	task *asynq.Task
	opts []asynq.Option
	err  error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	f.task, f.opts = task, opts
	if f.err != nil {
		return nil, f.err
	}
	return &asynq.TaskInfo{ID: "expire:x", Type: task.Type()}, nil
}

func optionValue(opts []asynq.Option, typ asynq.OptionType) interface{} {
	for _, o := range opts {
		if o.Type() == typ {
			return o.Value()
		}
	}
	return nil
}

func TestExpiryGW_ScheduleExpiry(t *testing.T) {
	requestID := uuid.New()
	at := time.Date(2024, 3, 1, 9, 35, 0, 0, time.UTC)
	enqueuer := &fakeEnqueuer{}

	err := NewExpiryGW(enqueuer, "critical").ScheduleExpiry(context.Background(), requestID, at)

	require.NoError(t, err)
	assert.Equal(t, constants.TaskRequestExpire, enqueuer.task.Type())

	var payload models.RequestExpiryPayload
	require.NoError(t, json.Unmarshal(enqueuer.task.Payload(), &payload))
	assert.Equal(t, requestID, payload.RequestID)

	assert.Equal(t, at, optionValue(enqueuer.opts, asynq.ProcessAtOpt))
	assert.Equal(t, "expire:"+requestID.String(), optionValue(enqueuer.opts, asynq.TaskIDOpt))
	assert.Equal(t, "critical", optionValue(enqueuer.opts, asynq.QueueOpt))
}

func TestExpiryGW_AlreadyScheduled(t *testing.T) {
	enqueuer := &fakeEnqueuer{err: asynq.ErrTaskIDConflict}

	err := NewExpiryGW(enqueuer, "").ScheduleExpiry(context.Background(), uuid.New(), time.Now())

	assert.NoError(t, err)
	assert.Nil(t, optionValue(enqueuer.opts, asynq.QueueOpt))
}

func TestExpiryGW_EnqueueFailure(t *testing.T) {
	enqueuer := &fakeEnqueuer{err: errors.New("redis down")}

	err := NewExpiryGW(enqueuer, "").ScheduleExpiry(context.Background(), uuid.New(), time.Now())

	assert.ErrorContains(t, err, "failed to schedule expiry")
}
