package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/piresc/roadassist/internal/pkg/constants"
	"github.com/piresc/roadassist/internal/pkg/logger"
	"github.com/piresc/roadassist/internal/pkg/models"
	"github.com/piresc/roadassist/services/requests"
)

// ExpiryHandler cancels requests nobody accepted before their deadline
type ExpiryHandler struct {
	requestUC requests.RequestUC
}

// NewExpiryHandler creates the asynq handler for request expiry tasks
func NewExpiryHandler(requestUC requests.RequestUC) *ExpiryHandler {
	return &ExpiryHandler{requestUC: requestUC}
}

// Register mounts the handler on mux
func (h *ExpiryHandler) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(constants.TaskRequestExpire, h.ProcessTask)
}

// ProcessTask expires the request named in the task payload. A malformed
// payload is never retried.
func (h *ExpiryHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload models.RequestExpiryPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid expiry payload: %v: %w", err, asynq.SkipRetry)
	}

	if err := h.requestUC.ExpireRequest(ctx, payload.RequestID); err != nil {
		logger.ErrorCtx(ctx, "Failed to expire request",
			logger.String("request_id", payload.RequestID.String()),
			logger.Err(err))
		return err
	}
	return nil
}
