// Package reqctx carries per-request correlation values through a context.
package reqctx

import (
	"context"

	"github.com/google/uuid"
)

type key int

const (
	requestIDKey key = iota
	userIDKey
)

// WithRequestID stores the correlation id of the inbound request. An empty
// id is replaced with a fresh one.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		requestID = uuid.NewString()
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestID returns the correlation id, or "" outside a request
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithUserID stores the authenticated caller
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserID returns the authenticated caller
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}
