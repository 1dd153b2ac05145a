package gateway

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/messaging"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent *messaging.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, message *messaging.Message) (string, error) {
	f.sent = message
	return "projects/roadassist/messages/1", f.err
}

func TestPushGW_Notify(t *testing.T) {
	userID := uuid.New()
	sender := &fakeSender{}

	err := NewPushGW(sender).Notify(context.Background(), userID, "Help is on the way", "Ravi Motors accepted your request",
		map[string]string{"event": "request_accepted"})

	require.NoError(t, err)
	assert.Equal(t, "user_"+userID.String(), sender.sent.Topic)
	assert.Equal(t, "Help is on the way", sender.sent.Notification.Title)
	assert.Equal(t, "request_accepted", sender.sent.Data["event"])
	assert.Equal(t, "high", sender.sent.Android.Priority)
}

func TestPushGW_NotifyFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("unregistered")}

	err := NewPushGW(sender).Notify(context.Background(), uuid.New(), "t", "b", nil)

	assert.ErrorContains(t, err, "failed to send push notification")
}
