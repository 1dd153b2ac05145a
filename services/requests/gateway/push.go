package gateway

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// MessageSender is the part of the FCM client the notifier needs
type MessageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// PushGW sends FCM notifications to the per-user topic "user_<id>" that
// the mobile apps subscribe to after login
type PushGW struct {
	sender MessageSender
}

// NewPushGW creates a notifier over an FCM client
func NewPushGW(sender MessageSender) *PushGW {
	return &PushGW{sender: sender}
}

// NewFCMClient initializes a Firebase app from a service account file
func NewFCMClient(ctx context.Context, credentialsFile string) (*messaging.Client, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}
	return client, nil
}

// Notify pushes a notification to userID
func (g *PushGW) Notify(ctx context.Context, userID uuid.UUID, title, body string, data map[string]string) error {
	msg := &messaging.Message{
		Topic: "user_" + userID.String(),
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
	}
	if _, err := g.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send push notification: %w", err)
	}
	return nil
}
