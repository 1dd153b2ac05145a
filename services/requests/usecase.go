package requests

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/piresc/roadassist/internal/pkg/lifecycle"
	"github.com/piresc/roadassist/internal/pkg/models"
)

// go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/roadassist/services/requests RequestUC

// RequestUC drives a service request from creation to completion or cancellation
type RequestUC interface {
	CreateRequest(ctx context.Context, customerID uuid.UUID, input models.CreateRequestInput) (*models.CreateRequestResult, error)
	AcceptRequest(ctx context.Context, requestID, providerID uuid.UUID) (*models.RequestView, error)
	MarkArrived(ctx context.Context, requestID, providerID uuid.UUID) (*models.RequestView, error)
	VerifyOTP(ctx context.Context, requestID uuid.UUID, by lifecycle.Actor, code string) (*models.VerifyOTPResult, error)
	CancelRequest(ctx context.Context, requestID uuid.UUID, by lifecycle.Actor, reason string) (*models.RequestView, error)
	ExpireRequest(ctx context.Context, requestID uuid.UUID) error

	UpdateRequest(ctx context.Context, requestID uuid.UUID, by lifecycle.Actor, patch models.RequestPatch) (*models.RequestView, error)
	UploadPhoto(ctx context.Context, requestID, customerID uuid.UUID, photo io.Reader, filename string) (*models.RequestView, error)

	ActiveRequest(ctx context.Context, user lifecycle.Actor) (*models.RequestView, error)
	History(ctx context.Context, user lifecycle.Actor) ([]models.RequestView, error)
	Reconcile(ctx context.Context, requestID, viewerID uuid.UUID) (*models.ReconcileView, error)

	// Realtime
	CanJoin(ctx context.Context, requestID uuid.UUID, user lifecycle.Actor) error
	TrackProvider(ctx context.Context, providerID uuid.UUID, sample models.TrackProviderRequest) (*models.LocationUpdate, error)
	SendMessage(ctx context.Context, sender lifecycle.Actor, msg models.SendMessageRequest) (*models.ChatMessage, error)
}
