package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/piresc/roadassist/internal/pkg/apperrors"
	"github.com/piresc/roadassist/internal/pkg/constants"
	"github.com/piresc/roadassist/internal/pkg/lifecycle"
	"github.com/piresc/roadassist/internal/pkg/logger"
	"github.com/piresc/roadassist/internal/pkg/models"
	"github.com/piresc/roadassist/internal/pkg/websocket"
	"github.com/piresc/roadassist/internal/utils"
)

const (
	trackingTTL   = 6 * time.Hour
	maxMessageLen = 1000
	photoPathFmt  = "requests/%s/problem-%d"
)

var photoExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".heic": true}

func notParticipant(req *models.ServiceRequest, action string) error {
	return apperrors.NewInvalidTransition(string(req.Status()), action, "you are not part of this request")
}

func finished(req *models.ServiceRequest, action string) error {
	return apperrors.NewInvalidTransition(string(req.Status()), action, "the request is already finished")
}

// UpdateRequest changes non-lifecycle fields. The customer owns the address,
// the assigned provider owns the technician details.
func (uc *RequestUC) UpdateRequest(ctx context.Context, requestID uuid.UUID, by lifecycle.Actor, patch models.RequestPatch) (*models.RequestView, error) {
	patch.ProblemPhotoURL = nil
	if patch.Empty() {
		return nil, apperrors.NewValidationError("patch", "nothing to update")
	}

	req, err := uc.repo.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status().IsTerminal() {
		return nil, finished(req, "update")
	}
	if patch.Address != nil {
		if by.ID != req.CustomerID {
			return nil, apperrors.NewInvalidTransition(string(req.Status()), "update", "only the customer can change the address")
		}
		if strings.TrimSpace(*patch.Address) == "" {
			return nil, apperrors.NewValidationError("address", "address cannot be blank")
		}
	}
	if patch.AssignedPerson != nil {
		if p := req.ProviderID(); p == nil || *p != by.ID {
			return nil, apperrors.NewInvalidTransition(string(req.Status()), "update", "only the assigned provider can send a technician")
		}
		if strings.TrimSpace(patch.AssignedPerson.Name) == "" {
			return nil, apperrors.NewValidationError("assigned_person", "technician name is required")
		}
		if phone := patch.AssignedPerson.Phone; phone != "" && !utils.IsValidPhoneNumber(phone) {
			return nil, apperrors.NewValidationError("assigned_person", "technician phone number is invalid")
		}
	}

	updated, err := uc.repo.Update(ctx, requestID, patch)
	if err != nil {
		return nil, err
	}
	uc.emitter.Emit(websocket.RequestRoom(requestID), constants.EventRequestState,
		models.ReconcileView{Request: updated.View(uuid.Nil)})

	view := updated.View(by.ID)
	return &view, nil
}

// UploadPhoto stores a picture of the problem and attaches its URL
func (uc *RequestUC) UploadPhoto(ctx context.Context, requestID, customerID uuid.UUID, photo io.Reader, filename string) (*models.RequestView, error) {
	if !photoExtensions[strings.ToLower(filepath.Ext(filename))] {
		return nil, apperrors.NewValidationError("photo", "upload a jpg, png, webp or heic image")
	}

	req, err := uc.repo.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.CustomerID != customerID {
		return nil, notParticipant(req, "add a photo to")
	}
	if req.Status().IsTerminal() {
		return nil, finished(req, "add a photo to")
	}

	url, err := uc.photos.Upload(ctx, photo, fmt.Sprintf(photoPathFmt, requestID, models.Now().Unix()))
	if err != nil {
		return nil, apperrors.NewExternalService("photo storage", err)
	}

	updated, err := uc.repo.Update(ctx, requestID, models.RequestPatch{ProblemPhotoURL: &url})
	if err != nil {
		return nil, err
	}
	view := updated.View(customerID)
	return &view, nil
}

// ActiveRequest returns the open request of user, or nil
func (uc *RequestUC) ActiveRequest(ctx context.Context, user lifecycle.Actor) (*models.RequestView, error) {
	var (
		req *models.ServiceRequest
		err error
	)
	switch user.Role {
	case models.RoleCustomer:
		req, err = uc.repo.FindActiveForCustomer(ctx, user.ID)
		if err == nil && req == nil {
			req, err = uc.repo.FindPendingForCustomer(ctx, user.ID)
		}
	case models.RoleProvider:
		req, err = uc.repo.FindActiveForProvider(ctx, user.ID)
	default:
		return nil, apperrors.NewValidationError("role", "only customers and providers have requests")
	}
	if err != nil || req == nil {
		return nil, err
	}
	view := req.View(user.ID)
	return &view, nil
}

// History lists the finished requests of user, newest first
func (uc *RequestUC) History(ctx context.Context, user lifecycle.Actor) ([]models.RequestView, error) {
	list, err := uc.repo.ListHistory(ctx, user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	views := make([]models.RequestView, len(list))
	for i, req := range list {
		views[i] = req.View(user.ID)
	}
	return views, nil
}

// Reconcile returns the authoritative state of a request for one of its participants
func (uc *RequestUC) Reconcile(ctx context.Context, requestID, viewerID uuid.UUID) (*models.ReconcileView, error) {
	req, err := uc.repo.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !req.IsParticipant(viewerID) {
		return nil, apperrors.NewNotFound("request", requestID.String())
	}

	view := &models.ReconcileView{Request: req.View(viewerID)}
	if req.Status().IsActive() {
		last, err := uc.repo.LastLocation(ctx, requestID)
		if err != nil {
			logger.WarnCtx(ctx, "Failed to read last provider location",
				logger.String("request_id", requestID.String()),
				logger.Err(err))
		}
		view.LastLocation = last
	}
	return view, nil
}

// CanJoin checks that user may follow the realtime events of a request:
// its participants, and while it is pending the providers it was offered to
func (uc *RequestUC) CanJoin(ctx context.Context, requestID uuid.UUID, user lifecycle.Actor) error {
	req, err := uc.repo.Get(ctx, requestID)
	if err != nil {
		return err
	}
	if req.IsParticipant(user.ID) {
		return nil
	}
	if _, pending := req.State.(models.StatePending); pending && user.Role == models.RoleProvider {
		if req.TargetProviderID != nil && *req.TargetProviderID == user.ID {
			return nil
		}
		offered, err := uc.repo.IsOffered(ctx, requestID, user.ID)
		if err != nil {
			return err
		}
		if offered {
			return nil
		}
	}
	return notParticipant(req, "join")
}

// TrackProvider records a location sample from the assigned provider and
// relays it to the request room. Samples older than the last one are
// dropped and nil is returned.
func (uc *RequestUC) TrackProvider(ctx context.Context, providerID uuid.UUID, sample models.TrackProviderRequest) (*models.LocationUpdate, error) {
	loc := models.Location{Latitude: sample.Latitude, Longitude: sample.Longitude}
	if !loc.Valid() {
		return nil, apperrors.NewValidationError("location", "coordinates are out of range")
	}

	req, err := uc.repo.Get(ctx, sample.RequestID)
	if err != nil {
		return nil, err
	}
	if p := req.ProviderID(); p == nil || *p != providerID {
		return nil, apperrors.NewInvalidTransition(string(req.Status()), "track", "only the assigned provider can share its location")
	}
	if !req.Status().IsActive() {
		return nil, apperrors.NewInvalidTransition(string(req.Status()), "track", "the request is not active")
	}

	ts := sample.Timestamp
	if ts <= 0 {
		ts = models.Now().UnixMilli()
	}
	update := &models.LocationUpdate{
		RequestID:  req.ID,
		ProviderID: providerID,
		Latitude:   sample.Latitude,
		Longitude:  sample.Longitude,
		Heading:    sample.Heading,
		Speed:      sample.Speed,
		ClientTS:   ts,
	}
	ok, err := uc.repo.RecordLocation(ctx, update, trackingTTL)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	uc.emitter.Emit(websocket.RequestRoom(req.ID), constants.EventTrackProvider, update)

	if err := uc.matcher.UpdateLocation(ctx, providerID, loc); err != nil {
		logger.WarnCtx(ctx, "Failed to update provider position",
			logger.String("provider_id", providerID.String()),
			logger.Err(err))
	}
	return update, nil
}

// SendMessage relays a chat line to the participants of a request
func (uc *RequestUC) SendMessage(ctx context.Context, sender lifecycle.Actor, msg models.SendMessageRequest) (*models.ChatMessage, error) {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return nil, apperrors.NewValidationError("text", "message is empty")
	}
	if utf8.RuneCountInString(text) > maxMessageLen {
		return nil, apperrors.NewValidationError("text", fmt.Sprintf("message is longer than %d characters", maxMessageLen))
	}

	req, err := uc.repo.Get(ctx, msg.RequestID)
	if err != nil {
		return nil, err
	}
	if !req.IsParticipant(sender.ID) {
		return nil, notParticipant(req, "message")
	}
	if req.Status().IsTerminal() {
		return nil, finished(req, "message")
	}

	chat := &models.ChatMessage{
		RequestID:  req.ID,
		SenderID:   sender.ID,
		SenderRole: sender.Role,
		Text:       text,
		SentAt:     models.Now(),
	}
	uc.emitter.Emit(websocket.RequestRoom(req.ID), constants.EventReceiveMessage, chat)
	return chat, nil
}
