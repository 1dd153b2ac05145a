package ws

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/piresc/roadassist/internal/pkg/apperrors"
	"github.com/piresc/roadassist/internal/pkg/constants"
	"github.com/piresc/roadassist/internal/pkg/lifecycle"
	"github.com/piresc/roadassist/internal/pkg/logger"
	"github.com/piresc/roadassist/internal/pkg/models"
	"github.com/piresc/roadassist/internal/pkg/websocket"
	"github.com/piresc/roadassist/services/requests"
)

// RoomJoiner manages room membership of live connections
type RoomJoiner interface {
	JoinRoom(connID, room string) error
	LeaveRoom(connID, room string)
}

// JoinedEvent confirms a room subscription
type JoinedEvent struct {
	RequestID string `json:"request_id"`
	Room      string `json:"room"`
}

// MessageHandler dispatches client events of the request flow
type MessageHandler struct {
	requestUC requests.RequestUC
	rooms     RoomJoiner
}

// NewMessageHandler creates the websocket handler for request events
func NewMessageHandler(requestUC requests.RequestUC, rooms RoomJoiner) *MessageHandler {
	return &MessageHandler{
		requestUC: requestUC,
		rooms:     rooms,
	}
}

// HandleMessage processes one client event
func (h *MessageHandler) HandleMessage(ctx context.Context, conn websocket.Conn, msg models.WSMessage) {
	switch msg.Event {
	case constants.EventJoinRequest:
		h.handleJoin(ctx, conn, msg.Data)
	case constants.EventLeaveRequest:
		h.handleLeave(conn, msg.Data)
	case constants.EventTrackProvider:
		h.handleTrack(ctx, conn, msg.Data)
	case constants.EventSendMessage:
		h.handleSendMessage(ctx, conn, msg.Data)
	case constants.EventReconcile:
		h.handleReconcile(ctx, conn, msg.Data)
	default:
		websocket.SendError(conn, constants.ErrorUnknownEvent, "Unknown event "+msg.Event)
	}
}

func actor(conn websocket.Conn) lifecycle.Actor {
	return lifecycle.Actor{ID: conn.UserID(), Role: conn.Role()}
}

func (h *MessageHandler) handleJoin(ctx context.Context, conn websocket.Conn, data json.RawMessage) {
	var req models.RoomRequest
	if err := json.Unmarshal(data, &req); err != nil {
		websocket.SendError(conn, constants.ErrorInvalidFormat, "Invalid join request format")
		return
	}

	if err := h.requestUC.CanJoin(ctx, req.RequestID, actor(conn)); err != nil {
		h.sendFailure(ctx, conn, "join_request", err)
		return
	}

	room := websocket.RequestRoom(req.RequestID)
	if err := h.rooms.JoinRoom(conn.ID(), room); err != nil {
		h.sendFailure(ctx, conn, "join_request", err)
		return
	}
	websocket.SendEvent(conn, constants.EventJoined, JoinedEvent{RequestID: req.RequestID.String(), Room: room})
}

func (h *MessageHandler) handleLeave(conn websocket.Conn, data json.RawMessage) {
	var req models.RoomRequest
	if err := json.Unmarshal(data, &req); err != nil {
		websocket.SendError(conn, constants.ErrorInvalidFormat, "Invalid leave request format")
		return
	}
	h.rooms.LeaveRoom(conn.ID(), websocket.RequestRoom(req.RequestID))
}

func (h *MessageHandler) handleTrack(ctx context.Context, conn websocket.Conn, data json.RawMessage) {
	if conn.Role() != models.RoleProvider {
		websocket.SendError(conn, constants.ErrorForbidden, "Only providers share their location")
		return
	}
	if limiter, ok := conn.(websocket.LocationLimiter); ok && !limiter.AllowLocation() {
		websocket.SendError(conn, constants.ErrorRateLimitExceeded, "Location updates are sent too often")
		return
	}

	var sample models.TrackProviderRequest
	if err := json.Unmarshal(data, &sample); err != nil {
		websocket.SendError(conn, constants.ErrorInvalidFormat, "Invalid location format")
		return
	}

	if _, err := h.requestUC.TrackProvider(ctx, conn.UserID(), sample); err != nil {
		var validation *apperrors.ValidationError
		if errors.As(err, &validation) {
			websocket.SendError(conn, constants.ErrorInvalidLocation, validation.Error())
			return
		}
		h.sendFailure(ctx, conn, "track_provider", err)
	}
}

func (h *MessageHandler) handleSendMessage(ctx context.Context, conn websocket.Conn, data json.RawMessage) {
	var req models.SendMessageRequest
	if err := json.Unmarshal(data, &req); err != nil {
		websocket.SendError(conn, constants.ErrorInvalidFormat, "Invalid message format")
		return
	}
	if _, err := h.requestUC.SendMessage(ctx, actor(conn), req); err != nil {
		h.sendFailure(ctx, conn, "send_message", err)
	}
}

func (h *MessageHandler) handleReconcile(ctx context.Context, conn websocket.Conn, data json.RawMessage) {
	var req models.RoomRequest
	if err := json.Unmarshal(data, &req); err != nil {
		websocket.SendError(conn, constants.ErrorInvalidFormat, "Invalid reconcile format")
		return
	}

	view, err := h.requestUC.Reconcile(ctx, req.RequestID, conn.UserID())
	if err != nil {
		h.sendFailure(ctx, conn, "reconcile", err)
		return
	}
	websocket.SendEvent(conn, constants.EventRequestState, view)
}

// sendFailure answers with the error code matching err. Unexpected errors
// are logged and hidden from the client.
func (h *MessageHandler) sendFailure(ctx context.Context, conn websocket.Conn, event string, err error) {
	var (
		validation *apperrors.ValidationError
		notFound   *apperrors.NotFoundError
		transition *apperrors.InvalidTransitionError
	)
	switch {
	case errors.As(err, &validation):
		websocket.SendError(conn, constants.ErrorValidationFailed, err.Error())
	case errors.As(err, &notFound):
		websocket.SendError(conn, constants.ErrorRequestNotFound, err.Error())
	case errors.As(err, &transition):
		websocket.SendError(conn, constants.ErrorForbidden, err.Error())
	default:
		logger.ErrorCtx(ctx, "WebSocket event failed",
			logger.String("event", event),
			logger.String("conn_id", conn.ID()),
			logger.String("user_id", conn.UserID().String()),
			logger.Err(err))
		websocket.SendError(conn, constants.ErrorInternalError, "Something went wrong, please try again")
	}
}
