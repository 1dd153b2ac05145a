package handler

import (
	"github.com/piresc/roadassist/internal/pkg/database"
	"github.com/piresc/roadassist/internal/pkg/models"
	"github.com/piresc/roadassist/services/requests"
	httpHandler "github.com/piresc/roadassist/services/requests/handler/http"
	"github.com/piresc/roadassist/services/requests/handler/tasks"
	wsHandler "github.com/piresc/roadassist/services/requests/handler/ws"
)

// Handler combines all handlers for the requests service
type Handler struct {
	requestHTTP *httpHandler.RequestHandler
	requestWS   *wsHandler.MessageHandler
	announce    *httpHandler.AnnouncementHandler
	expiry      *tasks.ExpiryHandler
	cfg         *models.Config
	redisClient *database.RedisClient
}

// NewHandler creates a new combined handler
func NewHandler(requestUC requests.RequestUC, rooms wsHandler.RoomJoiner, broadcaster httpHandler.Broadcaster, cfg *models.Config, redisClient *database.RedisClient) *Handler {
	return &Handler{
		requestHTTP: httpHandler.NewRequestHandler(requestUC),
		requestWS:   wsHandler.NewMessageHandler(requestUC, rooms),
		announce:    httpHandler.NewAnnouncementHandler(broadcaster),
		expiry:      tasks.NewExpiryHandler(requestUC),
		cfg:         cfg,
		redisClient: redisClient,
	}
}

// MessageHandler returns the websocket event handler
func (h *Handler) MessageHandler() *wsHandler.MessageHandler {
	return h.requestWS
}

// ExpiryHandler returns the asynq handler for pending request expiry
func (h *Handler) ExpiryHandler() *tasks.ExpiryHandler {
	return h.expiry
}
