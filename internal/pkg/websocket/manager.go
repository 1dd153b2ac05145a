package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/piresc/roadassist/internal/pkg/constants"
	"github.com/piresc/roadassist/internal/pkg/jwt"
	"github.com/piresc/roadassist/internal/pkg/logger"
	"github.com/piresc/roadassist/internal/pkg/models"
)

const maxMessageSize = 16 * 1024

// MessageHandler reacts to client events read from a connection
type MessageHandler interface {
	HandleMessage(ctx context.Context, conn Conn, msg models.WSMessage)
}

// Manager authenticates and upgrades connections, registers them with the
// router and feeds their messages to the handler
type Manager struct {
	router   *Router
	jwtCfg   models.JWTConfig
	cfg      models.WebSocketConfig
	upgrader websocket.Upgrader
	handler  MessageHandler
}

// NewManager creates a new WebSocket manager
func NewManager(router *Router, jwtConfig models.JWTConfig, cfg models.WebSocketConfig) *Manager {
	return &Manager{
		router: router,
		jwtCfg: jwtConfig,
		cfg:    cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// SetHandler sets the client event handler. It must be called before serving.
func (m *Manager) SetHandler(h MessageHandler) {
	m.handler = h
}

// Router returns the router connections are registered with
func (m *Manager) Router() *Router {
	return m.router
}

// HandleConnection authenticates the caller, upgrades the connection and
// serves it until the peer goes away
func (m *Manager) HandleConnection(c echo.Context) error {
	claims, err := m.authenticate(c)
	if err != nil {
		return err
	}

	ws, err := m.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Warn("WebSocket upgrade failed", logger.Err(err))
		return nil
	}

	client := newClient(ws, claims.UserID, claims.Role, m.cfg)
	m.router.Register(client)
	if err := m.router.JoinRoom(client.ID(), UserRoom(client.UserID())); err != nil {
		logger.Error("Failed to join personal room", logger.String("conn_id", client.ID()), logger.Err(err))
	}
	m.router.markOnline(c.Request().Context(), client)
	logger.Info("WebSocket client connected",
		logger.String("conn_id", client.ID()),
		logger.String("user_id", client.UserID().String()),
		logger.String("role", string(client.Role())))

	go client.writePump()
	m.readPump(client)
	return nil
}

func (m *Manager) authenticate(c echo.Context) (*jwt.Claims, error) {
	token := c.QueryParam("token")
	if auth := c.Request().Header.Get("Authorization"); auth != "" {
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
		}
		token = parts[1]
	}
	if token == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Authorization token is required")
	}

	claims, err := jwt.ValidateToken(token, m.jwtCfg.Secret)
	if err != nil {
		logger.Warn("Token validation failed", logger.Err(err))
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}
	return claims, nil
}

func (m *Manager) readPump(client *Client) {
	ctx, cancel := context.WithCancel(context.Background())
	defer func() {
		cancel()
		m.router.Unregister(client.ID())
		m.router.markOffline(context.Background(), client)
		client.Close()
		logger.Info("WebSocket client disconnected",
			logger.String("conn_id", client.ID()),
			logger.String("user_id", client.UserID().String()))
	}()

	pongWait := 2 * client.pingInterval
	client.ws.SetReadLimit(maxMessageSize)
	client.ws.SetReadDeadline(time.Now().Add(pongWait))
	client.ws.SetPongHandler(func(string) error {
		m.router.markOnline(ctx, client)
		return client.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := client.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("Error receiving websocket message",
					logger.String("conn_id", client.ID()),
					logger.Err(err))
			}
			return
		}
		client.ws.SetReadDeadline(time.Now().Add(pongWait))

		var msg models.WSMessage
		if err := json.Unmarshal(data, &msg); err != nil || msg.Event == "" {
			SendError(client, constants.ErrorInvalidFormat, "Invalid message format")
			continue
		}
		if m.handler == nil {
			SendError(client, constants.ErrorUnknownEvent, "No handler for "+msg.Event)
			continue
		}
		m.handler.HandleMessage(ctx, client, msg)
	}
}

// SendError sends an error event to a single connection
func SendError(conn Conn, code, message string) {
	msg, err := Encode(constants.EventError, models.WSErrorMessage{Code: code, Message: message})
	if err != nil {
		return
	}
	conn.Send(msg)
}

// SendEvent sends an event to a single connection
func SendEvent(conn Conn, event string, payload interface{}) bool {
	msg, err := Encode(event, payload)
	if err != nil {
		logger.Error("Dropping event", logger.String("event", event), logger.Err(err))
		return false
	}
	return conn.Send(msg)
}
