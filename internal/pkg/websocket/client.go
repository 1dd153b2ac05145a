package websocket

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/piresc/roadassist/internal/pkg/logger"
	"github.com/piresc/roadassist/internal/pkg/models"
	"golang.org/x/time/rate"
)

// DefaultPingInterval applies when no ping interval is configured
const DefaultPingInterval = 30 * time.Second

// LocationLimiter is implemented by connections that throttle location samples
type LocationLimiter interface {
	AllowLocation() bool
}

// Client is a gorilla websocket connection with a bounded outbound queue
// drained by a single writer, so messages reach the peer in emit order.
type Client struct {
	id     string
	userID uuid.UUID
	role   models.Role

	ws           *websocket.Conn
	send         chan []byte
	done         chan struct{}
	closeOnce    sync.Once
	limiter      *rate.Limiter
	writeTimeout time.Duration
	pingInterval time.Duration
}

func newClient(ws *websocket.Conn, userID uuid.UUID, role models.Role, cfg models.WebSocketConfig) *Client {
	buffer := cfg.SendBuffer
	if buffer <= 0 {
		buffer = 64
	}
	limit := rate.Inf
	if cfg.LocationPerSecond > 0 {
		limit = rate.Limit(cfg.LocationPerSecond)
	}
	burst := cfg.LocationBurst
	if burst <= 0 {
		burst = 1
	}
	return &Client{
		id:           uuid.NewString(),
		userID:       userID,
		role:         role,
		ws:           ws,
		send:         make(chan []byte, buffer),
		done:         make(chan struct{}),
		limiter:      rate.NewLimiter(limit, burst),
		writeTimeout: orDefault(cfg.WriteTimeout, 10*time.Second),
		pingInterval: orDefault(cfg.PingInterval, DefaultPingInterval),
	}
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}

func (c *Client) ID() string          { return c.id }
func (c *Client) UserID() uuid.UUID   { return c.userID }
func (c *Client) Role() models.Role   { return c.role }
func (c *Client) AllowLocation() bool { return c.limiter.Allow() }

// Send queues msg. A client whose queue is full is too slow to keep up and
// is disconnected rather than allowed to stall the emitter.
func (c *Client) Send(msg []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- msg:
		return true
	default:
		logger.Warn("WebSocket send buffer full, closing connection",
			logger.String("conn_id", c.id),
			logger.String("user_id", c.userID.String()))
		c.Close()
		return false
	}
}

// Close stops the writer, which closes the socket
func (c *Client) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

func (c *Client) writePump() {
	ticker := time.NewTicker(c.pingInterval)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case msg := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(c.writeTimeout))
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Debug("WebSocket write failed", logger.String("conn_id", c.id), logger.Err(err))
				c.Close()
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(c.writeTimeout))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.Close()
				return
			}
		case <-c.done:
			c.ws.SetWriteDeadline(time.Now().Add(c.writeTimeout))
			_ = c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
