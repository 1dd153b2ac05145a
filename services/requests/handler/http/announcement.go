package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/piresc/roadassist/internal/pkg/constants"
	"github.com/piresc/roadassist/internal/pkg/logger"
	"github.com/piresc/roadassist/internal/pkg/middleware"
	"github.com/piresc/roadassist/internal/pkg/models"
	"github.com/piresc/roadassist/internal/pkg/websocket"
	"github.com/piresc/roadassist/internal/utils"
)

// Broadcaster sends an event to every matching connection across nodes
type Broadcaster interface {
	Broadcast(event string, payload interface{}, filter websocket.Filter) int
}

// AnnouncementHandler relays operator announcements to connected users
type AnnouncementHandler struct {
	broadcaster Broadcaster
}

// NewAnnouncementHandler creates a new announcement handler
func NewAnnouncementHandler(broadcaster Broadcaster) *AnnouncementHandler {
	return &AnnouncementHandler{broadcaster: broadcaster}
}

// Announce broadcasts new_announcement to the chosen audience
func (h *AnnouncementHandler) Announce(c echo.Context) error {
	middleware.SetTransactionName(c.Request().Context(), "Requests.Announce")

	var a models.Announcement
	if err := c.Bind(&a); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}
	if strings.TrimSpace(a.Title) == "" {
		return utils.BadRequestResponse(c, "title is required")
	}

	var filter websocket.Filter
	switch a.Audience {
	case "", "all":
		a.Audience = "all"
	case string(models.RoleCustomer), string(models.RoleProvider):
		filter.Role = models.Role(a.Audience)
	default:
		return utils.BadRequestResponse(c, "audience must be all, customer or provider")
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = time.Now().UTC()

	delivered := h.broadcaster.Broadcast(constants.EventNewAnnouncement, a, filter)
	logger.InfoCtx(c.Request().Context(), "Announcement broadcast",
		logger.String("announcement_id", a.ID.String()),
		logger.String("audience", a.Audience),
		logger.Int("delivered", delivered))

	return utils.SuccessResponse(c, http.StatusAccepted, "Announcement sent", map[string]interface{}{
		"announcement": a,
		"delivered":    delivered,
	})
}
