package http

import (
	"net/http"
	"testing"

	"github.com/piresc/roadassist/internal/pkg/constants"
	"github.com/piresc/roadassist/internal/pkg/models"
	"github.com/piresc/roadassist/internal/pkg/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBroadcaster struct {
	event   string
	payload interface{}
	filter  websocket.Filter
	calls   int
}

func (f *fakeBroadcaster) Broadcast(event string, payload interface{}, filter websocket.Filter) int {
	f.calls++
	f.event, f.payload, f.filter = event, payload, filter
	return 3
}

func TestAnnounce(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		filter websocket.Filter
		calls  int
	}{
		{"everyone", `{"title":"Monsoon alert","body":"Expect delays"}`, http.StatusAccepted, websocket.Filter{}, 1},
		{"providers only", `{"title":"Payout day","audience":"provider"}`, http.StatusAccepted, websocket.Filter{Role: models.RoleProvider}, 1},
		{"missing title", `{"body":"x"}`, http.StatusBadRequest, websocket.Filter{}, 0},
		{"unknown audience", `{"title":"x","audience":"admins"}`, http.StatusBadRequest, websocket.Filter{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &fakeBroadcaster{}
			c, rec := newContext(http.MethodPost, tt.body)

			require.NoError(t, NewAnnouncementHandler(b).Announce(c))

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.calls, b.calls)
			if tt.calls == 0 {
				return
			}
			assert.Equal(t, constants.EventNewAnnouncement, b.event)
			assert.Equal(t, tt.filter, b.filter)
			assert.Contains(t, rec.Body.String(), `"delivered":3`)
		})
	}
}
