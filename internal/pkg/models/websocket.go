package models

import (
	"encoding/json"

	"github.com/google/uuid"
)

// WSMessage represents a WebSocket message structure
type WSMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// WSErrorMessage represents an error message sent over WebSocket
type WSErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RoomRequest is the payload of join_request, leave_request and reconcile
type RoomRequest struct {
	RequestID uuid.UUID `json:"request_id"`
}

// TrackProviderRequest is a location sample sent by the provider
type TrackProviderRequest struct {
	RequestID uuid.UUID `json:"request_id"`
	Latitude  float64   `json:"lat"`
	Longitude float64   `json:"lng"`
	Heading   float64   `json:"heading"`
	Speed     float64   `json:"speed"`
	Timestamp int64     `json:"ts"`
}

// SendMessageRequest is a chat line sent to the request room
type SendMessageRequest struct {
	RequestID uuid.UUID `json:"request_id"`
	Text      string    `json:"text"`
}
