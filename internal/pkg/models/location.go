package models

import (
	"time"

	"github.com/google/uuid"
)

// Location represents a geographical location with latitude and longitude
type Location struct {
	Latitude  float64   `json:"latitude" db:"latitude"`
	Longitude float64   `json:"longitude" db:"longitude"`
	Address   string    `json:"address,omitempty" db:"address"`
	Timestamp time.Time `json:"timestamp,omitempty" db:"timestamp"`
}

// Valid reports whether the coordinates are on the globe. The (0,0) point is
// rejected since it only ever shows up as an unset location.
func (l Location) Valid() bool {
	if l.Latitude < -90 || l.Latitude > 90 || l.Longitude < -180 || l.Longitude > 180 {
		return false
	}
	return l.Latitude != 0 || l.Longitude != 0
}

// LocationUpdate is a provider position streamed to a request room.
// Seq and ServerTS are stamped by the server on receipt; ClientTS is the
// sender's clock in unix milliseconds.
type LocationUpdate struct {
	RequestID  uuid.UUID `json:"request_id"`
	ProviderID uuid.UUID `json:"provider_id"`
	Latitude   float64   `json:"lat"`
	Longitude  float64   `json:"lng"`
	Heading    float64   `json:"heading"`
	Speed      float64   `json:"speed"`
	ClientTS   int64     `json:"ts"`
	ServerTS   time.Time `json:"server_ts"`
	Seq        int64     `json:"seq"`
}
