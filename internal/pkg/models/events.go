package models

import (
	"time"

	"github.com/google/uuid"
)

// StatusChangedEvent is sent to the request room after every transition
type StatusChangedEvent struct {
	RequestID     uuid.UUID     `json:"request_id"`
	Status        RequestStatus `json:"status"`
	OTPVerified   bool          `json:"otp_verified"`
	BillSent      bool          `json:"bill_sent"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	Version       int64         `json:"version"`
}

// NewStatusChangedEvent derives the event from a request
func NewStatusChangedEvent(r *ServiceRequest) StatusChangedEvent {
	return StatusChangedEvent{
		RequestID:     r.ID,
		Status:        r.Status(),
		OTPVerified:   r.OTPVerified(),
		BillSent:      r.BillSent(),
		PaymentStatus: r.PaymentStatus(),
		Version:       r.Version,
	}
}

// RequestAcceptedEvent tells the customer who is coming and which code to show
type RequestAcceptedEvent struct {
	RequestID    uuid.UUID       `json:"request_id"`
	ProviderID   uuid.UUID       `json:"provider_id"`
	ProviderName string          `json:"provider_name,omitempty"`
	SecurityCode string          `json:"security_code"`
	Assigned     *AssignedPerson `json:"assigned_person,omitempty"`
}

// RequestCancelledEvent is sent to the request room on cancellation
type RequestCancelledEvent struct {
	RequestID   uuid.UUID `json:"request_id"`
	Reason      string    `json:"reason"`
	CancelledBy Role      `json:"cancelled_by"`
}

// OTPVerifiedEvent is sent to the request room once the code matches
type OTPVerifiedEvent struct {
	RequestID  uuid.UUID `json:"request_id"`
	VerifiedBy Role      `json:"verified_by"`
}

// BillReceivedEvent carries the bill to the request room
type BillReceivedEvent struct {
	RequestID uuid.UUID `json:"request_id"`
	Bill      Bill      `json:"bill"`
	Pricing   Pricing   `json:"pricing"`
}

// PaymentConfirmedEvent prompts the provider for feedback
type PaymentConfirmedEvent struct {
	RequestID  uuid.UUID `json:"request_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Amount     float64   `json:"amount"`
	PaymentID  string    `json:"payment_id"`
}

// ChatMessage is relayed between the participants of a request
type ChatMessage struct {
	RequestID  uuid.UUID `json:"request_id"`
	SenderID   uuid.UUID `json:"sender_id"`
	SenderRole Role      `json:"sender_role"`
	Text       string    `json:"text"`
	SentAt     time.Time `json:"sent_at"`
}

// Announcement is broadcast to connected users of an audience
type Announcement struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Audience  string    `json:"audience"` // all | customer | provider
	CreatedAt time.Time `json:"created_at"`
}

// RequestEvent is published on NATS for downstream consumers
type RequestEvent struct {
	RequestID  uuid.UUID       `json:"request_id"`
	CustomerID uuid.UUID       `json:"customer_id"`
	ProviderID *uuid.UUID      `json:"provider_id,omitempty"`
	Category   ServiceCategory `json:"category"`
	Status     RequestStatus   `json:"status"`
	Amount     float64         `json:"amount,omitempty"`
	Reason     string          `json:"reason,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// ReconcileView is the authoritative snapshot a client re-derives its UI from
type ReconcileView struct {
	Request      RequestView     `json:"request"`
	LastLocation *LocationUpdate `json:"last_location,omitempty"`
}

// RequestExpiryPayload is the body of a scheduled request expiry task
type RequestExpiryPayload struct {
	RequestID uuid.UUID `json:"request_id"`
}
