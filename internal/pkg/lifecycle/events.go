package lifecycle

import (
	"github.com/google/uuid"
	"github.com/piresc/roadassist/internal/pkg/models"
)

// Actor is whoever triggers an event
type Actor struct {
	ID   uuid.UUID
	Role models.Role
}

// System is the actor used for timeouts and gateway driven transitions
var System = Actor{Role: models.RoleSystem}

// Event is an input to the state machine
type Event interface {
	Name() string
}

// ProviderAccepts assigns a provider to a pending request.
// SecurityCode is filled by the Machine when left empty.
type ProviderAccepts struct {
	Provider     uuid.UUID
	SecurityCode string
}

// ProviderMarksArrived records the provider on site
type ProviderMarksArrived struct {
	Provider uuid.UUID
}

// VerifyOTP submits the code the customer shows to the provider
type VerifyOTP struct {
	By   Actor
	Code string
}

// SendBill raises the bill once the code is verified
type SendBill struct {
	Provider uuid.UUID
	Input    models.BillInput
}

// PaymentConfirmed applies a gateway verified payment result
type PaymentConfirmed struct {
	Success   bool
	PaymentID string
}

// Cancel ends a request before completion
type Cancel struct {
	By     Actor
	Reason string
}

func (ProviderAccepts) Name() string      { return "accept" }
func (ProviderMarksArrived) Name() string { return "mark arrived" }
func (VerifyOTP) Name() string            { return "verify the code of" }
func (SendBill) Name() string             { return "bill" }
func (PaymentConfirmed) Name() string     { return "confirm payment for" }
func (Cancel) Name() string               { return "cancel" }
