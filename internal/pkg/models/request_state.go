package models

import (
	"time"

	"github.com/google/uuid"
)

// RequestState is the lifecycle position of a request. Each implementation
// carries only the fields that are meaningful in that position.
type RequestState interface {
	Status() RequestStatus
	requestState()
}

// StatePending waits for a provider to accept
type StatePending struct{}

// StateAccepted has a provider on the way and an unverified security code
type StateAccepted struct {
	ProviderID   uuid.UUID
	SecurityCode string
	AcceptedAt   time.Time
}

// StateArrived has the provider on site, code not yet confirmed
type StateArrived struct {
	ProviderID   uuid.UUID
	SecurityCode string
	AcceptedAt   time.Time
	ArrivedAt    time.Time
}

// StateVerified is Arrived with the security code confirmed
type StateVerified struct {
	ProviderID uuid.UUID
	AcceptedAt time.Time
	ArrivedAt  time.Time
	VerifiedAt time.Time
}

// StateBilled is Verified with a bill awaiting payment
type StateBilled struct {
	ProviderID    uuid.UUID
	AcceptedAt    time.Time
	ArrivedAt     time.Time
	VerifiedAt    time.Time
	BilledAt      time.Time
	Bill          Bill
	PaymentStatus PaymentStatus // pending or failed
}

// StateInProgress is a recognised persisted status that no transition produces
type StateInProgress struct {
	ProviderID uuid.UUID
	AcceptedAt time.Time
	ArrivedAt  time.Time
}

// StateCompleted is paid and frozen
type StateCompleted struct {
	ProviderID  uuid.UUID
	AcceptedAt  time.Time
	ArrivedAt   time.Time
	VerifiedAt  time.Time
	BilledAt    time.Time
	Bill        Bill
	PaymentID   string
	CompletedAt time.Time
}

// StateCancelled ended before completion
type StateCancelled struct {
	ProviderID  *uuid.UUID
	Reason      string
	CancelledBy Role
	CancelledAt time.Time
	AcceptedAt  *time.Time
	ArrivedAt   *time.Time
	OTPVerified bool
}

func (StatePending) Status() RequestStatus    { return StatusPending }
func (StateAccepted) Status() RequestStatus   { return StatusAccepted }
func (StateArrived) Status() RequestStatus    { return StatusArrived }
func (StateVerified) Status() RequestStatus   { return StatusArrived }
func (StateBilled) Status() RequestStatus     { return StatusArrived }
func (StateInProgress) Status() RequestStatus { return StatusInProgress }
func (StateCompleted) Status() RequestStatus  { return StatusCompleted }
func (StateCancelled) Status() RequestStatus  { return StatusCancelled }

func (StatePending) requestState()    {}
func (StateAccepted) requestState()   {}
func (StateArrived) requestState()    {}
func (StateVerified) requestState()   {}
func (StateBilled) requestState()     {}
func (StateInProgress) requestState() {}
func (StateCompleted) requestState()  {}
func (StateCancelled) requestState()  {}

// BillItem is a single material or part charged on top of the fees
type BillItem struct {
	Name string  `json:"name"`
	Cost float64 `json:"cost"`
}

// Bill is what the provider charges once on site
type Bill struct {
	Items        []BillItem `json:"items,omitempty"`
	FuelQuantity float64    `json:"fuel_quantity,omitempty"`
	MaterialCost float64    `json:"material_cost"`
}
