package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ServiceCategory classifies what kind of help a request needs
type ServiceCategory string

const (
	CategoryMechanic     ServiceCategory = "mechanic"
	CategoryFuelDelivery ServiceCategory = "fuel_delivery"
	CategoryEVSupport    ServiceCategory = "ev_support"
)

// Valid reports whether c is a known category
func (c ServiceCategory) Valid() bool {
	switch c {
	case CategoryMechanic, CategoryFuelDelivery, CategoryEVSupport:
		return true
	}
	return false
}

// RequestStatus is the coarse status shown to clients
type RequestStatus string

const (
	StatusPending    RequestStatus = "pending"
	StatusAccepted   RequestStatus = "accepted"
	StatusArrived    RequestStatus = "arrived"
	StatusInProgress RequestStatus = "in_progress"
	StatusCompleted  RequestStatus = "completed"
	StatusCancelled  RequestStatus = "cancelled"
)

// ActiveStatuses are the statuses that occupy a customer or provider
var ActiveStatuses = []RequestStatus{StatusAccepted, StatusArrived, StatusInProgress}

// IsActive reports whether s blocks the participants from another job
func (s RequestStatus) IsActive() bool {
	return s == StatusAccepted || s == StatusArrived || s == StatusInProgress
}

// IsTerminal reports whether no further transition can leave s
func (s RequestStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// PaymentStatus tracks the payment attempt of a billed request
type PaymentStatus string

const (
	PaymentNone    PaymentStatus = "none"
	PaymentPending PaymentStatus = "pending"
	PaymentSuccess PaymentStatus = "success"
	PaymentFailed  PaymentStatus = "failed"
)

// Role identifies who performs an action
type Role string

const (
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
	RoleSystem   Role = "system"
)

// FuelDetails are present only on fuel delivery requests
type FuelDetails struct {
	FuelType     string  `json:"fuel_type"`
	Quantity     float64 `json:"quantity"`
	RatePerLitre float64 `json:"rate_per_litre"`
}

// Pricing is the price snapshot captured at creation and amended by billing
type Pricing struct {
	BaseFee      float64 `json:"base_fee"`
	DistanceFee  float64 `json:"distance_fee"`
	MaterialCost float64 `json:"material_cost"`
	TotalAmount  float64 `json:"total_amount"`
	DistanceKm   float64 `json:"distance_km"`
}

// Recompute sets TotalAmount from its parts
func (p *Pricing) Recompute() {
	p.TotalAmount = p.BaseFee + p.DistanceFee + p.MaterialCost
}

// AssignedPerson is a technician dispatched on behalf of the provider account
type AssignedPerson struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// ServiceRequest is a customer ask for roadside help tracked end to end.
// The lifecycle lives in State; flags such as OTPVerified are derived from it.
type ServiceRequest struct {
	ID               uuid.UUID
	CustomerID       uuid.UUID
	TargetProviderID *uuid.UUID
	Category         ServiceCategory
	Services         []string
	Fuel             *FuelDetails
	Origin           Location
	Address          string
	Pricing          Pricing
	AssignedPerson   *AssignedPerson
	ProblemPhotoURL  string
	State            RequestState
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Version          int64
}

// Status returns the coarse status of the current state
func (r *ServiceRequest) Status() RequestStatus {
	if r.State == nil {
		return StatusPending
	}
	return r.State.Status()
}

// ProviderID returns the provider attached to the request, if any
func (r *ServiceRequest) ProviderID() *uuid.UUID {
	switch s := r.State.(type) {
	case StateAccepted:
		return &s.ProviderID
	case StateArrived:
		return &s.ProviderID
	case StateVerified:
		return &s.ProviderID
	case StateBilled:
		return &s.ProviderID
	case StateInProgress:
		return &s.ProviderID
	case StateCompleted:
		return &s.ProviderID
	case StateCancelled:
		return s.ProviderID
	}
	return nil
}

// SecurityCode returns the unverified code, or "" once verified or before acceptance
func (r *ServiceRequest) SecurityCode() string {
	switch s := r.State.(type) {
	case StateAccepted:
		return s.SecurityCode
	case StateArrived:
		return s.SecurityCode
	}
	return ""
}

func (r *ServiceRequest) OTPVerified() bool {
	switch s := r.State.(type) {
	case StateVerified, StateBilled, StateInProgress, StateCompleted:
		return true
	case StateCancelled:
		return s.OTPVerified
	}
	return false
}

func (r *ServiceRequest) BillSent() bool {
	switch r.State.(type) {
	case StateBilled, StateCompleted:
		return true
	}
	return false
}

func (r *ServiceRequest) PaymentStatus() PaymentStatus {
	switch s := r.State.(type) {
	case StateBilled:
		return s.PaymentStatus
	case StateCompleted:
		return PaymentSuccess
	}
	return PaymentNone
}

// Bill returns the bill sent for the request, if any
func (r *ServiceRequest) Bill() *Bill {
	switch s := r.State.(type) {
	case StateBilled:
		return &s.Bill
	case StateCompleted:
		return &s.Bill
	}
	return nil
}

// IsParticipant reports whether userID is the customer or the attached provider
func (r *ServiceRequest) IsParticipant(userID uuid.UUID) bool {
	if r.CustomerID == userID {
		return true
	}
	p := r.ProviderID()
	return p != nil && *p == userID
}

// RequestView is the client facing projection of a request
type RequestView struct {
	ID               uuid.UUID       `json:"id"`
	CustomerID       uuid.UUID       `json:"customer_id"`
	ProviderID       *uuid.UUID      `json:"provider_id,omitempty"`
	TargetProviderID *uuid.UUID      `json:"target_provider_id,omitempty"`
	Category         ServiceCategory `json:"category"`
	Services         []string        `json:"services"`
	Fuel             *FuelDetails    `json:"fuel,omitempty"`
	Origin           Location        `json:"origin"`
	Address          string          `json:"address"`
	Pricing          Pricing         `json:"pricing"`
	Bill             *Bill           `json:"bill,omitempty"`
	Status           RequestStatus   `json:"status"`
	SecurityCode     string          `json:"security_code,omitempty"`
	OTPVerified      bool            `json:"otp_verified"`
	BillSent         bool            `json:"bill_sent"`
	PaymentStatus    PaymentStatus   `json:"payment_status"`
	PaymentID        string          `json:"payment_id,omitempty"`
	AssignedPerson   *AssignedPerson `json:"assigned_person,omitempty"`
	ProblemPhotoURL  string          `json:"problem_photo_url,omitempty"`
	CancelReason     string          `json:"cancellation_reason,omitempty"`
	CancelledBy      Role            `json:"cancelled_by,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	AcceptedAt       *time.Time      `json:"accepted_at,omitempty"`
	ArrivedAt        *time.Time      `json:"arrived_at,omitempty"`
	CompletedAt      *time.Time      `json:"completed_at,omitempty"`
	CancelledAt      *time.Time      `json:"cancelled_at,omitempty"`
	Version          int64           `json:"version"`
}

// View projects the request for viewer. The security code is only ever
// shown to the customer, who reads it out to the provider on site.
func (r *ServiceRequest) View(viewer uuid.UUID) RequestView {
	d := r.ToDTO()
	v := RequestView{
		ID:               r.ID,
		CustomerID:       r.CustomerID,
		ProviderID:       r.ProviderID(),
		TargetProviderID: r.TargetProviderID,
		Category:         r.Category,
		Services:         r.Services,
		Fuel:             r.Fuel,
		Origin:           r.Origin,
		Address:          r.Address,
		Pricing:          r.Pricing,
		Bill:             r.Bill(),
		Status:           r.Status(),
		OTPVerified:      r.OTPVerified(),
		BillSent:         r.BillSent(),
		PaymentStatus:    r.PaymentStatus(),
		AssignedPerson:   r.AssignedPerson,
		ProblemPhotoURL:  r.ProblemPhotoURL,
		CreatedAt:        r.CreatedAt,
		AcceptedAt:       d.AcceptedAt,
		ArrivedAt:        d.ArrivedAt,
		CompletedAt:      d.CompletedAt,
		CancelledAt:      d.CancelledAt,
		Version:          r.Version,
	}
	if d.PaymentID != nil {
		v.PaymentID = *d.PaymentID
	}
	if d.CancellationReason != nil {
		v.CancelReason = *d.CancellationReason
	}
	if d.CancelledBy != nil {
		v.CancelledBy = Role(*d.CancelledBy)
	}
	if viewer == r.CustomerID {
		v.SecurityCode = r.SecurityCode()
	}
	return v
}

// MarshalJSON renders the request without the security code
func (r ServiceRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.View(uuid.Nil))
}
