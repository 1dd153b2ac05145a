package models

import "github.com/google/uuid"

// CreateRequestInput is what a customer submits when asking for help.
// ProviderID targets one provider; without it the request is offered to
// every matching provider nearby.
type CreateRequestInput struct {
	ProviderID *uuid.UUID      `json:"provider_id,omitempty"`
	Category   ServiceCategory `json:"category"`
	Services   []string        `json:"services"`
	Fuel       *FuelDetails    `json:"fuel,omitempty"`
	Origin     Location        `json:"origin"`
	Address    string          `json:"address"`
}

// SearchQuery returns the matcher query for the input
func (in CreateRequestInput) SearchQuery() SearchQuery {
	return SearchQuery{Origin: in.Origin, Category: in.Category, Services: in.Services}
}

// CreateRequestResult is returned to the customer after creation
type CreateRequestResult struct {
	RequestID  uuid.UUID           `json:"request_id"`
	Request    RequestView         `json:"request"`
	Candidates []ProviderCandidate `json:"candidates"`
}

// RequestPatch changes the fields of a request that are not part of its
// lifecycle. Nil fields are left untouched.
type RequestPatch struct {
	Address         *string         `json:"address,omitempty"`
	AssignedPerson  *AssignedPerson `json:"assigned_person,omitempty"`
	ProblemPhotoURL *string         `json:"-"`
}

// Empty reports whether the patch changes nothing
func (p RequestPatch) Empty() bool {
	return p.Address == nil && p.AssignedPerson == nil && p.ProblemPhotoURL == nil
}

// CancelRequest carries the mandatory cancellation reason
type CancelRequest struct {
	Reason string `json:"reason"`
}

// VerifyOTPRequest carries the code read out by the customer
type VerifyOTPRequest struct {
	Code string `json:"code"`
}

// VerifyOTPResult answers a code submission
type VerifyOTPResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewRequestOffer is sent to providers who may accept a pending request
type NewRequestOffer struct {
	Request  RequestView        `json:"request"`
	Estimate *ProviderCandidate `json:"estimate,omitempty"`
}
