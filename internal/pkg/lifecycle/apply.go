// Package lifecycle enforces the transitions a service request may take.
package lifecycle

import (
	"crypto/subtle"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/roadassist/internal/pkg/apperrors"
	"github.com/piresc/roadassist/internal/pkg/models"
)

// Apply computes the request that results from ev. On error req is left
// untouched and no partial state is returned.
func Apply(req *models.ServiceRequest, ev Event, now time.Time) (*models.ServiceRequest, error) {
	next := *req
	if next.State == nil {
		next.State = models.StatePending{}
	}

	var err error
	switch e := ev.(type) {
	case ProviderAccepts:
		err = applyAccept(&next, e, now)
	case ProviderMarksArrived:
		err = applyArrive(&next, e, now)
	case VerifyOTP:
		err = applyVerify(&next, e, now)
	case SendBill:
		err = applyBill(&next, e, now)
	case PaymentConfirmed:
		err = applyPayment(&next, e, now)
	case Cancel:
		err = applyCancel(&next, e, now)
	default:
		err = apperrors.NewInvalidTransition(string(next.Status()), "apply", "unsupported event")
	}
	if err != nil {
		return nil, err
	}

	next.UpdatedAt = now
	return &next, nil
}

func invalid(r *models.ServiceRequest, ev Event, reason string) error {
	return apperrors.NewInvalidTransition(string(r.Status()), ev.Name(), reason)
}

func terminal(r *models.ServiceRequest, ev Event) error {
	return invalid(r, ev, "the request is already finished")
}

func applyAccept(r *models.ServiceRequest, e ProviderAccepts, now time.Time) error {
	if _, ok := r.State.(models.StatePending); !ok {
		if r.Status().IsTerminal() {
			return terminal(r, e)
		}
		return invalid(r, e, "another provider has already accepted it")
	}
	if e.Provider == uuid.Nil {
		return invalid(r, e, "missing provider")
	}
	if r.TargetProviderID != nil && *r.TargetProviderID != e.Provider {
		return invalid(r, e, "the request was sent to a different provider")
	}
	if e.SecurityCode == "" {
		return invalid(r, e, "missing security code")
	}
	r.State = models.StateAccepted{ProviderID: e.Provider, SecurityCode: e.SecurityCode, AcceptedAt: now}
	return nil
}

func applyArrive(r *models.ServiceRequest, e ProviderMarksArrived, now time.Time) error {
	s, ok := r.State.(models.StateAccepted)
	if !ok {
		if r.Status().IsTerminal() {
			return terminal(r, e)
		}
		return invalid(r, e, "only accepted requests can be marked arrived")
	}
	if s.ProviderID != e.Provider {
		return invalid(r, e, "only the assigned provider can mark arrival")
	}
	r.State = models.StateArrived{
		ProviderID:   s.ProviderID,
		SecurityCode: s.SecurityCode,
		AcceptedAt:   s.AcceptedAt,
		ArrivedAt:    now,
	}
	return nil
}

func applyVerify(r *models.ServiceRequest, e VerifyOTP, now time.Time) error {
	switch r.State.(type) {
	case models.StateArrived:
	case models.StateVerified, models.StateBilled, models.StateInProgress:
		return invalid(r, e, "the security code is already verified")
	case models.StateCompleted, models.StateCancelled:
		return terminal(r, e)
	default:
		return invalid(r, e, "the provider has not arrived yet")
	}
	s := r.State.(models.StateArrived)

	if !r.IsParticipant(e.By.ID) {
		return invalid(r, e, "only the customer or the assigned provider can submit the code")
	}
	if subtle.ConstantTimeCompare([]byte(strings.TrimSpace(e.Code)), []byte(s.SecurityCode)) != 1 {
		return &apperrors.OtpMismatchError{}
	}

	r.State = models.StateVerified{
		ProviderID: s.ProviderID,
		AcceptedAt: s.AcceptedAt,
		ArrivedAt:  s.ArrivedAt,
		VerifiedAt: now,
	}
	return nil
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeBill validates input against the request category and returns the bill
func ComputeBill(r *models.ServiceRequest, in models.BillInput) (models.Bill, error) {
	if r.Category == models.CategoryFuelDelivery {
		if len(in.Items) > 0 {
			return models.Bill{}, apperrors.NewInvalidBill("fuel delivery bills are computed from the delivered quantity, remove the items")
		}
		if in.FuelQuantity <= 0 || math.IsNaN(in.FuelQuantity) || math.IsInf(in.FuelQuantity, 0) {
			return models.Bill{}, apperrors.NewInvalidBill("fuel quantity must be greater than zero")
		}
		if r.Fuel == nil || r.Fuel.RatePerLitre <= 0 {
			return models.Bill{}, apperrors.NewInvalidBill("the request has no locked-in fuel rate")
		}
		return models.Bill{
			FuelQuantity: in.FuelQuantity,
			MaterialCost: roundMoney(in.FuelQuantity * r.Fuel.RatePerLitre),
		}, nil
	}

	if len(in.Items) == 0 {
		return models.Bill{}, apperrors.NewInvalidBill("add at least one item")
	}
	if in.FuelQuantity != 0 {
		return models.Bill{}, apperrors.NewInvalidBill("fuel quantity only applies to fuel delivery")
	}
	items := make([]models.BillItem, 0, len(in.Items))
	var total float64
	for i, it := range in.Items {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			return models.Bill{}, apperrors.NewInvalidBill("item " + strconv.Itoa(i+1) + " needs a name")
		}
		if it.Cost <= 0 || math.IsNaN(it.Cost) || math.IsInf(it.Cost, 0) {
			return models.Bill{}, apperrors.NewInvalidBill("item " + name + " must cost more than zero")
		}
		items = append(items, models.BillItem{Name: name, Cost: it.Cost})
		total += it.Cost
	}
	return models.Bill{Items: items, MaterialCost: roundMoney(total)}, nil
}

func applyBill(r *models.ServiceRequest, e SendBill, now time.Time) error {
	var (
		provider   uuid.UUID
		acceptedAt time.Time
		arrivedAt  time.Time
		verifiedAt time.Time
	)
	switch s := r.State.(type) {
	case models.StateVerified:
		provider, acceptedAt, arrivedAt, verifiedAt = s.ProviderID, s.AcceptedAt, s.ArrivedAt, s.VerifiedAt
	case models.StateBilled:
		if s.PaymentStatus != models.PaymentFailed {
			return apperrors.NewInvalidBill("a bill is already awaiting payment")
		}
		provider, acceptedAt, arrivedAt, verifiedAt = s.ProviderID, s.AcceptedAt, s.ArrivedAt, s.VerifiedAt
	case models.StatePending, models.StateAccepted, models.StateArrived:
		return apperrors.NewInvalidBill("the security code must be verified before billing")
	case models.StateCompleted, models.StateCancelled:
		return terminal(r, e)
	default:
		return invalid(r, e, "the request cannot be billed in its current status")
	}
	if provider != e.Provider {
		return invalid(r, e, "only the assigned provider can send the bill")
	}

	bill, err := ComputeBill(r, e.Input)
	if err != nil {
		return err
	}

	if bill.FuelQuantity > 0 {
		fuel := *r.Fuel
		fuel.Quantity = bill.FuelQuantity
		r.Fuel = &fuel
	}
	r.Pricing.MaterialCost = bill.MaterialCost
	r.Pricing.Recompute()
	r.Pricing.TotalAmount = roundMoney(r.Pricing.TotalAmount)

	r.State = models.StateBilled{
		ProviderID:    provider,
		AcceptedAt:    acceptedAt,
		ArrivedAt:     arrivedAt,
		VerifiedAt:    verifiedAt,
		BilledAt:      now,
		Bill:          bill,
		PaymentStatus: models.PaymentPending,
	}
	return nil
}

func applyPayment(r *models.ServiceRequest, e PaymentConfirmed, now time.Time) error {
	s, ok := r.State.(models.StateBilled)
	if !ok {
		if r.Status().IsTerminal() {
			return terminal(r, e)
		}
		return invalid(r, e, "no bill has been sent yet")
	}

	if !e.Success {
		s.PaymentStatus = models.PaymentFailed
		r.State = s
		return nil
	}
	if strings.TrimSpace(e.PaymentID) == "" {
		return apperrors.NewValidationError("payment_id", "a captured payment id is required")
	}

	r.Pricing.MaterialCost = s.Bill.MaterialCost
	r.Pricing.Recompute()
	r.Pricing.TotalAmount = roundMoney(r.Pricing.TotalAmount)

	r.State = models.StateCompleted{
		ProviderID:  s.ProviderID,
		AcceptedAt:  s.AcceptedAt,
		ArrivedAt:   s.ArrivedAt,
		VerifiedAt:  s.VerifiedAt,
		BilledAt:    s.BilledAt,
		Bill:        s.Bill,
		PaymentID:   e.PaymentID,
		CompletedAt: now,
	}
	return nil
}

func applyCancel(r *models.ServiceRequest, e Cancel, now time.Time) error {
	if r.Status().IsTerminal() {
		return terminal(r, e)
	}
	reason := strings.TrimSpace(e.Reason)
	if reason == "" {
		return apperrors.NewValidationError("reason", "a cancellation reason is required")
	}

	switch e.By.Role {
	case models.RoleSystem:
	case models.RoleCustomer:
		if e.By.ID != r.CustomerID {
			return invalid(r, e, "only the customer who raised the request can cancel it")
		}
	case models.RoleProvider:
		if _, pending := r.State.(models.StatePending); pending {
			// a provider can only turn down a request sent to them
			if r.TargetProviderID == nil || *r.TargetProviderID != e.By.ID {
				return invalid(r, e, "the request was not sent to this provider")
			}
		} else if p := r.ProviderID(); p == nil || *p != e.By.ID {
			return invalid(r, e, "only the assigned provider can cancel")
		}
	default:
		return invalid(r, e, "unknown role")
	}

	c := models.StateCancelled{
		Reason:      reason,
		CancelledBy: e.By.Role,
		CancelledAt: now,
		OTPVerified: r.OTPVerified(),
		ProviderID:  r.ProviderID(),
	}
	switch s := r.State.(type) {
	case models.StateAccepted:
		c.AcceptedAt = &s.AcceptedAt
	case models.StateArrived:
		c.AcceptedAt, c.ArrivedAt = &s.AcceptedAt, &s.ArrivedAt
	case models.StateVerified:
		c.AcceptedAt, c.ArrivedAt = &s.AcceptedAt, &s.ArrivedAt
	case models.StateBilled:
		c.AcceptedAt, c.ArrivedAt = &s.AcceptedAt, &s.ArrivedAt
	case models.StateInProgress:
		c.AcceptedAt, c.ArrivedAt = &s.AcceptedAt, &s.ArrivedAt
	}
	r.State = c
	return nil
}
