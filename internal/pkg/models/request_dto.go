package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// BillItems is stored as a JSONB column
type BillItems []BillItem

func (b BillItems) Value() (driver.Value, error) {
	if b == nil {
		return nil, nil
	}
	return json.Marshal(b)
}

func (b *BillItems) Scan(src interface{}) error {
	if src == nil {
		*b = nil
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported bill items type %T", src)
	}
	return json.Unmarshal(raw, b)
}

// ServiceRequestDTO is the flattened row stored in service_requests
type ServiceRequestDTO struct {
	ID                 uuid.UUID      `db:"id"`
	CustomerID         uuid.UUID      `db:"customer_id"`
	ProviderID         uuid.NullUUID  `db:"provider_id"`
	TargetProviderID   uuid.NullUUID  `db:"target_provider_id"`
	Category           string         `db:"category"`
	Services           pq.StringArray `db:"services"`
	FuelType           *string        `db:"fuel_type"`
	FuelQuantity       *float64       `db:"fuel_quantity"`
	FuelRate           *float64       `db:"fuel_rate"`
	OriginLatitude     float64        `db:"origin_latitude"`
	OriginLongitude    float64        `db:"origin_longitude"`
	Address            string         `db:"address"`
	BaseFee            float64        `db:"base_fee"`
	DistanceFee        float64        `db:"distance_fee"`
	MaterialCost       float64        `db:"material_cost"`
	TotalAmount        float64        `db:"total_amount"`
	DistanceKm         float64        `db:"distance_km"`
	BillItems          BillItems      `db:"bill_items"`
	Status             string         `db:"status"`
	SecurityCode       *string        `db:"security_code"`
	OTPVerified        bool           `db:"otp_verified"`
	BillSent           bool           `db:"bill_sent"`
	PaymentStatus      string         `db:"payment_status"`
	PaymentID          *string        `db:"payment_id"`
	AssignedName       *string        `db:"assigned_name"`
	AssignedPhone      *string        `db:"assigned_phone"`
	ProblemPhotoURL    *string        `db:"problem_photo_url"`
	CancellationReason *string        `db:"cancellation_reason"`
	CancelledBy        *string        `db:"cancelled_by"`
	CreatedAt          time.Time      `db:"created_at"`
	AcceptedAt         *time.Time     `db:"accepted_at"`
	ArrivedAt          *time.Time     `db:"arrived_at"`
	VerifiedAt         *time.Time     `db:"verified_at"`
	BilledAt           *time.Time     `db:"billed_at"`
	CompletedAt        *time.Time     `db:"completed_at"`
	CancelledAt        *time.Time     `db:"cancelled_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
	Version            int64          `db:"version"`
}

// ErrInconsistentRow is returned when stored columns describe an impossible state
var ErrInconsistentRow = errors.New("inconsistent service request row")

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

// ToDTO flattens the request and its state into a row
func (r *ServiceRequest) ToDTO() *ServiceRequestDTO {
	d := &ServiceRequestDTO{
		ID:               r.ID,
		CustomerID:       r.CustomerID,
		TargetProviderID: nullUUID(r.TargetProviderID),
		Category:         string(r.Category),
		Services:         pq.StringArray(r.Services),
		OriginLatitude:   r.Origin.Latitude,
		OriginLongitude:  r.Origin.Longitude,
		Address:          r.Address,
		BaseFee:          r.Pricing.BaseFee,
		DistanceFee:      r.Pricing.DistanceFee,
		MaterialCost:     r.Pricing.MaterialCost,
		TotalAmount:      r.Pricing.TotalAmount,
		DistanceKm:       r.Pricing.DistanceKm,
		Status:           string(r.Status()),
		PaymentStatus:    string(PaymentNone),
		ProblemPhotoURL:  strPtr(r.ProblemPhotoURL),
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
		Version:          r.Version,
	}
	if r.Fuel != nil {
		d.FuelType = strPtr(r.Fuel.FuelType)
		q, rate := r.Fuel.Quantity, r.Fuel.RatePerLitre
		d.FuelQuantity = &q
		d.FuelRate = &rate
	}
	if r.AssignedPerson != nil {
		d.AssignedName = strPtr(r.AssignedPerson.Name)
		d.AssignedPhone = strPtr(r.AssignedPerson.Phone)
	}

	switch s := r.State.(type) {
	case StateAccepted:
		d.ProviderID = nullUUID(&s.ProviderID)
		d.SecurityCode = strPtr(s.SecurityCode)
		d.AcceptedAt = timePtr(s.AcceptedAt)
	case StateArrived:
		d.ProviderID = nullUUID(&s.ProviderID)
		d.SecurityCode = strPtr(s.SecurityCode)
		d.AcceptedAt = timePtr(s.AcceptedAt)
		d.ArrivedAt = timePtr(s.ArrivedAt)
	case StateVerified:
		d.ProviderID = nullUUID(&s.ProviderID)
		d.OTPVerified = true
		d.AcceptedAt = timePtr(s.AcceptedAt)
		d.ArrivedAt = timePtr(s.ArrivedAt)
		d.VerifiedAt = timePtr(s.VerifiedAt)
	case StateBilled:
		d.ProviderID = nullUUID(&s.ProviderID)
		d.OTPVerified = true
		d.BillSent = true
		d.PaymentStatus = string(s.PaymentStatus)
		d.BillItems = BillItems(s.Bill.Items)
		d.AcceptedAt = timePtr(s.AcceptedAt)
		d.ArrivedAt = timePtr(s.ArrivedAt)
		d.VerifiedAt = timePtr(s.VerifiedAt)
		d.BilledAt = timePtr(s.BilledAt)
		if s.Bill.FuelQuantity > 0 {
			q := s.Bill.FuelQuantity
			d.FuelQuantity = &q
		}
	case StateInProgress:
		d.ProviderID = nullUUID(&s.ProviderID)
		d.OTPVerified = true
		d.AcceptedAt = timePtr(s.AcceptedAt)
		d.ArrivedAt = timePtr(s.ArrivedAt)
	case StateCompleted:
		d.ProviderID = nullUUID(&s.ProviderID)
		d.OTPVerified = true
		d.BillSent = true
		d.PaymentStatus = string(PaymentSuccess)
		d.PaymentID = strPtr(s.PaymentID)
		d.BillItems = BillItems(s.Bill.Items)
		d.AcceptedAt = timePtr(s.AcceptedAt)
		d.ArrivedAt = timePtr(s.ArrivedAt)
		d.VerifiedAt = timePtr(s.VerifiedAt)
		d.BilledAt = timePtr(s.BilledAt)
		d.CompletedAt = timePtr(s.CompletedAt)
		if s.Bill.FuelQuantity > 0 {
			q := s.Bill.FuelQuantity
			d.FuelQuantity = &q
		}
	case StateCancelled:
		d.ProviderID = nullUUID(s.ProviderID)
		d.OTPVerified = s.OTPVerified
		d.CancellationReason = strPtr(s.Reason)
		d.CancelledBy = strPtr(string(s.CancelledBy))
		d.CancelledAt = timePtr(s.CancelledAt)
		d.AcceptedAt = s.AcceptedAt
		d.ArrivedAt = s.ArrivedAt
	}
	return d
}

func inconsistent(d *ServiceRequestDTO, why string) error {
	return fmt.Errorf("%w %s (status %s): %s", ErrInconsistentRow, d.ID, d.Status, why)
}

func deref(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ToRequest rebuilds a request from a row, rejecting flag combinations that
// no sequence of transitions could have produced.
func (d *ServiceRequestDTO) ToRequest() (*ServiceRequest, error) {
	r := &ServiceRequest{
		ID:              d.ID,
		CustomerID:      d.CustomerID,
		Category:        ServiceCategory(d.Category),
		Services:        []string(d.Services),
		Origin:          Location{Latitude: d.OriginLatitude, Longitude: d.OriginLongitude},
		Address:         d.Address,
		ProblemPhotoURL: derefStr(d.ProblemPhotoURL),
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
		Version:         d.Version,
		Pricing: Pricing{
			BaseFee:      d.BaseFee,
			DistanceFee:  d.DistanceFee,
			MaterialCost: d.MaterialCost,
			TotalAmount:  d.TotalAmount,
			DistanceKm:   d.DistanceKm,
		},
	}
	if d.TargetProviderID.Valid {
		id := d.TargetProviderID.UUID
		r.TargetProviderID = &id
	}
	if d.FuelType != nil || d.FuelRate != nil {
		r.Fuel = &FuelDetails{FuelType: derefStr(d.FuelType)}
		if d.FuelQuantity != nil {
			r.Fuel.Quantity = *d.FuelQuantity
		}
		if d.FuelRate != nil {
			r.Fuel.RatePerLitre = *d.FuelRate
		}
	}
	if d.AssignedName != nil || d.AssignedPhone != nil {
		r.AssignedPerson = &AssignedPerson{Name: derefStr(d.AssignedName), Phone: derefStr(d.AssignedPhone)}
	}

	if d.BillSent && !d.OTPVerified {
		return nil, inconsistent(d, "bill sent without verified code")
	}

	status := RequestStatus(d.Status)
	if status != StatusPending && status != StatusCancelled && !d.ProviderID.Valid {
		return nil, inconsistent(d, "missing provider")
	}
	provider := d.ProviderID.UUID
	code := derefStr(d.SecurityCode)
	bill := Bill{Items: []BillItem(d.BillItems), MaterialCost: d.MaterialCost}
	if r.Category == CategoryFuelDelivery && d.FuelQuantity != nil {
		bill.FuelQuantity = *d.FuelQuantity
	}

	switch status {
	case StatusPending:
		if d.ProviderID.Valid || d.OTPVerified || d.BillSent {
			return nil, inconsistent(d, "pending request carries lifecycle data")
		}
		r.State = StatePending{}

	case StatusAccepted:
		if d.OTPVerified || d.BillSent || code == "" || d.AcceptedAt == nil {
			return nil, inconsistent(d, "accepted request must have an unverified code")
		}
		r.State = StateAccepted{ProviderID: provider, SecurityCode: code, AcceptedAt: *d.AcceptedAt}

	case StatusArrived:
		if d.ArrivedAt == nil {
			return nil, inconsistent(d, "missing arrival time")
		}
		switch {
		case !d.OTPVerified:
			if code == "" {
				return nil, inconsistent(d, "arrived request lost its code")
			}
			r.State = StateArrived{ProviderID: provider, SecurityCode: code, AcceptedAt: deref(d.AcceptedAt), ArrivedAt: *d.ArrivedAt}
		case !d.BillSent:
			r.State = StateVerified{ProviderID: provider, AcceptedAt: deref(d.AcceptedAt), ArrivedAt: *d.ArrivedAt, VerifiedAt: deref(d.VerifiedAt)}
		default:
			ps := PaymentStatus(d.PaymentStatus)
			if ps != PaymentPending && ps != PaymentFailed {
				return nil, inconsistent(d, "billed request with payment status "+d.PaymentStatus)
			}
			r.State = StateBilled{
				ProviderID:    provider,
				AcceptedAt:    deref(d.AcceptedAt),
				ArrivedAt:     *d.ArrivedAt,
				VerifiedAt:    deref(d.VerifiedAt),
				BilledAt:      deref(d.BilledAt),
				Bill:          bill,
				PaymentStatus: ps,
			}
		}

	case StatusInProgress:
		r.State = StateInProgress{ProviderID: provider, AcceptedAt: deref(d.AcceptedAt), ArrivedAt: deref(d.ArrivedAt)}

	case StatusCompleted:
		if !d.OTPVerified || !d.BillSent || PaymentStatus(d.PaymentStatus) != PaymentSuccess || d.PaymentID == nil {
			return nil, inconsistent(d, "completed without verified payment")
		}
		r.State = StateCompleted{
			ProviderID:  provider,
			AcceptedAt:  deref(d.AcceptedAt),
			ArrivedAt:   deref(d.ArrivedAt),
			VerifiedAt:  deref(d.VerifiedAt),
			BilledAt:    deref(d.BilledAt),
			Bill:        bill,
			PaymentID:   *d.PaymentID,
			CompletedAt: deref(d.CompletedAt),
		}

	case StatusCancelled:
		if derefStr(d.CancellationReason) == "" {
			return nil, inconsistent(d, "cancelled without a reason")
		}
		s := StateCancelled{
			Reason:      *d.CancellationReason,
			CancelledBy: Role(derefStr(d.CancelledBy)),
			CancelledAt: deref(d.CancelledAt),
			AcceptedAt:  d.AcceptedAt,
			ArrivedAt:   d.ArrivedAt,
			OTPVerified: d.OTPVerified,
		}
		if d.ProviderID.Valid {
			s.ProviderID = &provider
		}
		r.State = s

	default:
		return nil, inconsistent(d, "unknown status")
	}

	return r, nil
}
