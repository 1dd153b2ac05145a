package models

import (
	"time"

	"github.com/google/uuid"
)

// CustomerInfo is passed to the payment provider when opening a session
type CustomerInfo struct {
	CustomerID uuid.UUID `json:"customer_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
}

// PaymentOrder asks a gateway to open a checkout for a billed request
type PaymentOrder struct {
	OrderID   string
	RequestID uuid.UUID
	Amount    float64
	Currency  string
	Customer  CustomerInfo
}

// PaymentSession is the opaque checkout handle returned to the client
type PaymentSession struct {
	SessionID string    `json:"session_id"`
	OrderID   string    `json:"order_id"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"created_at"`
}

// GatewayPaymentStatus is the provider's view of an order
type GatewayPaymentStatus string

const (
	GatewayPaid    GatewayPaymentStatus = "SUCCESS"
	GatewayFailed  GatewayPaymentStatus = "FAILED"
	GatewayPending GatewayPaymentStatus = "PENDING"
)

// PaymentVerification is what the gateway reports for an order
type PaymentVerification struct {
	OrderID           string               `json:"order_id"`
	RequestID         string               `json:"request_id"`
	Status            GatewayPaymentStatus `json:"status"`
	ExternalPaymentID string               `json:"external_payment_id"`
	Amount            float64              `json:"amount"`
}

// ConfirmPaymentRequest is the client's claim about a finished checkout
type ConfirmPaymentRequest struct {
	OrderID           string               `json:"order_id"`
	ExternalPaymentID string               `json:"payment_id"`
	ReportedStatus    GatewayPaymentStatus `json:"status"`
}

// BillInput is what a provider submits when billing
type BillInput struct {
	Items        []BillItem `json:"items"`
	FuelQuantity float64    `json:"fuel_quantity"`
}
