package gateway

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	httpclient "github.com/piresc/roadassist/internal/pkg/http"
	"github.com/piresc/roadassist/internal/pkg/logger"
	"github.com/piresc/roadassist/internal/pkg/models"
)

const defaultCashfreeVersion = "2023-08-01"

type cashfreeCustomer struct {
	CustomerID    string `json:"customer_id"`
	CustomerName  string `json:"customer_name,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`
	CustomerPhone string `json:"customer_phone"`
}

type cashfreeOrderRequest struct {
	OrderID       string            `json:"order_id"`
	OrderAmount   float64           `json:"order_amount"`
	OrderCurrency string            `json:"order_currency"`
	Customer      cashfreeCustomer  `json:"customer_details"`
	OrderTags     map[string]string `json:"order_tags,omitempty"`
}

type cashfreeOrder struct {
	OrderID          string            `json:"order_id"`
	PaymentSessionID string            `json:"payment_session_id"`
	OrderAmount      float64           `json:"order_amount"`
	OrderCurrency    string            `json:"order_currency"`
	OrderStatus      string            `json:"order_status"`
	OrderTags        map[string]string `json:"order_tags"`
}

// paymentID accepts Cashfree payment ids sent either as numbers or strings
type paymentID string

func (p *paymentID) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	*p = paymentID(b)
	return nil
}

type cashfreePayment struct {
	CFPaymentID   paymentID `json:"cf_payment_id"`
	OrderID       string    `json:"order_id"`
	PaymentStatus string    `json:"payment_status"`
	PaymentAmount float64   `json:"payment_amount"`
}

// CashfreeGateway talks to the Cashfree PG REST API
type CashfreeGateway struct {
	client  *httpclient.Client
	headers map[string]string
}

// NewCashfreeGateway creates a gateway for the configured Cashfree account
func NewCashfreeGateway(cfg models.PaymentConfig, log *logger.ZapLogger) *CashfreeGateway {
	version := cfg.CashfreeVersion
	if version == "" {
		version = defaultCashfreeVersion
	}
	return &CashfreeGateway{
		client: httpclient.NewClient("cashfree", cfg.CashfreeBaseURL, cfg.Timeout, log),
		headers: map[string]string{
			"x-client-id":     cfg.CashfreeAppID,
			"x-client-secret": cfg.CashfreeSecretKey,
			"x-api-version":   version,
		},
	}
}

func (g *CashfreeGateway) Name() string { return "cashfree" }

// CreateOrder opens a Cashfree order and returns its payment session
func (g *CashfreeGateway) CreateOrder(ctx context.Context, order models.PaymentOrder) (*models.PaymentSession, error) {
	body := cashfreeOrderRequest{
		OrderID:       order.OrderID,
		OrderAmount:   order.Amount,
		OrderCurrency: order.Currency,
		Customer: cashfreeCustomer{
			CustomerID:    order.Customer.CustomerID.String(),
			CustomerName:  order.Customer.Name,
			CustomerEmail: order.Customer.Email,
			CustomerPhone: order.Customer.Phone,
		},
		OrderTags: map[string]string{"request_id": order.RequestID.String()},
	}

	var resp cashfreeOrder
	if err := g.client.DoJSON(ctx, http.MethodPost, "/pg/orders", g.headers, body, &resp); err != nil {
		return nil, fmt.Errorf("failed to create cashfree order: %w", err)
	}
	if resp.PaymentSessionID == "" {
		return nil, fmt.Errorf("failed to create cashfree order: no payment session returned")
	}

	return &models.PaymentSession{
		SessionID: resp.PaymentSessionID,
		OrderID:   resp.OrderID,
		Amount:    resp.OrderAmount,
		Currency:  resp.OrderCurrency,
		Provider:  g.Name(),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Verify reports the outcome of an order from its payment attempts. A
// successful attempt wins, then an attempt still in flight. The request the
// order was opened for comes from its tags.
func (g *CashfreeGateway) Verify(ctx context.Context, orderID string) (*models.PaymentVerification, error) {
	path := "/pg/orders/" + url.PathEscape(orderID)

	var order cashfreeOrder
	if err := g.client.DoJSON(ctx, http.MethodGet, path, g.headers, nil, &order); err != nil {
		return nil, fmt.Errorf("failed to get cashfree order: %w", err)
	}

	var payments []cashfreePayment
	if err := g.client.DoJSON(ctx, http.MethodGet, path+"/payments", g.headers, nil, &payments); err != nil {
		return nil, fmt.Errorf("failed to get cashfree payments: %w", err)
	}

	result := &models.PaymentVerification{
		OrderID:   orderID,
		RequestID: order.OrderTags["request_id"],
		Status:    models.GatewayPending,
	}
	if order.OrderID != "" {
		result.OrderID = order.OrderID
	}
	inFlight := len(payments) == 0
	for _, p := range payments {
		switch p.PaymentStatus {
		case "SUCCESS":
			result.Status = models.GatewayPaid
			result.ExternalPaymentID = string(p.CFPaymentID)
			result.Amount = p.PaymentAmount
			return result, nil
		case "PENDING", "NOT_ATTEMPTED":
			inFlight = true
		}
	}
	if !inFlight {
		result.Status = models.GatewayFailed
	}
	return result, nil
}
