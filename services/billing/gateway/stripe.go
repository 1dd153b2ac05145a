package gateway

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/piresc/roadassist/internal/pkg/models"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// paymentIntents is the part of the Stripe client the gateway uses
type paymentIntents interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// StripeGateway takes payments through Stripe PaymentIntents. The intent id
// is the order id the client confirms with.
type StripeGateway struct {
	intents paymentIntents
}

// NewStripeGateway creates a gateway for the configured Stripe account
func NewStripeGateway(cfg models.PaymentConfig) *StripeGateway {
	sc := &client.API{}
	sc.Init(cfg.StripeSecretKey, nil)
	return &StripeGateway{intents: sc.PaymentIntents}
}

func (g *StripeGateway) Name() string { return "stripe" }

// CreateOrder creates a PaymentIntent for the order
func (g *StripeGateway) CreateOrder(ctx context.Context, order models.PaymentOrder) (*models.PaymentSession, error) {
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(toMinorUnits(order.Amount)),
		Currency:    stripe.String(strings.ToLower(order.Currency)),
		Description: stripe.String("Roadside assistance " + order.RequestID.String()),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.SetIdempotencyKey(order.OrderID)
	params.AddMetadata("order_id", order.OrderID)
	params.AddMetadata("request_id", order.RequestID.String())
	params.AddMetadata("customer_id", order.Customer.CustomerID.String())

	pi, err := g.intents.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &models.PaymentSession{
		SessionID: pi.ClientSecret,
		OrderID:   pi.ID,
		Amount:    fromMinorUnits(pi.Amount),
		Currency:  strings.ToUpper(string(pi.Currency)),
		Provider:  g.Name(),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Verify maps the PaymentIntent status onto the gateway outcome
func (g *StripeGateway) Verify(ctx context.Context, orderID string) (*models.PaymentVerification, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	params.AddExpand("latest_charge")

	pi, err := g.intents.Get(orderID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment intent: %w", err)
	}

	result := &models.PaymentVerification{
		OrderID:   pi.ID,
		RequestID: pi.Metadata["request_id"],
		Status:    models.GatewayPending,
	}
	switch {
	case pi.Status == stripe.PaymentIntentStatusSucceeded:
		result.Status = models.GatewayPaid
		result.ExternalPaymentID = pi.ID
		if pi.LatestCharge != nil && pi.LatestCharge.ID != "" {
			result.ExternalPaymentID = pi.LatestCharge.ID
		}
		result.Amount = fromMinorUnits(pi.AmountReceived)
	case pi.Status == stripe.PaymentIntentStatusCanceled,
		pi.Status == stripe.PaymentIntentStatusRequiresPaymentMethod && pi.LastPaymentError != nil:
		result.Status = models.GatewayFailed
	}
	return result, nil
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromMinorUnits(amount int64) float64 {
	return float64(amount) / 100
}
