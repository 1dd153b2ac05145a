package gateway

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/piresc/roadassist/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
)

type fakeIntents struct {
	created *stripe.PaymentIntentParams
	intent  *stripe.PaymentIntent
	err     error
	gotID   string
}

func (f *fakeIntents) New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	f.created = params
	return f.intent, f.err
}

func (f *fakeIntents) Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	f.gotID = id
	return f.intent, f.err
}

func TestStripeGateway_CreateOrder(t *testing.T) {
	requestID := uuid.New()
	intents := &fakeIntents{intent: &stripe.PaymentIntent{
		ID:           "pi_3Nx",
		ClientSecret: "pi_3Nx_secret_abc",
		Amount:       22050,
		Currency:     stripe.CurrencyINR,
	}}
	g := &StripeGateway{intents: intents}

	session, err := g.CreateOrder(context.Background(), models.PaymentOrder{
		OrderID:   "ra_12345678_abc",
		RequestID: requestID,
		Amount:    220.5,
		Currency:  "INR",
		Customer:  models.CustomerInfo{CustomerID: uuid.New()},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(22050), *intents.created.Amount)
	assert.Equal(t, "inr", *intents.created.Currency)
	assert.Equal(t, "ra_12345678_abc", *intents.created.IdempotencyKey)
	assert.Equal(t, requestID.String(), intents.created.Metadata["request_id"])

	assert.Equal(t, "pi_3Nx", session.OrderID)
	assert.Equal(t, "pi_3Nx_secret_abc", session.SessionID)
	assert.Equal(t, 220.5, session.Amount)
	assert.Equal(t, "INR", session.Currency)
	assert.Equal(t, "stripe", session.Provider)
}

func TestStripeGateway_CreateOrderFailure(t *testing.T) {
	g := &StripeGateway{intents: &fakeIntents{err: &stripe.Error{Msg: "invalid api key"}}}

	_, err := g.CreateOrder(context.Background(), models.PaymentOrder{OrderID: "o", Currency: "INR"})

	assert.ErrorContains(t, err, "failed to create payment intent")
}

func TestStripeGateway_Verify(t *testing.T) {
	tests := []struct {
		name   string
		intent *stripe.PaymentIntent
		want   models.PaymentVerification
	}{
		{
			name: "succeeded",
			intent: &stripe.PaymentIntent{
				ID: "pi_1", Status: stripe.PaymentIntentStatusSucceeded, AmountReceived: 22000,
				LatestCharge: &stripe.Charge{ID: "ch_1"},
			},
			want: models.PaymentVerification{OrderID: "pi_1", Status: models.GatewayPaid, ExternalPaymentID: "ch_1", Amount: 220},
		},
		{
			name: "carries the request it was opened for",
			intent: &stripe.PaymentIntent{
				ID: "pi_1", Status: stripe.PaymentIntentStatusSucceeded, AmountReceived: 22000,
				Metadata: map[string]string{"request_id": "b341985e-0d6f-4d5b-9a39-1c1f7b1e2a10"},
			},
			want: models.PaymentVerification{
				OrderID: "pi_1", RequestID: "b341985e-0d6f-4d5b-9a39-1c1f7b1e2a10",
				Status: models.GatewayPaid, ExternalPaymentID: "pi_1", Amount: 220,
			},
		},
		{
			name:   "succeeded without charge",
			intent: &stripe.PaymentIntent{ID: "pi_1", Status: stripe.PaymentIntentStatusSucceeded, AmountReceived: 22000},
			want:   models.PaymentVerification{OrderID: "pi_1", Status: models.GatewayPaid, ExternalPaymentID: "pi_1", Amount: 220},
		},
		{
			name: "card declined",
			intent: &stripe.PaymentIntent{
				ID: "pi_1", Status: stripe.PaymentIntentStatusRequiresPaymentMethod,
				LastPaymentError: &stripe.Error{Code: stripe.ErrorCodeCardDeclined},
			},
			want: models.PaymentVerification{OrderID: "pi_1", Status: models.GatewayFailed},
		},
		{
			name:   "canceled",
			intent: &stripe.PaymentIntent{ID: "pi_1", Status: stripe.PaymentIntentStatusCanceled},
			want:   models.PaymentVerification{OrderID: "pi_1", Status: models.GatewayFailed},
		},
		{
			name:   "awaiting payment method",
			intent: &stripe.PaymentIntent{ID: "pi_1", Status: stripe.PaymentIntentStatusRequiresPaymentMethod},
			want:   models.PaymentVerification{OrderID: "pi_1", Status: models.GatewayPending},
		},
		{
			name:   "processing",
			intent: &stripe.PaymentIntent{ID: "pi_1", Status: stripe.PaymentIntentStatusProcessing},
			want:   models.PaymentVerification{OrderID: "pi_1", Status: models.GatewayPending},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intents := &fakeIntents{intent: tt.intent}

			got, err := (&StripeGateway{intents: intents}).Verify(context.Background(), "pi_1")

			require.NoError(t, err)
			assert.Equal(t, "pi_1", intents.gotID)
			assert.Equal(t, tt.want, *got)
		})
	}
}
