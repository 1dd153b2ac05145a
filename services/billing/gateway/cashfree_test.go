package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/roadassist/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cashfree(t *testing.T, handler http.HandlerFunc) *CashfreeGateway {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewCashfreeGateway(models.PaymentConfig{
		CashfreeBaseURL:   server.URL,
		CashfreeAppID:     "app-id",
		CashfreeSecretKey: "secret",
		Timeout:           time.Second,
	}, nil)
}

func TestCashfreeGateway_CreateOrder(t *testing.T) {
	requestID, customerID := uuid.New(), uuid.New()
	g := cashfree(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/pg/orders", r.URL.Path)
		assert.Equal(t, "app-id", r.Header.Get("x-client-id"))
		assert.Equal(t, "secret", r.Header.Get("x-client-secret"))
		assert.Equal(t, defaultCashfreeVersion, r.Header.Get("x-api-version"))

		var body cashfreeOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ra_12345678_abc", body.OrderID)
		assert.Equal(t, 220.0, body.OrderAmount)
		assert.Equal(t, customerID.String(), body.Customer.CustomerID)
		assert.Equal(t, requestID.String(), body.OrderTags["request_id"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"cf_order_id":"2149460581","order_id":"ra_12345678_abc","payment_session_id":"session_abc","order_amount":220,"order_currency":"INR","order_status":"ACTIVE"}`))
	})

	session, err := g.CreateOrder(context.Background(), models.PaymentOrder{
		OrderID:   "ra_12345678_abc",
		RequestID: requestID,
		Amount:    220,
		Currency:  "INR",
		Customer:  models.CustomerInfo{CustomerID: customerID, Phone: "+919812345678"},
	})

	require.NoError(t, err)
	assert.Equal(t, "session_abc", session.SessionID)
	assert.Equal(t, "ra_12345678_abc", session.OrderID)
	assert.Equal(t, "cashfree", session.Provider)
}

func TestCashfreeGateway_CreateOrderRejected(t *testing.T) {
	g := cashfree(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"customer_phone is missing","code":"customer_details.customer_phone_missing"}`))
	})

	_, err := g.CreateOrder(context.Background(), models.PaymentOrder{OrderID: "o"})

	assert.ErrorContains(t, err, "failed to create cashfree order")
}

func TestCashfreeGateway_Verify(t *testing.T) {
	tests := []struct {
		name     string
		payments string
		want     models.PaymentVerification
	}{
		{
			name:     "paid after a failed attempt",
			payments: `[{"cf_payment_id":91,"order_id":"o1","payment_status":"FAILED","payment_amount":220},{"cf_payment_id":5114910574937,"order_id":"o1","payment_status":"SUCCESS","payment_amount":220}]`,
			want:     models.PaymentVerification{OrderID: "o1", Status: models.GatewayPaid, ExternalPaymentID: "5114910574937", Amount: 220},
		},
		{
			name:     "string payment id",
			payments: `[{"cf_payment_id":"5114910574937","order_id":"o1","payment_status":"SUCCESS","payment_amount":220}]`,
			want:     models.PaymentVerification{OrderID: "o1", Status: models.GatewayPaid, ExternalPaymentID: "5114910574937", Amount: 220},
		},
		{
			name:     "every attempt failed",
			payments: `[{"cf_payment_id":91,"payment_status":"FAILED"},{"cf_payment_id":92,"payment_status":"USER_DROPPED"}]`,
			want:     models.PaymentVerification{OrderID: "o1", Status: models.GatewayFailed},
		},
		{
			name:     "attempt in flight",
			payments: `[{"cf_payment_id":91,"payment_status":"FAILED"},{"cf_payment_id":92,"payment_status":"PENDING"}]`,
			want:     models.PaymentVerification{OrderID: "o1", Status: models.GatewayPending},
		},
		{
			name:     "not attempted yet",
			payments: `[]`,
			want:     models.PaymentVerification{OrderID: "o1", Status: models.GatewayPending},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := cashfree(t, func(w http.ResponseWriter, r *http.Request) {
				switch r.URL.Path {
				case "/pg/orders/o1":
					_, _ = w.Write([]byte(`{"order_id":"o1","order_status":"ACTIVE","order_tags":{"request_id":"req-1"}}`))
				case "/pg/orders/o1/payments":
					_, _ = w.Write([]byte(tt.payments))
				default:
					t.Errorf("unexpected path %s", r.URL.Path)
					w.WriteHeader(http.StatusNotFound)
				}
			})

			got, err := g.Verify(context.Background(), "o1")

			require.NoError(t, err)
			tt.want.RequestID = "req-1"
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestCashfreeGateway_VerifyUntaggedOrder(t *testing.T) {
	g := cashfree(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/pg/orders/o1" {
			_, _ = w.Write([]byte(`{"order_id":"o1","order_status":"PAID"}`))
			return
		}
		_, _ = w.Write([]byte(`[{"cf_payment_id":91,"payment_status":"SUCCESS","payment_amount":220}]`))
	})

	got, err := g.Verify(context.Background(), "o1")

	require.NoError(t, err)
	assert.Empty(t, got.RequestID)
	assert.Equal(t, models.GatewayPaid, got.Status)
}

func TestCashfreeGateway_VerifyUnavailable(t *testing.T) {
	g := cashfree(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"order not found"}`))
	})

	_, err := g.Verify(context.Background(), "missing")

	assert.ErrorContains(t, err, "failed to get cashfree order")
}
