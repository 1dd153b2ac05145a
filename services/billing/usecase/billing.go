package usecase

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/piresc/roadassist/internal/pkg/apperrors"
	"github.com/piresc/roadassist/internal/pkg/constants"
	"github.com/piresc/roadassist/internal/pkg/lifecycle"
	"github.com/piresc/roadassist/internal/pkg/logger"
	"github.com/piresc/roadassist/internal/pkg/models"
	nrpkg "github.com/piresc/roadassist/internal/pkg/newrelic"
	"github.com/piresc/roadassist/internal/pkg/websocket"
	"github.com/piresc/roadassist/internal/utils"
	"github.com/piresc/roadassist/services/billing"
)

const (
	defaultCurrency = "INR"
	amountTolerance = 0.005
)

// BillingUC implements the billing use case interface
type BillingUC struct {
	cfg       *models.Config
	machine   *lifecycle.Machine
	gateway   billing.PaymentGateway
	emitter   billing.RoomEmitter
	publisher billing.EventPublisher
	newSuffix func() (string, error)
}

// NewBillingUC creates a new billing use case
func NewBillingUC(
	cfg *models.Config,
	machine *lifecycle.Machine,
	gateway billing.PaymentGateway,
	emitter billing.RoomEmitter,
	publisher billing.EventPublisher,
) *BillingUC {
	return &BillingUC{
		cfg:       cfg,
		machine:   machine,
		gateway:   gateway,
		emitter:   emitter,
		publisher: publisher,
		newSuffix: func() (string, error) { return utils.GenerateRandomHex(12) },
	}
}

// OrderID builds the gateway order id of a payment attempt for requestID
func OrderID(requestID uuid.UUID, suffix string) string {
	return fmt.Sprintf("ra_%s_%s", requestID.String()[:8], suffix)
}

func (uc *BillingUC) currency() string {
	if uc.cfg.Payment.Currency != "" {
		return uc.cfg.Payment.Currency
	}
	return defaultCurrency
}

// ComposeBill raises the bill of a verified request on behalf of its provider
func (uc *BillingUC) ComposeBill(ctx context.Context, requestID, providerID uuid.UUID, input models.BillInput) (*models.RequestView, error) {
	return nrpkg.TraceUseCaseWithReturn(ctx, "BillingUC.ComposeBill", func(ctx context.Context) (*models.RequestView, error) {
		tr, err := uc.machine.Fire(ctx, requestID, lifecycle.SendBill{Provider: providerID, Input: input})
		if err != nil {
			return nil, err
		}
		req := tr.After

		uc.emitter.Emit(websocket.RequestRoom(req.ID), constants.EventBillReceived, models.BillReceivedEvent{
			RequestID: req.ID,
			Bill:      *req.Bill(),
			Pricing:   req.Pricing,
		})
		uc.emitStatus(req)
		uc.publish(ctx, constants.SubjectRequestBilled, req)

		logger.InfoCtx(ctx, "Bill sent",
			logger.String("request_id", req.ID.String()),
			logger.Float64("total", req.Pricing.TotalAmount))

		view := req.View(providerID)
		return &view, nil
	})
}

// CreatePaymentSession opens a checkout for the billed amount. The request
// itself is not changed.
func (uc *BillingUC) CreatePaymentSession(ctx context.Context, requestID, customerID uuid.UUID, customer models.CustomerInfo) (*models.PaymentSession, error) {
	return nrpkg.TraceUseCaseWithReturn(ctx, "BillingUC.CreatePaymentSession", func(ctx context.Context) (*models.PaymentSession, error) {
		req, err := uc.machine.Snapshot(ctx, requestID)
		if err != nil {
			return nil, err
		}
		if req.CustomerID != customerID {
			return nil, apperrors.NewInvalidTransition(string(req.Status()), "pay for", "only the customer of the request can pay")
		}
		if _, billed := req.State.(models.StateBilled); !billed {
			return nil, apperrors.NewInvalidTransition(string(req.Status()), "pay for", "no bill is awaiting payment")
		}

		suffix, err := uc.newSuffix()
		if err != nil {
			return nil, fmt.Errorf("failed to generate order id: %w", err)
		}
		customer.CustomerID = customerID
		order := models.PaymentOrder{
			OrderID:   OrderID(req.ID, suffix),
			RequestID: req.ID,
			Amount:    req.Pricing.TotalAmount,
			Currency:  uc.currency(),
			Customer:  customer,
		}

		session, err := uc.gateway.CreateOrder(ctx, order)
		if err != nil {
			return nil, apperrors.NewExternalService(uc.gateway.Name(), err)
		}

		logger.InfoCtx(ctx, "Payment session created",
			logger.String("request_id", req.ID.String()),
			logger.String("order_id", session.OrderID),
			logger.String("provider", session.Provider))
		return session, nil
	})
}

// ConfirmPayment checks the client's report against the payment gateway and
// completes the request, or records the failure. The transition only applies
// if nothing changed the request while the gateway was being asked.
func (uc *BillingUC) ConfirmPayment(ctx context.Context, requestID, customerID uuid.UUID, confirm models.ConfirmPaymentRequest) (*models.RequestView, error) {
	return nrpkg.TraceUseCaseWithReturn(ctx, "BillingUC.ConfirmPayment", func(ctx context.Context) (*models.RequestView, error) {
		if strings.TrimSpace(confirm.OrderID) == "" {
			return nil, apperrors.NewValidationError("order_id", "order id is required")
		}

		snap, err := uc.machine.Snapshot(ctx, requestID)
		if err != nil {
			return nil, err
		}
		if snap.CustomerID != customerID {
			return nil, apperrors.NewInvalidTransition(string(snap.Status()), "confirm payment for", "only the customer of the request can confirm a payment")
		}
		if _, billed := snap.State.(models.StateBilled); !billed {
			return nil, apperrors.NewInvalidTransition(string(snap.Status()), "confirm payment for", "no bill is awaiting payment")
		}

		verified, err := uc.gateway.Verify(ctx, confirm.OrderID)
		if err != nil {
			logger.WarnCtx(ctx, "Payment verification unavailable",
				logger.String("request_id", requestID.String()),
				logger.String("order_id", confirm.OrderID),
				logger.Err(err))
			return nil, apperrors.NewExternalService(uc.gateway.Name(), err)
		}
		if err := checkVerification(snap, confirm, verified); err != nil {
			logger.WarnCtx(ctx, "Payment report rejected",
				logger.String("request_id", requestID.String()),
				logger.String("order_id", confirm.OrderID),
				logger.Err(err))
			return nil, err
		}

		ev := lifecycle.PaymentConfirmed{
			Success:   verified.Status == models.GatewayPaid,
			PaymentID: verified.ExternalPaymentID,
		}
		tr, err := uc.machine.FireAt(ctx, requestID, snap.Version, ev)
		if err != nil {
			return nil, err
		}
		req := tr.After

		if ev.Success {
			if providerID := req.ProviderID(); providerID != nil {
				uc.emitter.Emit(websocket.UserRoom(*providerID), constants.EventPaymentConfirmed, models.PaymentConfirmedEvent{
					RequestID:  req.ID,
					CustomerID: req.CustomerID,
					Amount:     req.Pricing.TotalAmount,
					PaymentID:  ev.PaymentID,
				})
			}
			uc.publish(ctx, constants.SubjectRequestCompleted, req)
		}
		uc.emitStatus(req)

		view := req.View(customerID)
		return &view, nil
	})
}

// checkVerification compares what the client reported with what the gateway
// verified. The order must have been opened for this request, and a pending
// payment cannot be applied yet.
func checkVerification(req *models.ServiceRequest, confirm models.ConfirmPaymentRequest, verified *models.PaymentVerification) error {
	if verified.OrderID != "" && verified.OrderID != confirm.OrderID {
		return &apperrors.PaymentVerificationError{Field: "order_id", Reported: confirm.OrderID, Verified: verified.OrderID}
	}
	if verified.RequestID != req.ID.String() {
		return &apperrors.PaymentVerificationError{Field: "request_id", Reported: req.ID.String(), Verified: verified.RequestID}
	}
	if confirm.ReportedStatus != verified.Status {
		return &apperrors.PaymentVerificationError{Field: "status", Reported: string(confirm.ReportedStatus), Verified: string(verified.Status)}
	}
	switch verified.Status {
	case models.GatewayPaid:
	case models.GatewayFailed:
		return nil
	default:
		return apperrors.NewInvalidTransition(string(req.Status()), "confirm payment for", "the payment is still pending, try again in a moment")
	}

	if confirm.ExternalPaymentID != verified.ExternalPaymentID {
		return &apperrors.PaymentVerificationError{Field: "payment_id", Reported: confirm.ExternalPaymentID, Verified: verified.ExternalPaymentID}
	}
	if math.Abs(verified.Amount-req.Pricing.TotalAmount) > amountTolerance {
		return &apperrors.PaymentVerificationError{
			Field:    "amount",
			Reported: strconv.FormatFloat(req.Pricing.TotalAmount, 'f', 2, 64),
			Verified: strconv.FormatFloat(verified.Amount, 'f', 2, 64),
		}
	}
	return nil
}

func (uc *BillingUC) emitStatus(req *models.ServiceRequest) {
	uc.emitter.Emit(websocket.RequestRoom(req.ID), constants.EventStatusChanged, models.NewStatusChangedEvent(req))
}

func (uc *BillingUC) publish(ctx context.Context, subject string, req *models.ServiceRequest) {
	if uc.publisher == nil {
		return
	}
	event := models.RequestEvent{
		RequestID:  req.ID,
		CustomerID: req.CustomerID,
		ProviderID: req.ProviderID(),
		Category:   req.Category,
		Status:     req.Status(),
		Amount:     req.Pricing.TotalAmount,
		OccurredAt: models.Now(),
	}
	if err := uc.publisher.Publish(ctx, subject, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish request event",
			logger.String("subject", subject),
			logger.String("request_id", req.ID.String()),
			logger.Err(err))
	}
}
