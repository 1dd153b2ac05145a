package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/piresc/roadassist/internal/pkg/logger"
	"github.com/piresc/roadassist/internal/pkg/middleware"
	"github.com/piresc/roadassist/internal/pkg/models"
	"github.com/piresc/roadassist/internal/utils"
	"github.com/piresc/roadassist/services/billing"
)

// BillingHandler handles HTTP requests for bills and payments
type BillingHandler struct {
	billingUC billing.BillingUC
}

// NewBillingHandler creates a new billing HTTP handler
func NewBillingHandler(billingUC billing.BillingUC) *BillingHandler {
	return &BillingHandler{
		billingUC: billingUC,
	}
}

// requestIDParam parses the :id path parameter and tags the transaction with it
func requestIDParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, err
	}
	middleware.SetRequestID(c, id.String())
	return id, nil
}

func (h *BillingHandler) fail(c echo.Context, msg string, requestID uuid.UUID, err error) error {
	middleware.NoticeError(c, err)
	logger.WarnCtx(c.Request().Context(), msg,
		logger.String("request_id", requestID.String()),
		logger.Err(err))
	return utils.DomainErrorResponse(c, err)
}

// SendBill lets the assigned provider bill a verified request
func (h *BillingHandler) SendBill(c echo.Context) error {
	middleware.SetTransactionName(c.Request().Context(), "Billing.SendBill")

	providerID, _, ok := middleware.Caller(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Authentication required")
	}
	requestID, err := requestIDParam(c)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid request ID")
	}

	var input models.BillInput
	if err := c.Bind(&input); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	view, err := h.billingUC.ComposeBill(c.Request().Context(), requestID, providerID, input)
	if err != nil {
		return h.fail(c, "Failed to send bill", requestID, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Bill sent to the customer", view)
}

// CreatePaymentSession opens a checkout for the billed amount
func (h *BillingHandler) CreatePaymentSession(c echo.Context) error {
	middleware.SetTransactionName(c.Request().Context(), "Billing.CreatePaymentSession")

	customerID, _, ok := middleware.Caller(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Authentication required")
	}
	requestID, err := requestIDParam(c)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid request ID")
	}

	var customer models.CustomerInfo
	if err := c.Bind(&customer); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}
	if customer.Phone != "" && !utils.IsValidPhoneNumber(customer.Phone) {
		return utils.BadRequestResponse(c, "Invalid phone number")
	}

	session, err := h.billingUC.CreatePaymentSession(c.Request().Context(), requestID, customerID, customer)
	if err != nil {
		return h.fail(c, "Failed to create payment session", requestID, err)
	}
	return utils.SuccessResponse(c, http.StatusCreated, "Payment session created", session)
}

// ConfirmPayment applies the verified outcome of a checkout
func (h *BillingHandler) ConfirmPayment(c echo.Context) error {
	middleware.SetTransactionName(c.Request().Context(), "Billing.ConfirmPayment")

	customerID, _, ok := middleware.Caller(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Authentication required")
	}
	requestID, err := requestIDParam(c)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid request ID")
	}

	var confirm models.ConfirmPaymentRequest
	if err := c.Bind(&confirm); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	view, err := h.billingUC.ConfirmPayment(c.Request().Context(), requestID, customerID, confirm)
	if err != nil {
		return h.fail(c, "Failed to confirm payment", requestID, err)
	}

	message := "Payment received, thank you"
	if confirm.ReportedStatus == models.GatewayFailed {
		message = "Payment failed, you can try again"
	}
	return utils.SuccessResponse(c, http.StatusOK, message, view)
}
