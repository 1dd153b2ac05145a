package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/piresc/roadassist/internal/pkg/lifecycle"
	"github.com/piresc/roadassist/internal/pkg/logger"
	"github.com/piresc/roadassist/internal/pkg/middleware"
	"github.com/piresc/roadassist/internal/pkg/models"
	"github.com/piresc/roadassist/internal/utils"
	"github.com/piresc/roadassist/services/requests"
)

const maxPhotoSize = 10 << 20

// RequestHandler handles HTTP requests for the service request lifecycle
type RequestHandler struct {
	requestUC requests.RequestUC
}

// NewRequestHandler creates a new request HTTP handler
func NewRequestHandler(requestUC requests.RequestUC) *RequestHandler {
	return &RequestHandler{
		requestUC: requestUC,
	}
}

func caller(c echo.Context) (lifecycle.Actor, bool) {
	id, role, ok := middleware.Caller(c)
	return lifecycle.Actor{ID: id, Role: role}, ok
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

func (h *RequestHandler) fail(c echo.Context, msg string, requestID uuid.UUID, err error) error {
	middleware.NoticeError(c, err)
	logger.WarnCtx(c.Request().Context(), msg,
		logger.String("request_id", requestID.String()),
		logger.Err(err))
	return utils.DomainErrorResponse(c, err)
}

// CreateRequest opens a new request for the calling customer
func (h *RequestHandler) CreateRequest(c echo.Context) error {
	middleware.SetTransactionName(c.Request().Context(), "Requests.CreateRequest")

	user, ok := caller(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Authentication required")
	}

	var input models.CreateRequestInput
	if err := c.Bind(&input); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	result, err := h.requestUC.CreateRequest(c.Request().Context(), user.ID, input)
	if err != nil {
		return h.fail(c, "Failed to create request", uuid.Nil, err)
	}

	message := "Request created, notifying nearby providers"
	if len(result.Candidates) == 0 {
		message = "Request created, no provider is available nearby right now"
	}
	return utils.SuccessResponse(c, http.StatusCreated, message, result)
}

// AcceptRequest assigns the calling provider to a pending request
func (h *RequestHandler) AcceptRequest(c echo.Context) error {
	middleware.SetTransactionName(c.Request().Context(), "Requests.AcceptRequest")

	user, ok := caller(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Authentication required")
	}
	requestID, err := requestIDParam(c)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid request ID")
	}

	view, err := h.requestUC.AcceptRequest(c.Request().Context(), requestID, user.ID)
	if err != nil {
		return h.fail(c, "Failed to accept request", requestID, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Request accepted", view)
}

// MarkArrived records that the assigned provider reached the customer
func (h *RequestHandler) MarkArrived(c echo.Context) error {
	middleware.SetTransactionName(c.Request().Context(), "Requests.MarkArrived")

	user, ok := caller(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Authentication required")
	}
	requestID, err := requestIDParam(c)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid request ID")
	}

	view, err := h.requestUC.MarkArrived(c.Request().Context(), requestID, user.ID)
	if err != nil {
		return h.fail(c, "Failed to mark arrival", requestID, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Marked as arrived, ask the customer for the security code", view)
}

// CancelRequest cancels a request on behalf of one of its participants
func (h *RequestHandler) CancelRequest(c echo.Context) error {
	middleware.SetTransactionName(c.Request().Context(), "Requests.CancelRequest")

	user, ok := caller(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Authentication required")
	}
	requestID, err := requestIDParam(c)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid request ID")
	}

	var req models.CancelRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	view, err := h.requestUC.CancelRequest(c.Request().Context(), requestID, user, req.Reason)
	if err != nil {
		return h.fail(c, "Failed to cancel request", requestID, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Request cancelled", view)
}

// VerifyOTP checks the security code exchanged on site
func (h *RequestHandler) VerifyOTP(c echo.Context) error {
	middleware.SetTransactionName(c.Request().Context(), "Requests.VerifyOTP")

	user, ok := caller(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Authentication required")
	}
	requestID, err := requestIDParam(c)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid request ID")
	}

	var req models.VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	result, err := h.requestUC.VerifyOTP(c.Request().Context(), requestID, user, req.Code)
	if err != nil {
		return h.fail(c, "Security code verification failed", requestID, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, result.Message, result)
}

// UploadPhoto attaches a picture of the problem to the caller's request
func (h *RequestHandler) UploadPhoto(c echo.Context) error {
	middleware.SetTransactionName(c.Request().Context(), "Requests.UploadPhoto")

	user, ok := caller(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Authentication required")
	}
	requestID, err := requestIDParam(c)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid request ID")
	}

	file, err := c.FormFile("photo")
	if err != nil {
		return utils.BadRequestResponse(c, "A photo file is required")
	}
	if file.Size > maxPhotoSize {
		return utils.BadRequestResponse(c, "Photo must be smaller than 10 MB")
	}
	src, err := file.Open()
	if err != nil {
		return utils.BadRequestResponse(c, "Unable to read the photo")
	}
	defer src.Close()

	view, err := h.requestUC.UploadPhoto(c.Request().Context(), requestID, user.ID, src, file.Filename)
	if err != nil {
		return h.fail(c, "Failed to upload photo", requestID, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Photo added", view)
}

// UpdateRequest changes the address or the technician of a request
func (h *RequestHandler) UpdateRequest(c echo.Context) error {
	middleware.SetTransactionName(c.Request().Context(), "Requests.UpdateRequest")

	user, ok := caller(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Authentication required")
	}
	requestID, err := requestIDParam(c)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid request ID")
	}

	var patch models.RequestPatch
	if err := c.Bind(&patch); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	view, err := h.requestUC.UpdateRequest(c.Request().Context(), requestID, user, patch)
	if err != nil {
		return h.fail(c, "Failed to update request", requestID, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Request updated", view)
}

// ActiveRequest returns the open request of the caller
func (h *RequestHandler) ActiveRequest(c echo.Context) error {
	middleware.SetTransactionName(c.Request().Context(), "Requests.ActiveRequest")

	user, ok := caller(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Authentication required")
	}

	view, err := h.requestUC.ActiveRequest(c.Request().Context(), user)
	if err != nil {
		return h.fail(c, "Failed to load active request", uuid.Nil, err)
	}
	if view == nil {
		return utils.SuccessResponse(c, http.StatusOK, "No open request", nil)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Open request found", view)
}

// History lists the finished requests of the caller
func (h *RequestHandler) History(c echo.Context) error {
	middleware.SetTransactionName(c.Request().Context(), "Requests.History")

	user, ok := caller(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Authentication required")
	}

	views, err := h.requestUC.History(c.Request().Context(), user)
	if err != nil {
		return h.fail(c, "Failed to load request history", uuid.Nil, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Request history", views)
}

// Reconcile returns the authoritative state of a request
func (h *RequestHandler) Reconcile(c echo.Context) error {
	middleware.SetTransactionName(c.Request().Context(), "Requests.Reconcile")

	user, ok := caller(c)
	if !ok {
		return utils.UnauthorizedResponse(c, "Authentication required")
	}
	requestID, err := requestIDParam(c)
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid request ID")
	}

	view, err := h.requestUC.Reconcile(c.Request().Context(), requestID, user.ID)
	if err != nil {
		return h.fail(c, "Failed to reconcile request", requestID, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Request state", view)
}
