// Package apperrors defines the failure kinds returned across the public
// operation boundary of the dispatch service.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports bad input shape or values.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Message)
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// InvalidTransitionError reports a lifecycle guard failure. State is unchanged.
type InvalidTransitionError struct {
	From   string
	Event  string
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s a request in status %s: %s", e.Event, e.From, e.Reason)
}

func NewInvalidTransition(from, event, reason string) error {
	return &InvalidTransitionError{From: from, Event: event, Reason: reason}
}

// OtpMismatchError reports a wrong security code. The caller may retry.
type OtpMismatchError struct{}

func (e *OtpMismatchError) Error() string {
	return "security code does not match, ask the customer for the code shown in their app and try again"
}

// InvalidBillError reports a bill that cannot be sent.
type InvalidBillError struct {
	Reason string
}

func (e *InvalidBillError) Error() string {
	return fmt.Sprintf("invalid bill: %s", e.Reason)
}

func NewInvalidBill(reason string) error {
	return &InvalidBillError{Reason: reason}
}

// PaymentVerificationError reports that the payment provider disagrees with
// what the client claimed about a payment.
type PaymentVerificationError struct {
	Field    string
	Reported string
	Verified string
}

func (e *PaymentVerificationError) Error() string {
	return fmt.Sprintf("payment could not be verified: %s reported as %q but provider says %q, check the payment and retry",
		e.Field, e.Reported, e.Verified)
}

// StaleTransitionError reports a concurrent modification detected while an
// external call was in flight. The caller should refetch and retry.
type StaleTransitionError struct {
	RequestID string
}

func (e *StaleTransitionError) Error() string {
	return fmt.Sprintf("request %s changed while the operation was in progress, refresh and try again", e.RequestID)
}

func NewStaleTransition(id string) error {
	return &StaleTransitionError{RequestID: id}
}

// NotFoundError reports an unknown entity id.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func NewNotFound(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// ExternalServiceError reports an unreachable or timed out collaborator.
// Request state is untouched and the operation can be retried.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s is unavailable, please retry shortly: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

func NewExternalService(service string, err error) error {
	return &ExternalServiceError{Service: service, Err: err}
}

// HTTPStatus maps an error kind to the status code returned to clients.
// Unknown errors map to 500.
func HTTPStatus(err error) int {
	var (
		validation *ValidationError
		transition *InvalidTransitionError
		otp        *OtpMismatchError
		bill       *InvalidBillError
		payment    *PaymentVerificationError
		stale      *StaleTransitionError
		notFound   *NotFoundError
		external   *ExternalServiceError
	)

	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &transition), errors.As(err, &stale):
		return http.StatusConflict
	case errors.As(err, &otp), errors.As(err, &bill):
		return http.StatusUnprocessableEntity
	case errors.As(err, &payment):
		return http.StatusPaymentRequired
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &external):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// IsKnown reports whether err is one of the kinds above.
func IsKnown(err error) bool {
	return HTTPStatus(err) != http.StatusInternalServerError
}
