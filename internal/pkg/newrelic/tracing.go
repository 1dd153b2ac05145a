package newrelic

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// FromEchoContext extracts the transaction started by nrecho
func FromEchoContext(c echo.Context) *newrelic.Transaction {
	return nrecho.FromContext(c)
}

// FromContext extracts the transaction carried by ctx
func FromContext(ctx context.Context) *newrelic.Transaction {
	return newrelic.FromContext(ctx)
}

// Middleware returns the nrecho middleware, or a pass-through when app is nil
func Middleware(app *newrelic.Application) echo.MiddlewareFunc {
	if app == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return nrecho.Middleware(app)
}

// StartBackground opens a transaction for work that has no HTTP request,
// such as websocket events and queue consumers. End must be called.
func StartBackground(ctx context.Context, app *newrelic.Application, name string) (context.Context, *newrelic.Transaction) {
	if app == nil {
		return ctx, nil
	}
	txn := app.StartTransaction(name)
	return newrelic.NewContext(ctx, txn), txn
}

// TraceUseCase wraps a use case method in a segment
func TraceUseCase(ctx context.Context, name string, fn func(context.Context) error) error {
	if txn := FromContext(ctx); txn != nil {
		defer txn.StartSegment(name).End()
	}
	return fn(ctx)
}

// TraceUseCaseWithReturn wraps a use case method that returns a value
func TraceUseCaseWithReturn[T any](ctx context.Context, name string, fn func(context.Context) (T, error)) (T, error) {
	if txn := FromContext(ctx); txn != nil {
		defer txn.StartSegment(name).End()
	}
	return fn(ctx)
}

// InstrumentHTTPRequest records an outgoing HTTP call as an external segment
func InstrumentHTTPRequest(ctx context.Context, req *http.Request, do func() (*http.Response, error)) (*http.Response, error) {
	txn := FromContext(ctx)
	if txn == nil {
		return do()
	}
	segment := newrelic.StartExternalSegment(txn, req)
	defer segment.End()

	resp, err := do()
	if resp != nil {
		segment.Response = resp
	}
	return resp, err
}

// WithExternalSegment records an SDK call to a third party, e.g. stripe or cloudinary
func WithExternalSegment(ctx context.Context, library, operation, url string, fn func() error) error {
	txn := FromContext(ctx)
	if txn == nil {
		return fn()
	}

	segment := &newrelic.ExternalSegment{
		StartTime: txn.StartSegmentNow(),
		URL:       url,
		Procedure: operation,
		Library:   library,
	}
	defer segment.End()

	err := fn()
	if err != nil {
		txn.NoticeError(err)
	}
	return err
}

// DatastoreSegment starts a datastore segment, nil-safe on End
func DatastoreSegment(ctx context.Context, product newrelic.DatastoreProduct, collection, operation string) *newrelic.DatastoreSegment {
	txn := FromContext(ctx)
	if txn == nil {
		return nil
	}
	return &newrelic.DatastoreSegment{
		StartTime:  txn.StartSegmentNow(),
		Product:    product,
		Collection: collection,
		Operation:  operation,
	}
}
