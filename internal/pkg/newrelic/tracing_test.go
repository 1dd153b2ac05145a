package newrelic

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/piresc/roadassist/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitNewRelic_DisabledReturnsNil(t *testing.T) {
	cfg := &models.Config{NewRelic: models.NewRelicConfig{Enabled: false, LicenseKey: "x"}}
	assert.Nil(t, InitNewRelic(cfg))

	cfg = &models.Config{NewRelic: models.NewRelicConfig{Enabled: true}}
	assert.Nil(t, InitNewRelic(cfg))
}

func TestHelpersWithoutTransaction(t *testing.T) {
	ctx := context.Background()

	got, err := TraceUseCaseWithReturn(ctx, "Search", func(ctx context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, got)

	boom := errors.New("boom")
	assert.ErrorIs(t, TraceUseCase(ctx, "Create", func(context.Context) error { return boom }), boom)
	assert.ErrorIs(t, WithExternalSegment(ctx, "stripe", "PaymentIntents.New", "https://api.stripe.com", func() error { return boom }), boom)
	assert.Nil(t, DatastoreSegment(ctx, "Postgres", "service_requests", "SELECT"))

	bgCtx, txn := StartBackground(ctx, nil, "ws/join_request")
	assert.Nil(t, txn)
	assert.Equal(t, ctx, bgCtx)
}

func TestInstrumentHTTPRequestWithoutTransaction(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	resp, err := InstrumentHTTPRequest(context.Background(), req, func() (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusAccepted}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
}

func TestMiddlewareWithoutApp(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	err := Middleware(nil)(func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Nil(t, FromEchoContext(c))
}
