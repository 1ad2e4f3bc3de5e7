package observability_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codegraft/codegraft/internal/observability"
)

func TestPrometheusHandler_ServesMetrics(t *testing.T) {
	t.Parallel()

	handler, _, err := observability.PrometheusHandler()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	// Prometheus exposition format uses text/plain with version parameter.
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
}

func TestPrometheusHandler_ScrapesMeterInstruments(t *testing.T) {
	t.Parallel()

	handler, meter, err := observability.PrometheusHandler()
	require.NoError(t, err)

	red, err := observability.NewREDMetrics(meter)
	require.NoError(t, err)

	red.RecordRequest(context.Background(), "graft_integrate", "ok", 0)

	req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	// Instruments created from the returned meter must appear in scrapes.
	assert.Contains(t, rec.Body.String(), "codegraft_requests_total")
}
