package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorCounts(t *testing.T) {
	c := NewCollector("test")

	c.GridQuery("Keywords", OutcomeOK)
	c.GridQuery("Keywords", OutcomeOK)
	c.GridQuery("Products", OutcomeError)
	c.SourceFailure("fetch_ads")
	c.TrendLookup(OutcomeError)
	c.Export("csv", OutcomeOK)
	c.ObserveRequest("/api/data", time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(c.gridQueries.WithLabelValues("Keywords", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.gridQueries.WithLabelValues("Products", OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.sourceFailures.WithLabelValues("fetch_ads")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.trendLookups.WithLabelValues(OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.exportsTotal.WithLabelValues("csv", OutcomeOK)))
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.GridQuery("Keywords", OutcomeOK)
		c.SourceFailure("x")
		c.TrendLookup(OutcomeOK)
		c.Export("excel", OutcomeOK)
		c.ObserveRequest("/", time.Now())
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := NewCollector("exposed")
	c.TrendLookup(OutcomeOK)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, 200, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `exposed_trend_lookups_total{outcome="ok"} 1`)
}

func TestDefaultIsShared(t *testing.T) {
	assert.Same(t, Default(), Default())
}
