package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistration(t *testing.T) {
	// init() registered everything; registering again must fail
	err := prometheus.DefaultRegisterer.Register(PageRendersTotal)
	var already prometheus.AlreadyRegisteredError
	assert.ErrorAs(t, err, &already)
}

func TestPageRendersCounter(t *testing.T) {
	before := testutil.ToFloat64(PageRendersTotal.WithLabelValues("home", "200"))
	PageRendersTotal.WithLabelValues("home", "200").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(PageRendersTotal.WithLabelValues("home", "200")))
}

func TestSlowGauge(t *testing.T) {
	before := testutil.ToFloat64(SlowStreamsActive)
	SlowStreamsActive.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(SlowStreamsActive))
	SlowStreamsActive.Dec()
	assert.Equal(t, before, testutil.ToFloat64(SlowStreamsActive))
}

func TestHandlerExposesMetrics(t *testing.T) {
	SlowOutcomesTotal.WithLabelValues(OutcomeRevealed).Inc()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "islands_slow_component_outcomes_total")
	assert.Contains(t, string(body), `outcome="revealed"`)
}
