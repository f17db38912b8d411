package monitoring

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRun(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveRun(OutcomeSuccess, 20*time.Millisecond, 3, 1)
	m.ObserveRun(OutcomeError, time.Second, 0, 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runs.WithLabelValues(OutcomeError)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.rankedSpecimens))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.excluded), "error runs leave the gauges alone")
}

func TestAddOutliers(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.AddOutliers("hold", 2)
	m.AddOutliers("hold", 0)
	m.AddOutliers("stack-rect", 1)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.outliersRemoved.WithLabelValues("hold")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.outliersRemoved.WithLabelValues("stack-rect")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRun(OutcomeSuccess, time.Millisecond, 1, 0)
		m.AddOutliers("drop", 1)
	})
}

func TestAdminRouter(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg).ObserveRun(OutcomeSuccess, time.Millisecond, 2, 0)

	srv := httptest.NewServer(NewAdminRouter(reg))
	defer srv.Close()

	get := func(path string) (int, string) {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, string(body)
	}

	code, body := get("/healthz")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok\n", body)

	code, body = get("/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `amphorank_ranking_runs_total{outcome="success"} 1`)
	assert.Contains(t, body, "amphorank_ranked_specimens 2")

	code, _ = get("/debug/pprof/")
	assert.Equal(t, http.StatusOK, code)
}
