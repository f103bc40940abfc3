package metrics

import (
	"net/http"
	"net/http/httptest"
	"relief-dispatch-service/internal/domain"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromRecorderRecordsRunsAndPlans(t *testing.T) {
	r, err := NewPromRecorder(prometheus.NewRegistry())
	require.NoError(t, err)

	r.RecordRun(domain.Run{Vehicle: "Truck 1", Load: 5, TotalTime: 12})
	r.RecordRun(domain.Run{Vehicle: "Truck 1", Load: 3, TotalTime: 7})
	r.RecordRun(domain.Run{Vehicle: "Truck 2", Load: 4, TotalTime: 9})
	r.RecordPlan(domain.DeliveryReport{Complete: false, Unserved: []int{4, 9}}, 40*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.runs.WithLabelValues("Truck 1")))
	assert.Equal(t, 8.0, testutil.ToFloat64(r.delivered.WithLabelValues("Truck 1")))
	assert.Equal(t, 4.0, testutil.ToFloat64(r.delivered.WithLabelValues("Truck 2")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.plans.WithLabelValues("false")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.unserved))
}

func TestPromRecorderReusesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromRecorder(reg)
	require.NoError(t, err)
	second, err := NewPromRecorder(reg)
	require.NoError(t, err)

	second.RecordRun(domain.Run{Vehicle: "Truck 1", Load: 2})
	assert.Equal(t, 1.0, testutil.ToFloat64(first.runs.WithLabelValues("Truck 1")))
}

func TestPromRecorderHandler(t *testing.T) {
	r, err := NewPromRecorder(nil)
	require.NoError(t, err)
	r.ObserveHTTP(http.MethodGet, "/health", http.StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `http_requests_total{method="GET",path="/health",status="200"} 1`), body)
	assert.Contains(t, body, "go_goroutines")
}
