package metrics

import (
	"errors"
	"net/http"
	"relief-dispatch-service/internal/domain"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PromRecorder implements ports.DispatchRecorder with Prometheus collectors.
type PromRecorder struct {
	runs      *prometheus.CounterVec
	delivered *prometheus.CounterVec
	runTime   *prometheus.HistogramVec
	runLoad   *prometheus.HistogramVec
	plans     *prometheus.CounterVec
	unserved  prometheus.Gauge
	planTime  prometheus.Histogram

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// NewPromRecorder registers dispatch and HTTP metrics on reg. A nil reg
// gets a fresh registry carrying the Go and process collectors.
func NewPromRecorder(reg *prometheus.Registry) (*PromRecorder, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
		if err := reg.Register(collectors.NewGoCollector()); err != nil {
			return nil, err
		}
		if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
			return nil, err
		}
	}

	r := &PromRecorder{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_runs_total",
			Help: "Vehicle runs planned.",
		}, []string{"vehicle"}),
		delivered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_units_delivered_total",
			Help: "Units of demand delivered by planned runs.",
		}, []string{"vehicle"}),
		runTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dispatch_run_travel_minutes",
			Help:    "Total travel time of a planned run in minutes.",
			Buckets: []float64{5, 10, 20, 30, 60, 90, 120, 240, 480},
		}, []string{"vehicle"}),
		runLoad: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dispatch_run_load_units",
			Help:    "Load carried on a planned run.",
			Buckets: prometheus.LinearBuckets(5, 5, 10),
		}, []string{"vehicle"}),
		plans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_plans_total",
			Help: "Plans computed by completion outcome.",
		}, []string{"complete"}),
		unserved: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dispatch_last_plan_unserved_locations",
			Help: "Locations left unserved by the most recent plan.",
		}),
		planTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dispatch_plan_duration_seconds",
			Help:    "Wall time spent computing a plan.",
			Buckets: prometheus.DefBuckets,
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		gatherer: reg,
	}

	var err error
	if r.runs, err = register(reg, r.runs); err != nil {
		return nil, err
	}
	if r.delivered, err = register(reg, r.delivered); err != nil {
		return nil, err
	}
	if r.runTime, err = register(reg, r.runTime); err != nil {
		return nil, err
	}
	if r.runLoad, err = register(reg, r.runLoad); err != nil {
		return nil, err
	}
	if r.plans, err = register(reg, r.plans); err != nil {
		return nil, err
	}
	if r.unserved, err = register(reg, r.unserved); err != nil {
		return nil, err
	}
	if r.planTime, err = register(reg, r.planTime); err != nil {
		return nil, err
	}
	if r.httpRequests, err = register(reg, r.httpRequests); err != nil {
		return nil, err
	}
	if r.httpDuration, err = register(reg, r.httpDuration); err != nil {
		return nil, err
	}

	return r, nil
}

// register adds c to reg, handing back the collector already registered
// under the same descriptor when there is one.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (r *PromRecorder) RecordRun(run domain.Run) {
	r.runs.WithLabelValues(run.Vehicle).Inc()
	r.delivered.WithLabelValues(run.Vehicle).Add(float64(run.Load))
	r.runTime.WithLabelValues(run.Vehicle).Observe(run.TotalTime)
	r.runLoad.WithLabelValues(run.Vehicle).Observe(float64(run.Load))
}

func (r *PromRecorder) RecordPlan(report domain.DeliveryReport, elapsed time.Duration) {
	r.plans.WithLabelValues(strconv.FormatBool(report.Complete)).Inc()
	r.unserved.Set(float64(len(report.Unserved)))
	r.planTime.Observe(elapsed.Seconds())
}

// ObserveHTTP records one served request.
func (r *PromRecorder) ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	code := strconv.Itoa(status)
	r.httpRequests.WithLabelValues(method, path, code).Inc()
	r.httpDuration.WithLabelValues(method, path, code).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (r *PromRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}
