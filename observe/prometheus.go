package observe

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusObserver exposes call and attempt counters and latency
// histograms, labeled by method, provider, and outcome.
type PrometheusObserver struct {
	BaseObserver

	calls          *prometheus.CounterVec
	callLatency    *prometheus.HistogramVec
	attempts       *prometheus.CounterVec
	attemptLatency *prometheus.HistogramVec
}

// NewPrometheusObserver builds a PrometheusObserver and registers its
// collectors against reg. A nil reg registers against the default
// registerer.
func NewPrometheusObserver(reg prometheus.Registerer) *PrometheusObserver {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	obs := &PrometheusObserver{
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hedgedrpc_calls_total",
				Help: "Total number of hedged calls.",
			},
			[]string{"method", "result"},
		),
		callLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hedgedrpc_call_latency_seconds",
				Help:    "End-to-end latency per hedged call.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "result"},
		),
		attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hedgedrpc_attempts_total",
				Help: "Total number of provider attempts.",
			},
			[]string{"method", "provider", "hedge", "outcome"},
		),
		attemptLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hedgedrpc_attempt_latency_seconds",
				Help:    "Latency per provider attempt.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "provider", "hedge"},
		),
	}

	reg.MustRegister(obs.calls, obs.callLatency, obs.attempts, obs.attemptLatency)
	return obs
}

func (o *PrometheusObserver) OnAttempt(ctx context.Context, method string, rec AttemptRecord) {
	hedge := boolLabel(rec.IsHedge)
	outcome := "success"
	if rec.Err != nil {
		outcome = "error"
	}
	if o.attempts != nil {
		o.attempts.WithLabelValues(method, string(rec.Provider), hedge, outcome).Inc()
	}
	if o.attemptLatency != nil && !rec.StartTime.IsZero() && !rec.EndTime.IsZero() {
		o.attemptLatency.WithLabelValues(method, string(rec.Provider), hedge).Observe(rec.EndTime.Sub(rec.StartTime).Seconds())
	}
}

func (o *PrometheusObserver) OnSuccess(ctx context.Context, method string, tl Timeline) {
	o.observeCall(method, tl, "success")
}

func (o *PrometheusObserver) OnFailure(ctx context.Context, method string, tl Timeline) {
	o.observeCall(method, tl, "failure")
}

func (o *PrometheusObserver) observeCall(method string, tl Timeline, result string) {
	if o.calls != nil {
		o.calls.WithLabelValues(method, result).Inc()
	}
	if o.callLatency != nil && !tl.Start.IsZero() && !tl.End.IsZero() {
		o.callLatency.WithLabelValues(method, result).Observe(tl.End.Sub(tl.Start).Seconds())
	}
}

func boolLabel(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
