package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusHooks implements GraphHooks and StoreHooks with Prometheus
// collectors.
type PrometheusHooks struct {
	evaluations  prometheus.Counter
	evalDuration prometheus.Histogram
	applies      *prometheus.CounterVec
	applyLatency *prometheus.HistogramVec
	nodes        *prometheus.GaugeVec
	mutations    *prometheus.CounterVec
	storeOps     *prometheus.CounterVec
	storeBytes   *prometheus.CounterVec
}

// NewPrometheusHooks creates the collectors and registers them with reg.
// It panics if registration fails, like prometheus.MustRegister.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	h := &PrometheusHooks{
		evaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "xformgraph_evaluations_total",
			Help: "Total number of graph evaluation passes",
		}),
		evalDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "xformgraph_evaluation_duration_seconds",
			Help:    "Duration of graph evaluation passes",
			Buckets: prometheus.DefBuckets,
		}),
		applies: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xformgraph_applies_total",
				Help: "Total number of xform applies by type and status code",
			},
			[]string{"type", "status"},
		),
		applyLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "xformgraph_apply_duration_seconds",
				Help:    "Duration of a single xform apply",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"type"},
		),
		nodes: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "xformgraph_last_evaluation_nodes",
				Help: "Node outcomes of the most recent evaluation pass",
			},
			[]string{"outcome"},
		),
		mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xformgraph_mutations_total",
				Help: "Total number of structural graph mutations",
			},
			[]string{"op", "result"},
		),
		storeOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xformgraph_store_operations_total",
				Help: "Graph library store operations by backend and outcome",
			},
			[]string{"backend", "op"},
		),
		storeBytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "xformgraph_store_written_bytes_total",
				Help: "Bytes written to the graph library store",
			},
			[]string{"backend"},
		),
	}
	reg.MustRegister(
		h.evaluations, h.evalDuration, h.applies, h.applyLatency,
		h.nodes, h.mutations, h.storeOps, h.storeBytes,
	)
	return h
}

func (h *PrometheusHooks) OnEvaluateStart(context.Context, string, int) {
	h.evaluations.Inc()
}

func (h *PrometheusHooks) OnApply(_ context.Context, _ string, xformType string, status int, d time.Duration) {
	h.applies.WithLabelValues(xformType, strconv.Itoa(status)).Inc()
	h.applyLatency.WithLabelValues(xformType).Observe(d.Seconds())
}

func (h *PrometheusHooks) OnEvaluateComplete(_ context.Context, _ string, applied, failed, skipped int, d time.Duration) {
	h.evalDuration.Observe(d.Seconds())
	h.nodes.WithLabelValues("applied").Set(float64(applied))
	h.nodes.WithLabelValues("failed").Set(float64(failed))
	h.nodes.WithLabelValues("skipped").Set(float64(skipped))
}

func (h *PrometheusHooks) OnMutation(_ context.Context, op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	h.mutations.WithLabelValues(op, result).Inc()
}

func (h *PrometheusHooks) OnStoreHit(_ context.Context, backend string) {
	h.storeOps.WithLabelValues(backend, "hit").Inc()
}

func (h *PrometheusHooks) OnStoreMiss(_ context.Context, backend string) {
	h.storeOps.WithLabelValues(backend, "miss").Inc()
}

func (h *PrometheusHooks) OnStoreSet(_ context.Context, backend string, size int) {
	h.storeOps.WithLabelValues(backend, "set").Inc()
	h.storeBytes.WithLabelValues(backend).Add(float64(size))
}
