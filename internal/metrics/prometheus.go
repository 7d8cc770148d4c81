package metrics

import (
	"net/http"
	"strconv"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

type promRecorder struct {
	opTotal    *prom.CounterVec
	opSeconds  *prom.HistogramVec
	graphNodes prom.Histogram
	graphEdges prom.Histogram
}

func (p *promRecorder) IncOpTotal(op string, success bool) {
	p.opTotal.WithLabelValues(op, strconv.FormatBool(success)).Inc()
}

func (p *promRecorder) ObserveOpSeconds(op string, success bool, seconds float64) {
	p.opSeconds.WithLabelValues(op, strconv.FormatBool(success)).Observe(seconds)
}

func (p *promRecorder) ObserveGraphSize(nodes, edges int) {
	p.graphNodes.Observe(float64(nodes))
	p.graphEdges.Observe(float64(edges))
}

// EnablePrometheus installs a Prometheus recorder on a fresh registry and
// returns the handler that serves it.
func EnablePrometheus() http.Handler {
	registry := prom.NewRegistry()
	sizeBuckets := prom.ExponentialBuckets(1, 2, 12)
	p := &promRecorder{
		opTotal: prom.NewCounterVec(prom.CounterOpts{
			Name: "ghrank_ops_total",
			Help: "Total number of operations",
		}, []string{"op", "success"}),
		opSeconds: prom.NewHistogramVec(prom.HistogramOpts{
			Name:    "ghrank_op_seconds",
			Help:    "Operation duration in seconds",
			Buckets: prom.DefBuckets,
		}, []string{"op", "success"}),
		graphNodes: prom.NewHistogram(prom.HistogramOpts{
			Name:    "ghrank_graph_nodes",
			Help:    "Number of nodes in a ranked graph",
			Buckets: sizeBuckets,
		}),
		graphEdges: prom.NewHistogram(prom.HistogramOpts{
			Name:    "ghrank_graph_edges",
			Help:    "Number of edges in a ranked graph",
			Buckets: sizeBuckets,
		}),
	}

	registry.MustRegister(p.opTotal, p.opSeconds, p.graphNodes, p.graphEdges)
	SetRecorder(p)

	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
