package mcp

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Tool call outcomes recorded in metrics.
const (
	outcomeOK    = "ok"
	outcomeError = "error"
)

type toolMetrics struct {
	registry *prometheus.Registry
	calls    *prometheus.CounterVec
}

func newToolMetrics() *toolMetrics {
	registry := prometheus.NewRegistry()
	calls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sanity_mcp",
		Name:      "tool_calls_total",
		Help:      "Tool calls handled by the gateway, by tool and outcome.",
	}, []string{"tool", "outcome"})
	registry.MustRegister(calls)
	return &toolMetrics{registry: registry, calls: calls}
}

func (m *toolMetrics) observe(tool, outcome string) {
	m.calls.WithLabelValues(tool, outcome).Inc()
}

func (m *toolMetrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
