package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "shelfd"

// IncrementalCounter counts events by label values.
type IncrementalCounter interface {
	Increment(val ...string)
}

// Counter is a prometheus counter vector registered under the shelfd namespace.
type Counter struct {
	Name string
	Help string

	vec *prometheus.CounterVec
}

// Increment adds one to the series identified by the label values.
func (c *Counter) Increment(val ...string) {
	c.vec.WithLabelValues(val...).Inc()
}

// Vec exposes the underlying vector, mainly for tests.
func (c *Counter) Vec() *prometheus.CounterVec {
	return c.vec
}

// NewCounterWithRegistry creates a counter and registers it with reg.
func NewCounterWithRegistry(reg prometheus.Registerer, name, help string, labels ...string) *Counter {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, labels)

	reg.MustRegister(counter)

	return &Counter{
		Name: name,
		Help: help,
		vec:  counter,
	}
}

// Pages groups the counters recorded while rendering pages.
type Pages struct {
	// Renders is labeled by template and HTTP status.
	Renders *Counter

	// Sidebars is labeled by layout (simple or full) and override mode.
	Sidebars *Counter
}

// NewPages registers the page counters with reg.
func NewPages(reg prometheus.Registerer) *Pages {
	return &Pages{
		Renders: NewCounterWithRegistry(reg, "page_renders_total",
			"Rendered pages by template and response status.", "template", "status"),
		Sidebars: NewCounterWithRegistry(reg, "sidebar_builds_total",
			"Built sidebars by layout and override mode.", "layout", "override"),
	}
}

// GetHandlerForRegistry returns an HTTP handler for serving Prometheus metrics from a custom registry.
func GetHandlerForRegistry(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
