// Package observability exposes the layout as Prometheus metrics. The
// collector is both a registered view of the layout and an operation
// observer of the Engine.
package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/piwi3910/ContainerPlan/internal/layout"
)

// LayoutCollector bundles the planner's Prometheus metrics.
type LayoutCollector struct {
	gatherer prometheus.Gatherer

	Operations *prometheus.CounterVec

	Items      prometheus.Gauge
	Walls      prometheus.Gauge
	Windows    prometheus.Gauge
	TotalPrice prometheus.Gauge
	FloorUsage prometheus.Gauge
	Version    prometheus.Gauge
}

// NewLayoutCollector registers the layout metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewLayoutCollector(reg prometheus.Registerer) (*LayoutCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	ops, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "layout_operations_total",
		Help: "Total number of layout operations, labeled by operation and result.",
	}, []string{"op", "result"}), "layout_operations_total")
	if err != nil {
		return nil, err
	}

	gauges := []struct {
		name string
		help string
		dst  *prometheus.Gauge
	}{
		{"layout_items", "Current number of placed items.", nil},
		{"layout_walls", "Current number of placed walls.", nil},
		{"layout_windows", "Current number of placed windows.", nil},
		{"layout_total_price", "Running price of everything placed.", nil},
		{"layout_floor_usage_percent", "Share of the interior floor covered by items.", nil},
		{"layout_version", "Version of the latest layout snapshot.", nil},
	}
	c := &LayoutCollector{gatherer: gatherer, Operations: ops}
	gauges[0].dst = &c.Items
	gauges[1].dst = &c.Walls
	gauges[2].dst = &c.Windows
	gauges[3].dst = &c.TotalPrice
	gauges[4].dst = &c.FloorUsage
	gauges[5].dst = &c.Version

	for _, g := range gauges {
		registered, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
			Name: g.name,
			Help: g.help,
		}), g.name)
		if err != nil {
			return nil, err
		}
		*g.dst = registered
	}
	return c, nil
}

// Sync updates the gauges from a layout snapshot.
func (c *LayoutCollector) Sync(s layout.Snapshot) {
	if c == nil {
		return
	}
	counts := s.Layout.Counts()
	c.Items.Set(float64(counts.Items))
	c.Walls.Set(float64(counts.Walls))
	c.Windows.Set(float64(counts.Windows))
	c.TotalPrice.Set(s.TotalPrice())
	c.FloorUsage.Set(s.Layout.FloorUsage())
	c.Version.Set(float64(s.Version))
}

// ObserveOp counts one Engine operation under its result code.
func (c *LayoutCollector) ObserveOp(op string, err error) {
	if c == nil || c.Operations == nil {
		return
	}
	c.Operations.WithLabelValues(op, layout.ErrorCode(err)).Inc()
}

// Handler exposes a ready-to-use /metrics handler.
func (c *LayoutCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

var (
	_ layout.View       = (*LayoutCollector)(nil)
	_ layout.OpObserver = (*LayoutCollector)(nil)
)

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
