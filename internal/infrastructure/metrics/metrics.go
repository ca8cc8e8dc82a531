// Package metrics expone contadores Prometheus del inventario y del servidor HTTP.
package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/inventory-dashboard/internal/application/inventory"
)

// Metrics colectores registrados en un registry propio (no el global).
type Metrics struct {
	registry *prometheus.Registry

	MovementsTotal      *prometheus.CounterVec
	MovementUnitsTotal  *prometheus.CounterVec
	StockLevel          *prometheus.GaugeVec
	LowStockTransitions prometheus.Counter
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestsTotal   *prometheus.CounterVec
}

// New crea y registra los colectores.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		MovementsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stock_movements_total",
			Help: "Total number of stock movements appended to the ledger",
		}, []string{"kind"}),
		MovementUnitsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "stock_movement_units_total",
			Help: "Absolute units moved, by movement kind",
		}, []string{"kind"}),
		StockLevel: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "stock_level_units",
			Help: "Clamped stock level after the last movement of each SKU",
		}, []string{"sku"}),
		LowStockTransitions: factory.NewCounter(prometheus.CounterOpts{
			Name: "stock_low_movements_total",
			Help: "Movements that left their product at or below its reorder point",
		}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
	}
}

// Registry registry con los colectores (tests y handler).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

var _ inventory.MovementListener = (*Metrics)(nil)

// OnMovement actualiza contadores y el gauge del SKU afectado.
func (m *Metrics) OnMovement(_ context.Context, evt inventory.MovementEvent) error {
	kind := string(evt.Movement.Kind)
	units := evt.Movement.Quantity
	if units < 0 {
		units = -units
	}
	m.MovementsTotal.WithLabelValues(kind).Inc()
	m.MovementUnitsTotal.WithLabelValues(kind).Add(float64(units))
	m.StockLevel.WithLabelValues(evt.SKU).Set(float64(evt.Level))
	if evt.LowStock {
		m.LowStockTransitions.Inc()
	}
	return nil
}

// Handler endpoint /metrics para fiber.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// Middleware mide latencia y cuenta requests por ruta registrada (no por URL cruda).
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		path := c.Route().Path
		labels := []string{c.Method(), path, strconv.Itoa(status)}
		m.HTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		m.HTTPRequestsTotal.WithLabelValues(labels...).Inc()
		return err
	}
}
