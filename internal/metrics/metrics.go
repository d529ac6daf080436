package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry groups the dashboard's collectors on a private registry so tests
// can build as many as they like.
type Registry struct {
	reg            *prometheus.Registry
	ProductsAdded  prometheus.Counter
	OrdersCreated  prometheus.Counter
	OrdersRejected *prometheus.CounterVec
	OrdersDeleted  prometheus.Counter
	StockAvailable prometheus.Gauge
	RevenuePaid    prometheus.Gauge
	PersistErrors  prometheus.Counter
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	added := prometheus.NewCounter(prometheus.CounterOpts{Name: "agripoultry_products_added_total"})
	created := prometheus.NewCounter(prometheus.CounterOpts{Name: "agripoultry_orders_created_total"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "agripoultry_orders_rejected_total"}, []string{"reason"})
	deleted := prometheus.NewCounter(prometheus.CounterOpts{Name: "agripoultry_orders_deleted_total"})
	stock := prometheus.NewGauge(prometheus.GaugeOpts{Name: "agripoultry_stock_available"})
	revenue := prometheus.NewGauge(prometheus.GaugeOpts{Name: "agripoultry_revenue_paid_fcfa"})
	persistErr := prometheus.NewCounter(prometheus.CounterOpts{Name: "agripoultry_persist_errors_total"})
	r.MustRegister(added, created, rejected, deleted, stock, revenue, persistErr)
	return &Registry{
		reg:            r,
		ProductsAdded:  added,
		OrdersCreated:  created,
		OrdersRejected: rejected,
		OrdersDeleted:  deleted,
		StockAvailable: stock,
		RevenuePaid:    revenue,
		PersistErrors:  persistErr,
	}
}

func (m *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Gatherer exposes the registry for tests.
func (m *Registry) Gatherer() prometheus.Gatherer { return m.reg }
