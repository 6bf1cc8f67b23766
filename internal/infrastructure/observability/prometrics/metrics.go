package prometrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contadores e histogramas Prometheus del servicio de pedidos.
type Metrics struct {
	OrdersPlaced       prometheus.Counter
	OrdersRejected     *prometheus.CounterVec
	LowStockAlertsSent prometheus.Counter
	PlaceOrderSeconds  prometheus.Histogram
}

// New registra las métricas en el registry indicado (nil = registry por defecto).
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		OrdersPlaced: factory.NewCounter(prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Pedidos confirmados.",
		}),
		OrdersRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "orders_rejected_total",
			Help: "Pedidos rechazados, por motivo.",
		}, []string{"reason"}),
		LowStockAlertsSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "low_stock_alerts_sent_total",
			Help: "Alertas de stock bajo enviadas.",
		}),
		PlaceOrderSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "place_order_duration_seconds",
			Help:    "Duración del placement de pedidos.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
