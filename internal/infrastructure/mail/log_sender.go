package mail

import (
	"github.com/jhoicas/pedidos-api/internal/application/stock"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/observability/prometrics"
	"github.com/jhoicas/pedidos-api/pkg/logger"
)

var _ stock.AlertSender = (*LogSender)(nil)

// LogSender sender de alertas que solo escribe al log. Se usa cuando no hay
// SMTP configurado (development) y en tests.
type LogSender struct {
	metrics *prometrics.Metrics
	log     *logger.Logger
}

// NewLogSender construye el sender de log.
func NewLogSender(metrics *prometrics.Metrics, log *logger.Logger) *LogSender {
	return &LogSender{metrics: metrics, log: log}
}

// Send registra la alerta en el log en lugar de enviar correo.
func (s *LogSender) Send(alert stock.Alert) error {
	s.metrics.LowStockAlertsSent.Inc()
	s.log.Warn().
		Int64("ingredient_id", alert.IngredientID).
		Str("ingredient", alert.IngredientName).
		Str("available", alert.Available.String()).
		Str("stock", alert.Stock.String()).
		Msg("Low Stock Alert (sin SMTP configurado)")
	return nil
}
