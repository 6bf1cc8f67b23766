package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/pedidos-api/internal/application/stock"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/observability/prometrics"
	"github.com/jhoicas/pedidos-api/pkg/config"
	"github.com/jhoicas/pedidos-api/pkg/logger"
)

var _ stock.AlertSender = (*GomailSender)(nil)

// GomailSender envía la alerta de stock bajo por SMTP al correo del comercio.
type GomailSender struct {
	dialer  *gomail.Dialer
	from    string
	to      string
	metrics *prometrics.Metrics
	log     *logger.Logger
}

// NewGomailSender construye el sender con la configuración SMTP.
func NewGomailSender(cfg config.MailConfig, metrics *prometrics.Metrics, log *logger.Logger) *GomailSender {
	return &GomailSender{
		dialer:  gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:    cfg.From,
		to:      cfg.MerchantEmail,
		metrics: metrics,
		log:     log,
	}
}

// Send arma y envía el correo "Low Stock Alert".
func (s *GomailSender) Send(alert stock.Alert) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.to)
	m.SetHeader("Subject", "Low Stock Alert")
	m.SetBody("text/plain", fmt.Sprintf(
		"Ingredient %s is below 50%% of its stock.\n\nAvailable: %s\nStock: %s\n",
		alert.IngredientName, alert.Available.String(), alert.Stock.String(),
	))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send low stock alert: %w", err)
	}

	s.metrics.LowStockAlertsSent.Inc()
	s.log.Info().
		Str("ingredient", alert.IngredientName).
		Str("to", s.to).
		Msg("alerta de stock bajo enviada")
	return nil
}
