package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/observability/prometrics"
	"github.com/jhoicas/pedidos-api/pkg/logger"
)

// PlaceOrderService puerto del caso de uso de placement (fakeable en tests).
type PlaceOrderService interface {
	PlaceOrder(ctx context.Context, lines []entity.OrderLine) (*entity.Order, error)
}

// OrderHandler maneja las peticiones HTTP de pedidos.
type OrderHandler struct {
	svc       PlaceOrderService
	orderRepo repository.OrderRepository
	metrics   *prometrics.Metrics
	log       *logger.Logger
}

// NewOrderHandler construye el handler.
func NewOrderHandler(svc PlaceOrderService, orderRepo repository.OrderRepository, metrics *prometrics.Metrics, log *logger.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, orderRepo: orderRepo, metrics: metrics, log: log}
}

// PlaceOrder godoc
// @Summary      Colocar un pedido
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PlaceOrderRequest  true  "products: [{product_id, quantity>=1}, ...]"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse  "out of stock o request inválido"
// @Failure      404   {object}  dto.ErrorResponse  "producto inexistente"
// @Failure      409   {object}  dto.ErrorResponse  "conflicto transitorio, reintentar"
// @Router       /api/orders [post]
func (h *OrderHandler) PlaceOrder(c *fiber.Ctx) error {
	var in dto.PlaceOrderRequest
	if err := c.BodyParser(&in); err != nil {
		h.metrics.OrdersRejected.WithLabelValues("invalid_body").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Invalid request.", Message: "Malformed request body.",
		})
	}

	start := time.Now()
	order, err := h.svc.PlaceOrder(c.Context(), in.Lines())
	h.metrics.PlaceOrderSeconds.Observe(time.Since(start).Seconds())

	if err != nil {
		return h.placeOrderError(c, err)
	}

	h.metrics.OrdersPlaced.Inc()
	return c.Status(fiber.StatusCreated).JSON(dto.NewOrderResponse(order))
}

// placeOrderError mapea los errores del dominio al contrato HTTP.
func (h *OrderHandler) placeOrderError(c *fiber.Ctx, err error) error {
	var outOfStock *domain.OutOfStockError
	if errors.As(err, &outOfStock) {
		h.metrics.OrdersRejected.WithLabelValues("out_of_stock").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Out of stock ingredient.", Message: outOfStock.Error(),
		})
	}
	var unknown *domain.UnknownProductError
	if errors.As(err, &unknown) {
		h.metrics.OrdersRejected.WithLabelValues("unknown_product").Inc()
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "Unknown product.", Message: unknown.Error(),
		})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		h.metrics.OrdersRejected.WithLabelValues("invalid_input").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Invalid request.", Message: "Each line needs an existing product and quantity >= 1.",
		})
	}
	if errors.Is(err, domain.ErrTxConflict) {
		h.metrics.OrdersRejected.WithLabelValues("conflict").Inc()
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Error: "Conflict.", Message: "Concurrent stock update, please retry.",
		})
	}

	h.metrics.OrdersRejected.WithLabelValues("internal").Inc()
	h.log.Error().Err(err).Msg("placement de pedido falló")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: "Internal error.", Message: "Could not place the order.",
	})
}

// GetOrder godoc
// @Summary      Consultar un pedido
// @Tags         orders
// @Produce      json
// @Param        id   path      int  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Invalid request.", Message: "Order id must be a positive integer.",
		})
	}

	order, err := h.orderRepo.GetByID(int64(id))
	if err != nil {
		h.log.Error().Err(err).Int("order_id", id).Msg("consultar pedido")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal error.", Message: "Could not fetch the order.",
		})
	}
	if order == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "Not found.", Message: "Order does not exist.",
		})
	}
	return c.JSON(dto.NewOrderResponse(order))
}
