package stock

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/event"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
	"github.com/jhoicas/pedidos-api/pkg/logger"
)

// Alert alerta de stock bajo para un ingrediente.
type Alert struct {
	IngredientID   int64
	IngredientName string
	Available      decimal.Decimal
	Stock          decimal.Decimal
}

// AlertSender puerto de envío de alertas (SMTP real o log). Inyectable y
// fakeable en tests.
type AlertSender interface {
	Send(alert Alert) error
}

// LowStockNotifier reacciona a stock.updated: por cada ingrediente afectado,
// si available <= stock/2 y el flag aún no está activo, marca low_stock y
// envía exactamente una alerta. El flag no se recalcula nunca hacia false
// aquí; solo lo limpia el restock externo.
type LowStockNotifier struct {
	ingredientRepo repository.IngredientRepository
	sender         AlertSender
	log            *logger.Logger
}

// NewLowStockNotifier construye el notificador.
func NewLowStockNotifier(ingredientRepo repository.IngredientRepository, sender AlertSender, log *logger.Logger) *LowStockNotifier {
	return &LowStockNotifier{ingredientRepo: ingredientRepo, sender: sender, log: log}
}

// Handle es el handler suscrito a stock.updated en el bus.
func (n *LowStockNotifier) Handle(ctx context.Context, e event.Event) error {
	updated, ok := e.(event.StockUpdated)
	if !ok {
		return fmt.Errorf("evento inesperado: %s", e.EventName())
	}
	return n.Notify(ctx, updated.Ingredients)
}

// Notify evalúa el umbral para cada ingrediente afectado, en orden ascendente
// de id (iteración determinista). TripLowStock es condicional en la capa de
// persistencia, así que bajo despacho concurrente el disparo sigue siendo único.
func (n *LowStockNotifier) Notify(ctx context.Context, ingredients []*entity.Ingredient) error {
	_ = ctx

	sorted := make([]*entity.Ingredient, len(ingredients))
	copy(sorted, ingredients)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	for _, ingredient := range sorted {
		tripped, err := n.ingredientRepo.TripLowStock(ingredient.ID)
		if err != nil {
			n.log.Error().Err(err).
				Int64("ingredient_id", ingredient.ID).
				Msg("marcar low_stock")
			continue
		}
		if !tripped {
			continue
		}

		n.log.Warn().
			Int64("ingredient_id", ingredient.ID).
			Str("ingredient", ingredient.Name).
			Str("available", ingredient.Available.String()).
			Str("stock", ingredient.Stock.String()).
			Msg("ingrediente por debajo del 50% de stock")

		alert := Alert{
			IngredientID:   ingredient.ID,
			IngredientName: ingredient.Name,
			Available:      ingredient.Available,
			Stock:          ingredient.Stock,
		}
		// Best effort: un fallo de envío no revierte nada, solo se loguea.
		if err := n.sender.Send(alert); err != nil {
			n.log.Error().Err(err).
				Str("ingredient", ingredient.Name).
				Msg("enviar alerta de stock bajo")
		}
	}
	return nil
}
