package order

import (
	"context"
	"sort"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/event"
	domorder "github.com/jhoicas/pedidos-api/internal/domain/order"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
	"github.com/jhoicas/pedidos-api/pkg/logger"
)

// PlaceOrderUseCase coordina el placement de un pedido como unidad atómica:
// chequeo de disponibilidad → persistir pedido → descontar ledger → commit →
// publicar eventos. El chequeo y el descuento ocurren en la misma transacción,
// sobre filas de ingredientes bloqueadas, para cerrar la carrera
// check-then-act entre pedidos concurrentes.
type PlaceOrderUseCase struct {
	txRunner TxRunner
	bus      EventBus
	log      *logger.Logger
}

// NewPlaceOrderUseCase construye el caso de uso.
func NewPlaceOrderUseCase(txRunner TxRunner, bus EventBus, log *logger.Logger) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{txRunner: txRunner, bus: bus, log: log}
}

// PlaceOrder valida y persiste un pedido. Devuelve el pedido con sus items
// resueltos a producto (id, nombre, cantidad) para la respuesta.
//
// Fallos: domain.ErrInvalidInput (request malformado),
// *domain.UnknownProductError, *domain.OutOfStockError (sin escritura alguna),
// domain.ErrTxConflict (transitorio, el caller puede reintentar el placement).
func (uc *PlaceOrderUseCase) PlaceOrder(ctx context.Context, lines []entity.OrderLine) (*entity.Order, error) {
	if len(lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
	}

	var placed *entity.Order
	var touched []*entity.Ingredient

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		ingredientRepo repository.IngredientRepository,
		orderRepo repository.OrderRepository,
	) error {
		// Cargar productos con sus asociaciones dentro de la tx (revalida existencia).
		products := make(map[int64]*entity.Product, len(lines))
		for _, line := range lines {
			if _, ok := products[line.ProductID]; ok {
				continue
			}
			product, err := productRepo.GetByID(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return &domain.UnknownProductError{ProductID: line.ProductID}
			}
			products[line.ProductID] = product
		}

		// Bloquear todas las filas de ingredientes tocadas, en orden ascendente
		// de id (adquisición ordenada: dos placements solapados se serializan
		// sin deadlock).
		ledger, err := ingredientRepo.GetManyForUpdate(ingredientIDs(lines, products))
		if err != nil {
			return err
		}

		// Chequeo de disponibilidad sobre la vista bloqueada.
		plan, err := domorder.BuildConsumptionPlan(lines, products, ledger)
		if err != nil {
			return err
		}

		// Persistir el pedido con los items en el orden y cantidades del request.
		order := &entity.Order{Items: make([]entity.OrderItem, 0, len(lines))}
		for _, line := range lines {
			order.Items = append(order.Items, entity.OrderItem{
				ProductID:   line.ProductID,
				ProductName: products[line.ProductID].Name,
				Quantity:    line.Quantity,
			})
		}
		if err := orderRepo.Create(order); err != nil {
			return err
		}

		// Aplicar el plan al ledger. Consume revalida available >= amount por
		// su cuenta; con el bloqueo de filas no debería fallar nunca.
		for _, id := range plan.IngredientIDs() {
			amount := plan[id]
			if err := ingredientRepo.Consume(id, amount); err != nil {
				return err
			}
			ingredient := ledger[id]
			ingredient.Available = ingredient.Available.Sub(amount)
			touched = append(touched, ingredient)
		}

		placed = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Solo después del commit: un order.placed y un stock.updated por pedido.
	// Un fallo de encolado no revierte el pedido ya confirmado.
	uc.publish(ctx, event.OrderPlaced{Order: placed})
	uc.publish(ctx, event.StockUpdated{Ingredients: touched})

	uc.log.Info().
		Int64("order_id", placed.ID).
		Int("items", len(placed.Items)).
		Int("ingredients_touched", len(touched)).
		Msg("pedido confirmado")

	return placed, nil
}

func (uc *PlaceOrderUseCase) publish(ctx context.Context, e event.Event) {
	if err := uc.bus.Publish(ctx, e); err != nil {
		uc.log.Error().Err(err).Str("event", e.EventName()).Msg("publicar evento post-commit")
	}
}

// ingredientIDs reúne los ids de ingredientes tocados por el pedido,
// deduplicados y en orden ascendente.
func ingredientIDs(lines []entity.OrderLine, products map[int64]*entity.Product) []int64 {
	seen := make(map[int64]struct{})
	var ids []int64
	for _, line := range lines {
		product, ok := products[line.ProductID]
		if !ok {
			continue
		}
		for _, assoc := range product.Ingredients {
			if _, dup := seen[assoc.IngredientID]; dup {
				continue
			}
			seen[assoc.IngredientID] = struct{}{}
			ids = append(ids, assoc.IngredientID)
		}
	}
	// Orden ascendente para adquisición ordenada de locks
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
