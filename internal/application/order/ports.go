package order

import (
	"context"

	"github.com/jhoicas/pedidos-api/internal/domain/event"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad del placement: o se
// persiste el pedido y se descuenta el stock completo, o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		ingredientRepo repository.IngredientRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// EventBus puerto de publicación de eventos post-commit. La implementación
// encola y despacha de forma asíncrona; nunca debe invocarse antes del commit.
type EventBus interface {
	Publish(ctx context.Context, e event.Event) error
}
