package event

import (
	"context"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// Nombres de eventos publicados tras el commit de un pedido.
const (
	NameOrderPlaced  = "order.placed"
	NameStockUpdated = "stock.updated"
)

// Event evento de dominio publicado en el bus interno.
type Event interface {
	EventName() string
}

// Handler función suscrita a un nombre de evento.
type Handler func(ctx context.Context, e Event) error

// OrderPlaced se publica una vez por pedido confirmado, con el pedido persistido.
type OrderPlaced struct {
	Order *entity.Order
}

func (OrderPlaced) EventName() string { return NameOrderPlaced }

// StockUpdated se publica una vez por pedido confirmado con el conjunto de
// ingredientes afectados (sin duplicados, ordenados por id, con la
// disponibilidad posterior al commit).
type StockUpdated struct {
	Ingredients []*entity.Ingredient
}

func (StockUpdated) EventName() string { return NameStockUpdated }
