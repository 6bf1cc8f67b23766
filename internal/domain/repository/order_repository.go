package repository

import "github.com/jhoicas/pedidos-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para Order.
// Create persiste el pedido y todos sus items de forma atómica (usar atado a tx);
// nunca debe quedar un pedido con items parciales.
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id int64) (*entity.Order, error)
}
