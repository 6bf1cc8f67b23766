package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la cabecera del pedido y sus items. item_no preserva el
// orden del request. Usar atado a una tx: cabecera e items van juntos o nada.
func (r *OrderRepo) Create(order *entity.Order) error {
	query := `
		INSERT INTO orders (created_at)
		VALUES (now())
		RETURNING id, created_at`
	if err := r.q.QueryRow(context.Background(), query).Scan(&order.ID, &order.CreatedAt); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for n := range order.Items {
		item := &order.Items[n]
		item.OrderID = order.ID
		detail := `
			INSERT INTO order_items (order_id, item_no, product_id, quantity)
			VALUES ($1, $2, $3, $4)
			RETURNING id`
		if err := r.q.QueryRow(context.Background(), detail,
			order.ID, n+1, item.ProductID, item.Quantity,
		).Scan(&item.ID); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene el pedido con items en orden de request y nombre de producto
// resuelto, o nil si no existe.
func (r *OrderRepo) GetByID(id int64) (*entity.Order, error) {
	query := `SELECT id, created_at FROM orders WHERE id = $1`
	var o entity.Order
	err := r.q.QueryRow(context.Background(), query, id).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	items := `
		SELECT oi.id, oi.product_id, p.name, oi.quantity
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.item_no`
	rows, err := r.q.Query(context.Background(), items, id)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item := entity.OrderItem{OrderID: o.ID}
		if err := rows.Scan(&item.ID, &item.ProductID, &item.ProductName, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}
