package memory

import (
	"time"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación en memoria de OrderRepository.
type OrderRepo struct {
	store *Store
	inTx  bool
}

// NewOrderRepository construye el repo standalone.
func NewOrderRepository(store *Store) *OrderRepo {
	return &OrderRepo{store: store}
}

func (r *OrderRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *OrderRepo) Create(order *entity.Order) error {
	defer r.lock()()

	r.store.nextOrderID++
	order.ID = r.store.nextOrderID
	order.CreatedAt = time.Now()
	for n := range order.Items {
		r.store.nextItemID++
		order.Items[n].ID = r.store.nextItemID
		order.Items[n].OrderID = order.ID
	}
	r.store.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *OrderRepo) GetByID(id int64) (*entity.Order, error) {
	defer r.lock()()

	o, ok := r.store.orders[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(o), nil
}
