package memory

import (
	"sync"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// Store estado en memoria compartido por los repos y el TxRunner de este
// paquete. Pensado para tests y para el perfil development sin PostgreSQL.
// Un solo mutex serializa las transacciones; el snapshot permite rollback.
type Store struct {
	mu sync.Mutex

	ingredients map[int64]*entity.Ingredient
	products    map[int64]*entity.Product
	orders      map[int64]*entity.Order

	nextIngredientID int64
	nextProductID    int64
	nextOrderID      int64
	nextItemID       int64
}

// NewStore crea el estado vacío.
func NewStore() *Store {
	return &Store{
		ingredients: make(map[int64]*entity.Ingredient),
		products:    make(map[int64]*entity.Product),
		orders:      make(map[int64]*entity.Order),
	}
}

// snapshot clona el estado mutable (ledger y pedidos) para poder restaurarlo
// si la transacción falla. Los productos son inmutables después del seed.
type snapshot struct {
	ingredients map[int64]*entity.Ingredient
	orders      map[int64]*entity.Order
	nextOrderID int64
	nextItemID  int64
}

func (s *Store) takeSnapshot() snapshot {
	snap := snapshot{
		ingredients: make(map[int64]*entity.Ingredient, len(s.ingredients)),
		orders:      make(map[int64]*entity.Order, len(s.orders)),
		nextOrderID: s.nextOrderID,
		nextItemID:  s.nextItemID,
	}
	for id, i := range s.ingredients {
		snap.ingredients[id] = cloneIngredient(i)
	}
	for id, o := range s.orders {
		snap.orders[id] = cloneOrder(o)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.ingredients = snap.ingredients
	s.orders = snap.orders
	s.nextOrderID = snap.nextOrderID
	s.nextItemID = snap.nextItemID
}

func cloneIngredient(i *entity.Ingredient) *entity.Ingredient {
	c := *i
	return &c
}

func cloneOrder(o *entity.Order) *entity.Order {
	c := *o
	c.Items = make([]entity.OrderItem, len(o.Items))
	copy(c.Items, o.Items)
	return &c
}

func cloneProduct(p *entity.Product) *entity.Product {
	c := *p
	c.Ingredients = make([]entity.ProductIngredient, len(p.Ingredients))
	copy(c.Ingredients, p.Ingredients)
	return &c
}
