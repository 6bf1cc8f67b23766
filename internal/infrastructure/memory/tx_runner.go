package memory

import (
	"context"

	"github.com/jhoicas/pedidos-api/internal/application/order"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

var _ order.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks como transacción sobre el Store: toma el mutex
// (las transacciones se serializan, aislamiento estricto) y hace snapshot del
// estado para restaurarlo si fn devuelve error (rollback).
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run serializa la transacción con el mutex del store y garantiza
// todo-o-nada restaurando el snapshot ante cualquier error.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	ingredientRepo repository.IngredientRepository,
	orderRepo repository.OrderRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snap := r.store.takeSnapshot()

	productRepo := &ProductRepo{store: r.store, inTx: true}
	ingredientRepo := &IngredientRepo{store: r.store, inTx: true}
	orderRepo := &OrderRepo{store: r.store, inTx: true}

	if err := fn(productRepo, ingredientRepo, orderRepo); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}
