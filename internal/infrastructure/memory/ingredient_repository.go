package memory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

var _ repository.IngredientRepository = (*IngredientRepo)(nil)

// IngredientRepo implementación en memoria de IngredientRepository.
// Con inTx=true asume que el TxRunner ya tiene el mutex del store.
type IngredientRepo struct {
	store *Store
	inTx  bool
}

// NewIngredientRepository construye el repo standalone (toma el mutex por llamada).
func NewIngredientRepository(store *Store) *IngredientRepo {
	return &IngredientRepo{store: store}
}

func (r *IngredientRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *IngredientRepo) Create(ingredient *entity.Ingredient) error {
	defer r.lock()()

	r.store.nextIngredientID++
	ingredient.ID = r.store.nextIngredientID
	now := time.Now()
	ingredient.CreatedAt = now
	ingredient.UpdatedAt = now
	r.store.ingredients[ingredient.ID] = cloneIngredient(ingredient)
	return nil
}

func (r *IngredientRepo) GetByID(id int64) (*entity.Ingredient, error) {
	defer r.lock()()

	i, ok := r.store.ingredients[id]
	if !ok {
		return nil, nil
	}
	return cloneIngredient(i), nil
}

func (r *IngredientRepo) List() ([]*entity.Ingredient, error) {
	defer r.lock()()

	out := make([]*entity.Ingredient, 0, len(r.store.ingredients))
	for _, i := range r.store.ingredients {
		out = append(out, cloneIngredient(i))
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, nil
}

// GetManyForUpdate devuelve clones del ledger; el "lock de filas" es el mutex
// del store que el TxRunner retiene durante toda la transacción.
func (r *IngredientRepo) GetManyForUpdate(ids []int64) (map[int64]*entity.Ingredient, error) {
	defer r.lock()()

	out := make(map[int64]*entity.Ingredient, len(ids))
	for _, id := range ids {
		if i, ok := r.store.ingredients[id]; ok {
			out[id] = cloneIngredient(i)
		}
	}
	return out, nil
}

func (r *IngredientRepo) Consume(id int64, amount decimal.Decimal) error {
	defer r.lock()()

	i, ok := r.store.ingredients[id]
	if !ok {
		return domain.ErrNotFound
	}
	if i.Available.Cmp(amount) < 0 {
		return domain.ErrNegativeAvailability
	}
	i.Available = i.Available.Sub(amount)
	i.UpdatedAt = time.Now()
	return nil
}

func (r *IngredientRepo) TripLowStock(id int64) (bool, error) {
	defer r.lock()()

	i, ok := r.store.ingredients[id]
	if !ok {
		return false, domain.ErrNotFound
	}
	if i.LowStock || !i.BelowHalfStock() {
		return false, nil
	}
	i.LowStock = true
	i.UpdatedAt = time.Now()
	return true, nil
}

func (r *IngredientRepo) Restock(id int64, available decimal.Decimal) error {
	defer r.lock()()

	i, ok := r.store.ingredients[id]
	if !ok {
		return domain.ErrNotFound
	}
	i.Available = available
	i.LowStock = false
	i.UpdatedAt = time.Now()
	return nil
}
