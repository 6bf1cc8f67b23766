package memory

import (
	"sort"
	"time"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	store *Store
	inTx  bool
}

// NewProductRepository construye el repo standalone.
func NewProductRepository(store *Store) *ProductRepo {
	return &ProductRepo{store: store}
}

func (r *ProductRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

func (r *ProductRepo) Create(product *entity.Product) error {
	defer r.lock()()

	r.store.nextProductID++
	product.ID = r.store.nextProductID
	product.CreatedAt = time.Now()
	r.store.products[product.ID] = cloneProduct(product)
	return nil
}

func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	defer r.lock()()

	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	return cloneProduct(p), nil
}

func (r *ProductRepo) List() ([]*entity.Product, error) {
	defer r.lock()()

	out := make([]*entity.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		out = append(out, cloneProduct(p))
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, nil
}
