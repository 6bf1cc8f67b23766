package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// IngredientRepository define el puerto de persistencia del ledger de ingredientes.
// Las mutaciones de disponibilidad solo ocurren dentro de transacciones (repos atados a tx).
type IngredientRepository interface {
	Create(ingredient *entity.Ingredient) error
	GetByID(id int64) (*entity.Ingredient, error)
	List() ([]*entity.Ingredient, error)
	// GetManyForUpdate bloquea las filas indicadas (SELECT FOR UPDATE) en orden
	// ascendente de id y las devuelve indexadas por id.
	GetManyForUpdate(ids []int64) (map[int64]*entity.Ingredient, error)
	// Consume descuenta amount de available. Devuelve domain.ErrNegativeAvailability
	// si el resultado quedaría por debajo de cero (guarda independiente del checker).
	Consume(id int64, amount decimal.Decimal) error
	// TripLowStock marca low_stock=true solo si aún está en false y
	// available <= stock/2. Devuelve true únicamente cuando esta llamada hizo
	// la transición (disparo único).
	TripLowStock(id int64) (bool, error)
	// Restock repone la disponibilidad y limpia low_stock (reset externo).
	// Nunca modifica stock: es la capacidad nominal del seed.
	Restock(id int64, available decimal.Decimal) error
}
