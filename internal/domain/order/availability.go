package order

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// ConsumptionPlan total a descontar por ingrediente para un pedido completo.
type ConsumptionPlan map[int64]decimal.Decimal

// IngredientIDs devuelve los ids del plan en orden ascendente (iteración determinista).
func (p ConsumptionPlan) IngredientIDs() []int64 {
	ids := make([]int64, 0, len(p))
	for id := range p {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// BuildConsumptionPlan valida la disponibilidad de un pedido contra la vista
// actual del ledger y calcula el plan de consumo (quantity × amount por línea,
// acumulado entre líneas que consumen el mismo ingrediente).
//
// Pasada de solo lectura, sin efectos: debe ejecutarse dentro de la misma
// transacción que luego aplica el descuento, sobre filas ya bloqueadas.
//
// Falla con *domain.UnknownProductError si una línea referencia un producto
// que no está en products, y con *domain.OutOfStockError nombrando el primer
// ingrediente (en orden de línea y de asociación) cuyo requerimiento acumulado
// supera su disponibilidad.
func BuildConsumptionPlan(
	lines []entity.OrderLine,
	products map[int64]*entity.Product,
	ledger map[int64]*entity.Ingredient,
) (ConsumptionPlan, error) {
	plan := make(ConsumptionPlan, len(ledger))

	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
		product, ok := products[line.ProductID]
		if !ok || product == nil {
			return nil, &domain.UnknownProductError{ProductID: line.ProductID}
		}

		qty := decimal.NewFromInt(int64(line.Quantity))
		for _, assoc := range product.Ingredients {
			required := plan[assoc.IngredientID].Add(assoc.Amount.Mul(qty))
			plan[assoc.IngredientID] = required

			ingredient, ok := ledger[assoc.IngredientID]
			if !ok || ingredient == nil {
				return nil, domain.ErrNotFound
			}
			if ingredient.Available.Cmp(required) < 0 {
				return nil, &domain.OutOfStockError{IngredientName: ingredient.Name}
			}
		}
	}

	return plan, nil
}
