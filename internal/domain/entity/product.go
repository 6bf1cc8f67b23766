package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo, compuesto por ingredientes
// que se consumen en cantidades fijas por unidad.
type Product struct {
	ID          int64
	Name        string
	Ingredients []ProductIngredient // en orden de asociación (estable)
	CreatedAt   time.Time
}

// ProductIngredient asociación producto-ingrediente con la cantidad por unidad.
// Amount siempre es mayor que cero.
type ProductIngredient struct {
	IngredientID int64
	Amount       decimal.Decimal // gramos consumidos por unidad de producto
}
