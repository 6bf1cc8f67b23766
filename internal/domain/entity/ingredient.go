package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ingredient representa un ingrediente del catálogo con su estado de stock.
// Stock es la capacidad nominal (inmutable después del seed); Available es la
// cantidad actual; LowStock es un flag de un solo disparo que solo limpia un
// proceso externo (restock).
type Ingredient struct {
	ID        int64
	Name      string
	Stock     decimal.Decimal // capacidad nominal, en gramos
	Available decimal.Decimal // cantidad disponible actual, nunca negativa
	LowStock  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BelowHalfStock indica si la disponibilidad cruzó el umbral de alerta
// (available <= stock/2, contra la capacidad nominal del seed).
func (i *Ingredient) BelowHalfStock() bool {
	return i.Available.Cmp(i.Stock.Div(decimal.NewFromInt(2))) <= 0
}
