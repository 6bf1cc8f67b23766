package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrNegativeAvailability = errors.New("la disponibilidad del ingrediente quedaría negativa")
	ErrTxConflict           = errors.New("conflicto de concurrencia, reintentar la operación")
)

// OutOfStockError indica que un ingrediente no alcanza para el pedido.
// El mensaje es parte del contrato HTTP, de ahí el texto exacto.
type OutOfStockError struct {
	IngredientName string
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("Ingredient %s is out of stock.", e.IngredientName)
}

// UnknownProductError indica que un product_id del request no existe en el catálogo.
type UnknownProductError struct {
	ProductID int64
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("Product %d does not exist.", e.ProductID)
}
