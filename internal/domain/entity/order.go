package entity

import "time"

// OrderLine línea de pedido del lado del request (efímera, no se persiste tal cual).
type OrderLine struct {
	ProductID int64
	Quantity  int
}

// Order pedido persistido con sus items. Se crea completo dentro de una
// transacción exitosa y no se muta después en este núcleo.
type Order struct {
	ID        int64
	Items     []OrderItem // en el orden del request
	CreatedAt time.Time
}

// OrderItem item del pedido: producto y cantidad literal del request
// (no el plan aplanado por ingrediente). ProductName se resuelve al crear
// para la respuesta.
type OrderItem struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	ProductName string
	Quantity    int
}
