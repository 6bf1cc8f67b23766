package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// PlaceOrderRequest body para POST /api/orders. Las líneas llegan prevalidadas
// en forma desde el borde; la existencia del producto se revalida en el núcleo.
type PlaceOrderRequest struct {
	Products []OrderLineRequest `json:"products"`
}

// OrderLineRequest línea (producto, cantidad) del pedido.
type OrderLineRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// Lines convierte el request a líneas de dominio preservando el orden.
func (r PlaceOrderRequest) Lines() []entity.OrderLine {
	lines := make([]entity.OrderLine, 0, len(r.Products))
	for _, p := range r.Products {
		lines = append(lines, entity.OrderLine{ProductID: p.ProductID, Quantity: p.Quantity})
	}
	return lines
}

// OrderResponse respuesta de un pedido confirmado: {"data": {...}}.
type OrderResponse struct {
	Data OrderData `json:"data"`
}

// OrderData pedido con los items resueltos a producto.
type OrderData struct {
	ID       int64              `json:"id"`
	Products []OrderProductData `json:"products"`
}

// OrderProductData item del pedido para la respuesta.
type OrderProductData struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// NewOrderResponse arma la respuesta desde la entidad persistida.
func NewOrderResponse(order *entity.Order) OrderResponse {
	data := OrderData{ID: order.ID, Products: make([]OrderProductData, 0, len(order.Items))}
	for _, item := range order.Items {
		data.Products = append(data.Products, OrderProductData{
			ID:       item.ProductID,
			Name:     item.ProductName,
			Quantity: item.Quantity,
		})
	}
	return OrderResponse{Data: data}
}

// ErrorResponse cuerpo de error HTTP: {"error": ..., "message": ...}.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// IngredientDTO estado de un ingrediente del ledger para respuestas de catálogo.
type IngredientDTO struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Stock     decimal.Decimal `json:"stock"`
	Available decimal.Decimal `json:"available"`
	LowStock  bool            `json:"low_stock"`
}

// NewIngredientDTO mapea la entidad al DTO.
func NewIngredientDTO(i *entity.Ingredient) IngredientDTO {
	return IngredientDTO{
		ID:        i.ID,
		Name:      i.Name,
		Stock:     i.Stock,
		Available: i.Available,
		LowStock:  i.LowStock,
	}
}

// RestockRequest body para PUT /api/ingredients/:id/restock.
type RestockRequest struct {
	Available decimal.Decimal `json:"available"`
}

// ProductDTO producto del catálogo con sus ingredientes por unidad.
type ProductDTO struct {
	ID          int64                  `json:"id"`
	Name        string                 `json:"name"`
	Ingredients []ProductIngredientDTO `json:"ingredients"`
}

// ProductIngredientDTO asociación ingrediente-cantidad por unidad.
type ProductIngredientDTO struct {
	IngredientID int64           `json:"ingredient_id"`
	Amount       decimal.Decimal `json:"amount"`
}

// NewProductDTO mapea la entidad al DTO.
func NewProductDTO(p *entity.Product) ProductDTO {
	d := ProductDTO{ID: p.ID, Name: p.Name, Ingredients: make([]ProductIngredientDTO, 0, len(p.Ingredients))}
	for _, assoc := range p.Ingredients {
		d.Ingredients = append(d.Ingredients, ProductIngredientDTO{
			IngredientID: assoc.IngredientID,
			Amount:       assoc.Amount,
		})
	}
	return d
}
