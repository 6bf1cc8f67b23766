package repository

import "github.com/jhoicas/pedidos-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	// GetByID devuelve el producto con sus asociaciones de ingredientes en orden
	// estable, o nil si no existe.
	GetByID(id int64) (*entity.Product, error)
	List() ([]*entity.Product, error)
}
