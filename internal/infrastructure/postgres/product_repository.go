package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste el producto y sus asociaciones de ingredientes (seed).
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (name, created_at)
		VALUES ($1, now())
		RETURNING id`
	if err := r.q.QueryRow(context.Background(), query, product.Name).Scan(&product.ID); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	for _, assoc := range product.Ingredients {
		detail := `
			INSERT INTO product_ingredients (product_id, ingredient_id, amount)
			VALUES ($1, $2, $3)`
		if _, err := r.q.Exec(context.Background(), detail, product.ID, assoc.IngredientID, assoc.Amount); err != nil {
			return fmt.Errorf("insert product ingredient: %w", err)
		}
	}
	return nil
}

// GetByID obtiene el producto con sus asociaciones en orden estable, o nil si no existe.
func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	query := `SELECT id, name, created_at FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(&p.ID, &p.Name, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	assocs, err := r.ingredientsOf(p.ID)
	if err != nil {
		return nil, err
	}
	p.Ingredients = assocs
	return &p, nil
}

// List devuelve el catálogo con asociaciones, ordenado por id.
func (r *ProductRepo) List() ([]*entity.Product, error) {
	query := `SELECT id, name, created_at FROM products ORDER BY id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, p := range out {
		assocs, err := r.ingredientsOf(p.ID)
		if err != nil {
			return nil, err
		}
		p.Ingredients = assocs
	}
	return out, nil
}

// ingredientsOf carga la tabla pivote en su orden de inserción (id serial),
// que es el orden de asociación del seed.
func (r *ProductRepo) ingredientsOf(productID int64) ([]entity.ProductIngredient, error) {
	query := `
		SELECT ingredient_id, amount
		FROM product_ingredients
		WHERE product_id = $1
		ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list product ingredients: %w", err)
	}
	defer rows.Close()

	var out []entity.ProductIngredient
	for rows.Next() {
		var assoc entity.ProductIngredient
		if err := rows.Scan(&assoc.IngredientID, &assoc.Amount); err != nil {
			return nil, fmt.Errorf("scan product ingredient: %w", err)
		}
		out = append(out, assoc)
	}
	return out, rows.Err()
}
