package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
)

var _ repository.IngredientRepository = (*IngredientRepo)(nil)

// IngredientRepo implementación de IngredientRepository sobre PostgreSQL
// (usable con pool o tx).
type IngredientRepo struct {
	q Querier
}

// NewIngredientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIngredientRepository(q Querier) *IngredientRepo {
	return &IngredientRepo{q: q}
}

// Create persiste un ingrediente nuevo (seed del catálogo).
func (r *IngredientRepo) Create(ingredient *entity.Ingredient) error {
	query := `
		INSERT INTO ingredients (name, stock, available, low_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		ingredient.Name, ingredient.Stock, ingredient.Available, ingredient.LowStock,
	).Scan(&ingredient.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("ingredient name already exists: %w", err)
		}
		return fmt.Errorf("insert ingredient: %w", err)
	}
	return nil
}

// GetByID obtiene un ingrediente, o nil si no existe.
func (r *IngredientRepo) GetByID(id int64) (*entity.Ingredient, error) {
	query := `
		SELECT id, name, stock, available, low_stock, created_at, updated_at
		FROM ingredients WHERE id = $1`
	var i entity.Ingredient
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&i.ID, &i.Name, &i.Stock, &i.Available, &i.LowStock, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	return &i, nil
}

// List devuelve el ledger completo ordenado por id.
func (r *IngredientRepo) List() ([]*entity.Ingredient, error) {
	query := `
		SELECT id, name, stock, available, low_stock, created_at, updated_at
		FROM ingredients ORDER BY id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()

	var out []*entity.Ingredient
	for rows.Next() {
		var i entity.Ingredient
		if err := rows.Scan(&i.ID, &i.Name, &i.Stock, &i.Available, &i.LowStock, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		out = append(out, &i)
	}
	return out, rows.Err()
}

// GetManyForUpdate bloquea las filas indicadas (SELECT ... FOR UPDATE) y las
// devuelve indexadas por id. ORDER BY id garantiza adquisición ordenada de
// locks entre transacciones concurrentes.
func (r *IngredientRepo) GetManyForUpdate(ids []int64) (map[int64]*entity.Ingredient, error) {
	query := `
		SELECT id, name, stock, available, low_stock, created_at, updated_at
		FROM ingredients WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return nil, fmt.Errorf("lock ingredients: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]*entity.Ingredient, len(ids))
	for rows.Next() {
		var i entity.Ingredient
		if err := rows.Scan(&i.ID, &i.Name, &i.Stock, &i.Available, &i.LowStock, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		out[i.ID] = &i
	}
	return out, rows.Err()
}

// Consume descuenta amount de available. La condición available >= amount en
// el WHERE hace cumplir el invariante del ledger en SQL, independiente del
// chequeo previo del caller.
func (r *IngredientRepo) Consume(id int64, amount decimal.Decimal) error {
	query := `
		UPDATE ingredients
		SET available = available - $2, updated_at = now()
		WHERE id = $1 AND available >= $2`
	tag, err := r.q.Exec(context.Background(), query, id, amount)
	if err != nil {
		return fmt.Errorf("consume ingredient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNegativeAvailability
	}
	return nil
}

// TripLowStock marca low_stock=true si aún está en false y la disponibilidad
// cruzó el umbral de la mitad de la capacidad nominal. La condición vive en el
// UPDATE: bajo despacho concurrente solo una llamada hace la transición.
func (r *IngredientRepo) TripLowStock(id int64) (bool, error) {
	query := `
		UPDATE ingredients
		SET low_stock = TRUE, updated_at = now()
		WHERE id = $1 AND low_stock = FALSE AND available <= stock / 2`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return false, fmt.Errorf("trip low_stock: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Restock repone la disponibilidad y limpia low_stock (reset externo).
// No toca stock: la capacidad nominal queda como en el seed.
func (r *IngredientRepo) Restock(id int64, available decimal.Decimal) error {
	query := `
		UPDATE ingredients
		SET available = $2, low_stock = FALSE, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, available)
	if err != nil {
		return fmt.Errorf("restock ingredient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
