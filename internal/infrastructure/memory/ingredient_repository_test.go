package memory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/memory"
)

func d(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func seedBeef(t *testing.T, available int64) (*memory.IngredientRepo, *entity.Ingredient) {
	t.Helper()
	repo := memory.NewIngredientRepository(memory.NewStore())
	beef := &entity.Ingredient{Name: "Beef", Stock: d(20000), Available: d(available)}
	require.NoError(t, repo.Create(beef))
	return repo, beef
}

// La guarda del ledger es independiente del chequeo del caller: un descuento
// mayor a lo disponible falla con ErrNegativeAvailability y no toca nada.
func TestConsume_RechazaDescuentoMayorAlDisponible(t *testing.T) {
	repo, beef := seedBeef(t, 100)

	err := repo.Consume(beef.ID, d(101))
	require.ErrorIs(t, err, domain.ErrNegativeAvailability)

	stored, err := repo.GetByID(beef.ID)
	require.NoError(t, err)
	assert.True(t, stored.Available.Equal(d(100)), "la disponibilidad queda intacta")
}

// Descontar exactamente lo disponible es válido: deja el ledger en cero.
func TestConsume_PermiteAgotarExacto(t *testing.T) {
	repo, beef := seedBeef(t, 100)

	require.NoError(t, repo.Consume(beef.ID, d(100)))

	stored, err := repo.GetByID(beef.ID)
	require.NoError(t, err)
	assert.True(t, stored.Available.Equal(d(0)))
}

// Ingrediente inexistente: ErrNotFound, no la guarda de negatividad.
func TestConsume_IngredienteInexistente(t *testing.T) {
	repo := memory.NewIngredientRepository(memory.NewStore())

	err := repo.Consume(99, d(1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
