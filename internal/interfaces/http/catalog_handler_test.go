package http_test

import (
	"bytes"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/memory"
)

func putJSON(t *testing.T, app *fiber.App, path, body string) *nethttp.Response {
	t.Helper()
	req := httptest.NewRequest(nethttp.MethodPut, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// El restock externo fija la disponibilidad y limpia low_stock (rearma la
// alerta de un solo disparo). stock no se toca: es la capacidad nominal.
func TestRestock_ReponeYLimpiaLowStock(t *testing.T) {
	app, store := newApp(t, &fakePlacer{})

	repo := memory.NewIngredientRepository(store)
	beef := &entity.Ingredient{
		Name:      "Beef",
		Stock:     decimal.NewFromInt(20000),
		Available: decimal.NewFromInt(5000),
		LowStock:  true,
	}
	require.NoError(t, repo.Create(beef))

	resp := putJSON(t, app, "/api/ingredients/1/restock", `{"available": 20000}`)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	stored, err := repo.GetByID(beef.ID)
	require.NoError(t, err)
	assert.True(t, stored.Available.Equal(decimal.NewFromInt(20000)))
	assert.False(t, stored.LowStock)
	assert.True(t, stored.Stock.Equal(decimal.NewFromInt(20000)), "la capacidad nominal no cambia")
}

// Disponibilidad negativa: 400.
func TestRestock_DisponibilidadNegativa(t *testing.T) {
	app, store := newApp(t, &fakePlacer{})

	repo := memory.NewIngredientRepository(store)
	require.NoError(t, repo.Create(&entity.Ingredient{
		Name:      "Beef",
		Stock:     decimal.NewFromInt(20000),
		Available: decimal.NewFromInt(5000),
	}))

	resp := putJSON(t, app, "/api/ingredients/1/restock", `{"available": -1}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	stored, err := repo.GetByID(1)
	require.NoError(t, err)
	assert.True(t, stored.Available.Equal(decimal.NewFromInt(5000)), "sin cambios ante request inválido")
}

// Id que no es entero positivo: 400.
func TestRestock_IdInvalido(t *testing.T) {
	app, _ := newApp(t, &fakePlacer{})

	resp := putJSON(t, app, "/api/ingredients/abc/restock", `{"available": 100}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

// Ingrediente inexistente: 404.
func TestRestock_IngredienteInexistente(t *testing.T) {
	app, _ := newApp(t, &fakePlacer{})

	resp := putJSON(t, app, "/api/ingredients/42/restock", `{"available": 100}`)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "Not found.", body["error"])
}
