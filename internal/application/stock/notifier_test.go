package stock_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pedidos-api/internal/application/stock"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/event"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/memory"
	"github.com/jhoicas/pedidos-api/pkg/logger"
)

func d(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

// fakeSender acumula las alertas enviadas.
type fakeSender struct {
	alerts []stock.Alert
}

func (s *fakeSender) Send(alert stock.Alert) error {
	s.alerts = append(s.alerts, alert)
	return nil
}

func setup(t *testing.T, available int64) (*stock.LowStockNotifier, *fakeSender, *memory.IngredientRepo, *entity.Ingredient) {
	t.Helper()

	store := memory.NewStore()
	repo := memory.NewIngredientRepository(store)
	beef := &entity.Ingredient{Name: "Beef", Stock: d(20000), Available: d(20000)}
	require.NoError(t, repo.Create(beef))
	// Bajar la disponibilidad sin tocar stock (capacidad nominal)
	require.NoError(t, repo.Consume(beef.ID, d(20000-available)))
	beef.Available = d(available)

	sender := &fakeSender{}
	notifier := stock.NewLowStockNotifier(repo, sender, logger.Nop())
	return notifier, sender, repo, beef
}

// En el umbral exacto (available == stock/2) dispara el flag y una sola alerta.
func TestNotify_DisparaEnElUmbral(t *testing.T) {
	notifier, sender, repo, beef := setup(t, 10000)

	require.NoError(t, notifier.Notify(context.Background(), []*entity.Ingredient{beef}))

	stored, err := repo.GetByID(beef.ID)
	require.NoError(t, err)
	assert.True(t, stored.LowStock)
	require.Len(t, sender.alerts, 1)
	assert.Equal(t, "Beef", sender.alerts[0].IngredientName)
	assert.True(t, sender.alerts[0].Stock.Equal(d(20000)), "la alerta lleva la capacidad nominal")
}

// Por encima del umbral no pasa nada.
func TestNotify_PorEncimaDelUmbralNoDispara(t *testing.T) {
	notifier, sender, repo, beef := setup(t, 10001)

	require.NoError(t, notifier.Notify(context.Background(), []*entity.Ingredient{beef}))

	stored, err := repo.GetByID(beef.ID)
	require.NoError(t, err)
	assert.False(t, stored.LowStock)
	assert.Empty(t, sender.alerts)
}

// El disparo es único: una segunda notificación (con la disponibilidad aún
// más baja) no encola más alertas hasta el reset externo.
func TestNotify_DisparoUnicoHastaReset(t *testing.T) {
	notifier, sender, repo, beef := setup(t, 10000)

	require.NoError(t, notifier.Notify(context.Background(), []*entity.Ingredient{beef}))
	require.Len(t, sender.alerts, 1)

	require.NoError(t, repo.Consume(beef.ID, d(5000)))
	require.NoError(t, notifier.Notify(context.Background(), []*entity.Ingredient{beef}))
	assert.Len(t, sender.alerts, 1, "sin alerta nueva mientras low_stock siga en true")

	// Reset externo: restock limpia el flag y rearma la alerta
	require.NoError(t, repo.Restock(beef.ID, d(20000)))
	require.NoError(t, repo.Consume(beef.ID, d(15000)))
	require.NoError(t, notifier.Notify(context.Background(), []*entity.Ingredient{beef}))
	assert.Len(t, sender.alerts, 2)
}

// Handle procesa el evento stock.updated completo en orden determinista de id.
func TestHandle_ProcesaStockUpdated(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewIngredientRepository(store)

	cheese := &entity.Ingredient{Name: "Cheese", Stock: d(5000), Available: d(5000)}
	onion := &entity.Ingredient{Name: "Onion", Stock: d(1000), Available: d(1000)}
	require.NoError(t, repo.Create(cheese))
	require.NoError(t, repo.Create(onion))
	require.NoError(t, repo.Consume(cheese.ID, d(3000))) // 2000 <= 2500: dispara
	require.NoError(t, repo.Consume(onion.ID, d(100)))   // 900 > 500: no dispara
	cheese.Available = d(2000)
	onion.Available = d(900)

	sender := &fakeSender{}
	notifier := stock.NewLowStockNotifier(repo, sender, logger.Nop())

	// Desordenado a propósito: Notify ordena por id
	err := notifier.Handle(context.Background(), event.StockUpdated{
		Ingredients: []*entity.Ingredient{onion, cheese},
	})
	require.NoError(t, err)

	require.Len(t, sender.alerts, 1)
	assert.Equal(t, "Cheese", sender.alerts[0].IngredientName)
}

// Un evento de otro tipo es un error de programación, no un pánico.
func TestHandle_EventoInesperado(t *testing.T) {
	store := memory.NewStore()
	notifier := stock.NewLowStockNotifier(memory.NewIngredientRepository(store), &fakeSender{}, logger.Nop())

	err := notifier.Handle(context.Background(), event.OrderPlaced{Order: &entity.Order{}})
	assert.Error(t, err)
}
