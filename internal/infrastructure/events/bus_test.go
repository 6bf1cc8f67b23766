package events_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/event"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/events"
	"github.com/jhoicas/pedidos-api/pkg/logger"
)

// Un evento publicado llega exactamente una vez a cada suscriptor de su nombre.
func TestBus_EntregaUnaVezPorSuscriptor(t *testing.T) {
	bus := events.NewBus(logger.Nop())

	first := make(chan event.Event, 4)
	second := make(chan event.Event, 4)
	bus.Subscribe(event.NameOrderPlaced, func(_ context.Context, e event.Event) error {
		first <- e
		return nil
	})
	bus.Subscribe(event.NameOrderPlaced, func(_ context.Context, e event.Event) error {
		second <- e
		return nil
	})

	bus.Start(context.Background())

	placed := event.OrderPlaced{Order: &entity.Order{ID: 7}}
	require.NoError(t, bus.Publish(context.Background(), placed))

	select {
	case e := <-first:
		assert.Equal(t, int64(7), e.(event.OrderPlaced).Order.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("el primer suscriptor no recibió el evento")
	}
	select {
	case <-second:
	case <-time.After(2 * time.Second):
		t.Fatal("el segundo suscriptor no recibió el evento")
	}

	bus.Stop()
	assert.Empty(t, first, "sin entregas duplicadas")
	assert.Empty(t, second, "sin entregas duplicadas")
}

// Los suscriptores de otros nombres no reciben el evento.
func TestBus_FiltraPorNombre(t *testing.T) {
	bus := events.NewBus(logger.Nop())

	stockCh := make(chan event.Event, 1)
	bus.Subscribe(event.NameStockUpdated, func(_ context.Context, e event.Event) error {
		stockCh <- e
		return nil
	})

	bus.Start(context.Background())
	require.NoError(t, bus.Publish(context.Background(), event.OrderPlaced{Order: &entity.Order{ID: 1}}))
	bus.Stop() // espera el drenaje de la cola

	assert.Empty(t, stockCh)
}

// Stop drena lo pendiente antes de volver.
func TestBus_StopDrenaLaCola(t *testing.T) {
	bus := events.NewBus(logger.Nop())

	received := make(chan event.Event, 16)
	bus.Subscribe(event.NameStockUpdated, func(_ context.Context, e event.Event) error {
		received <- e
		return nil
	})

	bus.Start(context.Background())
	for n := 0; n < 10; n++ {
		require.NoError(t, bus.Publish(context.Background(), event.StockUpdated{}))
	}
	bus.Stop()

	assert.Len(t, received, 10)
}

// Publicar con el bus detenido devuelve error en lugar de entrar en pánico.
func TestBus_PublishDespuesDeStop(t *testing.T) {
	bus := events.NewBus(logger.Nop())
	bus.Start(context.Background())
	bus.Stop()

	err := bus.Publish(context.Background(), event.StockUpdated{})
	assert.Error(t, err)
}

// Stop sobre un bus que nunca arrancó vuelve de inmediato en lugar de
// bloquearse esperando un goroutine de despacho que no existe.
func TestBus_StopSinStart(t *testing.T) {
	bus := events.NewBus(logger.Nop())

	stopped := make(chan struct{})
	go func() {
		bus.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop quedó bloqueado sin Start previo")
	}

	assert.Error(t, bus.Publish(context.Background(), event.StockUpdated{}))
}

// Un handler con pánico no tumba el despacho de los demás.
func TestBus_RecuperaPanicoDeHandler(t *testing.T) {
	bus := events.NewBus(logger.Nop())

	received := make(chan event.Event, 1)
	bus.Subscribe(event.NameStockUpdated, func(_ context.Context, _ event.Event) error {
		panic("handler roto")
	})
	bus.Subscribe(event.NameStockUpdated, func(_ context.Context, e event.Event) error {
		received <- e
		return nil
	})

	bus.Start(context.Background())
	require.NoError(t, bus.Publish(context.Background(), event.StockUpdated{}))
	bus.Stop()

	assert.Len(t, received, 1)
}

// Las suscripciones son enumerables.
func TestBus_SuscripcionesEnumerables(t *testing.T) {
	bus := events.NewBus(logger.Nop())
	bus.Subscribe(event.NameStockUpdated, func(_ context.Context, _ event.Event) error { return nil })
	bus.Subscribe(event.NameOrderPlaced, func(_ context.Context, _ event.Event) error { return nil })

	assert.Equal(t, []string{event.NameOrderPlaced, event.NameStockUpdated}, bus.Subscriptions())
}
