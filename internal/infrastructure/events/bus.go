package events

import (
	"context"
	"fmt"
	"runtime/debug"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pedidos-api/internal/application/order"
	"github.com/jhoicas/pedidos-api/internal/domain/event"
	"github.com/jhoicas/pedidos-api/pkg/logger"
)

var _ order.EventBus = (*Bus)(nil)

// Bus bus de eventos en proceso con cola buffereada y un goroutine de
// despacho. Las suscripciones son explícitas y enumerables; los handlers de un
// evento se invocan en secuencia, uno por suscriptor por publicación (una
// transacción confirmada dispara cada handler exactamente una vez).
type Bus struct {
	mu        sync.RWMutex
	subs      map[string][]event.Handler
	queue     chan delivery
	startOnce sync.Once
	stopOnce  sync.Once
	started   bool
	done      chan struct{}
	log       *logger.Logger
}

// delivery evento encolado con id propio para trazar el despacho.
type delivery struct {
	id string
	e  event.Event
}

// NewBus crea el bus con una cola de 1024 eventos.
func NewBus(log *logger.Logger) *Bus {
	return &Bus{
		subs:  make(map[string][]event.Handler),
		queue: make(chan delivery, 1024),
		done:  make(chan struct{}),
		log:   log,
	}
}

// Subscribe registra un handler para un nombre de evento. Llamar antes de Start.
func (b *Bus) Subscribe(eventName string, h event.Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[eventName] = append(b.subs[eventName], h)
}

// Subscriptions devuelve los nombres de evento con al menos un suscriptor.
func (b *Bus) Subscriptions() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	names := make([]string, 0, len(b.subs))
	for name := range b.subs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Start lanza el goroutine de despacho.
func (b *Bus) Start(ctx context.Context) {
	b.startOnce.Do(func() {
		b.mu.Lock()
		b.started = true
		b.mu.Unlock()
		go b.dispatchLoop(ctx)
		b.log.Info().Msg("bus de eventos iniciado")
	})
}

// Stop cierra la cola y espera a que se drene lo pendiente. Sin Start previo
// no hay goroutine que drene: cierra y vuelve de inmediato.
func (b *Bus) Stop() {
	b.stopOnce.Do(func() {
		close(b.queue)
		b.mu.RLock()
		started := b.started
		b.mu.RUnlock()
		if started {
			<-b.done
		}
		b.log.Info().Msg("bus de eventos detenido")
	})
}

// Publish encola el evento. Solo debe llamarse después del commit de la
// transacción dueña; si el bus está detenido devuelve error (el caller loguea,
// nunca revierte).
func (b *Bus) Publish(ctx context.Context, e event.Event) (err error) {
	if e == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			// Cola cerrada por Stop
			err = fmt.Errorf("bus detenido, evento %s descartado", e.EventName())
		}
	}()

	d := delivery{id: uuid.New().String(), e: e}
	select {
	case b.queue <- d:
		b.log.Debug().Str("event", e.EventName()).Str("delivery_id", d.id).Msg("evento encolado")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Bus) dispatchLoop(ctx context.Context) {
	defer close(b.done)
	for d := range b.queue {
		b.fanout(ctx, d)
	}
}

// fanout invoca en secuencia todos los handlers suscritos al evento, con
// timeout y recuperación de pánicos por handler.
func (b *Bus) fanout(ctx context.Context, d delivery) {
	name := d.e.EventName()

	b.mu.RLock()
	handlers := append([]event.Handler(nil), b.subs[name]...)
	b.mu.RUnlock()

	if len(handlers) == 0 {
		b.log.Debug().Str("event", name).Msg("evento sin suscriptores")
		return
	}

	for _, h := range handlers {
		b.invoke(ctx, d, h)
	}
}

func (b *Bus) invoke(ctx context.Context, d delivery, h event.Handler) {
	name := d.e.EventName()
	defer func() {
		if r := recover(); r != nil {
			b.log.Error().
				Str("event", name).
				Str("delivery_id", d.id).
				Interface("panic", r).
				Str("stack", string(debug.Stack())).
				Msg("pánico en handler de evento")
		}
	}()

	// El despacho sobrevive a la cancelación del request que publicó
	hctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()

	if err := h(hctx, d.e); err != nil {
		b.log.Warn().Err(err).
			Str("event", name).
			Str("delivery_id", d.id).
			Msg("handler de evento devolvió error")
	}
}
