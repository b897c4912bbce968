package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers. Handlers run
// asynchronously so a slow subscriber cannot block the caller.
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, handler := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType": event.Type(),
						"panic":     r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler)
	}
}

// TransactionalBus stashes events published during a unit of work and
// forwards them to the underlying bus only after the transaction commits.
// Events published inside a rolled-back transaction are discarded.
type TransactionalBus struct {
	real    *Bus
	mu      sync.Mutex
	pending []Event
}

// NewTransactionalBus creates a transactional wrapper around bus
func NewTransactionalBus(bus *Bus) *TransactionalBus {
	return &TransactionalBus{real: bus}
}

// Publish stashes the event until Flush is called
func (t *TransactionalBus) Publish(event Event) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = append(t.pending, event)
	return nil
}

// Flush emits all pending events to the underlying bus
func (t *TransactionalBus) Flush(ctx context.Context) {
	t.mu.Lock()
	pending := t.pending
	t.pending = nil
	t.mu.Unlock()

	for _, event := range pending {
		t.real.Emit(ctx, event)
	}
}

// Discard drops all pending events
func (t *TransactionalBus) Discard() {
	t.mu.Lock()
	t.pending = nil
	t.mu.Unlock()
}
