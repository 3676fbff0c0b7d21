package eventbus

import (
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/sangwon514/room-search-map/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventFilterCommitted  = domain.EventFilterCommitted
	EventViewportChanged  = domain.EventViewportChanged
	EventRoomsUpdated     = domain.EventRoomsUpdated
	EventSelectionChanged = domain.EventSelectionChanged
	EventSelectionCleared = domain.EventSelectionCleared
	EventSearchTriggered  = domain.EventSearchTriggered
	EventGeocodeResolved  = domain.EventGeocodeResolved
	EventSessionValidated = domain.EventSessionValidated
	EventExportStarted    = domain.EventExportStarted
	EventExportCompleted  = domain.EventExportCompleted
	EventError            = domain.EventError
)

// Re-export domain event types
type FilterCommittedEvent = domain.FilterCommittedEvent
type ViewportChangedEvent = domain.ViewportChangedEvent
type RoomsUpdatedEvent = domain.RoomsUpdatedEvent
type SelectionChangedEvent = domain.SelectionChangedEvent
type SelectionClearedEvent = domain.SelectionClearedEvent
type SearchTriggeredEvent = domain.SearchTriggeredEvent
type GeocodeResolvedEvent = domain.GeocodeResolvedEvent
type SessionValidatedEvent = domain.SessionValidatedEvent
type ExportStartedEvent = domain.ExportStartedEvent
type ExportCompletedEvent = domain.ExportCompletedEvent
type ErrorEvent = domain.ErrorEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

// subscription pairs a handler with a stable id so unsubscribing stays
// correct after earlier handlers on the same event type are removed.
type subscription struct {
	id      int
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    int
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
}

// New creates a new event bus
func New() EventBus {
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 1000),
		quit:      make(chan struct{}),
	}

	// Start the event dispatcher
	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	// Viewport events fire on every map settle; don't log them
	switch event.Type() {
	case EventViewportChanged, EventRoomsUpdated:
	default:
		slog.Debug("publishing event", "type", event.Type())
	}

	select {
	case b.eventChan <- event:
	default:
		slog.Warn("event bus channel full, dropping event", "type", event.Type())
	}
}

// Subscribe subscribes to events of a specific type.
// Returns an unsubscribe function.
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i], subs[i+1:]...)
				return
			}
		}
	}
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			subs := b.handlers[event.Type()]
			handlersCopy := make([]EventHandler, len(subs))
			for i, s := range subs {
				handlersCopy[i] = s.handler
			}
			b.mu.RUnlock()

			for _, handler := range handlersCopy {
				func(h EventHandler, eventType EventType) {
					defer func() {
						if r := recover(); r != nil {
							slog.Error("event handler panic",
								"type", eventType, "panic", r, "stack", string(debug.Stack()))
						}
					}()
					h(event)
				}(handler, event.Type())
			}

		case <-b.quit:
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}
