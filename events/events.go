package events

import (
	"context"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeEntriesAdded       EventType = "entries_added"
	EventTypeEntryRenamed       EventType = "entry_renamed"
	EventTypeEntryDeactivated   EventType = "entry_deactivated"
	EventTypeDrawPerformed      EventType = "draw_performed"
	EventTypeAccountProvisioned EventType = "account_provisioned"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// EntriesAddedEvent represents a batch of labels added to the wheel
type EntriesAddedEvent struct {
	Labels          []string
	AddedBy         uuid.UUID
	AccountsCreated int
}

func (e EntriesAddedEvent) Type() EventType {
	return EventTypeEntriesAdded
}

// EntryRenamedEvent represents an entry label change
type EntryRenamedEvent struct {
	EntryID  uuid.UUID
	OldLabel string
	NewLabel string
}

func (e EntryRenamedEvent) Type() EventType {
	return EventTypeEntryRenamed
}

// EntryDeactivatedEvent represents an entry being soft-deleted
type EntryDeactivatedEvent struct {
	EntryID uuid.UUID
	Label   string
}

func (e EntryDeactivatedEvent) Type() EventType {
	return EventTypeEntryDeactivated
}

// DrawPerformedEvent represents a completed winner selection
type DrawPerformedEvent struct {
	DrawID      uuid.UUID
	EntryID     uuid.UUID
	ResultLabel string
	CycleIndex  int
	DrawnBy     uuid.UUID
}

func (e DrawPerformedEvent) Type() EventType {
	return EventTypeDrawPerformed
}

// AccountProvisionedEvent represents an account created as a side effect of
// adding a wheel entry
type AccountProvisionedEvent struct {
	AccountID uuid.UUID
	Email     string
}

func (e AccountProvisionedEvent) Type() EventType {
	return EventTypeAccountProvisioned
}

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

// Publish dispatches an event to all registered handlers.
// Handlers run asynchronously so publishers never block on subscribers.
func (b *Bus) Publish(ctx context.Context, event Event) {
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
