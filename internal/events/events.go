// Package events is a small in-process pub/sub bus for booking lifecycle
// notifications. Delivery is synchronous and fire-and-forget; subscribers
// must not block.
package events

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	EventBookingCreated = "booking_created"
	EventBookingUpdated = "booking_updated"
	EventBookingDeleted = "booking_deleted"
)

// Event is a lightweight booking lifecycle notification.
type Event struct {
	Type      string
	BookingID int64
	At        time.Time
}

// Handler reacts to an event.
type Handler func(Event)

// Bus provides in-process pub/sub for booking events.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]Handler
}

func NewBus() *Bus {
	return &Bus{subscribers: make(map[string][]Handler)}
}

// Subscribe registers a handler for a given event type.
func (b *Bus) Subscribe(eventType string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish delivers an event to every subscriber of its type. A nil bus is
// a valid no-op publisher.
func (b *Bus) Publish(eventType string, bookingID int64) {
	if b == nil {
		return
	}
	event := Event{Type: eventType, BookingID: bookingID, At: time.Now()}

	b.mu.RLock()
	handlers := b.subscribers[eventType]
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}

// AuditSubscriber returns a handler that writes booking events to the audit
// log.
func AuditSubscriber(logger *zerolog.Logger) Handler {
	audit := logger.With().Str("component", "audit").Logger()
	return func(e Event) {
		audit.Info().
			Str("event", e.Type).
			Int64("booking_id", e.BookingID).
			Time("at", e.At).
			Msg("booking event")
	}
}
