// Package events defines the application's domain events and re-exports the
// platform event bus so modules have a single import for both.
package events

import (
	platformevents "lendingleads_backend/platform/events"
	"lendingleads_backend/platform/logger"

	"github.com/google/uuid"
)

// Re-exported platform types so modules import only this package.
type (
	Event       = platformevents.Event
	BaseEvent   = platformevents.BaseEvent
	Handler     = platformevents.Handler
	HandlerFunc = platformevents.HandlerFunc
	Bus         = platformevents.Bus
	InMemoryBus = platformevents.InMemoryBus
)

// NewBaseEvent creates a new base event with the current timestamp.
func NewBaseEvent() BaseEvent {
	return platformevents.NewBaseEvent()
}

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return platformevents.NewInMemoryBus(log)
}

// Event names.
const (
	EventLeadScored    = "leads.scored"
	EventLeadPurchased = "marketplace.lead_purchased"
)

// LeadScored is published after a submitted lead has been scored and persisted.
type LeadScored struct {
	BaseEvent
	LeadID             uuid.UUID
	BusinessName       string
	ContactName        string
	Email              string
	LeadScore          int
	LeadGrade          string
	ScoringTier        string
	RecommendedProduct string
	EstimatedValue     int
	Urgency            string
}

// EventName returns the event identifier.
func (e LeadScored) EventName() string { return EventLeadScored }

// LeadPurchased is published when a broker completes a marketplace purchase.
type LeadPurchased struct {
	BaseEvent
	LeadID       uuid.UUID
	BrokerID     uuid.UUID
	BrokerEmail  string
	BusinessName string
	Price        int64
	Exclusive    bool
}

// EventName returns the event identifier.
func (e LeadPurchased) EventName() string { return EventLeadPurchased }
