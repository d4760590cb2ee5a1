package eventbus

import "time"

// Event types emitted by the seeding flow
const (
	EventTypeCollectionCleaned = "seed.collection_cleaned"
	EventTypeDocumentsInserted = "seed.documents_inserted"
	EventTypeSeedFailed        = "seed.failed"
)

// SeedEventTypes lists every event type a seed run can publish, in run order
func SeedEventTypes() []string {
	return []string{EventTypeCollectionCleaned, EventTypeDocumentsInserted, EventTypeSeedFailed}
}

// BasicEvent implements the Event interface
type BasicEvent struct {
	eventType string
	data      interface{}
	timestamp time.Time
	source    string
}

// NewBasicEvent creates an event with an unknown source
func NewBasicEvent(eventType string, data interface{}) Event {
	return NewBasicEventWithSource(eventType, data, "unknown")
}

// NewBasicEventWithSource creates an event stamped with the current time
func NewBasicEventWithSource(eventType string, data interface{}, source string) Event {
	return &BasicEvent{
		eventType: eventType,
		data:      data,
		timestamp: time.Now().UTC(),
		source:    source,
	}
}

func (e *BasicEvent) Type() string         { return e.eventType }
func (e *BasicEvent) Data() interface{}    { return e.data }
func (e *BasicEvent) Timestamp() time.Time { return e.timestamp }
func (e *BasicEvent) Source() string       { return e.source }
