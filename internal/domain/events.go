package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventFilterCommitted  EventType = "FilterCommitted"
	EventViewportChanged  EventType = "ViewportChanged"
	EventRoomsUpdated     EventType = "RoomsUpdated"
	EventSelectionChanged EventType = "SelectionChanged"
	EventSelectionCleared EventType = "SelectionCleared"
	EventSearchTriggered  EventType = "SearchTriggered"
	EventGeocodeResolved  EventType = "GeocodeResolved"
	EventSessionValidated EventType = "SessionValidated"
	EventExportStarted    EventType = "ExportStarted"
	EventExportCompleted  EventType = "ExportCompleted"
	EventError            EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// FilterCommittedEvent is emitted by the change notifier once a burst of
// filter mutations has settled. Filter carries the state as of the last
// mutation in the burst.
type FilterCommittedEvent struct {
	Filter Filter
}

func (e FilterCommittedEvent) Type() EventType { return EventFilterCommitted }

// ViewportChangedEvent is emitted when the map settles on a new viewport.
type ViewportChangedEvent struct {
	Viewport Viewport
}

func (e ViewportChangedEvent) Type() EventType { return EventViewportChanged }

// RoomsUpdatedEvent is emitted when a search result actually replaced the
// held room list. Seq is the search sequence number that produced it.
type RoomsUpdatedEvent struct {
	Rooms      []Room
	CDNBaseURL string
	ErrorCode  int
	Seq        uint64
}

func (e RoomsUpdatedEvent) Type() EventType { return EventRoomsUpdated }

// SelectionChangedEvent is emitted when a marker group is selected.
type SelectionChangedEvent struct {
	Group RoomGroup
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// SelectionClearedEvent is emitted when the selection is dropped.
type SelectionClearedEvent struct{}

func (e SelectionClearedEvent) Type() EventType { return EventSelectionCleared }

// SearchTriggeredEvent is emitted after an explicit keyword search; it arms
// the address-geocoding flow on the map controller.
type SearchTriggeredEvent struct{}

func (e SearchTriggeredEvent) Type() EventType { return EventSearchTriggered }

// GeocodeResolvedEvent is emitted when an address search produced a usable
// coordinate and the map was recentered on it.
type GeocodeResolvedEvent struct {
	Lat float64
	Lng float64
}

func (e GeocodeResolvedEvent) Type() EventType { return EventGeocodeResolved }

// SessionValidatedEvent carries the outcome of a session validation call.
type SessionValidatedEvent struct {
	Valid   bool
	Message string
}

func (e SessionValidatedEvent) Type() EventType { return EventSessionValidated }

// ExportStartedEvent is emitted when a reservation-rate download begins.
type ExportStartedEvent struct {
	RoomCount int
	Period    Period
}

func (e ExportStartedEvent) Type() EventType { return EventExportStarted }

// ExportCompletedEvent is emitted when the download finished or failed.
type ExportCompletedEvent struct {
	Filename     string
	Err          error
	SessionReset bool // the session credential was cleared on failure
}

func (e ExportCompletedEvent) Type() EventType { return EventExportCompleted }

// ErrorEvent is emitted when an operation fails in a user-visible way.
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
