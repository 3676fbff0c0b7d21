package ui

import (
	"github.com/sangwon514/room-search-map/internal/eventbus"
	"github.com/sangwon514/room-search-map/internal/searchclient"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// searchResultMsg contains the result of a room search
type searchResultMsg struct {
	result searchclient.Result
}

// validateResultMsg contains the result of a session check
type validateResultMsg struct {
	valid   bool
	message string
}

// exportResultMsg contains the result of a spreadsheet download
type exportResultMsg struct {
	path         string
	err          error
	sessionReset bool
}

// pagerDoneMsg signals that the room detail pager has exited
type pagerDoneMsg struct {
	err error
}
