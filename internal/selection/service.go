// Package selection reconciles the full room list against a user-selected
// marker group to decide what the list panel displays.
package selection

import (
	"sync"

	"github.com/sangwon514/room-search-map/internal/domain"
	"github.com/sangwon514/room-search-map/internal/eventbus"
)

// Service holds the optional marker-group selection. The selection is a
// reference into the current room list, not an owner: it is recomputed
// against the list on every display pass and auto-cleared when its
// coordinate key vanishes from a fresh result.
type Service struct {
	mu    sync.Mutex
	bus   eventbus.EventBus
	group *domain.RoomGroup

	unsubs []func()
}

// NewService creates a selection service wired to the bus.
func NewService(bus eventbus.EventBus) *Service {
	s := &Service{bus: bus}

	s.unsubs = append(s.unsubs,
		bus.Subscribe(eventbus.EventSelectionChanged, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.SelectionChangedEvent); ok {
				s.mu.Lock()
				g := event.Group
				s.group = &g
				s.mu.Unlock()
			}
		}),
		bus.Subscribe(eventbus.EventRoomsUpdated, func(e eventbus.DomainEvent) {
			if event, ok := e.(eventbus.RoomsUpdatedEvent); ok {
				s.reconcile(event.Rooms)
			}
		}),
	)

	return s
}

// Close detaches the service from the bus.
func (s *Service) Close() {
	for _, unsub := range s.unsubs {
		unsub()
	}
	s.unsubs = nil
}

// Select makes the given group the active selection.
func (s *Service) Select(g domain.RoomGroup) {
	s.mu.Lock()
	s.group = &g
	s.mu.Unlock()

	s.bus.Publish(eventbus.SelectionChangedEvent{Group: g})
}

// Clear drops the selection and reverts the list panel to the full list.
func (s *Service) Clear() {
	s.mu.Lock()
	had := s.group != nil
	s.group = nil
	s.mu.Unlock()

	if had {
		s.bus.Publish(eventbus.SelectionClearedEvent{})
	}
}

// Current returns the active selection, or nil.
func (s *Service) Current() *domain.RoomGroup {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.group == nil {
		return nil
	}
	g := *s.group
	return &g
}

// HasSelection reports whether a non-empty selection is active.
func (s *Service) HasSelection() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.group != nil && len(s.group.Rooms) > 0
}

// DisplayRooms returns the rooms the list panel should show: the active
// selection's members when one exists, otherwise the full list.
func (s *Service) DisplayRooms(all []domain.Room) []domain.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.group != nil && len(s.group.Rooms) > 0 {
		return s.group.Rooms
	}
	return all
}

// reconcile auto-clears a selection whose coordinate key no longer exists
// in the new room list; keeping it would display rooms the map no longer
// shows.
func (s *Service) reconcile(rooms []domain.Room) {
	s.mu.Lock()
	if s.group == nil || len(s.group.Rooms) == 0 {
		s.mu.Unlock()
		return
	}
	key := s.group.Key

	for _, r := range rooms {
		if domain.CoordKey(r.Lat, r.Lng) == key {
			s.mu.Unlock()
			return
		}
	}

	s.group = nil
	s.mu.Unlock()

	s.bus.Publish(eventbus.SelectionClearedEvent{})
}
