// Package filterstore holds the search criteria state. It is the single
// source of truth for filter fields: consumers mutate it only through the
// store's update operations and observe it through subscriptions.
package filterstore

import (
	"fmt"
	"sync"

	"github.com/sangwon514/room-search-map/internal/domain"
)

// Field names a single filter field for Update.
type Field string

const (
	FieldKeyword          Field = "keyword"
	FieldThemeType        Field = "theme_type"
	FieldRoomCounts       Field = "room_cnt"
	FieldPropertyTypes    Field = "property_type"
	FieldAnimal           Field = "animal"
	FieldSubway           Field = "subway"
	FieldLongtermDiscount Field = "longterm_discount"
	FieldEarlyDiscount    Field = "early_discount"
	FieldParkingPlace     Field = "parking_place"
	FieldMinUsingFee      Field = "min_using_fee"
	FieldMaxUsingFee      Field = "max_using_fee"
	FieldSort             Field = "sort"
	FieldNowPage          Field = "now_page"
	FieldItemCount        Field = "itemcount"
	FieldByLocation       Field = "by_location"
	FieldViewport         Field = "viewport"
)

// Partial is a set of field changes applied atomically by UpdateBatch.
// Nil members are left untouched.
type Partial struct {
	Keyword          *string
	ThemeType        *string
	RoomCounts       []string
	PropertyTypes    []string
	Animal           *bool
	Subway           *bool
	LongtermDiscount *bool
	EarlyDiscount    *bool
	ParkingPlace     *bool
	MinUsingFee      *int
	MaxUsingFee      *int
	Sort             *string
	NowPage          *int
	ItemCount        *int
	ByLocation       *bool
	Viewport         *domain.Viewport
}

// Subscriber receives the full filter state after every mutation.
type Subscriber func(domain.Filter)

// Store is an injectable filter state container. Created once at startup
// with fixed defaults and never destroyed. Every mutation notifies
// subscribers synchronously, even when the new value equals the old one;
// deduplication is the change notifier's job.
//
// No field validation happens here. Out-of-range values (a max price below
// the min, an inverted rectangle) are accepted and left to the server.
type Store struct {
	mu     sync.Mutex
	filter domain.Filter
	subs   map[int]Subscriber
	nextID int
}

// New creates a store holding the fixed initial defaults.
func New() *Store {
	return &Store{
		filter: domain.DefaultFilter(),
		subs:   make(map[int]Subscriber),
	}
}

// Snapshot returns an immutable copy of the current state.
func (s *Store) Snapshot() domain.Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter.Clone()
}

// Subscribe registers a subscriber and returns an unsubscribe function.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Update sets one field. Changing any field except the pagination cursor
// resets the cursor to page 1.
func (s *Store) Update(field Field, value any) error {
	s.mu.Lock()

	if err := s.set(field, value); err != nil {
		s.mu.Unlock()
		return err
	}
	if field != FieldNowPage {
		s.filter.NowPage = 1
	}

	s.notifyLocked()
	return nil
}

// UpdateBatch merges a set of field changes atomically. The pagination
// cursor resets to 1 unless the partial itself carries a cursor value.
func (s *Store) UpdateBatch(p Partial) {
	s.mu.Lock()

	if p.Keyword != nil {
		s.filter.Keyword = *p.Keyword
	}
	if p.ThemeType != nil {
		s.filter.ThemeType = *p.ThemeType
	}
	if p.RoomCounts != nil {
		s.filter.RoomCounts = append([]string(nil), p.RoomCounts...)
	}
	if p.PropertyTypes != nil {
		s.filter.PropertyTypes = append([]string(nil), p.PropertyTypes...)
	}
	if p.Animal != nil {
		s.filter.Animal = *p.Animal
	}
	if p.Subway != nil {
		s.filter.Subway = *p.Subway
	}
	if p.LongtermDiscount != nil {
		s.filter.LongtermDiscount = *p.LongtermDiscount
	}
	if p.EarlyDiscount != nil {
		s.filter.EarlyDiscount = *p.EarlyDiscount
	}
	if p.ParkingPlace != nil {
		s.filter.ParkingPlace = *p.ParkingPlace
	}
	if p.MinUsingFee != nil {
		s.filter.MinUsingFee = *p.MinUsingFee
	}
	if p.MaxUsingFee != nil {
		s.filter.MaxUsingFee = *p.MaxUsingFee
	}
	if p.Sort != nil {
		s.filter.Sort = *p.Sort
	}
	if p.ItemCount != nil {
		s.filter.ItemCount = *p.ItemCount
	}
	if p.ByLocation != nil {
		s.filter.ByLocation = *p.ByLocation
	}
	if p.Viewport != nil {
		s.filter.Viewport = *p.Viewport
	}

	if p.NowPage != nil {
		s.filter.NowPage = *p.NowPage
	} else {
		s.filter.NowPage = 1
	}

	s.notifyLocked()
}

// Reset restores the fixed initial defaults.
func (s *Store) Reset() {
	s.mu.Lock()
	s.filter = domain.DefaultFilter()
	s.notifyLocked()
}

func (s *Store) set(field Field, value any) error {
	switch field {
	case FieldKeyword:
		return assign(&s.filter.Keyword, field, value)
	case FieldThemeType:
		return assign(&s.filter.ThemeType, field, value)
	case FieldRoomCounts:
		v, ok := value.([]string)
		if !ok {
			return fmt.Errorf("filterstore: field %s wants []string, got %T", field, value)
		}
		s.filter.RoomCounts = append([]string(nil), v...)
		return nil
	case FieldPropertyTypes:
		v, ok := value.([]string)
		if !ok {
			return fmt.Errorf("filterstore: field %s wants []string, got %T", field, value)
		}
		s.filter.PropertyTypes = append([]string(nil), v...)
		return nil
	case FieldAnimal:
		return assign(&s.filter.Animal, field, value)
	case FieldSubway:
		return assign(&s.filter.Subway, field, value)
	case FieldLongtermDiscount:
		return assign(&s.filter.LongtermDiscount, field, value)
	case FieldEarlyDiscount:
		return assign(&s.filter.EarlyDiscount, field, value)
	case FieldParkingPlace:
		return assign(&s.filter.ParkingPlace, field, value)
	case FieldMinUsingFee:
		return assign(&s.filter.MinUsingFee, field, value)
	case FieldMaxUsingFee:
		return assign(&s.filter.MaxUsingFee, field, value)
	case FieldSort:
		return assign(&s.filter.Sort, field, value)
	case FieldNowPage:
		return assign(&s.filter.NowPage, field, value)
	case FieldItemCount:
		return assign(&s.filter.ItemCount, field, value)
	case FieldByLocation:
		return assign(&s.filter.ByLocation, field, value)
	case FieldViewport:
		return assign(&s.filter.Viewport, field, value)
	default:
		return fmt.Errorf("filterstore: unknown field %q", field)
	}
}

func assign[T any](dst *T, field Field, value any) error {
	v, ok := value.(T)
	if !ok {
		return fmt.Errorf("filterstore: field %s wants %T, got %T", field, *dst, value)
	}
	*dst = v
	return nil
}

// notifyLocked snapshots the state and subscriber list, releases the lock,
// and invokes subscribers synchronously. Callers must hold mu.
func (s *Store) notifyLocked() {
	snapshot := s.filter.Clone()
	subs := make([]Subscriber, 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}
