package selection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sangwon514/room-search-map/internal/domain"
	"github.com/sangwon514/room-search-map/internal/eventbus"
)

func sinchonGroup() domain.RoomGroup {
	rooms := []domain.Room{
		{RID: 1, Name: "신촌 오피스텔", UsingFee: 350000, Lat: 37.5551, Lng: 126.9368},
		{RID: 2, Name: "신촌 원룸", UsingFee: 280000, Lat: 37.5551, Lng: 126.9368},
	}
	return domain.RoomGroup{Key: domain.CoordKey(37.5551, 126.9368), Rooms: rooms}
}

func TestSelectAndCurrent(t *testing.T) {
	bus := eventbus.New()
	s := NewService(bus)
	defer s.Close()

	require.False(t, s.HasSelection())
	require.Nil(t, s.Current())

	s.Select(sinchonGroup())

	require.True(t, s.HasSelection())
	got := s.Current()
	require.NotNil(t, got)
	require.Len(t, got.Rooms, 2)
}

func TestSelectPublishesSelectionChanged(t *testing.T) {
	bus := eventbus.New()
	s := NewService(bus)
	defer s.Close()

	changed := make(chan eventbus.SelectionChangedEvent, 1)
	bus.Subscribe(eventbus.EventSelectionChanged, func(e eventbus.DomainEvent) {
		changed <- e.(eventbus.SelectionChangedEvent)
	})

	s.Select(sinchonGroup())

	select {
	case e := <-changed:
		require.Equal(t, int64(1), e.Group.Rooms[0].RID)
	case <-time.After(time.Second):
		t.Fatal("no selection-changed event")
	}
}

func TestClearPublishesOnce(t *testing.T) {
	bus := eventbus.New()
	s := NewService(bus)
	defer s.Close()

	cleared := make(chan struct{}, 2)
	bus.Subscribe(eventbus.EventSelectionCleared, func(eventbus.DomainEvent) {
		cleared <- struct{}{}
	})

	s.Select(sinchonGroup())
	s.Clear()
	s.Clear() // no selection anymore; must stay silent

	select {
	case <-cleared:
	case <-time.After(time.Second):
		t.Fatal("no selection-cleared event")
	}
	select {
	case <-cleared:
		t.Fatal("clearing an empty selection published again")
	case <-time.After(100 * time.Millisecond):
	}

	require.False(t, s.HasSelection())
}

func TestDisplayRooms(t *testing.T) {
	bus := eventbus.New()
	s := NewService(bus)
	defer s.Close()

	all := []domain.Room{
		{RID: 1, Lat: 37.5551, Lng: 126.9368},
		{RID: 2, Lat: 37.5551, Lng: 126.9368},
		{RID: 3, Lat: 37.4979, Lng: 127.0276},
	}

	require.Equal(t, all, s.DisplayRooms(all))

	s.Select(sinchonGroup())
	require.Len(t, s.DisplayRooms(all), 2)

	s.Clear()
	require.Equal(t, all, s.DisplayRooms(all))
}

func TestSelectionTracksBusEvents(t *testing.T) {
	bus := eventbus.New()
	s := NewService(bus)
	defer s.Close()

	// A selection made elsewhere, e.g. a marker click, lands via the bus.
	bus.Publish(eventbus.SelectionChangedEvent{Group: sinchonGroup()})

	require.Eventually(t, func() bool {
		return s.HasSelection()
	}, time.Second, 5*time.Millisecond)
}

func TestReconcileKeepsSurvivingSelection(t *testing.T) {
	bus := eventbus.New()
	s := NewService(bus)
	defer s.Close()

	s.Select(sinchonGroup())

	// The coordinate is still present, with different members.
	fresh := []domain.Room{
		{RID: 9, Name: "신촌 신규", Lat: 37.5551, Lng: 126.9368},
	}
	bus.Publish(eventbus.RoomsUpdatedEvent{Rooms: fresh})

	time.Sleep(100 * time.Millisecond)
	require.True(t, s.HasSelection())
}

func TestReconcileClearsVanishedSelection(t *testing.T) {
	bus := eventbus.New()
	s := NewService(bus)
	defer s.Close()

	cleared := make(chan struct{}, 1)
	bus.Subscribe(eventbus.EventSelectionCleared, func(eventbus.DomainEvent) {
		cleared <- struct{}{}
	})

	s.Select(sinchonGroup())

	// A fresh result without the selected coordinate drops the selection.
	fresh := []domain.Room{
		{RID: 3, Name: "강남 원룸", Lat: 37.4979, Lng: 127.0276},
	}
	bus.Publish(eventbus.RoomsUpdatedEvent{Rooms: fresh})

	select {
	case <-cleared:
	case <-time.After(time.Second):
		t.Fatal("vanished selection was not cleared")
	}
	require.False(t, s.HasSelection())
}

func TestCloseDetachesFromBus(t *testing.T) {
	bus := eventbus.New()
	s := NewService(bus)

	s.Select(sinchonGroup())
	s.Close()

	bus.Publish(eventbus.RoomsUpdatedEvent{Rooms: []domain.Room{
		{RID: 3, Lat: 37.4979, Lng: 127.0276},
	}})

	time.Sleep(100 * time.Millisecond)
	require.True(t, s.HasSelection(), "a closed service must ignore bus traffic")
}
