package mapview

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/paulmach/orb"

	"github.com/sangwon514/room-search-map/internal/domain"
	"github.com/sangwon514/room-search-map/internal/eventbus"
	"github.com/sangwon514/room-search-map/internal/notify"
)

// Phase is the map instance lifecycle state.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseLoading
	PhaseReady
	PhaseTornDown
)

const (
	// idleQuietPeriod debounces the raw SDK idle event. This is a separate
	// stage from the filter-merge debounce downstream: one guards map
	// panning, the other arbitrary filter edits.
	idleQuietPeriod = 300 * time.Millisecond

	// initialIdleSuppression swallows the spurious idle event the widget
	// fires on initial paint.
	initialIdleSuppression = 500 * time.Millisecond

	// selectionLevel is the tightest zoom applied when centering on a
	// selected marker group. Levels grow coarser upward; an already
	// tighter zoom is left alone.
	selectionLevel = 3

	servicesPollInterval = 100 * time.Millisecond
)

// Controller owns one map widget and one clusterer. It renders room
// markers grouped by coordinate, publishes debounced viewport-changed
// events, and resolves addresses when an explicit search left the result
// without coordinates.
type Controller struct {
	provider Provider
	bus      eventbus.EventBus

	idleDebounce *notify.Debouncer

	mu           sync.Mutex
	phase        Phase
	m            Map
	clusterer    Clusterer
	markers      []Marker
	removeIdle   func()
	readyAt      time.Time
	didFit       bool
	prevRoomsKey string
	prevSelKey   string
	armed        bool

	geoSeq atomic.Uint64

	center LatLng
	level  int

	unsubscribe func()
}

// NewController creates a controller that will open the map at the given
// center and level once the provider has loaded.
func NewController(provider Provider, bus eventbus.EventBus, center LatLng, level int) *Controller {
	c := &Controller{
		provider:     provider,
		bus:          bus,
		idleDebounce: notify.NewDebouncer(idleQuietPeriod),
		center:       center,
		level:        level,
	}

	// An explicit keyword search arms the address-geocoding flow.
	c.unsubscribe = bus.Subscribe(eventbus.EventSearchTriggered, func(eventbus.DomainEvent) {
		c.mu.Lock()
		c.armed = true
		c.mu.Unlock()
	})

	return c
}

// Phase reports the lifecycle state.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Start begins loading the provider and creates the map instance when the
// load completes. Safe to call once; later calls are no-ops.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	if c.phase != PhaseUninitialized {
		c.mu.Unlock()
		return
	}
	c.phase = PhaseLoading
	c.mu.Unlock()

	go func() {
		err := c.provider.Load(ctx)

		c.mu.Lock()
		if c.phase == PhaseTornDown {
			c.mu.Unlock()
			return
		}
		if err != nil {
			c.teardownLocked()
			c.mu.Unlock()
			c.bus.Publish(eventbus.ErrorEvent{Message: "지도를 불러오지 못했습니다", Err: err})
			return
		}
		if c.m != nil {
			c.mu.Unlock()
			return
		}

		m, err := c.provider.NewMap(c.center, c.level)
		if err != nil {
			c.teardownLocked()
			c.mu.Unlock()
			c.bus.Publish(eventbus.ErrorEvent{Message: "지도를 초기화하지 못했습니다", Err: err})
			return
		}
		clusterer, err := c.provider.NewClusterer(m)
		if err != nil {
			m.Close()
			c.teardownLocked()
			c.mu.Unlock()
			c.bus.Publish(eventbus.ErrorEvent{Message: "클러스터러를 초기화하지 못했습니다", Err: fmt.Errorf("can't create clusterer: %w", err)})
			return
		}

		c.m = m
		c.clusterer = clusterer
		c.phase = PhaseReady
		c.readyAt = time.Now()
		c.removeIdle = m.OnIdle(c.onIdle)
		c.mu.Unlock()

		slog.Info("map ready", "center_lat", c.center.Lat, "center_lng", c.center.Lng, "level", c.level)
	}()
}

// Teardown releases the widget: markers removed, clusterer cleared, idle
// listener detached, both instance references dropped. Idempotent.
func (c *Controller) Teardown() {
	c.idleDebounce.Stop()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.teardownLocked()
}

func (c *Controller) teardownLocked() {
	if c.phase == PhaseTornDown {
		return
	}
	c.phase = PhaseTornDown

	for _, mk := range c.markers {
		mk.Remove()
	}
	c.markers = nil
	if c.clusterer != nil {
		c.clusterer.Clear()
	}
	if c.removeIdle != nil {
		c.removeIdle()
		c.removeIdle = nil
	}
	if c.m != nil {
		c.m.Close()
	}
	c.m = nil
	c.clusterer = nil

	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

func (c *Controller) onIdle() {
	c.mu.Lock()
	if c.phase != PhaseReady || time.Since(c.readyAt) < initialIdleSuppression {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	c.idleDebounce.Call(func() {
		c.mu.Lock()
		m := c.m
		ready := c.phase == PhaseReady
		c.mu.Unlock()
		if !ready || m == nil {
			return
		}
		c.bus.Publish(eventbus.ViewportChangedEvent{Viewport: m.Viewport()})
	})
}

// Render draws one marker per coordinate group. Re-rendering an unchanged
// room list and selection is skipped entirely; the identity keys make the
// check cheap.
func (c *Controller) Render(rooms []domain.Room, selected *domain.RoomGroup) {
	c.mu.Lock()
	if c.phase != PhaseReady || c.m == nil {
		c.mu.Unlock()
		return
	}

	roomsKey := roomsIdentityKey(rooms)
	selKey := selectionKey(selected)
	if roomsKey == c.prevRoomsKey && selKey == c.prevSelKey && roomsKey != "" {
		c.mu.Unlock()
		c.maybeGeocode(rooms)
		return
	}
	c.prevRoomsKey = roomsKey
	c.prevSelKey = selKey

	for _, mk := range c.markers {
		mk.Remove()
	}
	c.markers = nil
	c.clusterer.Clear()

	if len(rooms) == 0 {
		c.mu.Unlock()
		c.maybeGeocode(rooms)
		return
	}

	selCoord := ""
	if selected != nil && len(selected.Rooms) > 0 {
		first := selected.Rooms[0]
		selCoord = domain.CoordKey(first.Lat, first.Lng)
	}

	var bound orb.Bound
	boundSet := false
	markers := make([]Marker, 0, len(rooms))

	for _, g := range GroupByCoordinate(rooms) {
		room := g.Rooms[0]
		if !room.HasCoordinates() {
			continue
		}

		group := g
		spec := MarkerSpec{
			Position: LatLng{Lat: room.Lat, Lng: room.Lng},
			Label:    MarkerLabel(g),
			Selected: g.Key == selCoord,
			OnClick: func() {
				c.bus.Publish(eventbus.SelectionChangedEvent{Group: group})
			},
		}

		pt := room.Point()
		if !boundSet {
			bound = orb.Bound{Min: pt, Max: pt}
			boundSet = true
		} else {
			bound = bound.Extend(pt)
		}

		markers = append(markers, c.m.AddMarker(spec))
	}
	c.markers = markers

	if len(markers) > 0 {
		c.clusterer.AddMarkers(markers)

		// Fit once; afterwards the user's manual pan/zoom wins.
		if !c.didFit {
			c.m.FitBounds(bound)
			c.didFit = true
		}

		if selected != nil && len(selected.Rooms) > 0 {
			first := selected.Rooms[0]
			if first.HasCoordinates() {
				c.m.SetCenter(LatLng{Lat: first.Lat, Lng: first.Lng})
				if c.m.Viewport().Level > selectionLevel {
					c.m.SetLevel(selectionLevel)
				}
			}
		}
	}
	c.mu.Unlock()

	c.maybeGeocode(rooms)
}

// roomsIdentityKey is a cheap identity over the ordered (rid, lat, lng)
// triples of the list.
func roomsIdentityKey(rooms []domain.Room) string {
	if len(rooms) == 0 {
		return ""
	}
	parts := make([]string, len(rooms))
	for i, r := range rooms {
		parts[i] = fmt.Sprintf("%d-%v-%v", r.RID, r.Lat, r.Lng)
	}
	return strings.Join(parts, "|")
}

func selectionKey(g *domain.RoomGroup) string {
	if g == nil || len(g.Rooms) == 0 {
		return ""
	}
	parts := make([]string, len(g.Rooms))
	for i, r := range g.Rooms {
		parts[i] = strconv.FormatInt(r.RID, 10)
	}
	slices.Sort(parts)
	return strings.Join(parts, ",")
}
