// Package textmap renders the map pane as a character grid. It implements
// the mapview provider interfaces so the viewport controller drives it the
// same way it would drive a real map SDK.
package textmap

import (
	"context"
	"math"
	"strings"
	"sync"

	"github.com/paulmach/orb"

	"github.com/sangwon514/room-search-map/internal/domain"
	"github.com/sangwon514/room-search-map/internal/mapview"
)

const (
	minLevel = 1
	maxLevel = 14

	// Latitude span of the viewport at level 1. Each level doubles it.
	baseLatSpan = 0.002

	// Terminal cells are taller than wide; stretch longitude to compensate.
	lngAspect = 1.6

	// Fraction of the viewport a single pan keypress moves.
	panStep = 0.25
)

// Provider creates text maps. It satisfies mapview.Provider.
type Provider struct {
	mu sync.Mutex
	m  *Map
}

func NewProvider() *Provider {
	return &Provider{}
}

func (p *Provider) Load(ctx context.Context) error {
	return nil
}

func (p *Provider) NewMap(center mapview.LatLng, level int) (mapview.Map, error) {
	m := &Map{
		center:   center,
		level:    clampLevel(level),
		idleSubs: make(map[int]func()),
	}
	p.mu.Lock()
	p.m = m
	p.mu.Unlock()
	return m, nil
}

func (p *Provider) NewClusterer(m mapview.Map) (mapview.Clusterer, error) {
	return clusterer{}, nil
}

func (p *Provider) Geocoder() (mapview.Geocoder, bool) {
	return gazetteer{}, true
}

// Current returns the live map for rendering, nil before NewMap.
func (p *Provider) Current() *Map {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.m
}

// Map is a pannable, zoomable viewport over the rooms' coordinates.
// Idle listeners fire on their own goroutine after every viewport change,
// matching the asynchronous event model of a real map SDK.
type Map struct {
	mu       sync.Mutex
	center   mapview.LatLng
	level    int
	markers  []*marker
	idleSubs map[int]func()
	nextIdle int
	closed   bool
}

func (m *Map) Viewport() domain.Viewport {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.viewportLocked()
}

func (m *Map) viewportLocked() domain.Viewport {
	latSpan, lngSpan := spanForLevel(m.level)
	return domain.Viewport{
		NorthEastLat: m.center.Lat + latSpan/2,
		NorthEastLng: m.center.Lng + lngSpan/2,
		SouthWestLat: m.center.Lat - latSpan/2,
		SouthWestLng: m.center.Lng - lngSpan/2,
		Level:        m.level,
	}
}

func (m *Map) SetLevel(level int) {
	m.mu.Lock()
	level = clampLevel(level)
	changed := level != m.level
	m.level = level
	m.mu.Unlock()
	if changed {
		m.fireIdle()
	}
}

func (m *Map) SetCenter(c mapview.LatLng) {
	m.mu.Lock()
	m.center = c
	m.mu.Unlock()
	m.fireIdle()
}

// FitBounds recenters on the bound and picks the smallest level that
// contains it.
func (m *Map) FitBounds(b orb.Bound) {
	mid := b.Center()
	m.mu.Lock()
	m.center = mapview.LatLng{Lat: mid.Lat(), Lng: mid.Lon()}
	m.level = levelForSpan(b.Max.Lat()-b.Min.Lat(), b.Max.Lon()-b.Min.Lon())
	m.mu.Unlock()
	m.fireIdle()
}

// Pan moves the center by grid steps. dx is east, dy is south.
func (m *Map) Pan(dx, dy int) {
	m.mu.Lock()
	latSpan, lngSpan := spanForLevel(m.level)
	m.center.Lng += float64(dx) * lngSpan * panStep
	m.center.Lat -= float64(dy) * latSpan * panStep
	m.mu.Unlock()
	m.fireIdle()
}

// Zoom changes the level by one step.
func (m *Map) Zoom(in bool) {
	delta := 1
	if in {
		delta = -1
	}
	m.SetLevel(m.Level() + delta)
}

func (m *Map) Level() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.level
}

func (m *Map) AddMarker(spec mapview.MarkerSpec) mapview.Marker {
	mk := &marker{m: m, spec: spec}
	m.mu.Lock()
	m.markers = append(m.markers, mk)
	m.mu.Unlock()
	return mk
}

// MarkerSpecs returns a snapshot of the current marker specs.
func (m *Map) MarkerSpecs() []mapview.MarkerSpec {
	m.mu.Lock()
	defer m.mu.Unlock()
	specs := make([]mapview.MarkerSpec, 0, len(m.markers))
	for _, mk := range m.markers {
		specs = append(specs, mk.spec)
	}
	return specs
}

func (m *Map) OnIdle(fn func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextIdle
	m.nextIdle++
	m.idleSubs[id] = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.idleSubs, id)
	}
}

func (m *Map) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.markers = nil
	m.idleSubs = make(map[int]func())
}

func (m *Map) fireIdle() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	subs := make([]func(), 0, len(m.idleSubs))
	for _, fn := range m.idleSubs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	for _, fn := range subs {
		go fn()
	}
}

// Render draws the viewport as a rune grid. Markers outside the viewport
// are dropped; markers sharing a cell keep the first one drawn.
func (m *Map) Render(width, height int) string {
	if width < 3 || height < 3 {
		return ""
	}

	m.mu.Lock()
	vp := m.viewportLocked()
	specs := make([]mapview.MarkerSpec, 0, len(m.markers))
	for _, mk := range m.markers {
		specs = append(specs, mk.spec)
	}
	m.mu.Unlock()

	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = make([]rune, width)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	// Center crosshair.
	grid[height/2][width/2] = '+'

	latSpan := vp.NorthEastLat - vp.SouthWestLat
	lngSpan := vp.NorthEastLng - vp.SouthWestLng

	for _, spec := range specs {
		fx := (spec.Position.Lng - vp.SouthWestLng) / lngSpan
		fy := (vp.NorthEastLat - spec.Position.Lat) / latSpan
		if fx < 0 || fx >= 1 || fy < 0 || fy >= 1 {
			continue
		}
		x := int(fx * float64(width))
		y := int(fy * float64(height))
		if spec.Selected {
			grid[y][x] = '◆'
		} else if grid[y][x] == ' ' || grid[y][x] == '+' {
			grid[y][x] = '●'
		}
	}

	lines := make([]string, height)
	for y := range grid {
		lines[y] = string(grid[y])
	}
	return strings.Join(lines, "\n")
}

type marker struct {
	m    *Map
	spec mapview.MarkerSpec
}

func (mk *marker) Remove() {
	mk.m.mu.Lock()
	defer mk.m.mu.Unlock()
	for i, cur := range mk.m.markers {
		if cur == mk {
			mk.m.markers = append(mk.m.markers[:i], mk.m.markers[i+1:]...)
			return
		}
	}
}

// clusterer is a no-op: the grid render already collapses markers that
// share a cell.
type clusterer struct{}

func (clusterer) AddMarkers([]mapview.Marker) {}
func (clusterer) Clear()                      {}

func clampLevel(level int) int {
	if level < minLevel {
		return minLevel
	}
	if level > maxLevel {
		return maxLevel
	}
	return level
}

func spanForLevel(level int) (lat, lng float64) {
	lat = baseLatSpan * math.Pow(2, float64(level-1))
	return lat, lat * lngAspect
}

func levelForSpan(latSpan, lngSpan float64) int {
	for level := minLevel; level < maxLevel; level++ {
		lat, lng := spanForLevel(level)
		if lat >= latSpan && lng >= lngSpan {
			return level
		}
	}
	return maxLevel
}
