package textmap

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"

	"github.com/sangwon514/room-search-map/internal/mapview"
)

func newTestMap(t *testing.T, level int) (*Provider, *Map) {
	t.Helper()
	p := NewProvider()
	require.NoError(t, p.Load(context.Background()))

	mv, err := p.NewMap(mapview.LatLng{Lat: 37.555134, Lng: 126.936893}, level)
	require.NoError(t, err)

	m, ok := mv.(*Map)
	require.True(t, ok)
	require.Same(t, m, p.Current())
	return p, m
}

func TestSpanDoublesPerLevel(t *testing.T) {
	lat1, lng1 := spanForLevel(1)
	require.Equal(t, 0.002, lat1)
	require.InDelta(t, 0.0032, lng1, 1e-12)

	for level := 2; level <= 14; level++ {
		prev, _ := spanForLevel(level - 1)
		cur, _ := spanForLevel(level)
		require.InDelta(t, prev*2, cur, 1e-12, "level %d", level)
	}
}

func TestLevelClamped(t *testing.T) {
	_, m := newTestMap(t, 0)
	require.Equal(t, 1, m.Level())

	m.SetLevel(99)
	require.Equal(t, 14, m.Level())

	m.SetLevel(7)
	m.Zoom(true)
	require.Equal(t, 6, m.Level(), "zooming in tightens the level")
	m.Zoom(false)
	require.Equal(t, 7, m.Level())
}

func TestViewportCenteredOnMap(t *testing.T) {
	_, m := newTestMap(t, 4)

	vp := m.Viewport()
	require.Equal(t, 4, vp.Level)

	latSpan, lngSpan := spanForLevel(4)
	require.InDelta(t, latSpan, vp.NorthEastLat-vp.SouthWestLat, 1e-12)
	require.InDelta(t, lngSpan, vp.NorthEastLng-vp.SouthWestLng, 1e-12)
	require.InDelta(t, 37.555134, (vp.NorthEastLat+vp.SouthWestLat)/2, 1e-9)
}

func TestPanMovesCenter(t *testing.T) {
	_, m := newTestMap(t, 4)
	before := m.Viewport()

	m.Pan(1, 0)
	after := m.Viewport()

	_, lngSpan := spanForLevel(4)
	require.InDelta(t, lngSpan*panStep, after.NorthEastLng-before.NorthEastLng, 1e-12)
	require.InDelta(t, before.NorthEastLat, after.NorthEastLat, 1e-12)

	m.Pan(0, 1)
	require.Less(t, m.Viewport().NorthEastLat, after.NorthEastLat, "dy pans south")
}

func TestFitBoundsPicksCoveringLevel(t *testing.T) {
	_, m := newTestMap(t, 1)

	b := orb.Bound{
		Min: orb.Point{126.93, 37.55},
		Max: orb.Point{126.95, 37.57},
	}
	m.FitBounds(b)

	vp := m.Viewport()
	require.GreaterOrEqual(t, vp.NorthEastLat-vp.SouthWestLat, 0.02)
	require.GreaterOrEqual(t, vp.NorthEastLng-vp.SouthWestLng, 0.02)
	require.InDelta(t, 37.56, (vp.NorthEastLat+vp.SouthWestLat)/2, 1e-9)

	// One level tighter could not contain the bound.
	latSpan, _ := spanForLevel(m.Level() - 1)
	require.Less(t, latSpan, 0.02)
}

func TestRenderMarkers(t *testing.T) {
	_, m := newTestMap(t, 4)

	m.AddMarker(mapview.MarkerSpec{
		Position: mapview.LatLng{Lat: 37.555134, Lng: 126.936893},
	})
	m.AddMarker(mapview.MarkerSpec{
		Position: mapview.LatLng{Lat: 37.556, Lng: 126.938},
		Selected: true,
	})
	m.AddMarker(mapview.MarkerSpec{
		Position: mapview.LatLng{Lat: 35.0, Lng: 129.0}, // far out of view
	})

	out := m.Render(40, 20)
	require.Equal(t, 1, strings.Count(out, "●"))
	require.Equal(t, 1, strings.Count(out, "◆"))

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 20)
	for _, line := range lines {
		require.Len(t, []rune(line), 40)
	}
}

func TestRenderTooSmall(t *testing.T) {
	_, m := newTestMap(t, 4)
	require.Empty(t, m.Render(2, 2))
}

func TestMarkerRemove(t *testing.T) {
	_, m := newTestMap(t, 4)

	mk := m.AddMarker(mapview.MarkerSpec{
		Position: mapview.LatLng{Lat: 37.555134, Lng: 126.936893},
	})
	require.Len(t, m.MarkerSpecs(), 1)

	mk.Remove()
	require.Empty(t, m.MarkerSpecs())

	mk.Remove() // removing twice is harmless
}

func TestIdleFiresAfterViewportChange(t *testing.T) {
	_, m := newTestMap(t, 4)

	idle := make(chan struct{}, 4)
	remove := m.OnIdle(func() { idle <- struct{}{} })

	m.Pan(1, 0)
	select {
	case <-idle:
	case <-time.After(time.Second):
		t.Fatal("pan did not fire idle")
	}

	m.SetLevel(m.Level()) // unchanged level stays quiet
	select {
	case <-idle:
		t.Fatal("no-op level change fired idle")
	case <-time.After(50 * time.Millisecond):
	}

	remove()
	m.Pan(1, 0)
	select {
	case <-idle:
		t.Fatal("removed listener fired")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCloseSilencesMap(t *testing.T) {
	_, m := newTestMap(t, 4)

	idle := make(chan struct{}, 1)
	m.OnIdle(func() { idle <- struct{}{} })

	m.Close()
	m.Pan(1, 0)

	select {
	case <-idle:
		t.Fatal("closed map fired idle")
	case <-time.After(50 * time.Millisecond):
	}
	require.Empty(t, m.MarkerSpecs())
}

func TestGazetteerLookup(t *testing.T) {
	g := gazetteer{}

	type res struct {
		lat, lng float64
		ok       bool
	}
	lookup := func(addr string) res {
		var r res
		g.AddressSearch(addr, func(lat, lng float64, ok bool) {
			r = res{lat, lng, ok}
		})
		return r
	}

	hit := lookup("서울 서대문구 신촌동 123-4")
	require.True(t, hit.ok)
	require.InDelta(t, 37.555134, hit.lat, 1e-9)

	miss := lookup("없는곳 999")
	require.False(t, miss.ok)
	require.Zero(t, miss.lat)
	require.Zero(t, miss.lng)
}
