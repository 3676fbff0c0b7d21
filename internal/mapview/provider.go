// Package mapview owns the map widget: marker rendering, viewport events,
// and address geocoding. The widget itself is an injected capability so
// the diffing, debounce, and staleness logic run without a real map SDK.
package mapview

import (
	"context"

	"github.com/paulmach/orb"

	"github.com/sangwon514/room-search-map/internal/domain"
)

// LatLng is a geographic position.
type LatLng struct {
	Lat float64
	Lng float64
}

// Point returns the position as lng/lat.
func (ll LatLng) Point() orb.Point {
	return orb.Point{ll.Lng, ll.Lat}
}

// MarkerSpec describes one marker to render. OnClick reports a click on
// the marker; implementations must consume the click so it does not also
// reach map-level handlers.
type MarkerSpec struct {
	Position LatLng
	Label    string
	Selected bool
	OnClick  func()
}

// Marker is a live rendered marker.
type Marker interface {
	Remove()
}

// Map is one live map widget instance.
type Map interface {
	// Viewport reports the currently visible rectangle and zoom level.
	Viewport() domain.Viewport
	SetLevel(level int)
	SetCenter(ll LatLng)
	// FitBounds pans and zooms so the bound is fully visible.
	FitBounds(b orb.Bound)
	AddMarker(spec MarkerSpec) Marker
	// OnIdle registers a listener fired when the map settles after a pan
	// or zoom. The returned function detaches it.
	OnIdle(fn func()) (remove func())
	Close()
}

// Clusterer groups markers at coarse zoom levels.
type Clusterer interface {
	AddMarkers(markers []Marker)
	Clear()
}

// Geocoder resolves an address to a coordinate, asynchronously. ok is
// false when the address could not be resolved.
type Geocoder interface {
	AddressSearch(addr string, fn func(lat, lng float64, ok bool))
}

// Provider supplies map capabilities: widget construction, clustering,
// and geocoding. Load may be slow (the real SDK is fetched remotely) and
// Geocoder may become available later than the widget itself.
type Provider interface {
	Load(ctx context.Context) error
	NewMap(center LatLng, level int) (Map, error)
	NewClusterer(m Map) (Clusterer, error)
	Geocoder() (Geocoder, bool)
}
