package mapview

import (
	"log/slog"
	"time"

	"github.com/sangwon514/room-search-map/internal/domain"
	"github.com/sangwon514/room-search-map/internal/eventbus"
)

// maybeGeocode runs the address-resolution flow when an explicit search
// armed it. Skipped, with the flag cleared, when any room already carries
// coordinates or the list is empty. Each invocation gets a monotonically
// increasing identifier; a result arriving after a newer invocation
// started is discarded by identifier comparison; the SDK offers no
// cancellation primitive, so stale responses are dropped rather than
// aborted.
func (c *Controller) maybeGeocode(rooms []domain.Room) {
	c.mu.Lock()
	if !c.armed || c.phase != PhaseReady {
		c.mu.Unlock()
		return
	}

	if len(rooms) == 0 {
		c.armed = false
		c.mu.Unlock()
		return
	}
	for _, r := range rooms {
		if r.HasCoordinates() {
			c.armed = false
			c.mu.Unlock()
			return
		}
	}

	var addr string
	for _, r := range rooms {
		if a := r.Address(); a != "" {
			addr = a
			break
		}
	}
	if addr == "" {
		c.armed = false
		c.mu.Unlock()
		return
	}

	c.armed = false
	c.mu.Unlock()

	seq := c.geoSeq.Add(1)
	go c.geocode(addr, seq)
}

func (c *Controller) geocode(addr string, seq uint64) {
	geocoder, ok := c.provider.Geocoder()
	for !ok {
		// The services capability may load later than the widget; poll
		// until it shows up or the flow is obsolete.
		if c.Phase() == PhaseTornDown || c.geoSeq.Load() != seq {
			return
		}
		time.Sleep(servicesPollInterval)
		geocoder, ok = c.provider.Geocoder()
	}

	geocoder.AddressSearch(addr, func(lat, lng float64, found bool) {
		if c.geoSeq.Load() != seq {
			slog.Debug("discarding stale geocode result", "addr", addr, "seq", seq)
			return
		}
		if !found || (lat == 0 && lng == 0) {
			return
		}

		c.mu.Lock()
		m := c.m
		ready := c.phase == PhaseReady
		c.mu.Unlock()
		if !ready || m == nil {
			return
		}

		m.SetCenter(LatLng{Lat: lat, Lng: lng})
		c.bus.Publish(eventbus.GeocodeResolvedEvent{Lat: lat, Lng: lng})
	})
}
