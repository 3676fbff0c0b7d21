package domain

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Room is one listing as returned by the search endpoint. Rooms are
// immutable once received; a fresh fetch replaces the whole list.
type Room struct {
	RID                 int64   `json:"rid"`
	Name                string  `json:"room_name"`
	State               string  `json:"state"`
	Province            string  `json:"province"`
	Town                string  `json:"town"`
	PicMain             string  `json:"pic_main"`
	AddrLot             string  `json:"addr_lot"`
	AddrStreet          string  `json:"addr_street"`
	UsingFee            int     `json:"using_fee"`
	PyeongSize          float64 `json:"pyeong_size"`
	RoomCount           int     `json:"room_cnt"`
	BathroomCount       int     `json:"bathroom_cnt"`
	CookroomCount       int     `json:"cookroom_cnt"`
	SittingroomCount    int     `json:"sittingroom_cnt"`
	RecoType1           bool    `json:"reco_type_1"`
	RecoType2           bool    `json:"reco_type_2"`
	LongtermDiscountPer int     `json:"longterm_discount_per"`
	EarlyDiscountPer    int     `json:"early_discount_per"`
	IsNew               bool    `json:"is_new"`
	IsSuperHost         bool    `json:"is_super_host"`
	Lat                 float64 `json:"lat"`
	Lng                 float64 `json:"lng"`
}

// HasCoordinates reports whether the room carries a usable position.
func (r Room) HasCoordinates() bool {
	return r.Lat != 0 || r.Lng != 0
}

// Point returns the room position as lng/lat.
func (r Room) Point() orb.Point {
	return orb.Point{r.Lng, r.Lat}
}

// Address returns the street address, falling back to the lot address.
func (r Room) Address() string {
	if r.AddrStreet != "" {
		return r.AddrStreet
	}
	return r.AddrLot
}

// CoordKey groups rooms sharing a coordinate rounded to 6 decimal places.
func CoordKey(lat, lng float64) string {
	return fmt.Sprintf("%.6f,%.6f", lat, lng)
}

// RoomGroup is a derived, non-owning grouping of rooms sharing one rounded
// coordinate. Recomputed on every render pass, never persisted.
type RoomGroup struct {
	Key   string
	Rooms []Room
}

// Viewport is the geographic rectangle plus zoom level visible on the map.
// The all-zero rectangle is a sentinel meaning "no spatial restriction",
// used for explicit keyword searches.
type Viewport struct {
	NorthEastLat float64
	NorthEastLng float64
	SouthWestLat float64
	SouthWestLng float64
	Level        int
}

// IsZero reports whether the rectangle is the no-restriction sentinel.
func (v Viewport) IsZero() bool {
	return v.NorthEastLat == 0 && v.NorthEastLng == 0 &&
		v.SouthWestLat == 0 && v.SouthWestLng == 0
}

// Bound returns the rectangle as an orb bound (min = south-west corner).
func (v Viewport) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{v.SouthWestLng, v.SouthWestLat},
		Max: orb.Point{v.NorthEastLng, v.NorthEastLat},
	}
}

// Period is an inclusive year/month range for the reservation-rate export.
type Period struct {
	StartYear  int
	StartMonth int
	EndYear    int
	EndMonth   int
}

// Inverted reports whether the start month is after the end month.
func (p Period) Inverted() bool {
	return p.StartYear*12+p.StartMonth > p.EndYear*12+p.EndMonth
}
