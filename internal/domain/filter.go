package domain

import "slices"

// Filter holds every user-selectable search criterion plus the committed
// viewport. It is owned by the filter store and mutated only through it.
type Filter struct {
	Keyword   string
	ThemeType string

	RoomCounts    []string
	PropertyTypes []string

	Animal           bool
	Subway           bool
	LongtermDiscount bool
	EarlyDiscount    bool
	ParkingPlace     bool

	MinUsingFee int
	MaxUsingFee int

	Sort      string
	NowPage   int
	ItemCount int

	ByLocation bool
	Viewport   Viewport
}

// DefaultFilter returns the fixed initial state the store starts from.
func DefaultFilter() Filter {
	return Filter{
		Sort:        "popular",
		NowPage:     1,
		ItemCount:   1000,
		ByLocation:  true,
		MinUsingFee: 0,
		MaxUsingFee: 1_000_000,
		Viewport:    Viewport{Level: 4},
	}
}

// Clone returns a copy that shares no slices with the receiver.
func (f Filter) Clone() Filter {
	c := f
	c.RoomCounts = slices.Clone(f.RoomCounts)
	c.PropertyTypes = slices.Clone(f.PropertyTypes)
	return c
}
