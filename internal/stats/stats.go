// Package stats derives summary figures from the currently loaded rooms.
package stats

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/sangwon514/room-search-map/internal/domain"
)

// Summary holds aggregate figures for one room list. Recomputed on every
// fetch, never persisted.
type Summary struct {
	RoomCount      int
	MedianFee      float64
	MinFee         int
	MaxFee         int
	SuperHostCount int
	NewCount       int
}

// Summarize computes aggregate figures over the given rooms. A nil or
// empty list yields the zero Summary.
func Summarize(rooms []domain.Room) Summary {
	if len(rooms) == 0 {
		return Summary{}
	}

	fees := make([]float64, 0, len(rooms))
	s := Summary{
		RoomCount: len(rooms),
		MinFee:    rooms[0].UsingFee,
		MaxFee:    rooms[0].UsingFee,
	}

	for _, room := range rooms {
		fees = append(fees, float64(room.UsingFee))
		if room.UsingFee < s.MinFee {
			s.MinFee = room.UsingFee
		}
		if room.UsingFee > s.MaxFee {
			s.MaxFee = room.UsingFee
		}
		if room.IsSuperHost {
			s.SuperHostCount++
		}
		if room.IsNew {
			s.NewCount++
		}
	}

	sort.Float64s(fees)
	s.MedianFee = stat.Quantile(0.5, stat.Empirical, fees, nil)

	return s
}
