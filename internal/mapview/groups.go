package mapview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sangwon514/room-search-map/internal/domain"
)

// GroupByCoordinate partitions rooms into groups sharing a 6-decimal
// coordinate, preserving first-appearance order so the lowest-indexed
// room stays first in its group.
func GroupByCoordinate(rooms []domain.Room) []domain.RoomGroup {
	index := make(map[string]int)
	groups := make([]domain.RoomGroup, 0)

	for _, room := range rooms {
		key := domain.CoordKey(room.Lat, room.Lng)
		if i, ok := index[key]; ok {
			groups[i].Rooms = append(groups[i].Rooms, room)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, domain.RoomGroup{Key: key, Rooms: []domain.Room{room}})
	}

	return groups
}

// MarkerLabel renders the marker text for a group: the lowest-indexed
// room's fee with a count suffix when the group holds more than one room,
// otherwise the room name and fee.
func MarkerLabel(g domain.RoomGroup) string {
	room := g.Rooms[0]
	if len(g.Rooms) > 1 {
		return fmt.Sprintf("%s원 외 %d개", FormatWon(room.UsingFee), len(g.Rooms)-1)
	}
	return fmt.Sprintf("%s %s원", room.Name, FormatWon(room.UsingFee))
}

// FormatWon renders an amount with thousands separators.
func FormatWon(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
