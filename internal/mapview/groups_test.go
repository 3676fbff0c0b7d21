package mapview

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sangwon514/room-search-map/internal/domain"
)

func TestGroupByCoordinate(t *testing.T) {
	rooms := []domain.Room{
		{RID: 1, Lat: 37.5551341, Lng: 126.9368931},
		{RID: 2, Lat: 37.4979, Lng: 127.0276},
		{RID: 3, Lat: 37.5551339, Lng: 126.9368929}, // rounds to room 1's cell
		{RID: 4, Lat: 37.5575, Lng: 126.9241},
	}

	groups := GroupByCoordinate(rooms)
	require.Len(t, groups, 3)

	// First-appearance order is preserved.
	require.Equal(t, []int64{1, 3}, rids(groups[0].Rooms))
	require.Equal(t, []int64{2}, rids(groups[1].Rooms))
	require.Equal(t, []int64{4}, rids(groups[2].Rooms))

	require.Equal(t, domain.CoordKey(37.5551341, 126.9368931), groups[0].Key)
}

func TestGroupByCoordinateDistinguishesBeyondSixDecimals(t *testing.T) {
	rooms := []domain.Room{
		{RID: 1, Lat: 37.555134, Lng: 126.936893},
		{RID: 2, Lat: 37.555135, Lng: 126.936893}, // differs in the 6th decimal
	}
	require.Len(t, GroupByCoordinate(rooms), 2)
}

func TestMarkerLabel(t *testing.T) {
	single := domain.RoomGroup{Rooms: []domain.Room{
		{Name: "신촌 오피스텔", UsingFee: 350000},
	}}
	require.Equal(t, "신촌 오피스텔 350,000원", MarkerLabel(single))

	multi := domain.RoomGroup{Rooms: []domain.Room{
		{Name: "A", UsingFee: 350000},
		{Name: "B", UsingFee: 420000},
		{Name: "C", UsingFee: 510000},
	}}
	require.Equal(t, "350,000원 외 2개", MarkerLabel(multi))
}

func TestFormatWon(t *testing.T) {
	require.Equal(t, "0", FormatWon(0))
	require.Equal(t, "999", FormatWon(999))
	require.Equal(t, "1,000", FormatWon(1000))
	require.Equal(t, "350,000", FormatWon(350000))
	require.Equal(t, "1,000,000", FormatWon(1000000))
}

func rids(rooms []domain.Room) []int64 {
	out := make([]int64, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.RID)
	}
	return out
}
