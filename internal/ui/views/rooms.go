package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sangwon514/room-search-map/internal/domain"
	"github.com/sangwon514/room-search-map/internal/mapview"
	"github.com/sangwon514/room-search-map/internal/stats"
)

// RoomRow renders a single room list row
func (s *Styles) RoomRow(room domain.Room, cursor bool, width int) string {
	var badges []string
	if room.IsSuperHost {
		badges = append(badges, s.Badge.Render("슈퍼호스트"))
	}
	if room.IsNew {
		badges = append(badges, s.Badge.Render("신규"))
	}
	if room.LongtermDiscountPer > 0 {
		badges = append(badges, s.Badge.Render(fmt.Sprintf("장기%d%%", room.LongtermDiscountPer)))
	}

	fee := s.Fee.Render(mapview.FormatWon(room.UsingFee) + "원/주")

	line := fmt.Sprintf("%s  %s", room.Name, fee)
	if len(badges) > 0 {
		line += "  " + strings.Join(badges, " ")
	}

	addr := room.Address()
	if addr != "" {
		line += "  " + s.Dim.Render(addr)
	}

	prefix := "  "
	if cursor {
		prefix = "> "
		line = s.Highlight.Render(room.Name) + strings.TrimPrefix(line, room.Name)
	}

	return truncate(prefix+line, width)
}

// truncate clips a styled line to the given cell width.
func truncate(line string, width int) string {
	if width <= 0 {
		return line
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(line)
}

// StatsLine renders the aggregate footer for the current room list
func (s *Styles) StatsLine(sum stats.Summary) string {
	if sum.RoomCount == 0 {
		return s.Dim.Render("검색 결과 없음")
	}

	parts := []string{
		fmt.Sprintf("%d개", sum.RoomCount),
		fmt.Sprintf("중간가 %s원", mapview.FormatWon(int(sum.MedianFee))),
		fmt.Sprintf("%s~%s원", mapview.FormatWon(sum.MinFee), mapview.FormatWon(sum.MaxFee)),
	}
	if sum.SuperHostCount > 0 {
		parts = append(parts, fmt.Sprintf("슈퍼호스트 %d", sum.SuperHostCount))
	}
	if sum.NewCount > 0 {
		parts = append(parts, fmt.Sprintf("신규 %d", sum.NewCount))
	}

	return s.Status.Render(strings.Join(parts, " · "))
}
