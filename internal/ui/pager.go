package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"github.com/sangwon514/room-search-map/internal/domain"
	"github.com/sangwon514/room-search-map/internal/mapview"
)

// DetailRenderer handles room detail rendering
type DetailRenderer struct{}

// NewDetailRenderer creates a new detail renderer
func NewDetailRenderer() *DetailRenderer {
	return &DetailRenderer{}
}

// RenderRoomDetail renders the full detail view for one room
func (r *DetailRenderer) RenderRoomDetail(room domain.Room) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	valStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	row := func(key, val string) string {
		return fmt.Sprintf("  %s  %s\n", keyStyle.Render(key), valStyle.Render(val))
	}
	yn := func(v bool) string {
		if v {
			return "예"
		}
		return "아니오"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(room.Name))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("위치"))
	b.WriteString("\n")
	b.WriteString(row("지역      ", fmt.Sprintf("%s %s %s", room.State, room.Province, room.Town)))
	if room.AddrStreet != "" {
		b.WriteString(row("도로명    ", room.AddrStreet))
	}
	if room.AddrLot != "" {
		b.WriteString(row("지번      ", room.AddrLot))
	}
	if room.HasCoordinates() {
		b.WriteString(row("좌표      ", fmt.Sprintf("%.6f, %.6f", room.Lat, room.Lng)))
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("요금"))
	b.WriteString("\n")
	b.WriteString(row("주간 이용료", mapview.FormatWon(room.UsingFee)+"원"))
	if room.LongtermDiscountPer > 0 {
		b.WriteString(row("장기 할인  ", fmt.Sprintf("%d%%", room.LongtermDiscountPer)))
	}
	if room.EarlyDiscountPer > 0 {
		b.WriteString(row("얼리 할인  ", fmt.Sprintf("%d%%", room.EarlyDiscountPer)))
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("구조"))
	b.WriteString("\n")
	b.WriteString(row("면적      ", fmt.Sprintf("%.1f평", room.PyeongSize)))
	b.WriteString(row("방        ", fmt.Sprintf("%d개", room.RoomCount)))
	b.WriteString(row("욕실      ", fmt.Sprintf("%d개", room.BathroomCount)))
	b.WriteString(row("주방      ", fmt.Sprintf("%d개", room.CookroomCount)))
	b.WriteString(row("거실      ", fmt.Sprintf("%d개", room.SittingroomCount)))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("기타"))
	b.WriteString("\n")
	b.WriteString(row("슈퍼호스트 ", yn(room.IsSuperHost)))
	b.WriteString(row("신규      ", yn(room.IsNew)))
	b.WriteString(row("방 번호   ", fmt.Sprintf("%d", room.RID)))

	return b.String()
}

// PagerOps handles detail pager operations
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps(program *tea.Program) *PagerOps {
	return &PagerOps{
		program: program,
	}
}

// ShowInPager shows content using the ov pager
func (p *PagerOps) ShowInPager(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	reader := strings.NewReader(content)

	root, err := oviewer.NewRoot(reader)
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false

	root.SetConfig(config)

	return root.Run()
}
