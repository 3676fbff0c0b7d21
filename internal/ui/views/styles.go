package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	StatusError   lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusLoading lipgloss.Style
	Prompt        lipgloss.Style
	Highlight     lipgloss.Style
	SelectionBg   lipgloss.Style
	MapBox        lipgloss.Style
	ListBox       lipgloss.Style
	Marker        lipgloss.Style
	MarkerSel     lipgloss.Style
	Fee           lipgloss.Style
	Badge         lipgloss.Style
	Help          lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Prompt:        lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		SelectionBg:   lipgloss.NewStyle().Background(lipgloss.Color("238")),
		MapBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")),
		ListBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")),
		Marker:    lipgloss.NewStyle().Foreground(lipgloss.Color("33")),  // blue
		MarkerSel: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Fee:       lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		Badge:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Help:      lipgloss.NewStyle().Faint(true),
	}
}
