package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sangwon514/room-search-map/internal/ui/input/types"
)

// PeriodMode collects the export period as "YYYY-MM YYYY-MM".
type PeriodMode struct {
	TextInputMode
}

func NewPeriodMode(ti *textinput.Model) *PeriodMode {
	return &PeriodMode{
		TextInputMode: NewTextInputMode(types.ModePeriod, "period", "기간 (YYYY-MM YYYY-MM): ", ti),
	}
}
