package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sangwon514/room-search-map/internal/ui/input/types"
)

type MinFeeMode struct {
	TextInputMode
}

func NewMinFeeMode(ti *textinput.Model) *MinFeeMode {
	return &MinFeeMode{
		TextInputMode: NewTextInputMode(types.ModeMinFee, "min_fee", "최소 주간가(원): ", ti),
	}
}

type MaxFeeMode struct {
	TextInputMode
}

func NewMaxFeeMode(ti *textinput.Model) *MaxFeeMode {
	return &MaxFeeMode{
		TextInputMode: NewTextInputMode(types.ModeMaxFee, "max_fee", "최대 주간가(원): ", ti),
	}
}
