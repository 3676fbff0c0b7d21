package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sangwon514/room-search-map/internal/filterstore"
	"github.com/sangwon514/room-search-map/internal/ui/input/types"
)

type NormalMode struct{}

func NewNormalMode() *NormalMode {
	return &NormalMode{}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyEsc:
		if ctx.HasSelection() {
			return []types.Action{types.ClearSelectionAction{}}, true
		}
		return nil, false

	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case tea.KeyLeft:
		return []types.Action{types.PanAction{DX: -1}}, true

	case tea.KeyRight:
		return []types.Action{types.PanAction{DX: 1}}, true

	case tea.KeyPgUp:
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true

	case tea.KeyPgDown:
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true

	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case tea.KeyEnter:
		if ctx.TotalItems() > 0 {
			return []types.Action{types.ShowDetailAction{}}, true
		}
		return nil, false
	}

	switch msg.String() {
	case "j":
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case "k":
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case "g":
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case "G":
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case "w":
		return []types.Action{types.PanAction{DY: -1}}, true

	case "s":
		return []types.Action{types.PanAction{DY: 1}}, true

	case "a":
		return []types.Action{types.PanAction{DX: -1}}, true

	case "d":
		return []types.Action{types.PanAction{DX: 1}}, true

	case "+", "=":
		return []types.Action{types.ZoomAction{In: true}}, true

	case "-":
		return []types.Action{types.ZoomAction{In: false}}, true

	case " ":
		if ctx.TotalItems() > 0 {
			return []types.Action{types.SelectGroupAction{}}, true
		}
		return nil, false

	case "c":
		if ctx.HasSelection() {
			return []types.Action{types.ClearSelectionAction{}}, true
		}
		return nil, false

	case "/":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeKeyword}}, true

	case "f":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeMinFee}}, true

	case "F":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeMaxFee}}, true

	case "1":
		return []types.Action{types.ToggleFilterAction{Field: string(filterstore.FieldAnimal)}}, true

	case "2":
		return []types.Action{types.ToggleFilterAction{Field: string(filterstore.FieldSubway)}}, true

	case "3":
		return []types.Action{types.ToggleFilterAction{Field: string(filterstore.FieldLongtermDiscount)}}, true

	case "4":
		return []types.Action{types.ToggleFilterAction{Field: string(filterstore.FieldEarlyDiscount)}}, true

	case "5":
		return []types.Action{types.ToggleFilterAction{Field: string(filterstore.FieldParkingPlace)}}, true

	case "6":
		return []types.Action{types.CycleRoomCountAction{}}, true

	case "7":
		return []types.Action{types.CyclePropertyTypeAction{}}, true

	case "8":
		return []types.Action{types.CycleThemeAction{}}, true

	case "o":
		return []types.Action{types.CycleSortAction{}}, true

	case "R":
		return []types.Action{types.ResetFiltersAction{}}, true

	case "r":
		return []types.Action{types.SearchNowAction{}}, true

	case "S":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSession}}, true

	case "e":
		return []types.Action{types.ChangeModeAction{Mode: types.ModePeriod}}, true

	case "q":
		return []types.Action{types.QuitAction{}}, true
	}

	return nil, false
}
