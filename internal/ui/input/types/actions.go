package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Map actions
type PanAction struct {
	DX int // cells right
	DY int // cells down
}

func (a PanAction) Type() string { return "pan" }

type ZoomAction struct {
	In bool
}

func (a ZoomAction) Type() string { return "zoom" }

// Selection actions
type SelectGroupAction struct{}

func (a SelectGroupAction) Type() string { return "select_group" }

type ClearSelectionAction struct{}

func (a ClearSelectionAction) Type() string { return "clear_selection" }

// Filter actions
type ToggleFilterAction struct {
	Field string // wire name of the boolean filter field
}

func (a ToggleFilterAction) Type() string { return "toggle_filter" }

type CycleSortAction struct{}

func (a CycleSortAction) Type() string { return "cycle_sort" }

type CycleRoomCountAction struct{}

func (a CycleRoomCountAction) Type() string { return "cycle_room_count" }

type CyclePropertyTypeAction struct{}

func (a CyclePropertyTypeAction) Type() string { return "cycle_property_type" }

type CycleThemeAction struct{}

func (a CycleThemeAction) Type() string { return "cycle_theme" }

type ResetFiltersAction struct{}

func (a ResetFiltersAction) Type() string { return "reset_filters" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Command actions
type SearchNowAction struct{}

func (a SearchNowAction) Type() string { return "search_now" }

type ShowDetailAction struct{}

func (a ShowDetailAction) Type() string { return "show_detail" }

type QuitAction struct {
	Force bool
}

func (a QuitAction) Type() string { return "quit" }
