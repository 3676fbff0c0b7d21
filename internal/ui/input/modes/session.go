package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sangwon514/room-search-map/internal/ui/input/types"
)

type SessionMode struct {
	TextInputMode
}

func NewSessionMode(ti *textinput.Model) *SessionMode {
	m := &SessionMode{
		TextInputMode: NewTextInputMode(types.ModeSession, "session", "세션 쿠키: ", ti),
	}
	return m
}

func (m *SessionMode) Enter(ctx types.Context) []types.Action {
	actions := m.TextInputMode.Enter(ctx)
	// Credentials should not be echoed to the terminal.
	if m.textInput != nil {
		m.textInput.EchoMode = textinput.EchoPassword
	}
	return actions
}

func (m *SessionMode) Exit(ctx types.Context) []types.Action {
	if m.textInput != nil {
		m.textInput.EchoMode = textinput.EchoNormal
	}
	return m.TextInputMode.Exit(ctx)
}
