package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sangwon514/room-search-map/internal/ui/input/types"
)

type KeywordMode struct {
	TextInputMode
}

func NewKeywordMode(ti *textinput.Model) *KeywordMode {
	return &KeywordMode{
		TextInputMode: NewTextInputMode(types.ModeKeyword, "keyword", "검색어: ", ti),
	}
}
