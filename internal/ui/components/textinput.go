package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/xamuil2/digitalludus/internal/ui/theme"
)

// TextInput is a focused bubbles text input that can be switched off while
// a reply is pending. Model is exposed for tests and fine tuning.
type TextInput struct {
	Model textinput.Model
	off   bool
}

// NewTextInput returns a focused input. A limit of zero keeps the bubbles
// default.
func NewTextInput(placeholder string, limit int) TextInput {
	m := textinput.New()
	m.Prompt = "› "
	m.Placeholder = placeholder
	if limit > 0 {
		m.CharLimit = limit
	}
	m.Focus()
	return TextInput{Model: m}
}

func (t TextInput) Init() tea.Cmd  { return t.Model.Focus() }
func (t TextInput) Value() string  { return t.Model.Value() }
func (t TextInput) Disabled() bool { return t.off }
func (t *TextInput) Reset()        { t.Model.Reset() }

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.off {
		return t, nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// SetDisabled blurs the input, or focuses it again.
func (t *TextInput) SetDisabled(off bool) tea.Cmd {
	t.off = off
	if off {
		t.Model.Blur()
		return nil
	}
	return t.Model.Focus()
}

func (t TextInput) View() string {
	if t.off {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(t.Model.Prompt + "…")
	}
	return t.Model.View()
}
