// Package chat is the tutor conversation screen.
package chat

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/xamuil2/digitalludus/internal/screen"
	"github.com/xamuil2/digitalludus/internal/tutor"
	"github.com/xamuil2/digitalludus/internal/ui/components"
	"github.com/xamuil2/digitalludus/internal/ui/layout"
	"github.com/xamuil2/digitalludus/internal/ui/theme"
)

// maxHistory caps the turns sent back to the tutor with each question.
const maxHistory = 10

type replyMsg struct {
	Reply tutor.Reply
	Err   error
}

type entry struct {
	fromTutor bool
	text      string
	failed    bool // a fallback reply, or the question that caused it
}

// ChatScreen is a conversation with the tutor, optionally about one lesson.
type ChatScreen struct {
	relay   *tutor.Relay
	lesson  *int
	context string
	entries []entry
	input   components.TextInput
	pending bool
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)
var _ screen.StatusProvider = (*ChatScreen)(nil)

// New opens a chat. lesson may be nil; where describes the part of the
// app the learner is in and is passed to the tutor as context.
func New(relay *tutor.Relay, lesson *int, where string) *ChatScreen {
	return &ChatScreen{
		relay:   relay,
		lesson:  lesson,
		context: where,
		entries: []entry{{fromTutor: true, text: tutor.Greeting(lesson)}},
		input:   components.NewTextInput("Ask about vocabulary, grammar or Roman culture...", 500),
	}
}

func (s *ChatScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *ChatScreen) Title() string {
	return tutor.TutorName
}

func (s *ChatScreen) Status() string {
	if s.relay != nil && s.relay.Demo() {
		return "demo mode"
	}
	return ""
}

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		return s, s.handleReply(msg)

	case tea.KeyMsg:
		if msg.String() == "enter" {
			return s, s.send()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// history returns the earlier successful turns, oldest first.
func (s *ChatScreen) history() []tutor.Turn {
	var turns []tutor.Turn
	for _, e := range s.entries[1:] {
		if e.failed {
			continue
		}
		turns = append(turns, tutor.Turn{FromTutor: e.fromTutor, Text: e.text})
	}
	if len(turns) > maxHistory {
		turns = turns[len(turns)-maxHistory:]
	}
	return turns
}

func (s *ChatScreen) send() tea.Cmd {
	if s.pending || s.relay == nil {
		return nil
	}
	text := strings.TrimSpace(s.input.Value())
	if text == "" {
		return nil
	}

	q := tutor.Question{
		Message: text,
		Lesson:  s.lesson,
		Context: s.context,
		History: s.history(),
	}
	s.entries = append(s.entries, entry{text: text})
	s.input.Reset()
	s.input.SetDisabled(true)
	s.pending = true

	relay := s.relay
	return func() tea.Msg {
		reply, err := relay.Ask(context.Background(), q)
		return replyMsg{Reply: reply, Err: err}
	}
}

func (s *ChatScreen) handleReply(msg replyMsg) tea.Cmd {
	s.pending = false
	text := msg.Reply.Text
	failed := msg.Err != nil
	if failed && !errors.Is(msg.Err, tutor.ErrUpstreamUnavailable) {
		text = tutor.FallbackMessage
	}
	if failed {
		s.entries[len(s.entries)-1].failed = true
	}
	s.entries = append(s.entries, entry{fromTutor: true, text: text, failed: failed})
	return s.input.SetDisabled(false)
}

func (s *ChatScreen) View(width, height int) string {
	textWidth := max(width-8, 20)

	var lines []string
	for _, e := range s.entries {
		name := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("You")
		body := theme.Body
		if e.fromTutor {
			name = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(tutor.TutorName)
		}
		if e.failed && e.fromTutor {
			body = lipgloss.NewStyle().Foreground(theme.Error)
		}
		lines = append(lines, "  "+name)
		for _, l := range strings.Split(layout.Wrap(e.text, textWidth), "\n") {
			lines = append(lines, "    "+body.Render(l))
		}
		lines = append(lines, "")
	}
	if s.pending {
		lines = append(lines, "  "+theme.Hint.Render(tutor.TutorName+" is thinking..."), "")
	}

	// Keep the newest lines; two rows are reserved for the input.
	if room := height - 2; room > 0 && len(lines) > room {
		lines = lines[len(lines)-room:]
	}

	return strings.Join(lines, "\n") + "\n" + "  " + s.input.View()
}
