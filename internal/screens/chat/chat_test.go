package chat

import (
	"encoding/json"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/xamuil2/digitalludus/internal/catalog"
	"github.com/xamuil2/digitalludus/internal/llm"
	"github.com/xamuil2/digitalludus/internal/tutor"
)

func enter() tea.KeyPressMsg { return tea.KeyPressMsg{Code: tea.KeyEnter} }

func newTestChat(t *testing.T, responses ...llm.MockResponse) (*ChatScreen, *llm.MockProvider) {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default: %v", err)
	}
	mock := llm.NewMockProvider(responses...)
	lesson := 2
	return New(tutor.New(mock, c), &lesson, "Lesson reader"), mock
}

// ask types text, sends it and delivers the reply.
func ask(t *testing.T, s *ChatScreen, text string) {
	t.Helper()
	s.input.Model.SetValue(text)
	_, cmd := s.Update(enter())
	if cmd == nil {
		t.Fatal("enter should send the question")
	}
	if !s.pending || !s.input.Disabled() {
		t.Error("input should be disabled while the tutor answers")
	}
	if !strings.Contains(s.View(100, 30), "is thinking") {
		t.Error("expected a pending indicator")
	}
	s.Update(cmd())
}

func TestChatScreen_Greeting(t *testing.T) {
	s, _ := newTestChat(t)
	view := s.View(100, 30)
	if !strings.Contains(view, "Salve!") || !strings.Contains(view, "Lesson 2") {
		t.Errorf("greeting missing from view: %q", view)
	}
	if s.Title() != tutor.TutorName {
		t.Errorf("Title = %q, want %q", s.Title(), tutor.TutorName)
	}
}

func TestChatScreen_Conversation(t *testing.T) {
	s, mock := newTestChat(t,
		llm.MockJSON(map[string]string{"reply": "Puella means girl."}),
		llm.MockJSON(map[string]string{"reply": "Puellae."}),
	)

	ask(t, s, "What does puella mean?")
	if s.pending || s.input.Disabled() {
		t.Error("input should be enabled after the reply")
	}
	if !strings.Contains(s.View(100, 30), "Puella means girl.") {
		t.Error("reply missing from view")
	}
	if s.input.Value() != "" {
		t.Errorf("input = %q, want cleared", s.input.Value())
	}

	ask(t, s, "And the plural?")
	if got := mock.CallCount(); got != 2 {
		t.Fatalf("CallCount = %d, want 2", got)
	}
	// The greeting stays out of the history; the first exchange goes in.
	if got := len(mock.Calls[1].Messages); got != 3 {
		t.Errorf("second call messages = %d, want 3", got)
	}
	if !strings.Contains(mock.Calls[1].System, "Lesson reader") {
		t.Error("system prompt should carry the screen context")
	}
}

func TestChatScreen_Fallback(t *testing.T) {
	s, mock := newTestChat(t,
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
		llm.MockResponse{Content: json.RawMessage(`{"reply":"Ita vero."}`)},
	)

	ask(t, s, "Quid agis?")
	if !strings.Contains(s.View(100, 30), tutor.FallbackMessage) {
		t.Error("expected the fallback message")
	}

	ask(t, s, "Again?")
	if got := len(mock.Calls[1].Messages); got != 1 {
		t.Errorf("failed exchange should not be sent as history, got %d messages", got)
	}
}

func TestChatScreen_BlankIgnored(t *testing.T) {
	s, mock := newTestChat(t)
	s.input.Model.SetValue("   ")
	if _, cmd := s.Update(enter()); cmd != nil {
		t.Error("blank input should not send")
	}
	if mock.CallCount() != 0 {
		t.Error("provider should not be called")
	}
}
