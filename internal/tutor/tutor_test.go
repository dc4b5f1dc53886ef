package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/xamuil2/digitalludus/internal/catalog"
	"github.com/xamuil2/digitalludus/internal/llm"
	"github.com/xamuil2/digitalludus/internal/store"
)

func lessons(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return c
}

func intp(i int) *int { return &i }

func TestAsk_EmptyMessage(t *testing.T) {
	mock := llm.NewMockProvider()
	r := New(mock, lessons(t))

	for _, msg := range []string{"", "   ", "\n\t"} {
		_, err := r.Ask(context.Background(), Question{Message: msg})
		if !errors.Is(err, ErrMessageRequired) {
			t.Errorf("Ask(%q) err = %v, want ErrMessageRequired", msg, err)
		}
	}
	if mock.CallCount() != 0 {
		t.Errorf("provider called %d times for blank messages", mock.CallCount())
	}
}

func TestAsk_Success(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"reply":"  Puella means girl.  "}`),
	})
	r := New(mock, lessons(t))

	reply, err := r.Ask(context.Background(), Question{
		Message: "What does puella mean?",
		Lesson:  intp(2),
		Context: "vocabulary review",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply.Text != "Puella means girl." || reply.Demo || reply.Fallback {
		t.Errorf("reply = %+v", reply)
	}

	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d, want 1", mock.CallCount())
	}
	req := mock.Calls[0]
	if !strings.Contains(req.System, "helpful Latin tutor for DigitalLudus") {
		t.Errorf("system prompt missing persona: %q", req.System)
	}
	if !strings.Contains(req.System, "A Girl of Sicily") {
		t.Errorf("system prompt missing lesson subtitle: %q", req.System)
	}
	if !strings.Contains(req.System, "Context: vocabulary review") {
		t.Errorf("system prompt missing context: %q", req.System)
	}
	if req.Schema == nil || req.Schema.Name != "tutor-reply" {
		t.Errorf("schema = %+v", req.Schema)
	}
	last := req.Messages[len(req.Messages)-1]
	if last.Role != llm.RoleUser || last.Content != "What does puella mean?" {
		t.Errorf("last message = %+v", last)
	}
}

func TestAsk_UnknownLessonStillAsks(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"reply":"ok"}`)})
	r := New(mock, lessons(t))

	if _, err := r.Ask(context.Background(), Question{Message: "hi", Lesson: intp(42)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(mock.Calls[0].System, "Lesson 42") {
		t.Errorf("system prompt = %q", mock.Calls[0].System)
	}
	if !strings.Contains(mock.Calls[0].System, "Context: General Latin learning") {
		t.Errorf("default context missing")
	}
}

func TestAsk_HistoryBecomesMessages(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"reply":"ok"}`)})
	r := New(mock, nil)

	_, err := r.Ask(context.Background(), Question{
		Message: "And the plural?",
		History: []Turn{{Text: "What is girl in Latin?"}, {FromTutor: true, Text: "Puella."}},
	})
	if err != nil {
		t.Fatal(err)
	}
	msgs := mock.Calls[0].Messages
	if len(msgs) != 3 {
		t.Fatalf("messages = %d, want 3", len(msgs))
	}
	if msgs[1].Role != llm.RoleAssistant || msgs[2].Content != "And the plural?" {
		t.Errorf("messages = %+v", msgs)
	}
}

func TestAsk_UpstreamFailureFallsBack(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
	}{
		{"provider error", llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}}},
		{"not json", llm.MockResponse{Content: json.RawMessage(`salve`)}},
		{"empty reply", llm.MockResponse{Content: json.RawMessage(`{"reply":""}`)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(tt.resp)
			r := New(mock, nil)

			reply, err := r.Ask(context.Background(), Question{Message: "Quid est?"})
			if !errors.Is(err, ErrUpstreamUnavailable) {
				t.Fatalf("err = %v, want ErrUpstreamUnavailable", err)
			}
			if !reply.Fallback || reply.Text != FallbackMessage {
				t.Errorf("reply = %+v", reply)
			}
			if mock.CallCount() != 1 {
				t.Errorf("calls = %d, want exactly one attempt", mock.CallCount())
			}
		})
	}
}

func TestAsk_DemoMode(t *testing.T) {
	r := New(nil, lessons(t))
	if !r.Demo() {
		t.Fatal("expected demo mode")
	}
	reply, err := r.Ask(context.Background(), Question{Message: "What is a declension?", Lesson: intp(1)})
	if err != nil {
		t.Fatal(err)
	}
	if !reply.Demo || reply.Fallback {
		t.Errorf("reply = %+v", reply)
	}
	if !strings.Contains(reply.Text, `You asked: "What is a declension?"`) || !strings.Contains(reply.Text, "Lesson 1") {
		t.Errorf("demo text = %q", reply.Text)
	}
}

type recordingRepo struct {
	data []store.TutorExchangeData
	err  error
}

func (r *recordingRepo) AppendExchange(_ context.Context, d store.TutorExchangeData) error {
	r.data = append(r.data, d)
	return r.err
}

func (r *recordingRepo) RecentExchanges(context.Context, store.QueryOpts) ([]store.TutorExchange, error) {
	return nil, nil
}

func TestAsk_RecordsExchanges(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"reply":"Salve!"}`)},
		llm.MockResponse{Err: errors.New("boom")},
	)
	repo := &recordingRepo{}
	r := New(mock, nil, WithExchangeLog(repo, "cli"))

	_, _ = r.Ask(context.Background(), Question{Message: "Salve", Lesson: intp(1)})
	_, _ = r.Ask(context.Background(), Question{Message: "Again"})
	_, _ = r.Ask(context.Background(), Question{Message: " "})

	if len(repo.data) != 2 {
		t.Fatalf("recorded %d exchanges, want 2", len(repo.data))
	}
	first, second := repo.data[0], repo.data[1]
	if first.Channel != "cli" || first.Reply != "Salve!" || *first.Lesson != 1 || first.Fallback {
		t.Errorf("first = %+v", first)
	}
	if !second.Fallback || second.ErrorMessage == "" || second.Lesson != nil {
		t.Errorf("second = %+v", second)
	}
}

func TestAsk_LogFailureKeepsReply(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"reply":"Vale"}`)})
	r := New(mock, nil, WithExchangeLog(&recordingRepo{err: errors.New("disk full")}, "tui"))

	reply, err := r.Ask(context.Background(), Question{Message: "Goodbye?"})
	if err != nil || reply.Text != "Vale" {
		t.Errorf("reply = %+v, err = %v", reply, err)
	}
}

func TestGreeting(t *testing.T) {
	if g := Greeting(nil); !strings.Contains(g, TutorName) || !strings.Contains(g, "your Latin studies") {
		t.Errorf("Greeting(nil) = %q", g)
	}
	if g := Greeting(intp(3)); !strings.Contains(g, "Lesson 3") {
		t.Errorf("Greeting(3) = %q", g)
	}
}
