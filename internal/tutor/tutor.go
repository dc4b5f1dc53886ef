// Package tutor relays a learner's question to an LLM acting as a Latin
// tutor and returns a single reply. Failures never propagate as faults:
// the caller always gets a Reply it can show.
package tutor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/xamuil2/digitalludus/internal/catalog"
	"github.com/xamuil2/digitalludus/internal/llm"
	"github.com/xamuil2/digitalludus/internal/store"
)

var (
	// ErrMessageRequired is returned for an empty or blank question.
	ErrMessageRequired = errors.New("message is required")
	// ErrUpstreamUnavailable wraps any provider failure.
	ErrUpstreamUnavailable = errors.New("tutor is unavailable")
)

// Purpose labels tutor calls in the LLM event log.
const Purpose = "tutor"

const (
	maxTokens   = 512
	temperature = 0.7
)

// LessonLookup resolves lesson ids for the prompt.
type LessonLookup interface {
	LessonByID(id int) (catalog.Lesson, error)
}

// Turn is an earlier message of the conversation.
type Turn struct {
	FromTutor bool
	Text      string
}

// Question is one learner message with its optional context.
type Question struct {
	Message string
	Lesson  *int
	Context string
	History []Turn
}

// Reply is what the front end shows. Demo is set when no provider is
// configured; Fallback when the provider failed.
type Reply struct {
	Text     string `json:"response"`
	Demo     bool   `json:"demo,omitempty"`
	Fallback bool   `json:"fallback,omitempty"`
}

// Relay sends questions to a provider. A nil provider puts it in demo mode.
type Relay struct {
	provider llm.Provider
	lessons  LessonLookup
	log      store.TutorRepo
	channel  string
}

// Option configures a Relay.
type Option func(*Relay)

// WithExchangeLog records every exchange in repo under the given channel
// name ("cli", "tui", "http", "bot").
func WithExchangeLog(repo store.TutorRepo, channel string) Option {
	return func(r *Relay) {
		r.log = repo
		r.channel = channel
	}
}

// New returns a Relay. provider may be nil.
func New(provider llm.Provider, lessons LessonLookup, opts ...Option) *Relay {
	r := &Relay{provider: provider, lessons: lessons}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Demo reports whether the relay answers without a provider.
func (r *Relay) Demo() bool { return r.provider == nil }

// Ask sends q to the tutor. The only error that comes without a usable
// Reply is ErrMessageRequired; on upstream failure the Reply carries
// FallbackMessage and the error wraps ErrUpstreamUnavailable.
func (r *Relay) Ask(ctx context.Context, q Question) (Reply, error) {
	q.Message = strings.TrimSpace(q.Message)
	if q.Message == "" {
		return Reply{}, ErrMessageRequired
	}

	start := time.Now()
	reply, err := r.ask(ctx, q)
	r.record(ctx, q, reply, err, time.Since(start))
	return reply, err
}

func (r *Relay) ask(ctx context.Context, q Question) (Reply, error) {
	if r.provider == nil {
		return Reply{Text: demoReply(q), Demo: true}, nil
	}

	req := llm.Request{
		System:      systemPrompt(r.lessons, q),
		Messages:    buildMessages(q),
		Schema:      replySchema,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
	resp, err := r.provider.Generate(llm.WithPurpose(ctx, Purpose), req)
	if err != nil {
		return fallback(err)
	}

	var out struct {
		Reply string `json:"reply"`
	}
	if err := resp.Decode(&out); err != nil {
		return fallback(err)
	}
	text := strings.TrimSpace(out.Reply)
	if text == "" {
		return fallback(errors.New("empty reply"))
	}
	return Reply{Text: text}, nil
}

func fallback(cause error) (Reply, error) {
	return Reply{Text: FallbackMessage, Fallback: true}, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, cause)
}

func buildMessages(q Question) []llm.Message {
	msgs := make([]llm.Message, 0, len(q.History)+1)
	for _, t := range q.History {
		role := llm.RoleUser
		if t.FromTutor {
			role = llm.RoleAssistant
		}
		msgs = append(msgs, llm.Message{Role: role, Content: t.Text})
	}
	return append(msgs, llm.Message{Role: llm.RoleUser, Content: q.Message})
}

func (r *Relay) record(ctx context.Context, q Question, reply Reply, err error, elapsed time.Duration) {
	if r.log == nil {
		return
	}
	data := store.TutorExchangeData{
		Channel:   r.channel,
		Lesson:    q.Lesson,
		Question:  q.Message,
		Reply:     reply.Text,
		Demo:      reply.Demo,
		Fallback:  reply.Fallback,
		LatencyMs: elapsed.Milliseconds(),
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}
	// A failed audit write never costs the learner their answer.
	if logErr := r.log.AppendExchange(context.WithoutCancel(ctx), data); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log tutor exchange: %v\n", logErr)
	}
}
