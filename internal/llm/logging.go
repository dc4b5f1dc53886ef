package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/xamuil2/digitalludus/internal/store"
)

type purposeKey struct{}

// WithPurpose labels the calls made with ctx in the event log, e.g.
// "tutor".
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if p, ok := ctx.Value(purposeKey{}).(string); ok && p != "" {
		return p
	}
	return "unknown"
}

type loggingProvider struct {
	inner  Provider
	name   string
	events store.LLMEventWriter
}

// WithLogging records every call, successful or not, through events. name
// is the backend recorded with each event.
func WithLogging(p Provider, name string, events store.LLMEventWriter) Provider {
	return &loggingProvider{inner: p, name: name, events: events}
}

func (l *loggingProvider) ModelID() string { return l.inner.ModelID() }

func (l *loggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		Provider:    l.name,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	// A lost event never fails the call.
	if werr := l.events.AppendLLMRequest(ctx, ev); werr != nil {
		log.Printf("warning: recording %s call: %v", ev.Purpose, werr)
	}
	return resp, err
}

// transcript renders a request for the event log, one "role:" block per
// message with the schema last.
func transcript(req Request) string {
	var b strings.Builder
	block := func(label, body string) {
		fmt.Fprintf(&b, "%s:\n%s\n\n", label, body)
	}
	if req.System != "" {
		block("system", req.System)
	}
	for _, m := range req.Messages {
		block(string(m.Role), m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			block("schema "+req.Schema.Name, string(def))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
