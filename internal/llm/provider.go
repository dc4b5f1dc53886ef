// Package llm talks to the language model behind the tutor. Each vendor
// SDK sits behind Provider; timeouts, retries and the event log are
// decorators around it.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Provider sends one request to a model.
type Provider interface {
	// Generate returns the model's reply. With req.Schema set, Content is
	// a JSON object that has already been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the model the provider was configured with.
	ModelID() string
}

// Request is a system prompt plus the conversation so far.
type Request struct {
	System string

	// Messages ends with the learner's newest question. Earlier turns of
	// the chat, if any, come first in order.
	Messages []Message

	// Schema asks for structured output. Without it Content is the raw
	// text encoded as a JSON string.
	Schema *Schema

	MaxTokens   int
	Temperature float64 // 0 to 1
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role says who wrote a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema for structured replies. Name doubles as the
// validation cache key and must be unique per definition, e.g.
// "tutor-reply".
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response is a model reply.
type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that actually served the call, which may be a
	// dated snapshot of the configured one.
	Model string

	// StopReason is "end", "max_tokens" or "error".
	StopReason string
}

// Decode unmarshals Content into v. A reply that does not decode is an
// ErrInvalidResponse.
func (r *Response) Decode(v any) error {
	if r == nil || len(r.Content) == 0 {
		return &ErrInvalidResponse{Err: errors.New("empty content")}
	}
	if err := json.Unmarshal(r.Content, v); err != nil {
		return &ErrInvalidResponse{Content: r.Content, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}

// Usage counts the tokens of one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
