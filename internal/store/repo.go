package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM calls sharing a purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM calls served by one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// LLMEventWriter is the append side of the LLM event log.
type LLMEventWriter interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	LLMEventWriter

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns the event with the given id, or nil if absent.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}

// TutorExchangeData captures one question put to the tutor and its reply.
type TutorExchangeData struct {
	Channel      string // cli, tui, http or bot
	Lesson       *int
	Question     string
	Reply        string
	Demo         bool
	Fallback     bool
	LatencyMs    int64
	ErrorMessage string
}

// TutorExchange is a stored tutor exchange.
type TutorExchange struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	TutorExchangeData
}

// TutorRepo records tutor exchanges.
type TutorRepo interface {
	AppendExchange(ctx context.Context, data TutorExchangeData) error

	// RecentExchanges returns exchanges newest first.
	RecentExchanges(ctx context.Context, opts QueryOpts) ([]TutorExchange, error)
}
