package llm

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Values of Response.StopReason.
const (
	stopEnd       = "end"
	stopMaxTokens = "max_tokens"
)

// modelAliases maps the short names accepted in LUDUS_*_MODEL to vendor
// model ids. Anything else is passed through unchanged.
var modelAliases = map[string]map[string]string{
	Anthropic: {
		"claude-sonnet": "claude-sonnet-4-20250514",
		"claude-haiku":  "claude-haiku-4-5-20251001",
	},
	OpenAI: {
		"gpt-mini": "gpt-4o-mini",
	},
	Gemini: {
		"gemini-flash":   "gemini-1.5-flash",
		"gemini-pro":     "gemini-1.5-pro",
		"gemini-2-flash": "gemini-2.0-flash",
	},
}

func resolveModel(vendor, name string) string {
	if id, ok := modelAliases[vendor][name]; ok {
		return id
	}
	return name
}

// classify turns a failed vendor call into the package's error types.
// header may be nil when the SDK does not expose the response.
func classify(status int, header http.Header, err error) error {
	if status == http.StatusTooManyRequests {
		return &ErrRateLimit{RetryAfter: retryAfter(header), Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}

// retryAfter reads a Retry-After header given in seconds.
func retryAfter(h http.Header) time.Duration {
	if h == nil {
		return 0
	}
	secs, err := strconv.Atoi(strings.TrimSpace(h.Get("Retry-After")))
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// stopReason normalises the vendors' finish reasons.
func stopReason(raw string) string {
	switch strings.ToLower(raw) {
	case "max_tokens", "length":
		return stopMaxTokens
	default:
		return stopEnd
	}
}

// reply builds the Response for text returned by a vendor. With a schema
// the text must be a JSON object matching it; without one the text is
// wrapped as a JSON string.
func reply(req Request, text, model, stop string, usage Usage) (*Response, error) {
	var content json.RawMessage
	if req.Schema == nil {
		b, err := json.Marshal(text)
		if err != nil {
			return nil, fmt.Errorf("encode reply: %w", err)
		}
		content = b
	} else {
		content = json.RawMessage(text)
		if err := validateResponse(req.Schema, content); err != nil {
			if stop == stopMaxTokens {
				return nil, &ErrMaxTokensExceeded{Content: content}
			}
			return nil, err
		}
	}
	usage.TotalTokens = max(usage.TotalTokens, usage.InputTokens+usage.OutputTokens)
	return &Response{Content: content, Usage: usage, Model: model, StopReason: stop}, nil
}
