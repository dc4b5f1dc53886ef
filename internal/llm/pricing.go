package llm

import (
	"regexp"
	"strings"
)

// ModelCost is the list price of a model in USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost prices one call.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1e6
}

// LookupCost returns the pricing for a model as recorded in the event log,
// or nil if the model is unknown. Gemini's "models/" prefix and dated
// snapshot suffixes are ignored, so "models/gemini-1.5-flash-002" and
// "gpt-4o-mini-2024-07-18" price like their base models.
func LookupCost(model string) *ModelCost {
	for _, key := range costKeys(model) {
		if c, ok := modelCosts[key]; ok {
			return &c
		}
	}
	return nil
}

var snapshotSuffix = regexp.MustCompile(`-(\d{8}|\d{4}-\d{2}-\d{2}|\d{3}|latest)$`)

// costKeys lists the table keys model may be priced under, most specific
// first.
func costKeys(model string) []string {
	m := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(model)), "models/")
	ids := []string{m}
	for _, aliases := range modelAliases {
		if id, ok := aliases[m]; ok {
			ids = append(ids, id)
		}
	}

	keys := make([]string, 0, 2*len(ids))
	for _, id := range ids {
		keys = append(keys, id)
		if base := snapshotSuffix.ReplaceAllString(id, ""); base != id {
			keys = append(keys, base)
		}
	}
	return keys
}

// modelCosts covers the models the tutor can be configured with. Prices
// from models.dev, checked 2026-02-15.
var modelCosts = map[string]ModelCost{
	// Anthropic
	"claude-3-5-haiku":  {0.8, 4},
	"claude-3-5-sonnet": {3, 15},
	"claude-3-7-sonnet": {3, 15},
	"claude-3-haiku":    {0.25, 1.25},
	"claude-haiku-4-5":  {1, 5},
	"claude-sonnet-4":   {3, 15},
	"claude-sonnet-4-5": {3, 15},
	"claude-opus-4-5":   {5, 25},

	// OpenAI
	"gpt-3.5-turbo": {0.5, 1.5},
	"gpt-4-turbo":   {10, 30},
	"gpt-4.1":       {2, 8},
	"gpt-4.1-mini":  {0.4, 1.6},
	"gpt-4.1-nano":  {0.1, 0.4},
	"gpt-4o":        {2.5, 10},
	"gpt-4o-mini":   {0.15, 0.6},
	"gpt-5":         {1.25, 10},
	"gpt-5-mini":    {0.25, 2},
	"gpt-5-nano":    {0.05, 0.4},
	"o4-mini":       {1.1, 4.4},

	// Google
	"gemini-1.5-flash":      {0.075, 0.3},
	"gemini-1.5-flash-8b":   {0.0375, 0.15},
	"gemini-1.5-pro":        {1.25, 5},
	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.0-flash-lite": {0.075, 0.3},
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-flash-lite": {0.1, 0.4},
	"gemini-2.5-pro":        {1.25, 10},

	// OpenRouter ids carry the vendor prefix.
	"google/gemini-flash-1.5":          {0.075, 0.3},
	"google/gemini-2.0-flash-001":      {0.1, 0.4},
	"openai/gpt-4o-mini":               {0.15, 0.6},
	"anthropic/claude-3.5-haiku":       {0.8, 4},
	"meta-llama/llama-3.1-8b-instruct": {0.02, 0.03},
}
