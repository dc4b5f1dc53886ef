package llm

import (
	"math"
	"testing"
)

func TestLookupCost(t *testing.T) {
	tests := []struct {
		model     string
		in, out   int
		want      float64
		wantKnown bool
	}{
		{"gemini-1.5-flash", 1_000_000, 1_000_000, 0.375, true},
		{"models/gemini-1.5-flash-002", 1_000_000, 0, 0.075, true},
		{"gpt-4o-mini", 2_000_000, 0, 0.3, true},
		{"gpt-4o-mini-2024-07-18", 0, 1_000_000, 0.6, true},
		{"claude-haiku-4-5-20251001", 1_000_000, 1_000_000, 6, true},
		{"claude-haiku", 0, 1_000_000, 5, true},
		{"claude-3-5-haiku-latest", 1_000_000, 0, 0.8, true},
		{"google/gemini-flash-1.5", 0, 1_000_000, 0.3, true},
		{"mock", 10, 10, 0, false},
		{"", 10, 10, 0, false},
	}
	for _, tt := range tests {
		c := LookupCost(tt.model)
		if (c != nil) != tt.wantKnown {
			t.Errorf("LookupCost(%q) known = %v, want %v", tt.model, c != nil, tt.wantKnown)
			continue
		}
		if c == nil {
			continue
		}
		if got := c.Cost(tt.in, tt.out); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Cost(%q, %d, %d) = %v, want %v", tt.model, tt.in, tt.out, got, tt.want)
		}
	}
}

func TestCostKeys(t *testing.T) {
	got := costKeys("claude-sonnet")
	want := []string{"claude-sonnet", "claude-sonnet-4-20250514", "claude-sonnet-4"}
	if len(got) != len(want) {
		t.Fatalf("costKeys = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("costKeys[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
