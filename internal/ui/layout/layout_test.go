package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{80, 24, false},
		{79, 24, true},
		{120, 23, true},
		{200, 60, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestWrap(t *testing.T) {
	got := Wrap("Sicilia est insula. In Sicilia habitat puella.", 20)
	for _, line := range strings.Split(got, "\n") {
		if w := lipgloss.Width(line); w > 20 {
			t.Errorf("line %q is %d wide, want <= 20", line, w)
		}
	}
	if !strings.Contains(got, "puella.") {
		t.Errorf("Wrap dropped words: %q", got)
	}
	if got := Wrap("a\n\nb", 10); got != "a\n\nb" {
		t.Errorf("Wrap kept paragraphs = %q", got)
	}
}

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Lesson 2", "streak 3", 80)
	for _, want := range []string{"Ludus", "Lesson 2", "streak 3"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestRenderFrameFillsHeight(t *testing.T) {
	header := RenderHeader("Quiz", "", 80)
	footer := RenderFooter([]KeyHint{{"Esc", "Back"}}, 80)
	frame := RenderFrame(header, "body", footer, 80, 30)
	if got := lipgloss.Height(frame); got != 30 {
		t.Errorf("frame height = %d, want 30", got)
	}
	if !strings.Contains(frame, "Esc") || !strings.Contains(frame, "Back") {
		t.Error("footer hints missing from frame")
	}
}
