package session

import (
	"github.com/xamuil2/digitalludus/internal/scoring"
	"github.com/xamuil2/digitalludus/internal/screen"
	"github.com/xamuil2/digitalludus/internal/screens/summary"
)

// newSummaryScreenAdapter creates a summary screen whose retry and next
// lesson options start the same kind of practice again.
func newSummaryScreenAdapter(sum scoring.Summary, again func() screen.Screen, next func(int) screen.Screen) screen.Screen {
	return summary.New(sum, again, next)
}
