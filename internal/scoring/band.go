// Package scoring turns final tallies into percentages, qualitative bands
// and the summary shown when a drill or quiz completes.
package scoring

import "math"

// Band is a qualitative label for a percentage score.
type Band string

const (
	BandExcellent   Band = "excellent"
	BandGreat       Band = "great"
	BandGood        Band = "good"
	BandFair        Band = "fair"
	BandNeedsReview Band = "needs-review"
)

// bandFloors lists each band with the lowest percentage it covers, highest
// band first. The last floor must be 0 so every percentage has a band.
var bandFloors = []struct {
	floor int
	band  Band
}{
	{90, BandExcellent},
	{80, BandGreat},
	{70, BandGood},
	{60, BandFair},
	{0, BandNeedsReview},
}

// AllBands returns the bands from best to worst.
func AllBands() []Band {
	out := make([]Band, len(bandFloors))
	for i, bf := range bandFloors {
		out[i] = bf.band
	}
	return out
}

// Percentage returns round(100*correct/total), or 0 when nothing was
// answered.
func Percentage(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

// BandFor maps a percentage to its band. Values outside 0–100 are clamped.
func BandFor(pct int) Band {
	pct = max(0, min(100, pct))
	for _, bf := range bandFloors {
		if pct >= bf.floor {
			return bf.band
		}
	}
	return BandNeedsReview
}

// Rank orders bands: 0 for the best band, increasing as the band worsens.
func (b Band) Rank() int {
	for i, bf := range bandFloors {
		if bf.band == b {
			return i
		}
	}
	return len(bandFloors)
}

// AtLeast reports whether b is as good as or better than other.
func (b Band) AtLeast(other Band) bool {
	return b.Rank() <= other.Rank()
}

// Label returns a human readable band name.
func (b Band) Label() string {
	switch b {
	case BandExcellent:
		return "Excellent"
	case BandGreat:
		return "Great"
	case BandGood:
		return "Good"
	case BandFair:
		return "Fair"
	default:
		return "Needs review"
	}
}

// QuizMessage is the feedback shown under a finished quiz.
func (b Band) QuizMessage() string {
	switch b {
	case BandExcellent:
		return "Excellent! You've mastered this lesson."
	case BandGreat:
		return "Great job! You have a strong understanding."
	case BandGood:
		return "Good work! Review the areas you missed."
	case BandFair:
		return "Not bad! Consider reviewing this lesson."
	default:
		return "Keep studying! Review this lesson and try again."
	}
}

// DrillHeadline is the title shown over a finished vocabulary drill.
func DrillHeadline(pct int) string {
	switch {
	case pct >= 90:
		return "Excellent Work!"
	case pct >= 70:
		return "Well Done!"
	default:
		return "Keep Practicing!"
	}
}
