package scoring

// Kind tells drills and quizzes apart in a summary.
type Kind string

const (
	KindDrill Kind = "drill"
	KindQuiz  Kind = "quiz"
)

// Summary is the final result of a completed session.
type Summary struct {
	Kind       Kind   `json:"kind"`
	Correct    int    `json:"correct"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
	Band       Band   `json:"band"`
	Headline   string `json:"headline"`
	Message    string `json:"message"`
	BestStreak int    `json:"bestStreak,omitempty"`

	// NextLesson is set when the score is good enough to move on and a
	// following lesson exists.
	NextLesson *int `json:"nextLesson,omitempty"`
}

// PassBand is the lowest band that unlocks the next lesson.
const PassBand = BandGood

// Drill summarises a finished vocabulary drill.
func Drill(correct, total, bestStreak int) Summary {
	pct := Percentage(correct, total)
	band := BandFor(pct)
	return Summary{
		Kind:       KindDrill,
		Correct:    correct,
		Total:      total,
		Percentage: pct,
		Band:       band,
		Headline:   DrillHeadline(pct),
		Message:    band.QuizMessage(),
		BestStreak: bestStreak,
	}
}

// Quiz summarises a finished quiz.
func Quiz(correct, total int) Summary {
	pct := Percentage(correct, total)
	band := BandFor(pct)
	return Summary{
		Kind:       KindQuiz,
		Correct:    correct,
		Total:      total,
		Percentage: pct,
		Band:       band,
		Headline:   band.Label(),
		Message:    band.QuizMessage(),
	}
}

// WithNextLesson offers next when the summary passed.
func (s Summary) WithNextLesson(next int, ok bool) Summary {
	if ok && s.Total > 0 && s.Band.AtLeast(PassBand) {
		s.NextLesson = &next
	}
	return s
}

// Passed reports whether the summary reached PassBand.
func (s Summary) Passed() bool {
	return s.Total > 0 && s.Band.AtLeast(PassBand)
}
