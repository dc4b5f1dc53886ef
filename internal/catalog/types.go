package catalog

// Difficulty grades a single drillable item.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// AllDifficulties returns the item difficulties in ascending order.
func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Tier is the difficulty of a whole lesson.
type Tier string

const (
	TierBeginner     Tier = "beginner"
	TierIntermediate Tier = "intermediate"
	TierAdvanced     Tier = "advanced"
)

// Valid reports whether t is one of the known tiers.
func (t Tier) Valid() bool {
	switch t {
	case TierBeginner, TierIntermediate, TierAdvanced:
		return true
	}
	return false
}

// Category groups quiz questions by what they test.
type Category string

const (
	CategoryVocabulary  Category = "vocabulary"
	CategoryGrammar     Category = "grammar"
	CategoryTranslation Category = "translation"
	CategoryCulture     Category = "culture"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryVocabulary, CategoryGrammar, CategoryTranslation, CategoryCulture:
		return true
	}
	return false
}

// ExerciseType is the translation direction of a practice exercise set.
type ExerciseType string

const (
	ExerciseLatinToEnglish ExerciseType = "latin-to-english"
	ExerciseEnglishToLatin ExerciseType = "english-to-latin"
)

// SectionType labels an entry of a lesson's table of contents.
type SectionType string

const (
	SectionIntro      SectionType = "intro"
	SectionProse      SectionType = "prose"
	SectionVocabulary SectionType = "vocabulary"
	SectionGrammar    SectionType = "grammar"
	SectionExercises  SectionType = "exercises"
	SectionCulture    SectionType = "culture"
)

// Lesson is one unit of the textbook. Lessons are immutable once the
// catalog is built; callers must not modify the slices they hold.
type Lesson struct {
	ID                 int                   `json:"id"`
	Title              string                `json:"title"`
	Subtitle           string                `json:"subtitle,omitempty"`
	Description        string                `json:"description"`
	PageNumbers        []int                 `json:"pageNumbers"`
	IntroductoryNote   Note                  `json:"introductoryNote"`
	ProsePassage       ProsePassage          `json:"prosePassage"`
	Vocabulary         []VocabItem           `json:"vocabulary"`
	KeyConcepts        []GrammarConcept      `json:"keyConcepts"`
	PracticeExercises  []PracticeExerciseSet `json:"practiceExercises"`
	Objectives         []string              `json:"objectives"`
	CulturalNotes      []string              `json:"culturalNotes,omitempty"`
	Difficulty         Tier                  `json:"difficulty"`
	PrerequisiteSkills []string              `json:"prerequisiteSkills"`
	EstimatedTime      int                   `json:"estimatedTime"`
	Sections           []Section             `json:"sections"`
}

// FirstPage returns the first textbook page of the lesson, or 0 if the
// lesson has no page references.
func (l Lesson) FirstPage() int {
	if len(l.PageNumbers) == 0 {
		return 0
	}
	first := l.PageNumbers[0]
	for _, p := range l.PageNumbers[1:] {
		if p < first {
			first = p
		}
	}
	return first
}

// Note is a block of free prose.
type Note struct {
	Content string `json:"content"`
}

// ProsePassage is the reading passage of a lesson.
type ProsePassage struct {
	Title           string          `json:"title,omitempty"`
	Context         string          `json:"context,omitempty"`
	Sentences       []ProseSentence `json:"sentences"`
	FullTranslation string          `json:"fullTranslation,omitempty"`
}

// ProseSentence is one sentence of a reading passage.
type ProseSentence struct {
	ID      string `json:"id"`
	Latin   string `json:"latin"`
	English string `json:"english,omitempty"`
	Order   int    `json:"order"`
}

// VocabItem is a drillable vocabulary word.
type VocabItem struct {
	ID             string     `json:"id"`
	Latin          string     `json:"latin"`
	PrincipalParts string     `json:"principalParts,omitempty"`
	English        string     `json:"english"`
	PartOfSpeech   string     `json:"partOfSpeech"`
	Lesson         int        `json:"lesson"`
	Difficulty     Difficulty `json:"difficulty"`
	Etymology      string     `json:"etymology,omitempty"`
	Notes          string     `json:"notes,omitempty"`
}

// GrammarConcept explains one point of grammar.
type GrammarConcept struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Explanation string    `json:"explanation"`
	Examples    []Example `json:"examples"`
	Rules       []string  `json:"rules"`
	Charts      []Chart   `json:"charts,omitempty"`
}

// Example is a Latin sentence with its translation.
type Example struct {
	Latin   string `json:"latin"`
	English string `json:"english"`
	Notes   string `json:"notes,omitempty"`
}

// Chart is a declension or conjugation table.
type Chart struct {
	Title   string     `json:"title"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// PracticeExerciseSet is a numbered translation exercise from the textbook.
type PracticeExerciseSet struct {
	ID        string             `json:"id"`
	Type      ExerciseType       `json:"type"`
	Title     string             `json:"title"`
	Sentences []ExerciseSentence `json:"sentences"`
}

// ExerciseSentence is one sentence to translate.
type ExerciseSentence struct {
	ID     string   `json:"id"`
	Source string   `json:"source"`
	Target string   `json:"target"`
	Hints  []string `json:"hints,omitempty"`
	Notes  string   `json:"notes,omitempty"`
}

// Section is an entry of the lesson's table of contents.
type Section struct {
	ID      string      `json:"id"`
	Title   string      `json:"title"`
	Content string      `json:"content"`
	Type    SectionType `json:"type"`
	Order   int         `json:"order"`
}

// QuizQuestion is a multiple-choice question attached to a lesson.
type QuizQuestion struct {
	ID            string     `json:"id"`
	Question      string     `json:"question"`
	Options       []string   `json:"options"`
	CorrectAnswer int        `json:"correctAnswer"`
	Explanation   string     `json:"explanation,omitempty"`
	Lesson        int        `json:"lesson"`
	Difficulty    Difficulty `json:"difficulty"`
	Category      Category   `json:"category"`
}

// IsCorrect reports whether index selects the correct option.
func (q QuizQuestion) IsCorrect(index int) bool {
	return index == q.CorrectAnswer
}

// CorrectOption returns the text of the correct option.
func (q QuizQuestion) CorrectOption() string {
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectAnswer]
}

// Document is the on-disk shape of a catalog.
type Document struct {
	Version string         `json:"version"`
	Lessons []Lesson       `json:"lessons"`
	Quiz    []QuizQuestion `json:"quiz"`
}
