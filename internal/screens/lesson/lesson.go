// Package lesson is the lesson reader: the textbook material of one lesson
// split into pages, with shortcuts into practice and the tutor.
package lesson

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/xamuil2/digitalludus/internal/catalog"
	"github.com/xamuil2/digitalludus/internal/drill"
	"github.com/xamuil2/digitalludus/internal/pool"
	"github.com/xamuil2/digitalludus/internal/router"
	"github.com/xamuil2/digitalludus/internal/screen"
	"github.com/xamuil2/digitalludus/internal/screens/chat"
	"github.com/xamuil2/digitalludus/internal/screens/session"
	"github.com/xamuil2/digitalludus/internal/ui/layout"
	"github.com/xamuil2/digitalludus/internal/ui/theme"
)

// Page is one tab of the reader.
type Page int

const (
	PageOverview Page = iota
	PageIntroduction
	PageReading
	PageVocabulary
	PageGrammar
	PagePractice
	PageCulture
)

var pageNames = map[Page]string{
	PageOverview:     "Overview",
	PageIntroduction: "Introduction",
	PageReading:      "Reading",
	PageVocabulary:   "Vocabulary",
	PageGrammar:      "Grammar",
	PagePractice:     "Practice",
	PageCulture:      "Culture",
}

func (p Page) String() string { return pageNames[p] }

// LessonScreen shows one lesson.
type LessonScreen struct {
	deps            screen.Deps
	lesson          catalog.Lesson
	pages           []Page
	current         int
	offset          int
	showTranslation bool
	showAnswers     bool
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)
var _ screen.StatusProvider = (*LessonScreen)(nil)

// New opens the reader on the overview page. Pages without content are
// left out.
func New(deps screen.Deps, l catalog.Lesson) *LessonScreen {
	pages := []Page{PageOverview}
	if l.IntroductoryNote.Content != "" {
		pages = append(pages, PageIntroduction)
	}
	if len(l.ProsePassage.Sentences) > 0 {
		pages = append(pages, PageReading)
	}
	if len(l.Vocabulary) > 0 {
		pages = append(pages, PageVocabulary)
	}
	if len(l.KeyConcepts) > 0 {
		pages = append(pages, PageGrammar)
	}
	if len(l.PracticeExercises) > 0 {
		pages = append(pages, PagePractice)
	}
	if len(l.CulturalNotes) > 0 {
		pages = append(pages, PageCulture)
	}
	return &LessonScreen{deps: deps, lesson: l, pages: pages}
}

// Page returns the page on screen.
func (s *LessonScreen) Page() Page {
	return s.pages[s.current]
}

func (s *LessonScreen) Init() tea.Cmd {
	return nil
}

func (s *LessonScreen) Title() string {
	if s.lesson.Subtitle != "" {
		return s.lesson.Title + ": " + s.lesson.Subtitle
	}
	return s.lesson.Title
}

func (s *LessonScreen) Status() string {
	return fmt.Sprintf("%s %d/%d", s.Page(), s.current+1, len(s.pages))
}

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "←→", Description: "Page"},
		{Key: "↑↓", Description: "Scroll"},
	}
	switch s.Page() {
	case PageReading:
		hints = append(hints, layout.KeyHint{Key: "T", Description: "Translation"})
	case PagePractice:
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Answers"})
	}
	return append(hints,
		layout.KeyHint{Key: "D", Description: "Drill"},
		layout.KeyHint{Key: "Q", Description: "Quiz"},
		layout.KeyHint{Key: "A", Description: "Ask tutor"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "right", "l", "tab":
		s.turn(1)
	case "left", "h", "shift+tab":
		s.turn(-1)
	case "down", "j":
		s.offset++
	case "up", "k":
		s.offset = max(s.offset-1, 0)
	case "t":
		s.showTranslation = !s.showTranslation
	case "r":
		s.showAnswers = !s.showAnswers
	case "d":
		return s, router.PushCmd(session.NewDrill(s.deps, pool.One(s.lesson.ID), pool.All, drill.LatinToEnglish))
	case "q":
		return s, router.PushCmd(session.NewQuiz(s.deps, pool.One(s.lesson.ID), pool.All))
	case "a":
		id := s.lesson.ID
		return s, router.PushCmd(chat.New(s.deps.Tutor, &id, "Lesson reader: "+s.Page().String()))
	}
	return s, nil
}

func (s *LessonScreen) turn(delta int) {
	next := s.current + delta
	if next < 0 || next >= len(s.pages) {
		return
	}
	s.current = next
	s.offset = 0
}

func (s *LessonScreen) View(width, height int) string {
	textWidth := min(max(width-8, 20), 90)

	tabs := make([]string, len(s.pages))
	for i, p := range s.pages {
		label := " " + p.String() + " "
		if i == s.current {
			tabs[i] = lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.Accent).Bold(true).Render(label)
		} else {
			tabs[i] = lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)
		}
	}
	header := "  " + strings.Join(tabs, " ") + "\n\n"

	lines := strings.Split(s.renderPage(textWidth), "\n")
	room := max(height-3, 1)
	s.offset = min(s.offset, max(len(lines)-room, 0))
	visible := lines[s.offset:min(s.offset+room, len(lines))]

	body := lipgloss.NewStyle().PaddingLeft(4).Render(strings.Join(visible, "\n"))
	return header + body
}

func (s *LessonScreen) renderPage(width int) string {
	l := s.lesson
	switch s.Page() {
	case PageIntroduction:
		return renderIntroduction(l, width)
	case PageReading:
		return renderReading(l, s.showTranslation, width)
	case PageVocabulary:
		return renderVocabulary(l, width)
	case PageGrammar:
		return renderGrammar(l, width)
	case PagePractice:
		return renderPractice(l, s.showAnswers, width)
	case PageCulture:
		return renderCulture(l, width)
	default:
		return renderOverview(l, width)
	}
}
