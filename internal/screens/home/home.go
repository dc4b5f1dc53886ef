// Package home is the main menu: one entry per lesson plus the tutor and
// its history.
package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/xamuil2/digitalludus/internal/catalog"
	"github.com/xamuil2/digitalludus/internal/router"
	"github.com/xamuil2/digitalludus/internal/screen"
	"github.com/xamuil2/digitalludus/internal/screens/chat"
	"github.com/xamuil2/digitalludus/internal/screens/history"
	"github.com/xamuil2/digitalludus/internal/screens/lesson"
	"github.com/xamuil2/digitalludus/internal/ui/components"
)

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	menu       components.Menu
	menuLabels []string
	captions   []string
	lessons    int
	words      int
	questions  int
	demo       bool
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps screen.Deps) *HomeScreen {
	var (
		labels   []string
		captions []string
		items    []components.MenuItem
	)

	for _, l := range deps.Catalog.Lessons() {
		labels = append(labels, fmt.Sprintf("LESSON %d", l.ID))
		captions = append(captions, lessonCaption(l))
		items = append(items, components.MenuItem{Label: labels[len(labels)-1], Action: func() tea.Cmd {
			return router.PushCmd(lesson.New(deps, l))
		}})
	}

	labels = append(labels, "ASK THE TUTOR", "TUTOR HISTORY", "EXIT")
	captions = append(captions,
		"Chat with Magister Marcellus about anything Latin",
		"Your recent questions and the tutor's replies",
		"Valē!",
	)
	items = append(items,
		components.MenuItem{Label: "ASK THE TUTOR", Action: func() tea.Cmd {
			return router.PushCmd(chat.New(deps.Tutor, nil, "Home"))
		}},
		components.MenuItem{Label: "TUTOR HISTORY", Action: func() tea.Cmd {
			return router.PushCmd(history.New(deps.Exchanges))
		}},
		components.MenuItem{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)

	return &HomeScreen{
		menu:       components.NewMenu(items),
		menuLabels: labels,
		captions:   captions,
		lessons:    len(deps.Catalog.Lessons()),
		words:      len(deps.Catalog.Vocabulary()),
		questions:  len(deps.Catalog.Questions()),
		demo:       deps.Tutor == nil || deps.Tutor.Demo(),
	}
}

func lessonCaption(l catalog.Lesson) string {
	s := l.Title
	if l.Subtitle != "" {
		s = l.Subtitle
	}
	return fmt.Sprintf("%s · %s · %d words", s, l.Difficulty, len(l.Vocabulary))
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 40 || width < 100

	cw := components.PanelWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderStatsBar(h.lessons, h.words, h.questions, cw, compact))
	if compact {
		sections = append(sections, renderMenuCompact(h.menuLabels, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderMenuButtons(h.menuLabels, h.menu.Selected, cw))
	}
	sections = append(sections, renderCaption(h.captions[h.menu.Selected], cw))
	if h.demo {
		sections = append(sections, renderDemoBanner(cw))
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
