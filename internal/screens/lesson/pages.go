package lesson

import (
	"fmt"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/xamuil2/digitalludus/internal/catalog"
	"github.com/xamuil2/digitalludus/internal/textbook"
	"github.com/xamuil2/digitalludus/internal/ui/layout"
	"github.com/xamuil2/digitalludus/internal/ui/theme"
)

var heading = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)

func bullet(text string, width int) string {
	wrapped := layout.Wrap(text, width-2)
	return "• " + strings.ReplaceAll(wrapped, "\n", "\n  ")
}

func renderOverview(l catalog.Lesson, width int) string {
	var b strings.Builder
	b.WriteString(heading.Render(l.Title) + "\n")
	if l.Subtitle != "" {
		b.WriteString(theme.Hint.Render(l.Subtitle) + "\n")
	}
	b.WriteString("\n" + theme.Body.Render(layout.Wrap(l.Description, width)) + "\n\n")

	meta := fmt.Sprintf("%s · about %d minutes · %d words · %d grammar topics",
		l.Difficulty, l.EstimatedTime, len(l.Vocabulary), len(l.KeyConcepts))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(meta) + "\n")
	if len(l.PageNumbers) > 0 {
		view := textbook.NewView(0).OpenLesson(l)
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("Textbook pages %s (opens at %s)", pageList(l.PageNumbers), view.Label())) + "\n")
	}

	if len(l.Objectives) > 0 {
		b.WriteString("\n" + heading.Render("Objectives") + "\n")
		for _, o := range l.Objectives {
			b.WriteString(bullet(o, width) + "\n")
		}
	}
	if len(l.PrerequisiteSkills) > 0 {
		b.WriteString("\n" + heading.Render("Before you start") + "\n")
		for _, p := range l.PrerequisiteSkills {
			b.WriteString(bullet(p, width) + "\n")
		}
	}
	if len(l.Sections) > 0 {
		sections := append([]catalog.Section(nil), l.Sections...)
		sort.Slice(sections, func(i, j int) bool { return sections[i].Order < sections[j].Order })
		b.WriteString("\n" + heading.Render("Contents") + "\n")
		for _, sec := range sections {
			b.WriteString(fmt.Sprintf("%d. %s", sec.Order, sec.Title) + "\n")
		}
	}
	return b.String()
}

func pageList(pages []int) string {
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = fmt.Sprint(p)
	}
	return strings.Join(parts, ", ")
}

func renderIntroduction(l catalog.Lesson, width int) string {
	return heading.Render("Introduction") + "\n\n" +
		theme.Body.Render(layout.Wrap(l.IntroductoryNote.Content, width))
}

func renderReading(l catalog.Lesson, translation bool, width int) string {
	p := l.ProsePassage
	var b strings.Builder
	title := p.Title
	if title == "" {
		title = "Reading"
	}
	b.WriteString(heading.Render(title) + "\n")
	if p.Context != "" {
		b.WriteString(theme.Hint.Render(layout.Wrap(p.Context, width)) + "\n")
	}
	b.WriteString("\n")

	sentences := append([]catalog.ProseSentence(nil), p.Sentences...)
	sort.SliceStable(sentences, func(i, j int) bool { return sentences[i].Order < sentences[j].Order })
	for _, s := range sentences {
		b.WriteString(theme.Latin.Render(layout.Wrap(s.Latin, width)) + "\n")
		if translation && s.English != "" {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(layout.Wrap(s.English, width)) + "\n")
		}
		b.WriteString("\n")
	}

	if translation && p.FullTranslation != "" {
		b.WriteString(heading.Render("Translation") + "\n")
		b.WriteString(theme.Body.Render(layout.Wrap(p.FullTranslation, width)) + "\n")
	}
	if !translation {
		b.WriteString(theme.Hint.Render("press t to show the translation") + "\n")
	}
	return b.String()
}

func renderVocabulary(l catalog.Lesson, width int) string {
	var b strings.Builder
	b.WriteString(heading.Render(fmt.Sprintf("Vocabulary (%d)", len(l.Vocabulary))) + "\n\n")
	for _, v := range l.Vocabulary {
		head := theme.Latin.Render(v.Latin)
		if v.PrincipalParts != "" {
			head += lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + v.PrincipalParts)
		}
		b.WriteString(head + "\n")
		b.WriteString(theme.Body.Render("  "+v.English) +
			theme.Hint.Render(fmt.Sprintf("  (%s, %s)", v.PartOfSpeech, v.Difficulty)) + "\n")
		for _, extra := range []string{v.Etymology, v.Notes} {
			if extra != "" {
				b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
					Render("  "+strings.ReplaceAll(layout.Wrap(extra, width-2), "\n", "\n  ")) + "\n")
			}
		}
	}
	return b.String()
}

func renderGrammar(l catalog.Lesson, width int) string {
	var b strings.Builder
	for i, c := range l.KeyConcepts {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(heading.Render(c.Title) + "\n\n")
		b.WriteString(theme.Body.Render(layout.Wrap(c.Explanation, width)) + "\n")
		for _, r := range c.Rules {
			b.WriteString(bullet(r, width) + "\n")
		}
		for _, ch := range c.Charts {
			b.WriteString("\n" + renderChart(ch) + "\n")
		}
		for _, ex := range c.Examples {
			b.WriteString("\n" + theme.Latin.Render(ex.Latin) + "\n")
			b.WriteString(theme.Body.Render("  "+ex.English) + "\n")
			if ex.Notes != "" {
				b.WriteString(theme.Hint.Render("  "+ex.Notes) + "\n")
			}
		}
	}
	return b.String()
}

// renderChart draws a declension or conjugation chart.
func renderChart(ch catalog.Chart) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(ch.Headers...).
		Rows(ch.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return s.Foreground(theme.Accent).Bold(true)
			case col == 0:
				return s.Foreground(theme.TextDim)
			default:
				return s.Foreground(theme.Text)
			}
		})
	out := t.String()
	if ch.Title != "" {
		out = lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(ch.Title) + "\n" + out
	}
	return out
}

func renderPractice(l catalog.Lesson, answers bool, width int) string {
	var b strings.Builder
	for i, set := range l.PracticeExercises {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(heading.Render(set.Title) + "\n")
		direction := "Latin → English"
		if set.Type == catalog.ExerciseEnglishToLatin {
			direction = "English → Latin"
		}
		b.WriteString(theme.Hint.Render(direction) + "\n\n")

		for n, s := range set.Sentences {
			num := fmt.Sprintf("%d. ", n+1)
			b.WriteString(num + theme.Body.Render(layout.Wrap(s.Source, width-len(num))) + "\n")
			if !answers {
				continue
			}
			indent := strings.Repeat(" ", len(num))
			b.WriteString(indent + lipgloss.NewStyle().Foreground(theme.Success).Render("➜ "+s.Target) + "\n")
			if len(s.Hints) > 0 {
				b.WriteString(indent + theme.Hint.Render("hints: "+strings.Join(s.Hints, "; ")) + "\n")
			}
			if s.Notes != "" {
				b.WriteString(indent + theme.Hint.Render(s.Notes) + "\n")
			}
		}
	}
	if !answers {
		b.WriteString("\n" + theme.Hint.Render("press r to show the answers") + "\n")
	}
	return b.String()
}

func renderCulture(l catalog.Lesson, width int) string {
	var b strings.Builder
	b.WriteString(heading.Render("Roman culture") + "\n\n")
	for _, n := range l.CulturalNotes {
		b.WriteString(bullet(n, width) + "\n\n")
	}
	return b.String()
}
