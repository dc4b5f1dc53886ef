package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/xamuil2/digitalludus/internal/drill"
	"github.com/xamuil2/digitalludus/internal/pool"
	"github.com/xamuil2/digitalludus/internal/quiz"
	"github.com/xamuil2/digitalludus/internal/ui/components"
	"github.com/xamuil2/digitalludus/internal/ui/theme"
)

const emptyPoolText = "Nothing matches this selection.\nPress F to try another difficulty."

func difficultyLabel(f string) string {
	if f == "" || f == string(pool.All) {
		return "all difficulties"
	}
	return f
}

func lessonsLabel(ids []int) string {
	if len(ids) == 1 {
		return fmt.Sprintf("Lesson %d", ids[0])
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return "Lessons " + strings.Join(parts, ", ")
}

// renderInfoLine renders the selection on the left and progress on the right.
func renderInfoLine(left, right string, width int) string {
	l := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("  " + left)
	r := lipgloss.NewStyle().Foreground(theme.TextDim).Render(right)
	line := l
	if pad := width - lipgloss.Width(l) - lipgloss.Width(r) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + r
	}
	return line + "\n" +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))) + "\n\n"
}

// renderCard renders the current flashcard.
func renderCard(st drill.State, width, height int) string {
	var b strings.Builder

	direction := "Latin → English"
	if st.Mode == drill.EnglishToLatin {
		direction = "English → Latin"
	}
	progress := fmt.Sprintf("Card %d/%d  %s", min(st.Cursor+1, st.Size), st.Size, direction)
	b.WriteString(renderInfoLine(lessonsLabel(st.Lessons)+" · "+difficultyLabel(st.Difficulty), progress, width))

	if st.Size == 0 || st.Card == nil {
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
			Foreground(theme.TextDim).Render(emptyPoolText))
		return b.String()
	}

	card := st.Card
	cw := components.PanelWidth(width)

	var face strings.Builder
	promptStyle := theme.Latin
	if st.Mode == drill.EnglishToLatin {
		promptStyle = theme.Body.Bold(true)
	}
	face.WriteString(promptStyle.Render(card.Prompt))
	if card.PartOfSpeech != "" {
		face.WriteString("\n" + theme.Hint.Render(card.PartOfSpeech))
	}
	if st.Revealed {
		face.WriteString("\n\n" + lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(card.Answer))
		for _, extra := range []string{card.PrincipalParts, card.Etymology, card.Notes} {
			if extra != "" {
				face.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render(extra))
			}
		}
	} else {
		face.WriteString("\n\n" + theme.Hint.Render("press space to reveal"))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Panel(face.String(), cw)))
	b.WriteString("\n\n")

	if st.Revealed {
		buttons := lipgloss.JoinHorizontal(lipgloss.Top,
			components.Button("Y  Knew it", false, 16), "  ",
			components.Button("N  Missed it", false, 16))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, buttons))
		b.WriteString("\n")
	}

	if st.Streak > 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("streak %d", st.Streak))))
	}

	return b.String()
}

// renderQuestion renders the current quiz question with its options and,
// once submitted, the explanation.
func renderQuestion(st quiz.State, choice components.MultiChoice, width, height int) string {
	var b strings.Builder

	progress := fmt.Sprintf("Question %d/%d", min(st.Cursor+1, st.Size), st.Size)
	b.WriteString(renderInfoLine(lessonsLabel(st.Lessons)+" · "+difficultyLabel(st.Difficulty), progress, width))

	if st.Size == 0 || st.Question == nil {
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
			Foreground(theme.TextDim).Render(emptyPoolText))
		return b.String()
	}

	if st.Question.Category != "" {
		b.WriteString("  " + theme.Hint.Render(st.Question.Category) + "\n\n")
	}

	cw := components.PanelWidth(width)
	block := lipgloss.NewStyle().Width(cw).Render(choice.View())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block))

	if st.ShowResult && len(st.History) > 0 {
		last := st.History[len(st.History)-1]
		verdict := theme.Correct.Render("Correct!")
		if !last.Correct {
			verdict = theme.Incorrect.Render("Not quite.")
		}
		b.WriteString("\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, verdict) + "\n")
		if st.Question.Explanation != "" {
			expl := lipgloss.NewStyle().Width(cw).Foreground(theme.TextDim).Render(st.Question.Explanation)
			b.WriteString("\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, expl) + "\n")
		}
	}

	return b.String()
}

// renderError renders an error message in the content area.
func renderError(width, height int, msg string) string {
	content := lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("Something went wrong") +
		"\n\n" + theme.Body.Render(msg) +
		"\n\n" + theme.Hint.Render("press any key to go back")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
