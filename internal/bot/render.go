package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/xamuil2/digitalludus/internal/catalog"
	"github.com/xamuil2/digitalludus/internal/drill"
	"github.com/xamuil2/digitalludus/internal/quiz"
	"github.com/xamuil2/digitalludus/internal/scoring"
)

const welcomeText = `Salve! Welcome to DigitalLudus.

Practise the vocabulary and grammar of each Ludus lesson right here.

Commands:
/lessons - List the lessons
/drill <lessons> [easy|medium|hard] [la|en] - Flashcard drill, e.g. /drill 1,2 easy
/quiz <lessons> [easy|medium|hard] - Multiple choice quiz, e.g. /quiz 1
/ask <question> - Ask Magister Marcellus, your Latin tutor
/stop - End the current drill or quiz
/help - Show this message

Anything you write without a command goes to the tutor.`

const emptyPoolText = "Nothing matches that selection. Try another difficulty or more lessons."

func lessonList(lessons []catalog.Lesson) string {
	if len(lessons) == 0 {
		return "No lessons available."
	}
	var sb strings.Builder
	sb.WriteString("Lessons:\n")
	for _, l := range lessons {
		fmt.Fprintf(&sb, "\n%d. %s", l.ID, l.Title)
		if l.Subtitle != "" {
			fmt.Fprintf(&sb, ": %s", l.Subtitle)
		}
		fmt.Fprintf(&sb, " (%s, %d words)", l.Difficulty, len(l.Vocabulary))
	}
	sb.WriteString("\n\nStart with /drill <id> or /quiz <id>.")
	return sb.String()
}

// cardMessage renders the current drill card and its buttons.
func cardMessage(token string, d *drill.Session) (string, tgbotapi.InlineKeyboardMarkup) {
	st := d.Snapshot()
	var sb strings.Builder
	fmt.Fprintf(&sb, "Card %d of %d", st.Cursor+1, st.Size)
	if st.Streak > 0 {
		fmt.Fprintf(&sb, " • streak %d", st.Streak)
	}
	card := st.Card
	if card == nil {
		return sb.String(), tgbotapi.NewInlineKeyboardMarkup()
	}
	fmt.Fprintf(&sb, "\n\n%s", card.Prompt)
	if card.PartOfSpeech != "" {
		fmt.Fprintf(&sb, "\n(%s)", card.PartOfSpeech)
	}

	if !st.Revealed {
		return sb.String(), tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Show answer", callbackData(kindDrill, token, actReveal)),
			tgbotapi.NewInlineKeyboardButtonData("Flip direction", callbackData(kindDrill, token, actFlip)),
		))
	}

	fmt.Fprintf(&sb, "\n\n➜ %s", card.Answer)
	for _, extra := range []string{card.PrincipalParts, card.Etymology, card.Notes} {
		if extra != "" {
			sb.WriteString("\n" + extra)
		}
	}
	return sb.String(), tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✅ Knew it", callbackData(kindDrill, token, actKnew)),
		tgbotapi.NewInlineKeyboardButtonData("❌ Missed it", callbackData(kindDrill, token, actMissed)),
	))
}

// questionMessage renders the current quiz question with one button per
// option.
func questionMessage(token string, q *quiz.Session) (string, tgbotapi.InlineKeyboardMarkup) {
	st := q.Snapshot()
	if st.Question == nil {
		return "", tgbotapi.NewInlineKeyboardMarkup()
	}
	text := fmt.Sprintf("Question %d of %d\n\n%s", st.Cursor+1, st.Size, st.Question.Prompt)
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(st.Question.Options))
	for i, opt := range st.Question.Options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(opt, callbackData(kindQuiz, token, fmt.Sprint(i))),
		))
	}
	return text, tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func summaryText(sum scoring.Summary, again string) string {
	var sb strings.Builder
	sb.WriteString(sum.Headline)
	fmt.Fprintf(&sb, "\n\nYou got %d of %d right (%d%%).", sum.Correct, sum.Total, sum.Percentage)
	if sum.Message != "" {
		sb.WriteString("\n" + sum.Message)
	}
	if sum.Kind == scoring.KindDrill && sum.BestStreak > 0 {
		fmt.Fprintf(&sb, "\nBest streak: %d", sum.BestStreak)
	}
	if sum.NextLesson != nil {
		fmt.Fprintf(&sb, "\n\nReady for Lesson %d? Try /%s %d", *sum.NextLesson, again, *sum.NextLesson)
	}
	return sb.String()
}
