package bot

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/xamuil2/digitalludus/internal/drill"
	"github.com/xamuil2/digitalludus/internal/quiz"
)

const (
	kindDrill = "d"
	kindQuiz  = "q"

	actReveal = "reveal"
	actKnew   = "yes"
	actMissed = "no"
	actFlip   = "flip"
	actNext   = "next"
)

func callbackData(kind, token, action string) string {
	return kind + ":" + token + ":" + action
}

func parseCallback(data string) (kind, token, action string, ok bool) {
	parts := strings.SplitN(data, ":", 3)
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}

func (b *Bot) handleCallback(c *chat, cq *tgbotapi.CallbackQuery) {
	kind, token, action, ok := parseCallback(cq.Data)
	if !ok {
		log.Printf("Invalid callback format: %s", cq.Data)
		b.answerCallback(cq.ID, "")
		return
	}
	if token != c.token {
		b.answerCallback(cq.ID, "This session has ended.")
		return
	}

	chatID, msgID := cq.Message.Chat.ID, cq.Message.MessageID
	switch kind {
	case kindDrill:
		if c.drill == nil {
			b.answerCallback(cq.ID, "This session has ended.")
			return
		}
		b.answerCallback(cq.ID, "")
		b.drillAction(c, chatID, msgID, action)
	case kindQuiz:
		if c.quiz == nil {
			b.answerCallback(cq.ID, "This session has ended.")
			return
		}
		b.answerCallback(cq.ID, "")
		b.quizAction(c, chatID, msgID, action)
	default:
		b.answerCallback(cq.ID, "")
	}
}

func (b *Bot) drillAction(c *chat, chatID int64, msgID int, action string) {
	d := c.drill
	var err error
	switch action {
	case actReveal:
		if err = d.Reveal(); err == nil {
			text, kb := cardMessage(c.token, d)
			b.editMessage(chatID, msgID, text, &kb)
			return
		}
	case actFlip:
		d.ToggleMode()
		text, kb := cardMessage(c.token, d)
		b.editMessage(chatID, msgID, text, &kb)
		return
	case actKnew, actMissed:
		item, _ := d.Current()
		if err = d.Mark(action == actKnew); err == nil {
			verdict := "✅ " + item.Latin + " = " + item.English
			if action == actMissed {
				verdict = "❌ " + item.Latin + " = " + item.English
			}
			b.editMessage(chatID, msgID, verdict, nil)
			b.afterDrillStep(c, chatID)
			return
		}
	default:
		return
	}
	log.Printf("[%s] drill %s: %v", c.convID, action, err)
}

func (b *Bot) afterDrillStep(c *chat, chatID int64) {
	d := c.drill
	if !d.Complete() {
		b.sendCard(chatID, c.token, d)
		return
	}
	st := d.Snapshot()
	c.stop()
	b.sendMessage(chatID, summaryText(*st.Summary, cmdDrill))
}

func (b *Bot) sendCard(chatID int64, token string, d *drill.Session) {
	text, kb := cardMessage(token, d)
	b.sendWithKeyboard(chatID, text, kb)
}

func (b *Bot) quizAction(c *chat, chatID int64, msgID int, action string) {
	q := c.quiz
	if action == actNext {
		answered := resultText(q)
		if err := q.Advance(); err != nil {
			log.Printf("[%s] quiz advance: %v", c.convID, err)
			return
		}
		b.editMessage(chatID, msgID, answered, nil)
		if q.Complete() {
			st := q.Snapshot()
			c.stop()
			b.sendMessage(chatID, summaryText(*st.Summary, cmdQuiz))
			return
		}
		b.sendQuestion(chatID, c.token, q)
		return
	}

	i, err := strconv.Atoi(action)
	if err != nil {
		return
	}
	// One tap both selects and submits.
	if err := q.SelectAnswer(i); err != nil {
		log.Printf("[%s] quiz select: %v", c.convID, err)
		return
	}
	if err := q.Submit(); err != nil {
		log.Printf("[%s] quiz submit: %v", c.convID, err)
		return
	}
	next := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(nextLabel(q), callbackData(kindQuiz, c.token, actNext)),
	))
	b.editMessage(chatID, msgID, resultText(q), &next)
}

func nextLabel(q *quiz.Session) string {
	if q.Cursor() == q.Len()-1 {
		return "See results"
	}
	return "Next question"
}

func (b *Bot) sendQuestion(chatID int64, token string, q *quiz.Session) {
	text, kb := questionMessage(token, q)
	b.sendWithKeyboard(chatID, text, kb)
}

// resultText shows the current question with the verdict of its answer.
func resultText(q *quiz.Session) string {
	hist := q.History()
	if len(hist) == 0 {
		return ""
	}
	last := hist[len(hist)-1]
	question, ok := q.Current()
	if !ok || question.ID != last.QuestionID {
		return fmt.Sprintf("Question %d answered.", len(hist))
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Question %d of %d\n\n%s\n\n", len(hist), q.Len(), question.Question)
	if last.Correct {
		fmt.Fprintf(&sb, "✅ Correct! %s", question.CorrectOption())
	} else {
		fmt.Fprintf(&sb, "❌ You chose %s. The answer is %s.", question.Options[last.Selected], question.CorrectOption())
	}
	if question.Explanation != "" {
		sb.WriteString("\n\n" + question.Explanation)
	}
	return sb.String()
}
