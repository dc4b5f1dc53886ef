// Package bot runs vocabulary drills, quizzes and the Latin tutor as a
// Telegram bot. Each chat holds at most one drill or quiz.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/xamuil2/digitalludus/internal/catalog"
	"github.com/xamuil2/digitalludus/internal/drill"
	"github.com/xamuil2/digitalludus/internal/pool"
	"github.com/xamuil2/digitalludus/internal/quiz"
	"github.com/xamuil2/digitalludus/internal/shuffle"
	"github.com/xamuil2/digitalludus/internal/tutor"
)

const (
	cmdStart   = "start"
	cmdHelp    = "help"
	cmdLessons = "lessons"
	cmdDrill   = "drill"
	cmdQuiz    = "quiz"
	cmdAsk     = "ask"
	cmdStop    = "stop"

	// historyTurns caps the tutor conversation kept per chat.
	historyTurns = 10

	// chatIdleTTL is how long a quiet chat keeps its session and history.
	chatIdleTTL = 2 * time.Hour
)

// Sender is the part of the Telegram API the bot talks to.
// *tgbotapi.BotAPI satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// chat is the per-chat state. mu serialises every update of the chat;
// lastSeen is guarded by Bot.mu.
type chat struct {
	mu       sync.Mutex
	lastSeen time.Time
	convID   string
	token    string // current drill or quiz; callbacks from older ones are stale
	drill    *drill.Session
	quiz     *quiz.Session
	lesson   *int
	history  []tutor.Turn
}

// Bot handles updates from Telegram.
type Bot struct {
	api     Sender
	botAPI  *tgbotapi.BotAPI
	lessons *catalog.Catalog
	tutor   *tutor.Relay
	rng     func() shuffle.Source
	idleTTL time.Duration
	now     func() time.Time

	mu    sync.Mutex
	chats map[int64]*chat
	wg    sync.WaitGroup
}

// New connects to Telegram with the given token. DEBUG=true turns on API
// debug logging.
func New(token string, lessons *catalog.Catalog, relay *tutor.Relay) (*Bot, error) {
	if token == "" {
		return nil, errors.New("telegram token is required (set LUDUS_TELEGRAM_TOKEN)")
	}
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}
	botAPI.Debug = os.Getenv("DEBUG") == "true"
	log.Printf("Authorized on account %s", botAPI.Self.UserName)

	b := newBot(botAPI, lessons, relay)
	b.botAPI = botAPI
	return b, nil
}

func newBot(api Sender, lessons *catalog.Catalog, relay *tutor.Relay) *Bot {
	if relay == nil {
		relay = tutor.New(nil, lessons)
	}
	return &Bot{
		api:     api,
		lessons: lessons,
		tutor:   relay,
		rng:     func() shuffle.Source { return shuffle.Default },
		idleTTL: chatIdleTTL,
		now:     time.Now,
		chats:   make(map[int64]*chat),
	}
}

// Run polls for updates until ctx is cancelled. Chats are handled
// concurrently; updates within one chat run one at a time.
func (b *Bot) Run(ctx context.Context) error {
	if b.botAPI == nil {
		return errors.New("bot is not connected")
	}
	log.Println("Starting bot polling...")

	go b.janitor(ctx, b.idleTTL/4)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.botAPI.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.botAPI.StopReceivingUpdates()
			b.wg.Wait()
			return nil
		case update, ok := <-updates:
			if !ok {
				b.wg.Wait()
				return nil
			}
			b.wg.Add(1)
			go func() {
				defer b.wg.Done()
				b.handleUpdate(ctx, update)
			}()
		}
	}
}

func (b *Bot) chatFor(id int64) *chat {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.chats[id]
	if !ok {
		c = &chat{convID: uuid.NewString()}
		b.chats[id] = c
	}
	c.lastSeen = b.now()
	return c
}

// sweep forgets chats idle for longer than idleTTL and reports how many
// went. A chat busy with an update is skipped.
func (b *Bot) sweep() int {
	cutoff := b.now().Add(-b.idleTTL)
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for id, c := range b.chats {
		if !c.mu.TryLock() {
			continue
		}
		if c.lastSeen.Before(cutoff) {
			delete(b.chats, id)
			n++
		}
		c.mu.Unlock()
	}
	return n
}

func (b *Bot) janitor(ctx context.Context, every time.Duration) {
	t := time.NewTicker(max(every, time.Minute))
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := b.sweep(); n > 0 {
				log.Printf("Evicted %d idle chats", n)
			}
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic handling update %d: %v", update.UpdateID, r)
		}
	}()

	switch {
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		cq := update.CallbackQuery
		c := b.chatFor(cq.Message.Chat.ID)
		c.mu.Lock()
		defer c.mu.Unlock()
		b.handleCallback(c, cq)
	case update.Message != nil && update.Message.Chat != nil:
		c := b.chatFor(update.Message.Chat.ID)
		c.mu.Lock()
		defer c.mu.Unlock()
		b.handleMessage(ctx, c, update.Message)
	}
}

// parseCommand splits "/drill@ludus_bot 1,2 easy" into "drill" and "1,2 easy".
func parseCommand(text string) (cmd, args string, ok bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", "", false
	}
	head, rest, _ := strings.Cut(text[1:], " ")
	head, _, _ = strings.Cut(head, "@")
	return strings.ToLower(head), strings.TrimSpace(rest), true
}

func (b *Bot) handleMessage(ctx context.Context, c *chat, m *tgbotapi.Message) {
	chatID := m.Chat.ID
	log.Printf("[%s] message in chat %d: %s", c.convID, chatID, m.Text)

	cmd, args, isCmd := parseCommand(m.Text)
	if !isCmd {
		// Plain text goes to the tutor.
		b.ask(ctx, c, chatID, m.Text)
		return
	}

	switch cmd {
	case cmdStart, cmdHelp:
		b.sendMessage(chatID, welcomeText)
	case cmdLessons:
		b.sendMessage(chatID, lessonList(b.lessons.Lessons()))
	case cmdDrill:
		b.startDrill(c, chatID, args)
	case cmdQuiz:
		b.startQuiz(c, chatID, args)
	case cmdAsk:
		b.ask(ctx, c, chatID, args)
	case cmdStop:
		c.stop()
		b.sendMessage(chatID, "Session ended. Use /drill or /quiz to start another.")
	default:
		b.sendMessage(chatID, "Unknown command. Use /help to see what I can do.")
	}
}

func (c *chat) stop() {
	c.drill, c.quiz, c.token = nil, nil, ""
}

func (c *chat) begin() string {
	c.stop()
	c.token = uuid.NewString()[:8]
	return c.token
}

// drillArgs reads "<lessons> [difficulty] [mode]".
func drillArgs(args string) (pool.Selector, pool.Filter, drill.Mode, error) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return pool.Selector{}, "", "", errors.New("tell me which lessons, e.g. /drill 1,2 easy")
	}
	sel, err := pool.ParseSelector(fields[0])
	if err != nil {
		return pool.Selector{}, "", "", err
	}
	f, mode := pool.All, drill.LatinToEnglish
	for _, field := range fields[1:] {
		if pf, err := pool.ParseFilter(field); err == nil {
			f = pf
			continue
		}
		m, err := drill.ParseMode(field)
		if err != nil {
			return pool.Selector{}, "", "", fmt.Errorf("%q is neither a difficulty nor a mode", field)
		}
		mode = m
	}
	return sel, f, mode, nil
}

func (b *Bot) startDrill(c *chat, chatID int64, args string) {
	sel, f, mode, err := drillArgs(args)
	if err != nil {
		b.sendMessage(chatID, err.Error())
		return
	}
	d, err := drill.Start(b.lessons, sel, f, drill.WithMode(mode), drill.WithRand(b.rng()))
	if err != nil {
		b.sendMessage(chatID, selectionError(err))
		return
	}
	token := c.begin()
	c.drill = d
	c.lesson = singleLesson(sel)
	if d.Complete() {
		c.stop()
		b.sendMessage(chatID, emptyPoolText)
		return
	}
	b.sendCard(chatID, token, d)
}

func (b *Bot) startQuiz(c *chat, chatID int64, args string) {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		b.sendMessage(chatID, "Tell me which lessons, e.g. /quiz 1")
		return
	}
	sel, err := pool.ParseSelector(fields[0])
	if err != nil {
		b.sendMessage(chatID, err.Error())
		return
	}
	f := pool.All
	if len(fields) > 1 {
		if f, err = pool.ParseFilter(fields[1]); err != nil {
			b.sendMessage(chatID, err.Error())
			return
		}
	}
	q, err := quiz.Start(b.lessons, sel, f, quiz.WithRand(b.rng()))
	if err != nil {
		b.sendMessage(chatID, selectionError(err))
		return
	}
	token := c.begin()
	c.quiz = q
	c.lesson = singleLesson(sel)
	if q.Complete() {
		c.stop()
		b.sendMessage(chatID, emptyPoolText)
		return
	}
	b.sendQuestion(chatID, token, q)
}

func singleLesson(sel pool.Selector) *int {
	ids := sel.IDs()
	if len(ids) != 1 {
		return nil
	}
	return &ids[0]
}

func selectionError(err error) string {
	if errors.Is(err, catalog.ErrLessonNotFound) {
		return "I don't know that lesson. Use /lessons to see what is available."
	}
	return err.Error()
}

func (b *Bot) ask(ctx context.Context, c *chat, chatID int64, text string) {
	if strings.TrimSpace(text) == "" {
		b.sendMessage(chatID, "Usage: /ask <your question about Latin>")
		return
	}
	if _, err := b.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		log.Printf("Error sending chat action: %v", err)
	}

	reply, err := b.tutor.Ask(ctx, tutor.Question{
		Message: text,
		Lesson:  c.lesson,
		Context: "Telegram chat",
		History: c.history,
	})
	if err != nil && !errors.Is(err, tutor.ErrUpstreamUnavailable) {
		b.sendMessage(chatID, "Usage: /ask <your question about Latin>")
		return
	}
	if err != nil {
		log.Printf("[%s] tutor failed: %v", c.convID, err)
	} else {
		c.history = append(c.history, tutor.Turn{Text: text}, tutor.Turn{FromTutor: true, Text: reply.Text})
		if n := len(c.history); n > historyTurns {
			c.history = c.history[n-historyTurns:]
		}
	}
	b.sendMessage(chatID, reply.Text)
}

func (b *Bot) sendMessage(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

func (b *Bot) sendWithKeyboard(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}

func (b *Bot) editMessage(chatID int64, messageID int, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	var edit tgbotapi.EditMessageTextConfig
	if kb != nil {
		edit = tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, *kb)
	} else {
		edit = tgbotapi.NewEditMessageText(chatID, messageID, text)
	}
	if _, err := b.api.Send(edit); err != nil {
		log.Printf("Error editing message: %v", err)
	}
}

func (b *Bot) answerCallback(id, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(id, text)); err != nil {
		log.Printf("Error sending callback response: %v", err)
	}
}
