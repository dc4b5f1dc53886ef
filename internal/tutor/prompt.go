package tutor

import (
	"fmt"
	"strings"

	"github.com/xamuil2/digitalludus/internal/catalog"
	"github.com/xamuil2/digitalludus/internal/llm"
)

// TutorName is the persona the chat front ends present.
const TutorName = "Magister Marcellus"

// FallbackMessage is shown in place of a reply when the tutor is unreachable.
const FallbackMessage = "Apologies, but I encountered an issue. Please try asking your question again."

const defaultContext = "General Latin learning"

const systemTemplate = `You are a helpful Latin tutor for DigitalLudus, an interactive Latin learning platform.

You are currently helping with %s.
Context: %s

Your role is to:
- Help students understand Latin grammar, vocabulary, and pronunciation
- Provide clear explanations of Latin concepts
- Give examples and practice suggestions
- Encourage students in their Latin learning journey
- Answer questions about Roman culture and history when relevant
- Keep responses concise but informative (2-3 sentences usually)
- Use simple language that beginner Latin students can understand

Respond with a JSON object whose "reply" field holds your answer.`

// replySchema is the structured output every provider is asked for.
var replySchema = &llm.Schema{
	Name:        "tutor-reply",
	Description: "The tutor's answer to the student's question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"reply": map[string]any{
				"type":        "string",
				"description": "Answer to the student, usually 2-3 sentences",
			},
		},
		"required":             []any{"reply"},
		"additionalProperties": false,
	},
}

// Greeting is the opening line of a tutor chat.
func Greeting(lesson *int) string {
	focus := "your Latin studies"
	if lesson != nil {
		focus = fmt.Sprintf("Lesson %d", *lesson)
	}
	return fmt.Sprintf("Salve! I'm %s, your Latin tutor. I'm here to help you with %s. "+
		"Feel free to ask me about vocabulary, grammar, translations, or Roman culture!", TutorName, focus)
}

// lessonLabel names the lesson for the prompt, using its title when the
// catalog knows it.
func lessonLabel(lessons LessonLookup, id *int) string {
	if id == nil {
		return "Lesson Unknown"
	}
	if lessons != nil {
		if l, err := lessons.LessonByID(*id); err == nil {
			label := fmt.Sprintf("Lesson %d: %s", l.ID, l.Title)
			if l.Subtitle != "" {
				label += " (" + l.Subtitle + ")"
			}
			return label
		}
	}
	return fmt.Sprintf("Lesson %d", *id)
}

func systemPrompt(lessons LessonLookup, q Question) string {
	ctx := strings.TrimSpace(q.Context)
	if ctx == "" {
		ctx = defaultContext
	}
	return fmt.Sprintf(systemTemplate, lessonLabel(lessons, q.Lesson), ctx)
}

func demoReply(q Question) string {
	lesson := "Unknown"
	if q.Lesson != nil {
		lesson = fmt.Sprintf("%d", *q.Lesson)
	}
	return fmt.Sprintf(`Hello! I'm your AI Latin tutor. No LLM provider is configured yet, so I'm running in demo mode.

You asked: "%s"

This is where I would provide personalized help with Lesson %s. To enable full functionality, please:

1. Get an API key for Gemini, OpenAI, Anthropic or OpenRouter
2. Export it, e.g. GEMINI_API_KEY=your_key_here (or set LUDUS_LLM_PROVIDER and its LUDUS_*_API_KEY)
3. Restart ludus

Once configured, I'll be able to help you with Latin grammar, vocabulary, translations, and cultural context!`, q.Message, lesson)
}

// ensure the catalog satisfies LessonLookup
var _ LessonLookup = (*catalog.Catalog)(nil)
