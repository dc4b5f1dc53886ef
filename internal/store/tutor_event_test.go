package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTutorExchanges(t *testing.T) {
	s := openTestStore(t)
	repo := s.TutorRepo()
	ctx := context.Background()

	lesson := 2
	require.NoError(t, repo.AppendExchange(ctx, TutorExchangeData{
		Channel: "cli", Question: "What is a verb?", Reply: "A word of action.", Demo: true,
	}))
	require.NoError(t, repo.AppendExchange(ctx, TutorExchangeData{
		Channel: "http", Lesson: &lesson, Question: "What does puella mean?",
		Reply: "Apologies", Fallback: true, LatencyMs: 12, ErrorMessage: "upstream down",
	}))

	got, err := repo.RecentExchanges(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, got, 2)

	newest := got[0]
	assert.Equal(t, "http", newest.Channel)
	require.NotNil(t, newest.Lesson)
	assert.Equal(t, 2, *newest.Lesson)
	assert.True(t, newest.Fallback)
	assert.Equal(t, "upstream down", newest.ErrorMessage)

	oldest := got[1]
	assert.Nil(t, oldest.Lesson)
	assert.True(t, oldest.Demo)
	assert.Equal(t, "What is a verb?", oldest.Question)
}

func TestTutorExchangeSequenceAfterLLMEvent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.EventRepo().AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "tutor", Success: true}))
	require.NoError(t, s.TutorRepo().AppendExchange(ctx, TutorExchangeData{Channel: "tui", Question: "q", Reply: "r"}))

	events, err := s.EventRepo().QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	exchanges, err := s.TutorRepo().RecentExchanges(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)

	require.Len(t, events, 1)
	require.Len(t, exchanges, 1)
	assert.Less(t, events[0].Sequence, exchanges[0].Sequence)
}
