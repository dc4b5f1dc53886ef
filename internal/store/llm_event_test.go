package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedLLMEvents(t *testing.T, repo EventRepo) {
	t.Helper()
	ctx := context.Background()
	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-1.5-flash", Purpose: "tutor", InputTokens: 100, OutputTokens: 40, LatencyMs: 300, Success: true, RequestBody: "[user]\nsalve", ResponseBody: `{"reply":"salve!"}`},
		{Provider: "gemini", Model: "gemini-1.5-flash", Purpose: "tutor", InputTokens: 50, OutputTokens: 20, LatencyMs: 100, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "bot-tutor", InputTokens: 10, LatencyMs: 50, Success: false, ErrorMessage: "rate limited"},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}
}

func TestQueryLLMEvents_NewestFirst(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedLLMEvents(t, repo)

	events, err := repo.QueryLLMEvents(context.Background(), QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, "gpt-4o-mini", events[0].Model)
	assert.False(t, events[0].Success)
	assert.Equal(t, "rate limited", events[0].ErrorMessage)
	assert.Greater(t, events[0].Sequence, events[1].Sequence)
	assert.Greater(t, events[1].Sequence, events[2].Sequence)
	assert.False(t, events[2].Timestamp.IsZero())
}

func TestQueryLLMEvents_LimitAndRange(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedLLMEvents(t, repo)
	ctx := context.Background()

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, events, 2)

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	oldest := all[len(all)-1].Sequence

	after, err := repo.QueryLLMEvents(ctx, QueryOpts{After: oldest})
	require.NoError(t, err)
	assert.Len(t, after, 2)

	before, err := repo.QueryLLMEvents(ctx, QueryOpts{Before: oldest + 1})
	require.NoError(t, err)
	assert.Len(t, before, 1)
}

func TestGetLLMEvent(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedLLMEvents(t, repo)
	ctx := context.Background()

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	first := all[len(all)-1]

	e, err := repo.GetLLMEvent(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, "[user]\nsalve", e.RequestBody)
	assert.Equal(t, `{"reply":"salve!"}`, e.ResponseBody)
	assert.Equal(t, 100, e.InputTokens)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLLMUsage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedLLMEvents(t, repo)
	ctx := context.Background()

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, PurposeUsage{Purpose: "bot-tutor", Calls: 1, InputTokens: 10, OutputTokens: 0, AvgLatencyMs: 50}, byPurpose[0])
	assert.Equal(t, PurposeUsage{Purpose: "tutor", Calls: 2, InputTokens: 150, OutputTokens: 60, AvgLatencyMs: 200}, byPurpose[1])

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, "gemini-1.5-flash", byModel[0].Model)
	assert.Equal(t, 2, byModel[0].Calls)
	assert.Equal(t, 60, byModel[0].OutputTokens)
}

func TestLLMUsage_Empty(t *testing.T) {
	s := openTestStore(t)
	stats, err := s.EventRepo().LLMUsageByPurpose(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stats)
}
