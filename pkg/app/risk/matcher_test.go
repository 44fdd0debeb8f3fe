package risk_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/promptgauge/promptgauge/pkg/app/risk"
	"github.com/promptgauge/promptgauge/pkg/domain/moderation"
)

func TestMatcher_Similarity(t *testing.T) {
	matcher := risk.NewMatcher(0)

	tests := []struct {
		name     string
		a        string
		b        string
		expected float64
	}{
		{"identical prompts", "sunset over the ocean", "sunset over the ocean", 1},
		{"no overlap", "sunset ocean waves", "robot city neon", 0},
		{"partial overlap", "sunset ocean", "sunset mountain", 1.0 / 3.0},
		{"case insensitive", "SUNSET Ocean", "sunset ocean", 1},
		{"short tokens discarded", "a an to sunset", "is of at sunset", 1},
		{"empty prompt", "", "sunset ocean", 0},
		{"both empty", "", "", 0},
		{"only short tokens", "a an to", "a an to", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, matcher.Similarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestMatcher_Similarity_Symmetric(t *testing.T) {
	matcher := risk.NewMatcher(0)

	pairs := [][2]string{
		{"sunset over the ocean", "ocean at sunset"},
		{"red dragon castle", "castle with dragon"},
		{"", "anything here"},
	}
	for _, pair := range pairs {
		assert.Equal(t, matcher.Similarity(pair[0], pair[1]), matcher.Similarity(pair[1], pair[0]))
	}
}

func TestMatcher_Similarity_Bounded(t *testing.T) {
	matcher := risk.NewMatcher(0)

	prompts := []string{"", "one", "sunset ocean", "sunset ocean waves crashing", "robot neon city"}
	for _, a := range prompts {
		for _, b := range prompts {
			s := matcher.Similarity(a, b)
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 1.0)
		}
	}
}

func TestMatcher_FindSimilar_SplitsAndFilters(t *testing.T) {
	matcher := risk.NewMatcher(0.2)

	history := []moderation.Event{
		{ID: "1", Type: moderation.ContentTypeImage, Prompt: "sunset over the ocean", Moderated: true, Cost: 0.1},
		{ID: "2", Type: moderation.ContentTypeImage, Prompt: "sunset over the mountains", Moderated: false},
		{ID: "3", Type: moderation.ContentTypeVideo, Prompt: "sunset over the ocean", Moderated: true, Cost: 0.1},
		{ID: "4", Type: moderation.ContentTypeImage, Prompt: "completely unrelated robot city", Moderated: true, Cost: 0.1},
	}

	moderated, successful := matcher.FindSimilar("sunset over the ocean", moderation.ContentTypeImage, history)

	assert.Len(t, moderated, 1)
	assert.Equal(t, "1", moderated[0].Event.ID)
	assert.InDelta(t, 1.0, moderated[0].Similarity, 1e-9)

	assert.Len(t, successful, 1)
	assert.Equal(t, "2", successful[0].Event.ID)
}

func TestMatcher_FindSimilar_TruncatesToTopFive(t *testing.T) {
	matcher := risk.NewMatcher(0.2)

	var history []moderation.Event
	for i := 0; i < 8; i++ {
		history = append(history, moderation.Event{
			ID:        fmt.Sprintf("event-%d", i),
			Type:      moderation.ContentTypeImage,
			Prompt:    "sunset over the ocean",
			Moderated: true,
			Cost:      0.1,
		})
	}

	moderated, successful := matcher.FindSimilar("sunset over the ocean", moderation.ContentTypeImage, history)

	assert.Len(t, moderated, 5)
	assert.Empty(t, successful)
}

func TestMatcher_FindSimilar_OrderedByDescendingSimilarity(t *testing.T) {
	matcher := risk.NewMatcher(0.1)

	history := []moderation.Event{
		{ID: "low", Type: moderation.ContentTypeImage, Prompt: "sunset beach palm trees waves", Moderated: true, Cost: 0.1},
		{ID: "high", Type: moderation.ContentTypeImage, Prompt: "sunset beach", Moderated: true, Cost: 0.1},
	}

	moderated, _ := matcher.FindSimilar("sunset beach", moderation.ContentTypeImage, history)

	assert.Len(t, moderated, 2)
	for i := 1; i < len(moderated); i++ {
		assert.GreaterOrEqual(t, moderated[i-1].Similarity, moderated[i].Similarity)
	}
	assert.Equal(t, "high", moderated[0].Event.ID)
}
