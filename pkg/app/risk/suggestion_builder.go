package risk

import (
	"fmt"
	"strings"

	"github.com/promptgauge/promptgauge/pkg/domain/assessment"
)

const maxBaseSuggestions = 4

// SuggestionBuilder turns risky terms and the best matching successful
// prompt into short textual guidance, capped at four entries.
type SuggestionBuilder struct{}

func NewSuggestionBuilder() *SuggestionBuilder {
	return &SuggestionBuilder{}
}

func (b *SuggestionBuilder) Build(riskyWords []string, similarSuccessful []assessment.SimilarPrompt) []string {
	var suggestions []string

	if len(riskyWords) > 0 {
		suggestions = append(suggestions, fmt.Sprintf(
			"Consider removing or replacing: %s", strings.Join(riskyWords, ", "),
		))
	}
	if len(similarSuccessful) > 0 {
		suggestions = append(suggestions, fmt.Sprintf(
			"A similar prompt succeeded before: \"%s\"", similarSuccessful[0].Event.Prompt,
		))
	}
	suggestions = append(suggestions,
		"Try using more generic or descriptive terms",
		"Avoid specific descriptions of people or sensitive topics",
	)

	if len(suggestions) > maxBaseSuggestions {
		suggestions = suggestions[:maxBaseSuggestions]
	}
	return suggestions
}
