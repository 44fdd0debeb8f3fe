package risk

import (
	"sort"
	"strings"

	"github.com/promptgauge/promptgauge/pkg/domain/assessment"
	"github.com/promptgauge/promptgauge/pkg/domain/moderation"
)

const (
	DefaultSimilarityThreshold = 0.2
	maxSimilarPrompts          = 5
	minTokenLength             = 3
)

// Matcher ranks history entries by lexical similarity to a candidate prompt.
type Matcher struct {
	threshold float64
}

func NewMatcher(threshold float64) *Matcher {
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	return &Matcher{threshold: threshold}
}

// Similarity returns the Jaccard similarity of the two prompts' token sets.
// Prompts are lower-cased, split on whitespace, and tokens shorter than
// three characters are discarded. An empty token set yields 0.
func (m *Matcher) Similarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for token := range setA {
		if _, ok := setB[token]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection

	return float64(intersection) / float64(union)
}

// FindSimilar splits history entries of the given content type into
// moderated and successful sets, each ordered by descending similarity and
// truncated to the top five. Entries below the threshold are dropped.
func (m *Matcher) FindSimilar(
	prompt string,
	contentType moderation.ContentType,
	history []moderation.Event,
) (moderated, successful []assessment.SimilarPrompt) {
	for _, event := range history {
		if event.Type != contentType {
			continue
		}
		similarity := m.Similarity(prompt, event.Prompt)
		if similarity < m.threshold {
			continue
		}
		similar := assessment.SimilarPrompt{Event: event, Similarity: similarity}
		if event.Moderated {
			moderated = append(moderated, similar)
		} else {
			successful = append(successful, similar)
		}
	}

	sortBySimilarity(moderated)
	sortBySimilarity(successful)

	if len(moderated) > maxSimilarPrompts {
		moderated = moderated[:maxSimilarPrompts]
	}
	if len(successful) > maxSimilarPrompts {
		successful = successful[:maxSimilarPrompts]
	}
	return moderated, successful
}

func sortBySimilarity(prompts []assessment.SimilarPrompt) {
	sort.SliceStable(prompts, func(i, j int) bool {
		return prompts[i].Similarity > prompts[j].Similarity
	})
}

func tokenSet(prompt string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range strings.Fields(strings.ToLower(prompt)) {
		if len(token) < minTokenLength {
			continue
		}
		set[token] = struct{}{}
	}
	return set
}

func tokens(prompt string) []string {
	var out []string
	for _, token := range strings.Fields(strings.ToLower(prompt)) {
		if len(token) < minTokenLength {
			continue
		}
		out = append(out, token)
	}
	return out
}
