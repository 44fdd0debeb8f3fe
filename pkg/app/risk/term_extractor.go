package risk

import (
	"sort"

	"github.com/promptgauge/promptgauge/pkg/domain/moderation"
)

const (
	maxRiskyTerms    = 5
	minTermEvidence  = 2
	minTermRiskRatio = 0.6
)

// TermExtractor mines history for terms disproportionately present in
// moderated prompts relative to successful ones.
type TermExtractor struct{}

func NewTermExtractor() *TermExtractor {
	return &TermExtractor{}
}

// Extract returns up to five terms from the candidate prompt believed to
// correlate with moderation. A term needs at least two occurrences across
// history and a moderated ratio above 0.6 to qualify.
func (e *TermExtractor) Extract(prompt string, history []moderation.Event) []string {
	moderatedFreq := make(map[string]int)
	successfulFreq := make(map[string]int)
	hasModerated := false

	for _, event := range history {
		freq := successfulFreq
		if event.Moderated {
			freq = moderatedFreq
			hasModerated = true
		}
		for _, token := range tokens(event.Prompt) {
			freq[token]++
		}
	}

	if !hasModerated {
		return nil
	}

	type scoredTerm struct {
		term string
		risk float64
	}
	var candidates []scoredTerm

	for term := range tokenSet(prompt) {
		moderatedCount := moderatedFreq[term]
		successfulCount := successfulFreq[term]
		total := moderatedCount + successfulCount
		if total < minTermEvidence || moderatedCount <= successfulCount {
			continue
		}
		risk := float64(moderatedCount) / float64(total)
		if risk <= minTermRiskRatio {
			continue
		}
		candidates = append(candidates, scoredTerm{term: term, risk: risk})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].risk != candidates[j].risk {
			return candidates[i].risk > candidates[j].risk
		}
		return candidates[i].term < candidates[j].term
	})

	if len(candidates) > maxRiskyTerms {
		candidates = candidates[:maxRiskyTerms]
	}

	terms := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		terms = append(terms, candidate.term)
	}
	return terms
}
