package assessment

import "github.com/promptgauge/promptgauge/pkg/domain/moderation"

// SimilarPrompt pairs a historical event with its lexical similarity to the
// candidate prompt. Produced fresh per assessment, never persisted.
type SimilarPrompt struct {
	Event      moderation.Event `json:"event"`
	Similarity float64          `json:"similarity"`
}

// TextModerationResult is the normalized verdict of the external classifier.
type TextModerationResult struct {
	Safe        bool     `json:"safe"`
	Confidence  float64  `json:"confidence"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
	Reasoning   string   `json:"reasoning"`
}

// RiskAssessment is the engine's sole output. RiskScore and Confidence are
// in [0,1]; higher risk means more likely to be moderated.
type RiskAssessment struct {
	RiskScore         float64               `json:"risk_score"`
	Confidence        float64               `json:"confidence"`
	SimilarModerated  []SimilarPrompt       `json:"similar_moderated"`
	SimilarSuccessful []SimilarPrompt       `json:"similar_successful"`
	RiskyWords        []string              `json:"risky_words"`
	Suggestions       []string              `json:"suggestions"`
	EstimatedWaste    float64               `json:"estimated_waste"`
	GrokAnalysis      *TextModerationResult `json:"grok_analysis,omitempty"`
}
