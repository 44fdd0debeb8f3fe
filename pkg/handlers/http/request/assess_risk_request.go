package request

import (
	"fmt"

	"github.com/promptgauge/promptgauge/pkg/domain/moderation"
)

type AssessRiskRequest struct {
	Prompt        string  `json:"prompt"`
	Type          string  `json:"type"`
	EstimatedCost float64 `json:"estimated_cost"`
	UseClassifier bool    `json:"use_classifier"`
}

func (r *AssessRiskRequest) Validate() error {
	if r.Prompt == "" {
		return fmt.Errorf("prompt is required")
	}
	if !moderation.ContentType(r.Type).Valid() {
		return fmt.Errorf("type must be '%s' or '%s'", moderation.ContentTypeImage, moderation.ContentTypeVideo)
	}
	if r.EstimatedCost < 0 {
		return fmt.Errorf("estimated_cost must not be negative")
	}
	return nil
}
