package request

import (
	"fmt"

	"github.com/promptgauge/promptgauge/pkg/domain/moderation"
)

type CreateEventRequest struct {
	Type             string                 `json:"type"`
	Prompt           string                 `json:"prompt"`
	Moderated        bool                   `json:"moderated"`
	Cost             float64                `json:"cost"`
	Error            string                 `json:"error,omitempty"`
	Model            string                 `json:"model,omitempty"`
	InputImageBase64 string                 `json:"input_image_base64,omitempty"`
	Metadata         map[string]interface{} `json:"metadata,omitempty"`
}

func (r *CreateEventRequest) Validate() error {
	if r.Prompt == "" {
		return fmt.Errorf("prompt is required")
	}
	if !moderation.ContentType(r.Type).Valid() {
		return fmt.Errorf("type must be '%s' or '%s'", moderation.ContentTypeImage, moderation.ContentTypeVideo)
	}
	if r.Cost < 0 {
		return fmt.Errorf("cost must not be negative")
	}
	if r.Moderated && r.Cost <= 0 {
		return fmt.Errorf("moderated events must have a positive cost")
	}
	return nil
}
