package moderation

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type ContentType string

const (
	ContentTypeImage ContentType = "image"
	ContentTypeVideo ContentType = "video"
)

func (t ContentType) Valid() bool {
	return t == ContentTypeImage || t == ContentTypeVideo
}

// Metadata is stored as a JSONB column.
type Metadata map[string]interface{}

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *Metadata) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan metadata: expected []byte, got %T", value)
	}
	return json.Unmarshal(bytes, m)
}

// Event is one past generation attempt and its moderation outcome.
// Moderated events carry the generation cost plus the moderation surcharge.
type Event struct {
	ID             string      `json:"id" gorm:"primaryKey"`
	CreatedAt      time.Time   `json:"created_at" gorm:"index"`
	Type           ContentType `json:"type" gorm:"index"`
	Prompt         string      `json:"prompt"`
	InputImageHash string      `json:"input_image_hash,omitempty"`
	Moderated      bool        `json:"moderated"`
	Cost           float64     `json:"cost"`
	Error          string      `json:"error,omitempty"`
	Model          string      `json:"model,omitempty"`
	Metadata       Metadata    `json:"metadata,omitempty" gorm:"type:jsonb"`
}

func (Event) TableName() string {
	return "moderation_events"
}
