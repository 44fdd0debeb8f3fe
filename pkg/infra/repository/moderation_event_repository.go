package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/promptgauge/promptgauge/pkg/domain/moderation"
)

type moderationEventRepository struct {
	db *gorm.DB
}

func NewModerationEventRepository(db *gorm.DB) moderation.Repository {
	return &moderationEventRepository{
		db: db,
	}
}

func (r *moderationEventRepository) Save(ctx context.Context, event *moderation.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *moderationEventRepository) FindByType(ctx context.Context, contentType moderation.ContentType) ([]moderation.Event, error) {
	var events []moderation.Event
	err := r.db.WithContext(ctx).
		Where("type = ?", contentType).
		Order("created_at desc").
		Find(&events).Error
	return events, err
}

func (r *moderationEventRepository) FindAll(ctx context.Context) ([]moderation.Event, error) {
	var events []moderation.Event
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Find(&events).Error
	return events, err
}

func (r *moderationEventRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&moderation.Event{}).Error
}

func (r *moderationEventRepository) TrimToCap(ctx context.Context, maxEvents int) error {
	if maxEvents <= 0 {
		return nil
	}
	return r.db.WithContext(ctx).Exec(
		`DELETE FROM moderation_events
		 WHERE id NOT IN (
		     SELECT id FROM moderation_events ORDER BY created_at DESC LIMIT ?
		 )`, maxEvents,
	).Error
}
