package moderation

import "context"

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=repository_mock.go --case=underscore --with-expecter
type Repository interface {
	Save(ctx context.Context, event *Event) error
	FindByType(ctx context.Context, contentType ContentType) ([]Event, error)
	FindAll(ctx context.Context) ([]Event, error)
	DeleteAll(ctx context.Context) error
	// TrimToCap evicts the oldest events beyond maxEvents. Eviction is the
	// store's responsibility; the scoring engine never mutates history.
	TrimToCap(ctx context.Context, maxEvents int) error
}
