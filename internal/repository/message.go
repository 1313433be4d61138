package repository

import (
	"context"

	"msgboard/internal/domain"
)

// MessageFilter narrows a listing. Zero-value fields are not applied.
type MessageFilter struct {
	Author   string
	Private  *bool
	Reviewed *bool
}

// MessageRepository defines persistence operations for Message entities.
// List always returns newest-created-first.
type MessageRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, msg *domain.Message) error
	Get(ctx context.Context, id string) (*domain.Message, error)
	List(ctx context.Context, filter MessageFilter) ([]domain.Message, error)
	Update(ctx context.Context, msg *domain.Message) error
	SetReviewed(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
