package repository

import (
	"context"

	"msgboard/internal/domain"
)

// BlogRepository defines persistence operations for Blog entities and their comments.
type BlogRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, blog *domain.Blog) error
	Get(ctx context.Context, id string) (*domain.Blog, error)
	List(ctx context.Context) ([]domain.Blog, error)
	Update(ctx context.Context, blog *domain.Blog) error
	Delete(ctx context.Context, id string) error
	AddComment(ctx context.Context, blogID string, comment *domain.Comment) error
	ClearComments(ctx context.Context, blogID string) error
	RemoveComment(ctx context.Context, blogID, commentID string) error
}
