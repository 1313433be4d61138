package repository

import (
	"context"

	"msgboard/internal/domain"
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByName(ctx context.Context, name string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByCode(ctx context.Context, code string) (*domain.User, error)
	SetValid(ctx context.Context, id int64) error
	SetRole(ctx context.Context, name string, role domain.Role) error
}
