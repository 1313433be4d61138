package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"msgboard/internal/domain"
	"msgboard/internal/repository"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	code TEXT NOT NULL DEFAULT '',
	valid INTEGER NOT NULL DEFAULT 0,
	role TEXT NOT NULL DEFAULT 'standard',
	created_at DATETIME NOT NULL
);
`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if user.Role == "" {
		user.Role = domain.RoleStandard
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO users (name, email, password_hash, code, valid, role, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Code,
		user.Valid,
		string(user.Role),
		user.CreatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return 0, fmt.Errorf("user already exists: %w", err)
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("user last insert id: %w", err)
	}
	user.ID = id
	return id, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getBy(ctx, "id = ?", id)
}

func (r *UserRepository) GetByName(ctx context.Context, name string) (*domain.User, error) {
	return r.getBy(ctx, "name = ?", name)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, "email = lower(?)", email)
}

func (r *UserRepository) GetByCode(ctx context.Context, code string) (*domain.User, error) {
	if code == "" {
		return nil, domain.ErrNotFound
	}
	return r.getBy(ctx, "code = ?", code)
}

func (r *UserRepository) getBy(ctx context.Context, cond string, arg any) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, email, password_hash, code, valid, role, created_at
FROM users
WHERE `+cond,
		arg,
	)

	var (
		user domain.User
		role string
	)
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Code,
		&user.Valid,
		&role,
		&user.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	user.Role = domain.Role(role)
	return &user, nil
}

func (r *UserRepository) SetValid(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET valid = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark user valid: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark user valid: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetRole(ctx context.Context, name string, role domain.Role) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET role = ? WHERE name = ?`, string(role), name)
	if err != nil {
		return fmt.Errorf("set user role: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set user role: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
