package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"msgboard/internal/domain"
	"msgboard/internal/repository"
)

const createBlogsTables = `
CREATE TABLE IF NOT EXISTS blogs (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	author TEXT NOT NULL,
	body TEXT NOT NULL,
	created DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS blog_comments (
	id TEXT PRIMARY KEY,
	blog_id TEXT NOT NULL REFERENCES blogs(id) ON DELETE CASCADE,
	body TEXT NOT NULL,
	created DATETIME NOT NULL
);
`

type BlogRepository struct {
	db *sql.DB
}

func NewBlogRepository(db *sql.DB) repository.BlogRepository {
	return &BlogRepository{db: db}
}

func (r *BlogRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createBlogsTables); err != nil {
		return fmt.Errorf("create blog tables: %w", err)
	}
	return nil
}

func (r *BlogRepository) Create(ctx context.Context, blog *domain.Blog) error {
	if blog.Created.IsZero() {
		blog.Created = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO blogs (id, title, author, body, created)
VALUES (?, ?, ?, ?, ?)`,
		blog.ID,
		blog.Title,
		blog.Author,
		blog.Body,
		blog.Created,
	)
	if err != nil {
		return fmt.Errorf("insert blog: %w", err)
	}
	return nil
}

func (r *BlogRepository) Get(ctx context.Context, id string) (*domain.Blog, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, title, author, body, created
FROM blogs
WHERE id = ?`,
		id,
	)

	var blog domain.Blog
	if err := row.Scan(&blog.ID, &blog.Title, &blog.Author, &blog.Body, &blog.Created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan blog: %w", err)
	}

	comments, err := r.listComments(ctx, blog.ID)
	if err != nil {
		return nil, err
	}
	blog.Comments = comments
	return &blog, nil
}

func (r *BlogRepository) List(ctx context.Context) ([]domain.Blog, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, author, body, created
FROM blogs
ORDER BY rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	defer rows.Close()

	var blogs []domain.Blog
	for rows.Next() {
		var blog domain.Blog
		if err := rows.Scan(&blog.ID, &blog.Title, &blog.Author, &blog.Body, &blog.Created); err != nil {
			return nil, fmt.Errorf("scan blog: %w", err)
		}
		blogs = append(blogs, blog)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blogs: %w", err)
	}

	for i := range blogs {
		comments, err := r.listComments(ctx, blogs[i].ID)
		if err != nil {
			return nil, err
		}
		blogs[i].Comments = comments
	}
	return blogs, nil
}

func (r *BlogRepository) Update(ctx context.Context, blog *domain.Blog) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE blogs
SET title = ?, body = ?
WHERE id = ?`,
		blog.Title,
		blog.Body,
		blog.ID,
	)
	if err != nil {
		return fmt.Errorf("update blog: %w", err)
	}
	return requireRow(res)
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	return requireRow(res)
}

func (r *BlogRepository) AddComment(ctx context.Context, blogID string, comment *domain.Comment) error {
	if comment.Created.IsZero() {
		comment.Created = time.Now().UTC()
	}
	comment.BlogID = blogID

	_, err := r.db.ExecContext(ctx, `
INSERT INTO blog_comments (id, blog_id, body, created)
VALUES (?, ?, ?, ?)`,
		comment.ID,
		comment.BlogID,
		comment.Body,
		comment.Created,
	)
	if err != nil {
		return fmt.Errorf("insert blog comment: %w", err)
	}
	return nil
}

func (r *BlogRepository) ClearComments(ctx context.Context, blogID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM blog_comments WHERE blog_id = ?`, blogID); err != nil {
		return fmt.Errorf("clear blog comments: %w", err)
	}
	return nil
}

func (r *BlogRepository) RemoveComment(ctx context.Context, blogID, commentID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blog_comments WHERE blog_id = ? AND id = ?`, blogID, commentID)
	if err != nil {
		return fmt.Errorf("remove blog comment: %w", err)
	}
	return requireRow(res)
}

func (r *BlogRepository) listComments(ctx context.Context, blogID string) ([]domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, blog_id, body, created
FROM blog_comments
WHERE blog_id = ?
ORDER BY rowid ASC`,
		blogID,
	)
	if err != nil {
		return nil, fmt.Errorf("list blog comments: %w", err)
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.BlogID, &c.Body, &c.Created); err != nil {
			return nil, fmt.Errorf("scan blog comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate blog comments: %w", err)
	}
	return comments, nil
}
