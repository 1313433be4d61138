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

const createMessagesTable = `
CREATE TABLE IF NOT EXISTS messages (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	author TEXT NOT NULL,
	body TEXT NOT NULL,
	color TEXT NOT NULL DEFAULT '',
	private INTEGER NOT NULL DEFAULT 0,
	reviewed INTEGER NOT NULL DEFAULT 0,
	created DATETIME NOT NULL
);
`

type MessageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) repository.MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createMessagesTable); err != nil {
		return fmt.Errorf("create messages table: %w", err)
	}
	return nil
}

func (r *MessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	if msg.Created.IsZero() {
		msg.Created = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
INSERT INTO messages (id, title, author, body, color, private, reviewed, created)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		msg.ID,
		msg.Title,
		msg.Author,
		msg.Body,
		msg.Color,
		msg.Private,
		msg.Reviewed,
		msg.Created,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (r *MessageRepository) Get(ctx context.Context, id string) (*domain.Message, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, title, author, body, color, private, reviewed, created
FROM messages
WHERE id = ?`,
		id,
	)

	var msg domain.Message
	if err := scanMessage(row.Scan, &msg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan message: %w", err)
	}
	return &msg, nil
}

// List returns messages matching the filter, newest inserted first.
func (r *MessageRepository) List(ctx context.Context, filter repository.MessageFilter) ([]domain.Message, error) {
	query := `
SELECT id, title, author, body, color, private, reviewed, created
FROM messages`

	var (
		conds []string
		args  []any
	)
	if filter.Author != "" {
		conds = append(conds, "author = ?")
		args = append(args, filter.Author)
	}
	if filter.Private != nil {
		conds = append(conds, "private = ?")
		args = append(args, *filter.Private)
	}
	if filter.Reviewed != nil {
		conds = append(conds, "reviewed = ?")
		args = append(args, *filter.Reviewed)
	}
	if len(conds) > 0 {
		query += "\nWHERE " + strings.Join(conds, " AND ")
	}
	query += "\nORDER BY rowid DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var msgs []domain.Message
	for rows.Next() {
		var msg domain.Message
		if err := scanMessage(rows.Scan, &msg); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msgs = append(msgs, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return msgs, nil
}

func (r *MessageRepository) Update(ctx context.Context, msg *domain.Message) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE messages
SET title = ?, body = ?, color = ?, private = ?, reviewed = ?
WHERE id = ?`,
		msg.Title,
		msg.Body,
		msg.Color,
		msg.Private,
		msg.Reviewed,
		msg.ID,
	)
	if err != nil {
		return fmt.Errorf("update message: %w", err)
	}
	return requireRow(res)
}

func (r *MessageRepository) SetReviewed(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE messages SET reviewed = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("mark message reviewed: %w", err)
	}
	return requireRow(res)
}

func (r *MessageRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return requireRow(res)
}

func scanMessage(scan func(dest ...any) error, msg *domain.Message) error {
	return scan(
		&msg.ID,
		&msg.Title,
		&msg.Author,
		&msg.Body,
		&msg.Color,
		&msg.Private,
		&msg.Reviewed,
		&msg.Created,
	)
}

func requireRow(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
