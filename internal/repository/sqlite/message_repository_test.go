package sqlite

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"msgboard/internal/domain"
	"msgboard/internal/repository"
)

func newTestMessageRepo(t *testing.T) repository.MessageRepository {
	t.Helper()

	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewMessageRepository(db)
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func insertMessage(t *testing.T, repo repository.MessageRepository, title, author string, private, reviewed bool) *domain.Message {
	t.Helper()
	msg := &domain.Message{
		ID:       uuid.NewString(),
		Title:    title,
		Author:   author,
		Body:     "body of " + title,
		Private:  private,
		Reviewed: reviewed,
	}
	require.NoError(t, repo.Create(context.Background(), msg))
	return msg
}

func TestMessageRepository_CreateAndGet(t *testing.T) {
	repo := newTestMessageRepo(t)

	msg := insertMessage(t, repo, "hello", "bob", false, false)
	assert.False(t, msg.Created.IsZero())

	got, err := repo.Get(context.Background(), msg.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Title)
	assert.Equal(t, "bob", got.Author)
	assert.False(t, got.Private)
	assert.False(t, got.Reviewed)
}

func TestMessageRepository_GetMissing(t *testing.T) {
	repo := newTestMessageRepo(t)

	_, err := repo.Get(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMessageRepository_ListFilters(t *testing.T) {
	repo := newTestMessageRepo(t)
	ctx := context.Background()

	insertMessage(t, repo, "pub-reviewed", "bob", false, true)
	insertMessage(t, repo, "pub-pending", "bob", false, false)
	insertMessage(t, repo, "priv", "bob", true, false)
	insertMessage(t, repo, "other", "carol", false, true)

	f := func(b bool) *bool { return &b }

	byAuthor, err := repo.List(ctx, repository.MessageFilter{Author: "bob"})
	require.NoError(t, err)
	assert.Len(t, byAuthor, 3)

	board, err := repo.List(ctx, repository.MessageFilter{Private: f(false), Reviewed: f(true)})
	require.NoError(t, err)
	assert.Len(t, board, 2)

	pending, err := repo.List(ctx, repository.MessageFilter{Author: "bob", Private: f(false), Reviewed: f(false)})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "pub-pending", pending[0].Title)
}

func TestMessageRepository_ListNewestFirst(t *testing.T) {
	repo := newTestMessageRepo(t)

	insertMessage(t, repo, "first", "bob", false, false)
	insertMessage(t, repo, "second", "bob", false, false)
	insertMessage(t, repo, "third", "bob", false, false)

	msgs, err := repo.List(context.Background(), repository.MessageFilter{})
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "third", msgs[0].Title)
	assert.Equal(t, "second", msgs[1].Title)
	assert.Equal(t, "first", msgs[2].Title)
}

func TestMessageRepository_SetReviewed(t *testing.T) {
	repo := newTestMessageRepo(t)
	msg := insertMessage(t, repo, "pending", "bob", false, false)

	require.NoError(t, repo.SetReviewed(context.Background(), msg.ID))

	got, err := repo.Get(context.Background(), msg.ID)
	require.NoError(t, err)
	assert.True(t, got.Reviewed)

	assert.ErrorIs(t, repo.SetReviewed(context.Background(), "no-such-id"), domain.ErrNotFound)
}

func TestMessageRepository_UpdateAndDelete(t *testing.T) {
	repo := newTestMessageRepo(t)
	ctx := context.Background()
	msg := insertMessage(t, repo, "before", "bob", false, false)

	msg.Title = "after"
	msg.Private = true
	require.NoError(t, repo.Update(ctx, msg))

	got, err := repo.Get(ctx, msg.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Title)
	assert.True(t, got.Private)

	require.NoError(t, repo.Delete(ctx, msg.ID))
	_, err = repo.Get(ctx, msg.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, msg.ID), domain.ErrNotFound)
}
