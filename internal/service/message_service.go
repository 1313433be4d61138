package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"msgboard/internal/domain"
	"msgboard/internal/repository"
)

// ErrNotVerified indicates the author has not completed email verification yet.
var ErrNotVerified = errors.New("account is not verified")

// Listing is one resolved view over the message store: the matching messages,
// the page heading, and whether review controls are shown to the viewer.
type Listing struct {
	Title          string
	Messages       []domain.Message
	ReviewControls bool
}

// MessageUpdate carries the mutable message fields. Nil fields are left untouched.
type MessageUpdate struct {
	Title   *string
	Body    *string
	Color   *string
	Private *bool
}

// MessageService coordinates message operations and owns the visibility and
// authorization rules around them.
type MessageService interface {
	Create(ctx context.Context, author *domain.User, title, body, color string, private bool) (*domain.Message, error)
	Get(ctx context.Context, id string) (*domain.Message, error)
	PublicBoard(ctx context.Context) ([]domain.Message, error)
	ListForViewer(ctx context.Context, viewer *domain.User, owner string, wantPublic, wantPrivate bool) (*Listing, error)
	Update(ctx context.Context, actor *domain.User, id string, upd MessageUpdate) (*domain.Message, error)
	Publish(ctx context.Context, actor *domain.User, id string) error
	Delete(ctx context.Context, actor *domain.User, id string) error
}

type messageService struct {
	messages repository.MessageRepository
}

func NewMessageService(messages repository.MessageRepository) MessageService {
	return &messageService{messages: messages}
}

func (s *messageService) Create(ctx context.Context, author *domain.User, title, body, color string, private bool) (*domain.Message, error) {
	if author == nil {
		return nil, domain.ErrForbidden
	}
	if !author.Valid {
		return nil, ErrNotVerified
	}

	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" || body == "" {
		return nil, domain.ValidationErrors{"Please fill all fields"}
	}

	msg := &domain.Message{
		ID:      uuid.NewString(),
		Title:   title,
		Author:  author.Name,
		Body:    body,
		Color:   color,
		Private: private,
		Created: time.Now().UTC(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *messageService) Get(ctx context.Context, id string) (*domain.Message, error) {
	return s.messages.Get(ctx, id)
}

// PublicBoard returns every reviewed public message, newest first.
func (s *messageService) PublicBoard(ctx context.Context) ([]domain.Message, error) {
	return s.messages.List(ctx, repository.MessageFilter{
		Private:  boolPtr(false),
		Reviewed: boolPtr(true),
	})
}

// ListForViewer resolves a per-user collection view. Only the owner may see
// their own collection; for the administrator viewing their own name the two
// flags switch into moderation mode over the system-wide public queue.
func (s *messageService) ListForViewer(ctx context.Context, viewer *domain.User, owner string, wantPublic, wantPrivate bool) (*Listing, error) {
	if viewer == nil || viewer.Name != owner {
		return nil, domain.ErrForbidden
	}

	if viewer.IsAdmin() {
		switch {
		case wantPublic && wantPrivate:
			msgs, err := s.messages.List(ctx, repository.MessageFilter{
				Private:  boolPtr(false),
				Reviewed: boolPtr(true),
			})
			if err != nil {
				return nil, err
			}
			return &Listing{Title: "ALL PUBLISHED PUBLIC MESSAGES", Messages: msgs}, nil
		case wantPrivate:
			// falls through to the default per-user private view
		default:
			msgs, err := s.messages.List(ctx, repository.MessageFilter{
				Private:  boolPtr(false),
				Reviewed: boolPtr(false),
			})
			if err != nil {
				return nil, err
			}
			return &Listing{Title: "UNPUBLISHED PUBLIC MESSAGES", Messages: msgs, ReviewControls: true}, nil
		}
	}

	switch {
	case wantPublic && wantPrivate:
		msgs, err := s.messages.List(ctx, repository.MessageFilter{Author: viewer.Name})
		if err != nil {
			return nil, err
		}
		return &Listing{Title: "ALL YOUR MESSAGES", Messages: msgs}, nil
	case wantPrivate:
		msgs, err := s.messages.List(ctx, repository.MessageFilter{
			Author:  viewer.Name,
			Private: boolPtr(true),
		})
		if err != nil {
			return nil, err
		}
		return &Listing{Title: "YOUR PRIVATE MESSAGES", Messages: msgs}, nil
	default:
		msgs, err := s.messages.List(ctx, repository.MessageFilter{
			Author:  viewer.Name,
			Private: boolPtr(false),
		})
		if err != nil {
			return nil, err
		}
		return &Listing{Title: "YOUR PUBLIC MESSAGES", Messages: msgs}, nil
	}
}

func (s *messageService) Update(ctx context.Context, actor *domain.User, id string, upd MessageUpdate) (*domain.Message, error) {
	msg, err := s.messages.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwnerOrAdmin(actor, msg.Author); err != nil {
		return nil, err
	}

	if upd.Title != nil {
		msg.Title = strings.TrimSpace(*upd.Title)
	}
	if upd.Body != nil {
		msg.Body = strings.TrimSpace(*upd.Body)
	}
	if upd.Color != nil {
		msg.Color = *upd.Color
	}
	if upd.Private != nil {
		msg.Private = *upd.Private
	}
	if msg.Title == "" || msg.Body == "" {
		return nil, domain.ValidationErrors{"Please fill all fields"}
	}

	if err := s.messages.Update(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// Publish marks a public message as reviewed. Administrator only.
func (s *messageService) Publish(ctx context.Context, actor *domain.User, id string) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	return s.messages.SetReviewed(ctx, id)
}

func (s *messageService) Delete(ctx context.Context, actor *domain.User, id string) error {
	msg, err := s.messages.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwnerOrAdmin(actor, msg.Author); err != nil {
		return err
	}
	return s.messages.Delete(ctx, id)
}

func requireOwnerOrAdmin(actor *domain.User, owner string) error {
	if actor == nil {
		return domain.ErrForbidden
	}
	if actor.Name != owner && !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}

func boolPtr(b bool) *bool { return &b }
