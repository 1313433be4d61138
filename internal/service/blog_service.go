package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"msgboard/internal/domain"
	"msgboard/internal/repository"
)

// BlogService coordinates blog entries and their comments.
type BlogService interface {
	Create(ctx context.Context, author *domain.User, title, body string) (*domain.Blog, error)
	Get(ctx context.Context, id string) (*domain.Blog, error)
	List(ctx context.Context) ([]domain.Blog, error)
	Update(ctx context.Context, actor *domain.User, id string, title, body *string) (*domain.Blog, error)
	Delete(ctx context.Context, actor *domain.User, id string) error
	AddComment(ctx context.Context, actor *domain.User, blogID, body string) (*domain.Comment, error)
	ClearComments(ctx context.Context, actor *domain.User, blogID string) error
	RemoveComment(ctx context.Context, actor *domain.User, blogID, commentID string) error
}

type blogService struct {
	blogs repository.BlogRepository
}

func NewBlogService(blogs repository.BlogRepository) BlogService {
	return &blogService{blogs: blogs}
}

func (s *blogService) Create(ctx context.Context, author *domain.User, title, body string) (*domain.Blog, error) {
	if author == nil {
		return nil, domain.ErrForbidden
	}

	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" || body == "" {
		return nil, domain.ValidationErrors{"Please fill all fields"}
	}

	blog := &domain.Blog{
		ID:      uuid.NewString(),
		Title:   title,
		Author:  author.Name,
		Body:    body,
		Created: time.Now().UTC(),
	}
	if err := s.blogs.Create(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

func (s *blogService) Get(ctx context.Context, id string) (*domain.Blog, error) {
	return s.blogs.Get(ctx, id)
}

func (s *blogService) List(ctx context.Context) ([]domain.Blog, error) {
	return s.blogs.List(ctx)
}

// Update changes title and/or body. Comments are never touched here.
func (s *blogService) Update(ctx context.Context, actor *domain.User, id string, title, body *string) (*domain.Blog, error) {
	blog, err := s.blogs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwnerOrAdmin(actor, blog.Author); err != nil {
		return nil, err
	}

	if title != nil {
		blog.Title = strings.TrimSpace(*title)
	}
	if body != nil {
		blog.Body = strings.TrimSpace(*body)
	}
	if blog.Title == "" || blog.Body == "" {
		return nil, domain.ValidationErrors{"Please fill all fields"}
	}

	if err := s.blogs.Update(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

func (s *blogService) Delete(ctx context.Context, actor *domain.User, id string) error {
	blog, err := s.blogs.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwnerOrAdmin(actor, blog.Author); err != nil {
		return err
	}
	return s.blogs.Delete(ctx, id)
}

func (s *blogService) AddComment(ctx context.Context, actor *domain.User, blogID, body string) (*domain.Comment, error) {
	if actor == nil {
		return nil, domain.ErrForbidden
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, domain.ValidationErrors{"Comments can not be empty!"}
	}

	if _, err := s.blogs.Get(ctx, blogID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		ID:      uuid.NewString(),
		BlogID:  blogID,
		Body:    body,
		Created: time.Now().UTC(),
	}
	if err := s.blogs.AddComment(ctx, blogID, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *blogService) ClearComments(ctx context.Context, actor *domain.User, blogID string) error {
	blog, err := s.blogs.Get(ctx, blogID)
	if err != nil {
		return err
	}
	if err := requireOwnerOrAdmin(actor, blog.Author); err != nil {
		return err
	}
	return s.blogs.ClearComments(ctx, blogID)
}

func (s *blogService) RemoveComment(ctx context.Context, actor *domain.User, blogID, commentID string) error {
	blog, err := s.blogs.Get(ctx, blogID)
	if err != nil {
		return err
	}
	if err := requireOwnerOrAdmin(actor, blog.Author); err != nil {
		return err
	}
	return s.blogs.RemoveComment(ctx, blogID, commentID)
}
