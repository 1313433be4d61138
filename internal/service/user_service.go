package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"msgboard/internal/domain"
	"msgboard/internal/repository"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	// It never distinguishes an unknown email from a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidCode indicates a verification code does not match the stored one.
	ErrInvalidCode = errors.New("invalid verification code")
)

// RFC2822-style address grammar, as loose as the registration form needs.
var emailPattern = regexp.MustCompile(`^[a-z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+(?:\.[a-z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+)*@(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\.)+[a-z0-9](?:[a-z0-9-]*[a-z0-9])?$`)

// Mailer delivers a single outbound mail.
type Mailer interface {
	Send(to, subject, body string) error
}

// RegisterForm carries the raw registration fields as submitted.
type RegisterForm struct {
	Name     string
	Email    string
	Password string
	Confirm  string
}

// UserService describes account lifecycle operations.
type UserService interface {
	Register(ctx context.Context, form RegisterForm) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	Verify(ctx context.Context, user *domain.User, code string) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByCode(ctx context.Context, code string) (*domain.User, error)
}

type userService struct {
	users      repository.UserRepository
	mailer     Mailer
	baseURL    string
	adminName  string
	bcryptCost int
}

func NewUserService(users repository.UserRepository, mailer Mailer, baseURL, adminName string, bcryptCost int) UserService {
	if bcryptCost <= 0 {
		bcryptCost = 10
	}
	return &userService{
		users:      users,
		mailer:     mailer,
		baseURL:    strings.TrimRight(baseURL, "/"),
		adminName:  strings.TrimSpace(adminName),
		bcryptCost: bcryptCost,
	}
}

// Register validates the form, creates the unverified account and sends the
// verification mail. Validation failures come back as domain.ValidationErrors
// with every collected message; nothing is written in that case.
func (s *userService) Register(ctx context.Context, form RegisterForm) (*domain.User, error) {
	name := strings.TrimSpace(form.Name)
	email := strings.ToLower(strings.TrimSpace(form.Email))

	var verrs domain.ValidationErrors
	if name == "" || email == "" || form.Password == "" || form.Confirm == "" {
		verrs = append(verrs, "Please fill in all fields")
	}
	if email != "" && !emailPattern.MatchString(email) {
		verrs = append(verrs, "Please enter a valid email.")
	}
	if form.Password != form.Confirm {
		verrs = append(verrs, "Passwords do not match")
	}
	if len(form.Password) < 6 {
		verrs = append(verrs, "Password should be at least 6 characters")
	}
	if name != "" {
		if _, err := s.users.GetByName(ctx, name); err == nil {
			verrs = append(verrs, "Username taken, please try another one.")
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}
	if email != "" {
		if _, err := s.users.GetByEmail(ctx, email); err == nil {
			verrs = append(verrs, "Email is already registered")
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}
	if len(verrs) > 0 {
		return nil, verrs
	}

	code, err := newVerificationCode()
	if err != nil {
		return nil, fmt.Errorf("generate verification code: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(form.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := domain.RoleStandard
	if s.adminName != "" && name == s.adminName {
		role = domain.RoleAdministrator
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Code:         code,
		Valid:        false,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	link := fmt.Sprintf("%s/users/login?code=%s", s.baseURL, url.QueryEscape(code))
	body := fmt.Sprintf("Please verify your email by following the given link: %s", link)
	if err := s.mailer.Send(email, "Welcome to Message-Board", body); err != nil {
		return nil, fmt.Errorf("send verification mail: %w", err)
	}

	return user, nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Verify flips the user's valid flag when the code matches the stored one.
// Calling it on an already valid user is a no-op.
func (s *userService) Verify(ctx context.Context, user *domain.User, code string) error {
	if user.Valid {
		return nil
	}
	if code == "" || code != user.Code {
		return ErrInvalidCode
	}
	if err := s.users.SetValid(ctx, user.ID); err != nil {
		return err
	}
	user.Valid = true
	return nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *userService) GetByCode(ctx context.Context, code string) (*domain.User, error) {
	return s.users.GetByCode(ctx, code)
}

func newVerificationCode() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
