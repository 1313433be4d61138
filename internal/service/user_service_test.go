package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"msgboard/internal/domain"
	"msgboard/internal/repository"
	"msgboard/internal/repository/sqlite"
)

type captureMailer struct {
	to      string
	subject string
	body    string
	sent    int
}

func (m *captureMailer) Send(to, subject, body string) error {
	m.to = to
	m.subject = subject
	m.body = body
	m.sent++
	return nil
}

func newUserTestService(t *testing.T) (UserService, repository.UserRepository, *captureMailer) {
	t.Helper()

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	users := sqlite.NewUserRepository(db)
	require.NoError(t, users.Init(context.Background()))

	mailer := &captureMailer{}
	svc := NewUserService(users, mailer, "http://localhost:5000", "admin", bcrypt.MinCost)
	return svc, users, mailer
}

func validForm() RegisterForm {
	return RegisterForm{
		Name:     "bob",
		Email:    "bob@example.com",
		Password: "hunter22",
		Confirm:  "hunter22",
	}
}

func TestRegister_Success(t *testing.T) {
	svc, _, mailer := newUserTestService(t)

	user, err := svc.Register(context.Background(), validForm())
	require.NoError(t, err)

	assert.Equal(t, "bob", user.Name)
	assert.Equal(t, "bob@example.com", user.Email)
	assert.False(t, user.Valid)
	assert.Equal(t, domain.RoleStandard, user.Role)
	assert.Len(t, user.Code, 32)
	assert.NotEqual(t, "hunter22", user.PasswordHash)

	assert.Equal(t, 1, mailer.sent)
	assert.Equal(t, "bob@example.com", mailer.to)
	assert.Contains(t, mailer.body, "/users/login?code="+user.Code)
}

func TestRegister_PasswordMismatch(t *testing.T) {
	svc, users, _ := newUserTestService(t)

	form := validForm()
	form.Confirm = "different"

	_, err := svc.Register(context.Background(), form)
	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "Passwords do not match")

	_, err = users.GetByName(context.Background(), "bob")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegister_ShortPassword(t *testing.T) {
	svc, users, _ := newUserTestService(t)

	form := validForm()
	form.Password = "abc"
	form.Confirm = "abc"

	_, err := svc.Register(context.Background(), form)
	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "Password should be at least 6 characters")

	_, err = users.GetByName(context.Background(), "bob")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegister_MissingFields(t *testing.T) {
	svc, _, _ := newUserTestService(t)

	_, err := svc.Register(context.Background(), RegisterForm{})
	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "Please fill in all fields")
}

func TestRegister_InvalidEmail(t *testing.T) {
	svc, _, _ := newUserTestService(t)

	form := validForm()
	form.Email = "not-an-address"

	_, err := svc.Register(context.Background(), form)
	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "Please enter a valid email.")
}

func TestRegister_DuplicateEmailCaseInsensitive(t *testing.T) {
	svc, _, _ := newUserTestService(t)

	form := validForm()
	form.Email = "A@x.com"
	_, err := svc.Register(context.Background(), form)
	require.NoError(t, err)

	form.Name = "carol"
	form.Email = "a@X.com"
	_, err = svc.Register(context.Background(), form)
	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "Email is already registered")
}

func TestRegister_DuplicateName(t *testing.T) {
	svc, _, _ := newUserTestService(t)

	_, err := svc.Register(context.Background(), validForm())
	require.NoError(t, err)

	form := validForm()
	form.Email = "other@example.com"
	_, err = svc.Register(context.Background(), form)
	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "Username taken, please try another one.")
}

func TestRegister_AdminNameGetsAdministratorRole(t *testing.T) {
	svc, _, _ := newUserTestService(t)

	form := validForm()
	form.Name = "admin"

	user, err := svc.Register(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdministrator, user.Role)
	assert.True(t, user.IsAdmin())
}

func TestAuthenticate(t *testing.T) {
	svc, _, _ := newUserTestService(t)

	_, err := svc.Register(context.Background(), validForm())
	require.NoError(t, err)

	user, err := svc.Authenticate(context.Background(), "BOB@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Name)

	_, err = svc.Authenticate(context.Background(), "bob@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// unknown email must look exactly like a wrong password
	_, err = svc.Authenticate(context.Background(), "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerify_Lifecycle(t *testing.T) {
	svc, users, _ := newUserTestService(t)

	registered, err := svc.Register(context.Background(), validForm())
	require.NoError(t, err)
	require.False(t, registered.Valid)

	err = svc.Verify(context.Background(), registered, "bogus-code")
	assert.ErrorIs(t, err, ErrInvalidCode)

	stored, err := users.GetByName(context.Background(), "bob")
	require.NoError(t, err)
	assert.False(t, stored.Valid)

	require.NoError(t, svc.Verify(context.Background(), registered, registered.Code))

	stored, err = users.GetByName(context.Background(), "bob")
	require.NoError(t, err)
	assert.True(t, stored.Valid)

	// repeat verification is a no-op, even with a wrong code
	require.NoError(t, svc.Verify(context.Background(), stored, "bogus-code"))
}

func TestGetByCode(t *testing.T) {
	svc, _, _ := newUserTestService(t)

	registered, err := svc.Register(context.Background(), validForm())
	require.NoError(t, err)

	found, err := svc.GetByCode(context.Background(), registered.Code)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, found.ID)

	_, err = svc.GetByCode(context.Background(), "")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
