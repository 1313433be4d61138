package domain

import "time"

// Role classifies what an account may do on the board.
type Role string

const (
	RoleStandard      Role = "standard"
	RoleAdministrator Role = "administrator"
)

// User represents a registered account.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Code         string
	Valid        bool
	Role         Role
	CreatedAt    time.Time
}

// IsAdmin reports whether the user holds the administrator role.
// Safe to call on a nil (anonymous) user.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdministrator
}
