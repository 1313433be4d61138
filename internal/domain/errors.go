package domain

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden indicates the requester may not act on the record.
	ErrForbidden = errors.New("forbidden")
)

// ValidationErrors collects the messages a form re-displays to the user.
type ValidationErrors []string

func (v ValidationErrors) Error() string {
	return strings.Join(v, "; ")
}
