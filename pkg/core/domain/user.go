package domain

import "errors"

// User is the authenticated identity. Username doubles as the public profile
// handle.
type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	Provider string `json:"provider"`
}

// ErrNotFound marks a 404 from the backend, so callers can distinguish
// "does not exist" from transport failures.
var ErrNotFound = errors.New("not found")
