package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUsernameExists = errors.New("username already exists")
	ErrEmailExists    = errors.New("email already exists")
	// ErrUserConflict is returned when an update collides with another
	// user's username or email. Which one collided is not reported.
	ErrUserConflict = errors.New("username or email already exists")
)

// ErrPasswordTooLong is returned for passwords the hasher cannot accept.
var ErrPasswordTooLong = errors.New("password is too long")

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
