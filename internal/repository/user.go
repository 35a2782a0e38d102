package repository

import (
	"context"

	"github.com/ErlanBelekov/task-manager-api/internal/domain"
)

type ListUsersInput struct {
	Offset int
	Limit  int
}

type UpdateUserInput struct {
	Username     string
	Email        string
	PasswordHash string
}

type UserRepository interface {
	// Create returns ErrUsernameExists or ErrEmailExists when a unique
	// constraint rejects the insert.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByUsernameOrEmail returns the first user matching either value,
	// or ErrUserNotFound.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)
	List(ctx context.Context, input ListUsersInput) ([]*domain.User, error)
	// Update returns ErrUserConflict on a unique violation.
	Update(ctx context.Context, id int64, input UpdateUserInput) (*domain.User, error)
	// Delete removes the user and, through the FK cascade, their tasks.
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}
