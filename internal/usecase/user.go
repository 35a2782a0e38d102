package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ErlanBelekov/task-manager-api/internal/auth"
	"github.com/ErlanBelekov/task-manager-api/internal/domain"
	"github.com/ErlanBelekov/task-manager-api/internal/email"
	"github.com/ErlanBelekov/task-manager-api/internal/repository"
)

type UserUsecase struct {
	users    repository.UserRepository
	hasher   PasswordHasher
	email    email.Sender
	logger   *slog.Logger
	maxLimit int
}

func NewUserUsecase(users repository.UserRepository, hasher PasswordHasher, sender email.Sender, logger *slog.Logger, maxLimit int) *UserUsecase {
	return &UserUsecase{
		users:    users,
		hasher:   hasher,
		email:    sender,
		logger:   logger.With("component", "user_usecase"),
		maxLimit: maxLimit,
	}
}

type UserInput struct {
	Username string
	Email    string
	Password string
}

// AuthorizeSelf fails with ErrForbidden unless the authenticated user is
// the target of the operation.
func AuthorizeSelf(authenticated *domain.User, targetID int64) error {
	if authenticated == nil || authenticated.ID != targetID {
		return domain.ErrForbidden
	}
	return nil
}

// CreateUser registers a new account. The username/email pre-check gives a
// precise error; the unique constraints still close the race between the
// check and the insert.
func (u *UserUsecase) CreateUser(ctx context.Context, input UserInput) (*domain.User, error) {
	existing, err := u.users.FindByUsernameOrEmail(ctx, input.Username, input.Email)
	switch {
	case err == nil && existing.Username == input.Username:
		return nil, domain.ErrUsernameExists
	case err == nil:
		return nil, domain.ErrEmailExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	hash, err := u.hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	created, err := u.users.Create(ctx, &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	u.sendWelcome(ctx, created)
	return created, nil
}

func (u *UserUsecase) hashPassword(plaintext string) (string, error) {
	hash, err := u.hasher.Hash(plaintext)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return "", domain.ErrPasswordTooLong
		}
		return "", err
	}
	return hash, nil
}

func (u *UserUsecase) sendWelcome(ctx context.Context, user *domain.User) {
	msg, err := email.Welcome(user.Username, user.Email)
	if err == nil {
		err = u.email.Send(ctx, msg)
	}
	if err != nil {
		u.logger.WarnContext(ctx, "welcome email not sent", "user_id", user.ID, "error", err)
	}
}

func (u *UserUsecase) ListUsers(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	offset, limit = normalizePage(offset, limit, u.maxLimit)

	users, err := u.users.List(ctx, repository.ListUsersInput{Offset: offset, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (u *UserUsecase) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// UpdateUser replaces username, email and password of the authenticated
// user. Collisions with another account surface as ErrUserConflict.
func (u *UserUsecase) UpdateUser(ctx context.Context, current *domain.User, targetID int64, input UserInput) (*domain.User, error) {
	if err := AuthorizeSelf(current, targetID); err != nil {
		return nil, err
	}

	hash, err := u.hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	updated, err := u.users.Update(ctx, current.ID, repository.UpdateUserInput{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return updated, nil
}

// DeleteUser removes the authenticated user's account and their tasks.
func (u *UserUsecase) DeleteUser(ctx context.Context, current *domain.User, targetID int64) error {
	if err := AuthorizeSelf(current, targetID); err != nil {
		return err
	}
	if err := u.users.Delete(ctx, current.ID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
