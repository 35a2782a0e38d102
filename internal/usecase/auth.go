package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ErlanBelekov/task-manager-api/internal/auth"
	"github.com/ErlanBelekov/task-manager-api/internal/domain"
	"github.com/ErlanBelekov/task-manager-api/internal/metrics"
	"github.com/ErlanBelekov/task-manager-api/internal/repository"
)

// claimSubject holds the user's email.
const claimSubject = "sub"

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

type TokenIssuer interface {
	Issue(claims map[string]any, now time.Time) (string, error)
	Validate(raw string, now time.Time) (map[string]any, error)
}

type AuthUsecase struct {
	users  repository.UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
	clock  auth.Clock
}

func NewAuthUsecase(users repository.UserRepository, hasher PasswordHasher, tokens TokenIssuer, clock auth.Clock) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		clock:  clock,
	}
}

// Login checks email + password and returns a fresh access token.
// Unknown email and wrong password are indistinguishable to the caller.
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
			return "", domain.ErrIncorrectCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if !u.hasher.Verify(password, user.PasswordHash) {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return "", domain.ErrIncorrectCredentials
	}

	token, err := u.issueFor(user)
	if err != nil {
		return "", err
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	metrics.TokensIssuedTotal.WithLabelValues("password").Inc()
	return token, nil
}

// Refresh issues a new token for a user that was already authenticated
// with a still-valid token. An expired token never reaches here.
func (u *AuthUsecase) Refresh(_ context.Context, user *domain.User) (string, error) {
	token, err := u.issueFor(user)
	if err != nil {
		return "", err
	}
	metrics.TokensIssuedTotal.WithLabelValues("refresh").Inc()
	return token, nil
}

// Authenticate resolves a bearer token to its user. Expiry is reported as
// ErrTokenExpired; every other failure (bad signature, missing subject,
// unknown subject) collapses into ErrCredentialsInvalid.
func (u *AuthUsecase) Authenticate(ctx context.Context, rawToken string) (*domain.User, error) {
	claims, err := u.tokens.Validate(rawToken, u.clock.Now())
	if err != nil {
		if errors.Is(err, auth.ErrExpired) {
			metrics.TokenRejectionsTotal.WithLabelValues("expired").Inc()
			return nil, domain.ErrTokenExpired
		}
		metrics.TokenRejectionsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrCredentialsInvalid
	}

	email, _ := claims[claimSubject].(string)
	if email == "" {
		metrics.TokenRejectionsTotal.WithLabelValues("missing_subject").Inc()
		return nil, domain.ErrCredentialsInvalid
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.TokenRejectionsTotal.WithLabelValues("unknown_subject").Inc()
			return nil, domain.ErrCredentialsInvalid
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (u *AuthUsecase) issueFor(user *domain.User) (string, error) {
	token, err := u.tokens.Issue(map[string]any{claimSubject: user.Email}, u.clock.Now())
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
