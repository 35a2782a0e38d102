package identity

import (
	"context"

	"github.com/ErlanBelekov/task-manager-api/internal/domain"
)

type ctxKey struct{}

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// FromContext returns the authenticated user, if the request went through
// the auth middleware.
func FromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(ctxKey{}).(*domain.User)
	return user, ok && user != nil
}
