package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ErlanBelekov/task-manager-api/internal/domain"
	"github.com/ErlanBelekov/task-manager-api/internal/identity"
	"github.com/gin-gonic/gin"
)

const (
	errNotAuthenticated = "Not authenticated"
	errInvalidToken     = "Could not validate credentials"
	errExpiredToken     = "Token has expired"
	errInternalServer   = "Internal server error"
)

// IdentityResolver turns a raw bearer token into the user it was issued for.
type IdentityResolver interface {
	Authenticate(ctx context.Context, rawToken string) (*domain.User, error)
}

// Auth requires a valid Bearer token and stores the resolved user in the
// request context (see identity.FromContext).
func Auth(resolver IdentityResolver, logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "auth_middleware")

	return func(c *gin.Context) {
		rawToken, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			unauthorized(c, errNotAuthenticated)
			return
		}

		user, err := resolver.Authenticate(c.Request.Context(), rawToken)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrTokenExpired):
				unauthorized(c, errExpiredToken)
			case errors.Is(err, domain.ErrCredentialsInvalid):
				unauthorized(c, errInvalidToken)
			default:
				logger.ErrorContext(c.Request.Context(), "resolve identity", "error", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": errInternalServer})
			}
			return
		}

		c.Request = c.Request.WithContext(identity.WithUser(c.Request.Context(), user))
		c.Next()
	}
}

// bearerToken extracts the token from "Bearer <token>". The scheme is
// matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(c *gin.Context, detail string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": detail})
}
