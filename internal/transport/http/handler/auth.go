package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/task-manager-api/internal/domain"
	"github.com/ErlanBelekov/task-manager-api/internal/identity"
	"github.com/gin-gonic/gin"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Login(ctx context.Context, email, password string) (string, error)
	Refresh(ctx context.Context, user *domain.User) (string, error)
}

type AuthHandler struct {
	authUsecase authUsecaser
	logger      *slog.Logger
}

func NewAuthHandler(authUsecase authUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		logger:      logger.With("component", "auth_handler"),
	}
}

// The OAuth2 password form calls the login field "username"; it carries
// the user's email.
type loginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// POST /auth/token
func (h *AuthHandler) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		writeError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.authUsecase.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrIncorrectCredentials) {
			ctx.Header("WWW-Authenticate", "Bearer")
			writeError(ctx, http.StatusUnauthorized, errIncorrectCredentials)
			return
		}
		h.logger.ErrorContext(ctx.Request.Context(), "login", "error", err)
		writeError(ctx, http.StatusInternalServerError, errInternalServer)
		return
	}

	ctx.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: domain.TokenTypeBearer})
}

// POST /auth/refresh_token
func (h *AuthHandler) Refresh(ctx *gin.Context) {
	user, ok := identity.FromContext(ctx.Request.Context())
	if !ok {
		writeError(ctx, http.StatusUnauthorized, errNotAuthenticated)
		return
	}

	token, err := h.authUsecase.Refresh(ctx.Request.Context(), user)
	if err != nil {
		h.logger.ErrorContext(ctx.Request.Context(), "refresh token", "error", err)
		writeError(ctx, http.StatusInternalServerError, errInternalServer)
		return
	}

	ctx.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: domain.TokenTypeBearer})
}
