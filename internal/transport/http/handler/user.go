package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ErlanBelekov/task-manager-api/internal/domain"
	"github.com/ErlanBelekov/task-manager-api/internal/identity"
	"github.com/ErlanBelekov/task-manager-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

type userUsecaser interface {
	CreateUser(ctx context.Context, input usecase.UserInput) (*domain.User, error)
	ListUsers(ctx context.Context, offset, limit int) ([]*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	UpdateUser(ctx context.Context, current *domain.User, targetID int64, input usecase.UserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, current *domain.User, targetID int64) error
}

type UserHandler struct {
	userUsecase userUsecaser
	logger      *slog.Logger
}

func NewUserHandler(userUsecase userUsecaser, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		logger:      logger.With("component", "user_handler"),
	}
}

type userRequest struct {
	Username string `json:"username" binding:"required,max=255"`
	Email    string `json:"email"    binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,bcryptlen"`
}

func (r userRequest) toInput() usecase.UserInput {
	return usecase.UserInput{Username: r.Username, Email: r.Email, Password: r.Password}
}

// userResponse is the public view of a user; the password hash never leaves the server.
type userResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	ID       int64  `json:"id"`
}

type listUsersResponse struct {
	Users []userResponse `json:"users"`
}

type pageQuery struct {
	Offset int `form:"offset" binding:"omitempty,min=0"`
	Limit  int `form:"limit"  binding:"omitempty,min=0"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{Username: u.Username, Email: u.Email, ID: u.ID}
}

// POST /users/
func (h *UserHandler) Create(ctx *gin.Context) {
	var req userRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userUsecase.CreateUser(ctx.Request.Context(), req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUsernameExists):
			writeError(ctx, http.StatusBadRequest, errUsernameExists)
		case errors.Is(err, domain.ErrEmailExists):
			writeError(ctx, http.StatusBadRequest, errEmailExists)
		case errors.Is(err, domain.ErrPasswordTooLong):
			writeError(ctx, http.StatusBadRequest, errPasswordTooLong)
		default:
			h.logger.ErrorContext(ctx.Request.Context(), "create user", "error", err)
			writeError(ctx, http.StatusInternalServerError, errInternalServer)
		}
		return
	}

	ctx.JSON(http.StatusCreated, toUserResponse(user))
}

// GET /users/?offset=&limit=
func (h *UserHandler) List(ctx *gin.Context) {
	var q pageQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		writeError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	users, err := h.userUsecase.ListUsers(ctx.Request.Context(), q.Offset, q.Limit)
	if err != nil {
		h.logger.ErrorContext(ctx.Request.Context(), "list users", "error", err)
		writeError(ctx, http.StatusInternalServerError, errInternalServer)
		return
	}

	items := make([]userResponse, len(users))
	for i, u := range users {
		items[i] = toUserResponse(u)
	}
	ctx.JSON(http.StatusOK, listUsersResponse{Users: items})
}

// GET /users/:id
func (h *UserHandler) GetByID(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	user, err := h.userUsecase.GetUser(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeError(ctx, http.StatusNotFound, errUserNotFound)
			return
		}
		h.logger.ErrorContext(ctx.Request.Context(), "get user", "user_id", id, "error", err)
		writeError(ctx, http.StatusInternalServerError, errInternalServer)
		return
	}

	ctx.JSON(http.StatusOK, toUserResponse(user))
}

// PUT /users/:id
func (h *UserHandler) Update(ctx *gin.Context) {
	current, ok := requireUser(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req userRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userUsecase.UpdateUser(ctx.Request.Context(), current, id, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			writeError(ctx, http.StatusForbidden, errNotEnoughPermissions)
		case errors.Is(err, domain.ErrUserConflict):
			writeError(ctx, http.StatusConflict, errUserConflict)
		case errors.Is(err, domain.ErrPasswordTooLong):
			writeError(ctx, http.StatusBadRequest, errPasswordTooLong)
		case errors.Is(err, domain.ErrUserNotFound):
			writeError(ctx, http.StatusNotFound, errUserNotFound)
		default:
			h.logger.ErrorContext(ctx.Request.Context(), "update user", "user_id", id, "error", err)
			writeError(ctx, http.StatusInternalServerError, errInternalServer)
		}
		return
	}

	ctx.JSON(http.StatusOK, toUserResponse(user))
}

// DELETE /users/:id
func (h *UserHandler) Delete(ctx *gin.Context) {
	current, ok := requireUser(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := h.userUsecase.DeleteUser(ctx.Request.Context(), current, id); err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			writeError(ctx, http.StatusForbidden, errNotEnoughPermissions)
		case errors.Is(err, domain.ErrUserNotFound):
			writeError(ctx, http.StatusNotFound, errUserNotFound)
		default:
			h.logger.ErrorContext(ctx.Request.Context(), "delete user", "user_id", id, "error", err)
			writeError(ctx, http.StatusInternalServerError, errInternalServer)
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

func parseID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		writeError(ctx, http.StatusBadRequest, errInvalidID)
		return 0, false
	}
	return id, true
}

func requireUser(ctx *gin.Context) (*domain.User, bool) {
	user, ok := identity.FromContext(ctx.Request.Context())
	if !ok {
		writeError(ctx, http.StatusUnauthorized, errNotAuthenticated)
	}
	return user, ok
}
