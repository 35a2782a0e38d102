package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/task-manager-api/internal/domain"
	"github.com/ErlanBelekov/task-manager-api/internal/repository"
	"github.com/ErlanBelekov/task-manager-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

type taskUsecaser interface {
	CreateTask(ctx context.Context, owner *domain.User, input usecase.CreateTaskInput) (*domain.Task, error)
	ListTasks(ctx context.Context, owner *domain.User, input usecase.ListTasksInput) ([]*domain.Task, error)
	UpdateTask(ctx context.Context, owner *domain.User, id int64, input repository.UpdateTaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, owner *domain.User, id int64) error
}

type TaskHandler struct {
	taskUsecase taskUsecaser
	logger      *slog.Logger
}

func NewTaskHandler(taskUsecase taskUsecaser, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		taskUsecase: taskUsecase,
		logger:      logger.With("component", "task_handler"),
	}
}

// Title and description must be present but may be empty; "required" on a
// pointer only rejects a missing field.
type createTaskRequest struct {
	Title       *string          `json:"title"       binding:"required,max=255"`
	Description *string          `json:"description" binding:"required,max=10000"`
	State       domain.TaskState `json:"state"       binding:"required,taskstate"`
}

// Absent fields stay untouched.
type updateTaskRequest struct {
	Title       *string           `json:"title"       binding:"omitempty,max=255"`
	Description *string           `json:"description" binding:"omitempty,max=10000"`
	State       *domain.TaskState `json:"state"       binding:"omitempty,taskstate"`
}

type listTasksQuery struct {
	Title       string           `form:"title"`
	Description string           `form:"description"`
	State       domain.TaskState `form:"state"  binding:"omitempty,taskstate"`
	Offset      int              `form:"offset" binding:"omitempty,min=0"`
	Limit       int              `form:"limit"  binding:"omitempty,min=0"`
}

type taskResponse struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	State       domain.TaskState `json:"state"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

type listTasksResponse struct {
	Tasks []taskResponse `json:"tasks"`
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		State:       t.State,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// POST /tasks/
func (h *TaskHandler) Create(ctx *gin.Context) {
	owner, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req createTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.taskUsecase.CreateTask(ctx.Request.Context(), owner, usecase.CreateTaskInput{
		Title:       *req.Title,
		Description: *req.Description,
		State:       req.State,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTaskState) {
			writeError(ctx, http.StatusBadRequest, errInvalidTaskState)
			return
		}
		h.logger.ErrorContext(ctx.Request.Context(), "create task", "error", err)
		writeError(ctx, http.StatusInternalServerError, errInternalServer)
		return
	}

	ctx.JSON(http.StatusCreated, toTaskResponse(task))
}

// GET /tasks/?title=&description=&state=&offset=&limit=
func (h *TaskHandler) List(ctx *gin.Context) {
	owner, ok := requireUser(ctx)
	if !ok {
		return
	}

	var q listTasksQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		writeError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	tasks, err := h.taskUsecase.ListTasks(ctx.Request.Context(), owner, usecase.ListTasksInput{
		Title:       q.Title,
		Description: q.Description,
		State:       q.State,
		Offset:      q.Offset,
		Limit:       q.Limit,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTaskState) {
			writeError(ctx, http.StatusBadRequest, errInvalidTaskState)
			return
		}
		h.logger.ErrorContext(ctx.Request.Context(), "list tasks", "error", err)
		writeError(ctx, http.StatusInternalServerError, errInternalServer)
		return
	}

	items := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		items[i] = toTaskResponse(t)
	}
	ctx.JSON(http.StatusOK, listTasksResponse{Tasks: items})
}

// PATCH /tasks/:id
func (h *TaskHandler) Update(ctx *gin.Context) {
	owner, ok := requireUser(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		writeError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	task, err := h.taskUsecase.UpdateTask(ctx.Request.Context(), owner, id, repository.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		State:       req.State,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTaskNotFound):
			writeError(ctx, http.StatusNotFound, errTaskNotFound)
		case errors.Is(err, domain.ErrInvalidTaskState):
			writeError(ctx, http.StatusBadRequest, errInvalidTaskState)
		default:
			h.logger.ErrorContext(ctx.Request.Context(), "update task", "task_id", id, "error", err)
			writeError(ctx, http.StatusInternalServerError, errInternalServer)
		}
		return
	}

	ctx.JSON(http.StatusOK, toTaskResponse(task))
}

// DELETE /tasks/:id
func (h *TaskHandler) Delete(ctx *gin.Context) {
	owner, ok := requireUser(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	if err := h.taskUsecase.DeleteTask(ctx.Request.Context(), owner, id); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			writeError(ctx, http.StatusNotFound, errTaskNotFound)
			return
		}
		h.logger.ErrorContext(ctx.Request.Context(), "delete task", "task_id", id, "error", err)
		writeError(ctx, http.StatusInternalServerError, errInternalServer)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Task has been deleted successfully."})
}
