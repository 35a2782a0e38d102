package repository

import (
	"context"

	"github.com/ErlanBelekov/task-manager-api/internal/domain"
)

type ListTasksInput struct {
	UserID      int64
	Title       string           // empty = no filter, otherwise case-insensitive substring
	Description string           // same as Title
	State       domain.TaskState // empty = all states
	Offset      int
	Limit       int
}

// UpdateTaskInput carries a partial update: nil fields are left untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	State       *domain.TaskState
}

// Every lookup and mutation is scoped by userID, so a task owned by
// someone else is reported as ErrTaskNotFound.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	List(ctx context.Context, input ListTasksInput) ([]*domain.Task, error)
	Update(ctx context.Context, id, userID int64, input UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, id, userID int64) error
	CountByState(ctx context.Context) (map[domain.TaskState]int, error)
}
