package usecase

import (
	"context"
	"fmt"

	"github.com/ErlanBelekov/task-manager-api/internal/domain"
	"github.com/ErlanBelekov/task-manager-api/internal/repository"
)

type TaskUsecase struct {
	repo     repository.TaskRepository
	maxLimit int
}

func NewTaskUsecase(repo repository.TaskRepository, maxLimit int) *TaskUsecase {
	return &TaskUsecase{repo: repo, maxLimit: maxLimit}
}

type CreateTaskInput struct {
	Title       string
	Description string
	State       domain.TaskState
}

func (u *TaskUsecase) CreateTask(ctx context.Context, owner *domain.User, input CreateTaskInput) (*domain.Task, error) {
	if !input.State.Valid() {
		return nil, domain.ErrInvalidTaskState
	}

	created, err := u.repo.Create(ctx, &domain.Task{
		UserID:      owner.ID,
		Title:       input.Title,
		Description: input.Description,
		State:       input.State,
	})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return created, nil
}

type ListTasksInput struct {
	Title       string
	Description string
	State       domain.TaskState
	Offset      int
	Limit       int
}

// ListTasks returns the owner's tasks matching every non-empty filter.
func (u *TaskUsecase) ListTasks(ctx context.Context, owner *domain.User, input ListTasksInput) ([]*domain.Task, error) {
	if input.State != "" && !input.State.Valid() {
		return nil, domain.ErrInvalidTaskState
	}
	offset, limit := normalizePage(input.Offset, input.Limit, u.maxLimit)

	tasks, err := u.repo.List(ctx, repository.ListTasksInput{
		UserID:      owner.ID,
		Title:       input.Title,
		Description: input.Description,
		State:       input.State,
		Offset:      offset,
		Limit:       limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (u *TaskUsecase) UpdateTask(ctx context.Context, owner *domain.User, id int64, input repository.UpdateTaskInput) (*domain.Task, error) {
	if input.State != nil && !input.State.Valid() {
		return nil, domain.ErrInvalidTaskState
	}

	updated, err := u.repo.Update(ctx, id, owner.ID, input)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return updated, nil
}

func (u *TaskUsecase) DeleteTask(ctx context.Context, owner *domain.User, id int64) error {
	if err := u.repo.Delete(ctx, id, owner.ID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
