package domain

import (
	"errors"
	"time"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrInvalidTaskState = errors.New("invalid task state")
)

type TaskState string

const (
	TaskStateDraft TaskState = "draft"
	TaskStateTodo  TaskState = "todo"
	TaskStateDoing TaskState = "doing"
	TaskStateDone  TaskState = "done"
)

// TaskStates lists every accepted state in lifecycle order.
var TaskStates = []TaskState{TaskStateDraft, TaskStateTodo, TaskStateDoing, TaskStateDone}

func (s TaskState) Valid() bool {
	switch s {
	case TaskStateDraft, TaskStateTodo, TaskStateDoing, TaskStateDone:
		return true
	}
	return false
}

type Task struct {
	ID          int64
	UserID      int64 // owner, never changes after insert
	Title       string
	Description string
	State       TaskState
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
