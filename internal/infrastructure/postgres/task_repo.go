package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ErlanBelekov/task-manager-api/internal/domain"
	"github.com/ErlanBelekov/task-manager-api/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taskColumns = `id, user_id, title, description, state, created_at, updated_at`

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (user_id, title, description, state)
		VALUES ($1, $2, $3, $4)
		RETURNING `+taskColumns,
		task.UserID, task.Title, task.Description, string(task.State),
	)

	created, err := scanTask(row)
	if err != nil {
		return nil, mapTaskWriteError(err)
	}
	return created, nil
}

func (r *TaskRepository) List(ctx context.Context, input repository.ListTasksInput) ([]*domain.Task, error) {
	query, args := BuildListTasksQuery(input)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

// BuildListTasksQuery composes the owner-scoped task listing. Title and
// description match as case-insensitive substrings, state matches exactly,
// and every active filter is ANDed before OFFSET/LIMIT apply.
func BuildListTasksQuery(input repository.ListTasksInput) (string, []any) {
	args := []any{input.UserID}
	where := []string{"user_id = $1"}

	if input.Title != "" {
		args = append(args, escapeLike(input.Title))
		where = append(where, fmt.Sprintf("title ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if input.Description != "" {
		args = append(args, escapeLike(input.Description))
		where = append(where, fmt.Sprintf("description ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if input.State != "" {
		args = append(args, string(input.State))
		where = append(where, fmt.Sprintf("state = $%d", len(args)))
	}
	args = append(args, input.Offset, input.Limit)

	query := fmt.Sprintf(`
		SELECT %s
		FROM tasks
		WHERE %s
		ORDER BY id ASC
		OFFSET $%d
		LIMIT $%d`,
		taskColumns, strings.Join(where, " AND "), len(args)-1, len(args))

	return query, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside a LIKE pattern,
// using the default backslash escape.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (r *TaskRepository) Update(ctx context.Context, id, userID int64, input repository.UpdateTaskInput) (*domain.Task, error) {
	var state *string
	if input.State != nil {
		s := string(*input.State)
		state = &s
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE tasks
		SET    title       = COALESCE($3, title),
		       description = COALESCE($4, description),
		       state       = COALESCE($5, state),
		       updated_at  = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING `+taskColumns,
		id, userID, input.Title, input.Description, state,
	)

	updated, err := scanTask(row)
	if err != nil {
		return nil, mapTaskWriteError(err)
	}
	return updated, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id, userID int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return requireAffected(tag, domain.ErrTaskNotFound)
}

func (r *TaskRepository) CountByState(ctx context.Context) (map[domain.TaskState]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT state, COUNT(*) FROM tasks GROUP BY state`)
	if err != nil {
		return nil, fmt.Errorf("count tasks by state: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.TaskState]int, len(domain.TaskStates))
	for rows.Next() {
		var (
			state string
			n     int
		)
		if err := rows.Scan(&state, &n); err != nil {
			return nil, fmt.Errorf("scan task count: %w", err)
		}
		counts[domain.TaskState(state)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate task counts: %w", err)
	}
	return counts, nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		t     domain.Task
		state string
	)
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &state, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	t.State = domain.TaskState(state)
	return &t, nil
}
