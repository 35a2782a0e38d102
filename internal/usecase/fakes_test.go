package usecase_test

import (
	"context"
	"time"

	"github.com/ErlanBelekov/task-manager-api/internal/domain"
	"github.com/ErlanBelekov/task-manager-api/internal/email"
	"github.com/ErlanBelekov/task-manager-api/internal/repository"
)

// ---- fakes ----

type fakeUserRepo struct {
	create                func(ctx context.Context, user *domain.User) (*domain.User, error)
	findByID              func(ctx context.Context, id int64) (*domain.User, error)
	findByEmail           func(ctx context.Context, email string) (*domain.User, error)
	findByUsernameOrEmail func(ctx context.Context, username, email string) (*domain.User, error)
	list                  func(ctx context.Context, input repository.ListUsersInput) ([]*domain.User, error)
	update                func(ctx context.Context, id int64, input repository.UpdateUserInput) (*domain.User, error)
	delete                func(ctx context.Context, id int64) error
	count                 func(ctx context.Context) (int, error)
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	return r.create(ctx, user)
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findByID(ctx, id)
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findByEmail(ctx, email)
}

func (r *fakeUserRepo) FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error) {
	return r.findByUsernameOrEmail(ctx, username, email)
}

func (r *fakeUserRepo) List(ctx context.Context, input repository.ListUsersInput) ([]*domain.User, error) {
	return r.list(ctx, input)
}

func (r *fakeUserRepo) Update(ctx context.Context, id int64, input repository.UpdateUserInput) (*domain.User, error) {
	return r.update(ctx, id, input)
}

func (r *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, id)
}

func (r *fakeUserRepo) Count(ctx context.Context) (int, error) {
	return r.count(ctx)
}

type fakeTaskRepo struct {
	create       func(ctx context.Context, task *domain.Task) (*domain.Task, error)
	list         func(ctx context.Context, input repository.ListTasksInput) ([]*domain.Task, error)
	update       func(ctx context.Context, id, userID int64, input repository.UpdateTaskInput) (*domain.Task, error)
	delete       func(ctx context.Context, id, userID int64) error
	countByState func(ctx context.Context) (map[domain.TaskState]int, error)
}

func (r *fakeTaskRepo) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	return r.create(ctx, task)
}

func (r *fakeTaskRepo) List(ctx context.Context, input repository.ListTasksInput) ([]*domain.Task, error) {
	return r.list(ctx, input)
}

func (r *fakeTaskRepo) Update(ctx context.Context, id, userID int64, input repository.UpdateTaskInput) (*domain.Task, error) {
	return r.update(ctx, id, userID, input)
}

func (r *fakeTaskRepo) Delete(ctx context.Context, id, userID int64) error {
	return r.delete(ctx, id, userID)
}

func (r *fakeTaskRepo) CountByState(ctx context.Context) (map[domain.TaskState]int, error) {
	return r.countByState(ctx)
}

type fakeEmailSender struct {
	send func(ctx context.Context, msg email.Message) error
}

func (s *fakeEmailSender) Send(ctx context.Context, msg email.Message) error {
	return s.send(ctx, msg)
}

// fakeClock returns whatever now is set to.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }
