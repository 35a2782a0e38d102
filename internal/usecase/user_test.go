package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/ErlanBelekov/task-manager-api/internal/domain"
	"github.com/ErlanBelekov/task-manager-api/internal/email"
	"github.com/ErlanBelekov/task-manager-api/internal/repository"
	"github.com/ErlanBelekov/task-manager-api/internal/usecase"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newUserUsecase(repo *fakeUserRepo, sender *fakeEmailSender) *usecase.UserUsecase {
	if sender == nil {
		sender = &fakeEmailSender{send: func(context.Context, email.Message) error { return nil }}
	}
	return usecase.NewUserUsecase(repo, testHasher, sender, discardLogger, 1000)
}

var alice = &domain.User{ID: 1, Username: "alice", Email: "alice@example.com"}

// ---- CreateUser ----

func TestCreateUser_HashesPasswordAndSendsWelcome(t *testing.T) {
	var stored *domain.User
	var sent email.Message

	repo := &fakeUserRepo{
		findByUsernameOrEmail: func(_ context.Context, _, _ string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
		create: func(_ context.Context, u *domain.User) (*domain.User, error) {
			stored = u
			out := *u
			out.ID = 42
			return &out, nil
		},
	}
	sender := &fakeEmailSender{send: func(_ context.Context, msg email.Message) error {
		sent = msg
		return nil
	}}

	created, err := newUserUsecase(repo, sender).CreateUser(context.Background(), usecase.UserInput{
		Username: "bob", Email: "bob@example.com", Password: "hunter2",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 42 {
		t.Errorf("ID = %d, want 42", created.ID)
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "hunter2" {
		t.Errorf("password was not hashed: %q", stored.PasswordHash)
	}
	if !testHasher.Verify("hunter2", stored.PasswordHash) {
		t.Error("stored hash does not verify against the original password")
	}
	if sent.To != "bob@example.com" {
		t.Errorf("welcome email To = %q, want bob@example.com", sent.To)
	}
}

func TestCreateUser_WelcomeFailure_StillCreates(t *testing.T) {
	repo := &fakeUserRepo{
		findByUsernameOrEmail: func(_ context.Context, _, _ string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
		create: func(_ context.Context, u *domain.User) (*domain.User, error) {
			return u, nil
		},
	}
	sender := &fakeEmailSender{send: func(context.Context, email.Message) error {
		return errors.New("smtp down")
	}}

	if _, err := newUserUsecase(repo, sender).CreateUser(context.Background(), usecase.UserInput{
		Username: "bob", Email: "bob@example.com", Password: "hunter2",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateUser_Duplicates(t *testing.T) {
	tests := []struct {
		name    string
		input   usecase.UserInput
		wantErr error
	}{
		{"same username", usecase.UserInput{Username: "alice", Email: "new@example.com", Password: "x"}, domain.ErrUsernameExists},
		{"same email", usecase.UserInput{Username: "other", Email: "alice@example.com", Password: "x"}, domain.ErrEmailExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeUserRepo{
				findByUsernameOrEmail: func(_ context.Context, _, _ string) (*domain.User, error) {
					return alice, nil
				},
				create: func(context.Context, *domain.User) (*domain.User, error) {
					t.Fatal("create must not be called for a duplicate")
					return nil, nil
				},
			}

			_, err := newUserUsecase(repo, nil).CreateUser(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("want %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCreateUser_RaceLostOnInsert_PropagatesDomainError(t *testing.T) {
	repo := &fakeUserRepo{
		findByUsernameOrEmail: func(_ context.Context, _, _ string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
		create: func(context.Context, *domain.User) (*domain.User, error) {
			return nil, domain.ErrEmailExists
		},
	}

	_, err := newUserUsecase(repo, nil).CreateUser(context.Background(), usecase.UserInput{
		Username: "bob", Email: "alice@example.com", Password: "x",
	})
	if !errors.Is(err, domain.ErrEmailExists) {
		t.Errorf("want ErrEmailExists, got %v", err)
	}
}

func TestCreateUser_MultibytePasswordOverByteLimit(t *testing.T) {
	repo := &fakeUserRepo{
		findByUsernameOrEmail: func(_ context.Context, _, _ string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
		create: func(context.Context, *domain.User) (*domain.User, error) {
			t.Fatal("create must not be called")
			return nil, nil
		},
	}

	_, err := newUserUsecase(repo, nil).CreateUser(context.Background(), usecase.UserInput{
		Username: "bob", Email: "bob@example.com", Password: strings.Repeat("é", 72),
	})
	if !errors.Is(err, domain.ErrPasswordTooLong) {
		t.Errorf("want ErrPasswordTooLong, got %v", err)
	}
}

func TestUpdateUser_MultibytePasswordOverByteLimit(t *testing.T) {
	repo := &fakeUserRepo{
		update: func(context.Context, int64, repository.UpdateUserInput) (*domain.User, error) {
			t.Fatal("update must not be called")
			return nil, nil
		},
	}

	_, err := newUserUsecase(repo, nil).UpdateUser(context.Background(), alice, alice.ID, usecase.UserInput{
		Username: "alice", Email: "alice@example.com", Password: strings.Repeat("é", 72),
	})
	if !errors.Is(err, domain.ErrPasswordTooLong) {
		t.Errorf("want ErrPasswordTooLong, got %v", err)
	}
}

// ---- ListUsers ----

func TestListUsers_Pagination(t *testing.T) {
	tests := []struct {
		name       string
		offset     int
		limit      int
		wantOffset int
		wantLimit  int
	}{
		{"defaults", 0, 0, 0, 100},
		{"explicit", 10, 5, 10, 5},
		{"negative offset", -3, 5, 0, 5},
		{"clamped", 0, 5000, 0, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got repository.ListUsersInput
			repo := &fakeUserRepo{
				list: func(_ context.Context, in repository.ListUsersInput) ([]*domain.User, error) {
					got = in
					return nil, nil
				},
			}

			if _, err := newUserUsecase(repo, nil).ListUsers(context.Background(), tt.offset, tt.limit); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Offset != tt.wantOffset || got.Limit != tt.wantLimit {
				t.Errorf("got offset=%d limit=%d, want offset=%d limit=%d", got.Offset, got.Limit, tt.wantOffset, tt.wantLimit)
			}
		})
	}
}

// ---- AuthorizeSelf / UpdateUser / DeleteUser ----

func TestAuthorizeSelf(t *testing.T) {
	if err := usecase.AuthorizeSelf(alice, alice.ID); err != nil {
		t.Errorf("self: unexpected error: %v", err)
	}
	if err := usecase.AuthorizeSelf(alice, alice.ID+1); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("other: want ErrForbidden, got %v", err)
	}
	if err := usecase.AuthorizeSelf(nil, 1); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("nil user: want ErrForbidden, got %v", err)
	}
}

func TestUpdateUser_OtherUser_Forbidden(t *testing.T) {
	repo := &fakeUserRepo{
		update: func(context.Context, int64, repository.UpdateUserInput) (*domain.User, error) {
			t.Fatal("update must not be called")
			return nil, nil
		},
	}

	_, err := newUserUsecase(repo, nil).UpdateUser(context.Background(), alice, 2, usecase.UserInput{
		Username: "x", Email: "x@example.com", Password: "x",
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("want ErrForbidden, got %v", err)
	}
}

func TestUpdateUser_Conflict(t *testing.T) {
	repo := &fakeUserRepo{
		update: func(context.Context, int64, repository.UpdateUserInput) (*domain.User, error) {
			return nil, domain.ErrUserConflict
		},
	}

	_, err := newUserUsecase(repo, nil).UpdateUser(context.Background(), alice, alice.ID, usecase.UserInput{
		Username: "bob", Email: "alice@example.com", Password: "x",
	})
	if !errors.Is(err, domain.ErrUserConflict) {
		t.Errorf("want ErrUserConflict, got %v", err)
	}
}

func TestUpdateUser_Self_RehashesPassword(t *testing.T) {
	var got repository.UpdateUserInput
	repo := &fakeUserRepo{
		update: func(_ context.Context, id int64, in repository.UpdateUserInput) (*domain.User, error) {
			got = in
			return &domain.User{ID: id, Username: in.Username, Email: in.Email, PasswordHash: in.PasswordHash}, nil
		},
	}

	updated, err := newUserUsecase(repo, nil).UpdateUser(context.Background(), alice, alice.ID, usecase.UserInput{
		Username: "alice2", Email: "alice2@example.com", Password: "newpass",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Username != "alice2" {
		t.Errorf("Username = %q, want alice2", updated.Username)
	}
	if !testHasher.Verify("newpass", got.PasswordHash) {
		t.Error("new password hash does not verify")
	}
}

func TestDeleteUser(t *testing.T) {
	var deleted int64
	repo := &fakeUserRepo{
		delete: func(_ context.Context, id int64) error {
			deleted = id
			return nil
		},
	}
	uc := newUserUsecase(repo, nil)

	if err := uc.DeleteUser(context.Background(), alice, 99); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("other: want ErrForbidden, got %v", err)
	}
	if deleted != 0 {
		t.Fatalf("repo delete called for forbidden request")
	}
	if err := uc.DeleteUser(context.Background(), alice, alice.ID); err != nil {
		t.Fatalf("self: unexpected error: %v", err)
	}
	if deleted != alice.ID {
		t.Errorf("deleted id = %d, want %d", deleted, alice.ID)
	}
}
