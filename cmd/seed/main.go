// seed inserts demo users and their tasks into the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/ErlanBelekov/task-manager-api/internal/auth"
	"github.com/ErlanBelekov/task-manager-api/internal/domain"
	"github.com/ErlanBelekov/task-manager-api/internal/infrastructure/postgres"
	"github.com/ErlanBelekov/task-manager-api/internal/repository"
	"github.com/lmittmann/tint"
	"golang.org/x/crypto/bcrypt"
)

const seedPassword = "seed-password"

type taskSpec struct {
	title       string
	description string
	state       domain.TaskState
}

var users = []struct {
	username string
	email    string
	tasks    []taskSpec
}{
	{"alice", "alice@test.local", []taskSpec{
		{"Buy milk", "Semi-skimmed, two bottles", domain.TaskStateTodo},
		{"Write report", "Quarterly numbers for the team", domain.TaskStateDoing},
		{"Plan trip", "Draft an itinerary", domain.TaskStateDraft},
		{"Renew passport", "Done at the consulate", domain.TaskStateDone},
	}},
	{"bob", "bob@test.local", []taskSpec{
		{"Fix bike", "Rear tyre is flat", domain.TaskStateTodo},
		{"Read book", "Finish the last three chapters", domain.TaskStateDraft},
	}},
}

func main() {
	ctx := context.Background()
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{TimeFormat: time.Kitchen}))

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	pool, err := postgres.NewPool(ctx, dbURL, logger, time.Second)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	hasher := auth.NewPasswordHasher(bcrypt.DefaultCost)

	hash, err := hasher.Hash(seedPassword)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	for _, spec := range users {
		user, created, err := ensureUser(ctx, userRepo, spec.username, spec.email, hash)
		if err != nil {
			log.Fatalf("seed user %s: %v", spec.email, err)
		}
		if !created {
			logger.Info("user already exists, skipping tasks", "email", spec.email, "user_id", user.ID)
			continue
		}

		for _, ts := range spec.tasks {
			if _, err := taskRepo.Create(ctx, &domain.Task{
				UserID:      user.ID,
				Title:       ts.title,
				Description: ts.description,
				State:       ts.state,
			}); err != nil {
				log.Fatalf("seed task %q: %v", ts.title, err)
			}
		}
		logger.Info("seeded user", "email", spec.email, "user_id", user.ID, "tasks", len(spec.tasks))
	}

	fmt.Println()
	fmt.Println("Seed complete. Every seeded user has the password:", seedPassword)
	fmt.Println()
	fmt.Println("  Get a token:")
	fmt.Println()
	fmt.Println("    curl -s -X POST http://localhost:8080/auth/token \\")
	fmt.Printf("      -d 'username=%s&password=%s'\n", users[0].email, seedPassword)
	fmt.Println()
	fmt.Println("  List tasks:")
	fmt.Println()
	fmt.Println("    export TOKEN=eyJ...")
	fmt.Println("    curl -s 'http://localhost:8080/tasks/?state=todo' -H \"Authorization: Bearer $TOKEN\"")
}

// ensureUser creates the user, or returns the existing one when the email is
// already taken so that re-runs are idempotent.
func ensureUser(ctx context.Context, repo repository.UserRepository, username, email, hash string) (*domain.User, bool, error) {
	user, err := repo.Create(ctx, &domain.User{Username: username, Email: email, PasswordHash: hash})
	if err == nil {
		return user, true, nil
	}
	if !errors.Is(err, domain.ErrUsernameExists) && !errors.Is(err, domain.ErrEmailExists) {
		return nil, false, err
	}

	user, err = repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	return user, false, nil
}
