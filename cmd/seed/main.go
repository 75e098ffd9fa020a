// seed inserts a demo user and a handful of tasks into the local dev database.
// Re-running it is safe: an existing demo user is reused and tasks are only
// created when the user has none.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/ErlanBelekov/task-api/internal/auth"
	"github.com/ErlanBelekov/task-api/internal/domain"
	"github.com/ErlanBelekov/task-api/internal/infrastructure/postgres"
	"github.com/ErlanBelekov/task-api/internal/repository"
	"github.com/joho/godotenv"
)

const (
	seedEmail    = "demo@task-api.local"
	seedPassword = "Demo@12345"
	seedFullName = "Demo User"
)

type taskSpec struct {
	title       string
	description string
	done        bool
}

var tasks = []taskSpec{
	{"Read the API docs", "Skim the auth and task endpoints", true},
	{"Register a second account", "Check that tasks stay private per user", false},
	{"Try the refresh flow", "POST /v1/auth/refresh-token with the refresh cookie", false},
	{"Page through tasks", "", false},
	{"Mark everything done", "PATCH each task with done=true", false},
}

func main() {
	ctx := context.Background()

	for _, f := range []string{".env.local", ".env"} {
		_ = godotenv.Load(f)
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		log.Fatalf("migrate: %v", err)
	}

	users := postgres.NewUserRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)

	user, created, err := ensureUser(ctx, users)
	if err != nil {
		pool.Close()
		log.Fatalf("seed user: %v", err)
	}

	_, existing, err := taskRepo.List(ctx, repository.ListTasksInput{UserID: user.ID, Limit: 1})
	if err != nil {
		pool.Close()
		log.Fatalf("count tasks: %v", err)
	}

	var inserted int
	if existing == 0 {
		for _, spec := range tasks {
			task := &domain.Task{UserID: user.ID, Title: spec.title, Done: spec.done}
			if spec.description != "" {
				desc := spec.description
				task.Description = &desc
			}
			if _, err := taskRepo.Create(ctx, task); err != nil {
				pool.Close()
				log.Fatalf("insert task %q: %v", spec.title, err)
			}
			inserted++
		}
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  User:          %s (created: %t)\n", seedEmail, created)
	fmt.Printf("  Password:      %s\n", seedPassword)
	fmt.Printf("  User ID:       %s\n", user.ID)
	fmt.Printf("  Tasks created: %d  (user already had %d)\n", inserted, existing)
	fmt.Println()
	fmt.Println("Try it:")
	fmt.Println()
	fmt.Printf("    curl -s -c cookies.txt -X POST http://localhost:8080/v1/auth/login \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\",\"password\":\"%s\"}'\n", seedEmail, seedPassword)
	fmt.Println()
	fmt.Println("    curl -s -b cookies.txt 'http://localhost:8080/v1/tasks?page=1&limit=10'")
}

func ensureUser(ctx context.Context, users *postgres.UserRepository) (*domain.User, bool, error) {
	user, err := users.FindByEmail(ctx, seedEmail)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, false, err
	}

	hash, err := auth.NewPasswordService(auth.MinCost).Hash(seedPassword)
	if err != nil {
		return nil, false, err
	}

	user, err = users.Create(ctx, &domain.User{
		Email:        seedEmail,
		FullName:     seedFullName,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}
