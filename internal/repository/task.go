package repository

import (
	"context"

	"github.com/ErlanBelekov/task-api/internal/domain"
)

type ListTasksInput struct {
	UserID string
	Offset int
	Limit  int
}

// Every method is scoped by userID; a task owned by someone else is
// reported as domain.ErrTaskNotFound.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	GetByID(ctx context.Context, id, userID string) (*domain.Task, error)
	List(ctx context.Context, input ListTasksInput) ([]*domain.Task, int, error)
	Update(ctx context.Context, id, userID string, patch domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id, userID string) error
}
