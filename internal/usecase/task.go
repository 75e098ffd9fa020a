package usecase

import (
	"context"
	"fmt"

	"github.com/ErlanBelekov/task-api/internal/domain"
	"github.com/ErlanBelekov/task-api/internal/metrics"
	"github.com/ErlanBelekov/task-api/internal/repository"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

type TaskUsecase struct {
	repo repository.TaskRepository
}

func NewTaskUsecase(repo repository.TaskRepository) *TaskUsecase {
	return &TaskUsecase{repo: repo}
}

type CreateTaskInput struct {
	UserID      string
	Title       string
	Description *string
	Done        bool
}

func (u *TaskUsecase) CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	created, err := u.repo.Create(ctx, &domain.Task{
		UserID:      input.UserID,
		Title:       input.Title,
		Description: input.Description,
		Done:        input.Done,
	})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	metrics.TasksMutatedTotal.WithLabelValues("create").Inc()
	return created, nil
}

type ListTasksInput struct {
	UserID string
	Page   int
	Limit  int
}

// ListTasks pages through the user's tasks, newest first. Page is clamped to
// at least 1; a non-positive limit falls back to the default.
func (u *TaskUsecase) ListTasks(ctx context.Context, input ListTasksInput) (*domain.TaskPage, error) {
	page := max(1, input.Page)
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	limit = min(limit, maxPageLimit)

	tasks, total, err := u.repo.List(ctx, repository.ListTasksInput{
		UserID: input.UserID,
		Offset: (page - 1) * limit,
		Limit:  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return &domain.TaskPage{
		Tasks:    tasks,
		Page:     page,
		Limit:    limit,
		Total:    total,
		LastPage: lastPage(total, limit),
	}, nil
}

func (u *TaskUsecase) GetTask(ctx context.Context, id, userID string) (*domain.Task, error) {
	task, err := u.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

func (u *TaskUsecase) UpdateTask(ctx context.Context, id, userID string, patch domain.TaskPatch) (*domain.Task, error) {
	if patch.Empty() {
		return u.GetTask(ctx, id, userID)
	}

	task, err := u.repo.Update(ctx, id, userID, patch)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	metrics.TasksMutatedTotal.WithLabelValues("update").Inc()
	return task, nil
}

func (u *TaskUsecase) DeleteTask(ctx context.Context, id, userID string) error {
	if err := u.repo.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	metrics.TasksMutatedTotal.WithLabelValues("delete").Inc()
	return nil
}

func lastPage(total, limit int) int {
	return (total + limit - 1) / limit
}
