package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/task-api/internal/domain"
	"github.com/ErlanBelekov/task-api/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taskColumns = `id, user_id, title, description, done, created_at`

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	query := `
		INSERT INTO tasks (user_id, title, description, done)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + taskColumns

	row := r.pool.QueryRow(ctx, query, task.UserID, task.Title, task.Description, task.Done)
	created, err := scanTask(row)
	if err != nil {
		return nil, translateError("create task", err)
	}
	return created, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id, userID string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND user_id = $2`

	task, err := scanTask(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, translateError("get task", err)
	}
	return task, nil
}

// List returns one page plus the user's total task count, both read in a
// single round trip.
func (r *TaskRepository) List(ctx context.Context, input repository.ListTasksInput) ([]*domain.Task, int, error) {
	batch := &pgx.Batch{}
	batch.Queue(`SELECT COUNT(*) FROM tasks WHERE user_id = $1`, input.UserID)
	batch.Queue(`
		SELECT `+taskColumns+`
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`,
		input.UserID, input.Limit, input.Offset)

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	var total int
	if err := br.QueryRow().Scan(&total); err != nil {
		return nil, 0, translateError("count tasks", err)
	}

	rows, err := br.Query()
	if err != nil {
		return nil, 0, translateError("list tasks", err)
	}
	defer rows.Close()

	tasks := make([]*domain.Task, 0, input.Limit)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, translateError("list tasks", err)
	}
	return tasks, total, nil
}

func (r *TaskRepository) Update(ctx context.Context, id, userID string, patch domain.TaskPatch) (*domain.Task, error) {
	query := `
		UPDATE tasks
		SET    title       = COALESCE($3, title),
		       description = COALESCE($4, description),
		       done        = COALESCE($5, done)
		WHERE id = $1 AND user_id = $2
		RETURNING ` + taskColumns

	row := r.pool.QueryRow(ctx, query, id, userID, patch.Title, patch.Description, patch.Done)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, translateError("update task", err)
	}
	return task, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id, userID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return translateError("delete task", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Done, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	return &t, nil
}
