package domain

import (
	"errors"
	"time"
)

var ErrTaskNotFound = errors.New("task not found")

type Task struct {
	ID          string
	UserID      string
	Title       string
	Description *string // nil means no description
	Done        bool
	CreatedAt   time.Time
}

// TaskPatch carries a partial update; nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Done        *bool
}

func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Done == nil
}

type TaskPage struct {
	Tasks    []*Task
	Page     int
	Limit    int
	Total    int
	LastPage int
}
