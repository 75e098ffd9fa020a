package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ErlanBelekov/task-api/internal/domain"
	"github.com/ErlanBelekov/task-api/internal/transport/http/handler"
	"github.com/ErlanBelekov/task-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

const taskID = "5b0e7c1e-8a4f-4f57-9d2a-3f1c2b7e9a10"

type fakeTaskUsecase struct {
	createTask func(ctx context.Context, input usecase.CreateTaskInput) (*domain.Task, error)
	listTasks  func(ctx context.Context, input usecase.ListTasksInput) (*domain.TaskPage, error)
	getTask    func(ctx context.Context, id, userID string) (*domain.Task, error)
	updateTask func(ctx context.Context, id, userID string, patch domain.TaskPatch) (*domain.Task, error)
	deleteTask func(ctx context.Context, id, userID string) error
}

func (f *fakeTaskUsecase) CreateTask(ctx context.Context, input usecase.CreateTaskInput) (*domain.Task, error) {
	return f.createTask(ctx, input)
}

func (f *fakeTaskUsecase) ListTasks(ctx context.Context, input usecase.ListTasksInput) (*domain.TaskPage, error) {
	return f.listTasks(ctx, input)
}

func (f *fakeTaskUsecase) GetTask(ctx context.Context, id, userID string) (*domain.Task, error) {
	return f.getTask(ctx, id, userID)
}

func (f *fakeTaskUsecase) UpdateTask(ctx context.Context, id, userID string, patch domain.TaskPatch) (*domain.Task, error) {
	return f.updateTask(ctx, id, userID, patch)
}

func (f *fakeTaskUsecase) DeleteTask(ctx context.Context, id, userID string) error {
	return f.deleteTask(ctx, id, userID)
}

func newTaskEngine(uc *fakeTaskUsecase) *gin.Engine {
	h := handler.NewTaskHandler(uc, discardLogger)

	r := gin.New()
	tasks := r.Group("/tasks", withUser("user-1"))
	tasks.POST("", h.Create)
	tasks.GET("", h.List)
	tasks.GET("/:id", h.Get)
	tasks.PATCH("/:id", h.Update)
	tasks.DELETE("/:id", h.Delete)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func sampleTask() *domain.Task {
	return &domain.Task{
		ID:        taskID,
		UserID:    "user-1",
		Title:     "Write docs",
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestCreateTask_ShortTitle_Returns400(t *testing.T) {
	w := doRequest(newTaskEngine(&fakeTaskUsecase{}), http.MethodPost, "/tasks", `{"title":"ab"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestCreateTask_UsesCallerAsOwner(t *testing.T) {
	var got usecase.CreateTaskInput
	uc := &fakeTaskUsecase{
		createTask: func(_ context.Context, input usecase.CreateTaskInput) (*domain.Task, error) {
			got = input
			return sampleTask(), nil
		},
	}
	w := doRequest(newTaskEngine(uc), http.MethodPost, "/tasks", `{"title":"Write docs","description":"For the API"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body = %s", w.Code, w.Body.String())
	}
	if got.UserID != "user-1" || got.Title != "Write docs" {
		t.Errorf("input = %+v", got)
	}
	if got.Description == nil || *got.Description != "For the API" {
		t.Errorf("description = %v", got.Description)
	}
}

func TestListTasks_ReturnsMeta(t *testing.T) {
	var got usecase.ListTasksInput
	uc := &fakeTaskUsecase{
		listTasks: func(_ context.Context, input usecase.ListTasksInput) (*domain.TaskPage, error) {
			got = input
			return &domain.TaskPage{
				Tasks:    []*domain.Task{sampleTask()},
				Page:     2,
				Limit:    1,
				Total:    3,
				LastPage: 3,
			}, nil
		},
	}
	w := doRequest(newTaskEngine(uc), http.MethodGet, "/tasks?page=2&limit=1", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got.UserID != "user-1" || got.Page != 2 || got.Limit != 1 {
		t.Errorf("input = %+v", got)
	}

	var body struct {
		Data []map[string]any `json:"data"`
		Meta map[string]int   `json:"meta"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Data) != 1 || body.Meta["total"] != 3 || body.Meta["lastPage"] != 3 || body.Meta["page"] != 2 {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestListTasks_EmptyPage_ReturnsEmptyArray(t *testing.T) {
	uc := &fakeTaskUsecase{
		listTasks: func(_ context.Context, _ usecase.ListTasksInput) (*domain.TaskPage, error) {
			return &domain.TaskPage{Page: 1, Limit: 10}, nil
		},
	}
	w := doRequest(newTaskEngine(uc), http.MethodGet, "/tasks", "")

	if !strings.Contains(w.Body.String(), `"data":[]`) {
		t.Errorf("body = %s, want empty data array", w.Body.String())
	}
}

func TestListTasks_NonNumericPage_Returns400(t *testing.T) {
	w := doRequest(newTaskEngine(&fakeTaskUsecase{}), http.MethodGet, "/tasks?page=abc", "")

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGetTask_MalformedID_Returns404(t *testing.T) {
	w := doRequest(newTaskEngine(&fakeTaskUsecase{}), http.MethodGet, "/tasks/not-a-uuid", "")

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestGetTask_OtherUsersTask_Returns404(t *testing.T) {
	uc := &fakeTaskUsecase{
		getTask: func(_ context.Context, id, userID string) (*domain.Task, error) {
			if id != taskID || userID != "user-1" {
				t.Errorf("args = %q, %q", id, userID)
			}
			return nil, domain.ErrTaskNotFound
		},
	}
	w := doRequest(newTaskEngine(uc), http.MethodGet, "/tasks/"+taskID, "")

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestUpdateTask_PassesPartialPatch(t *testing.T) {
	var got domain.TaskPatch
	uc := &fakeTaskUsecase{
		updateTask: func(_ context.Context, _, _ string, patch domain.TaskPatch) (*domain.Task, error) {
			got = patch
			task := sampleTask()
			task.Done = true
			return task, nil
		},
	}
	w := doRequest(newTaskEngine(uc), http.MethodPatch, "/tasks/"+taskID, `{"done":true}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got.Done == nil || !*got.Done || got.Title != nil || got.Description != nil {
		t.Errorf("patch = %+v", got)
	}
}

func TestUpdateTask_ShortTitle_Returns400(t *testing.T) {
	w := doRequest(newTaskEngine(&fakeTaskUsecase{}), http.MethodPatch, "/tasks/"+taskID, `{"title":"x"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestDeleteTask_ReturnsID(t *testing.T) {
	uc := &fakeTaskUsecase{
		deleteTask: func(_ context.Context, _, _ string) error { return nil },
	}
	w := doRequest(newTaskEngine(uc), http.MethodDelete, "/tasks/"+taskID, "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), taskID) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestDeleteTask_NotFound_Returns404(t *testing.T) {
	uc := &fakeTaskUsecase{
		deleteTask: func(_ context.Context, _, _ string) error { return domain.ErrTaskNotFound },
	}
	w := doRequest(newTaskEngine(uc), http.MethodDelete, "/tasks/"+taskID, "")

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
