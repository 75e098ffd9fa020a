package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/task-api/internal/domain"
	"github.com/ErlanBelekov/task-api/internal/identity"
	"github.com/ErlanBelekov/task-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

type taskUsecaser interface {
	CreateTask(ctx context.Context, input usecase.CreateTaskInput) (*domain.Task, error)
	ListTasks(ctx context.Context, input usecase.ListTasksInput) (*domain.TaskPage, error)
	GetTask(ctx context.Context, id, userID string) (*domain.Task, error)
	UpdateTask(ctx context.Context, id, userID string, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTask(ctx context.Context, id, userID string) error
}

type TaskHandler struct {
	taskUsecase taskUsecaser
	logger      *slog.Logger
}

func NewTaskHandler(taskUsecase taskUsecaser, logger *slog.Logger) *TaskHandler {
	registerValidators()
	return &TaskHandler{taskUsecase: taskUsecase, logger: logger.With("component", "task_handler")}
}

type createTaskRequest struct {
	Title       string  `json:"title"       binding:"required,min=3,max=255"`
	Description *string `json:"description" binding:"omitempty,min=3"`
	Done        bool    `json:"done"`
}

type updateTaskRequest struct {
	Title       *string `json:"title"       binding:"omitempty,min=3,max=255"`
	Description *string `json:"description" binding:"omitempty,min=3"`
	Done        *bool   `json:"done"`
}

// Out-of-range values are clamped by the usecase, not rejected.
type listTasksQuery struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

type taskURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// POST /v1/tasks
func (h *TaskHandler) Create(ctx *gin.Context) {
	var req createTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": bindingError(err)})
		return
	}

	task, err := h.taskUsecase.CreateTask(ctx.Request.Context(), usecase.CreateTaskInput{
		UserID:      identity.UserID(ctx.Request.Context()),
		Title:       req.Title,
		Description: req.Description,
		Done:        req.Done,
	})
	if err != nil {
		respondError(ctx, h.logger, "create task", err)
		return
	}

	ctx.JSON(http.StatusCreated, response[taskResponse]{
		Data:    toTaskResponse(task),
		Message: "Task created successfully",
	})
}

// GET /v1/tasks?page=&limit=
func (h *TaskHandler) List(ctx *gin.Context) {
	var q listTasksQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": bindingError(err)})
		return
	}

	page, err := h.taskUsecase.ListTasks(ctx.Request.Context(), usecase.ListTasksInput{
		UserID: identity.UserID(ctx.Request.Context()),
		Page:   q.Page,
		Limit:  q.Limit,
	})
	if err != nil {
		respondError(ctx, h.logger, "list tasks", err)
		return
	}

	items := make([]taskResponse, 0, len(page.Tasks))
	for _, t := range page.Tasks {
		items = append(items, toTaskResponse(t))
	}

	ctx.JSON(http.StatusOK, pagedResponse[taskResponse]{
		Data: items,
		Meta: pageMeta{
			Page:     page.Page,
			Limit:    page.Limit,
			Total:    page.Total,
			LastPage: page.LastPage,
		},
		Message: "Tasks retrieved successfully",
	})
}

// GET /v1/tasks/:id
func (h *TaskHandler) Get(ctx *gin.Context) {
	var uri taskURI
	if err := ctx.ShouldBindUri(&uri); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": errTaskNotFound})
		return
	}

	task, err := h.taskUsecase.GetTask(ctx.Request.Context(), uri.ID, identity.UserID(ctx.Request.Context()))
	if err != nil {
		respondError(ctx, h.logger, "get task", err)
		return
	}

	ctx.JSON(http.StatusOK, response[taskResponse]{
		Data:    toTaskResponse(task),
		Message: "Task retrieved successfully",
	})
}

// PATCH /v1/tasks/:id
func (h *TaskHandler) Update(ctx *gin.Context) {
	var uri taskURI
	if err := ctx.ShouldBindUri(&uri); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": errTaskNotFound})
		return
	}

	var req updateTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": bindingError(err)})
		return
	}

	task, err := h.taskUsecase.UpdateTask(ctx.Request.Context(), uri.ID, identity.UserID(ctx.Request.Context()), domain.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Done:        req.Done,
	})
	if err != nil {
		respondError(ctx, h.logger, "update task", err)
		return
	}

	ctx.JSON(http.StatusOK, response[taskResponse]{
		Data:    toTaskResponse(task),
		Message: "Task updated successfully",
	})
}

// DELETE /v1/tasks/:id
func (h *TaskHandler) Delete(ctx *gin.Context) {
	var uri taskURI
	if err := ctx.ShouldBindUri(&uri); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": errTaskNotFound})
		return
	}

	if err := h.taskUsecase.DeleteTask(ctx.Request.Context(), uri.ID, identity.UserID(ctx.Request.Context())); err != nil {
		respondError(ctx, h.logger, "delete task", err)
		return
	}

	ctx.JSON(http.StatusOK, response[deletedResponse]{
		Data:    deletedResponse{ID: uri.ID},
		Message: "Task deleted successfully",
	})
}
