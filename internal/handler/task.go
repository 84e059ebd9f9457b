package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/projectflow/projectflow/internal/middleware"
	"github.com/projectflow/projectflow/internal/structs"
	"github.com/projectflow/projectflow/pkg/resp"
)

// CreateTask handles POST /api/tasks.
func (h *Handler) CreateTask(c *gin.Context) {
	var req structs.CreateTaskRequest
	if err := bindJSON(c, &req); err != nil {
		resp.Fail(c.Writer, resp.FromError(err))
		return
	}

	task, err := h.svc.Task.Create(c.Request.Context(), middleware.CurrentUser(c), &req)
	if err != nil {
		resp.Fail(c.Writer, resp.FromError(err))
		return
	}
	resp.WithStatusCode(c.Writer, http.StatusCreated, task)
}

// ListTasks handles GET /api/tasks.
func (h *Handler) ListTasks(c *gin.Context) {
	tasks, err := h.svc.Task.List(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		resp.Fail(c.Writer, resp.FromError(err))
		return
	}
	resp.Success(c.Writer, tasks)
}

// GetTask handles GET /api/tasks/:id.
func (h *Handler) GetTask(c *gin.Context) {
	task, err := h.svc.Task.Get(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		resp.Fail(c.Writer, resp.FromError(err))
		return
	}
	resp.Success(c.Writer, task)
}

// UpdateTask handles PUT /api/tasks/:id.
func (h *Handler) UpdateTask(c *gin.Context) {
	var req structs.UpdateTaskRequest
	if err := bindJSON(c, &req); err != nil {
		resp.Fail(c.Writer, resp.FromError(err))
		return
	}

	task, err := h.svc.Task.Update(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), &req)
	if err != nil {
		resp.Fail(c.Writer, resp.FromError(err))
		return
	}
	resp.Success(c.Writer, task)
}

// DeleteTask handles DELETE /api/tasks/:id.
func (h *Handler) DeleteTask(c *gin.Context) {
	if err := h.svc.Task.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		resp.Fail(c.Writer, resp.FromError(err))
		return
	}
	resp.Success(c.Writer, "task removed")
}

// AddComment handles POST /api/tasks/:id/comments.
func (h *Handler) AddComment(c *gin.Context) {
	var req structs.AddCommentRequest
	if err := bindJSON(c, &req); err != nil {
		resp.Fail(c.Writer, resp.FromError(err))
		return
	}

	comments, err := h.svc.Task.AddComment(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), &req)
	if err != nil {
		resp.Fail(c.Writer, resp.FromError(err))
		return
	}
	resp.WithStatusCode(c.Writer, http.StatusCreated, comments)
}
