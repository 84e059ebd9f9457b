package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/projectflow/projectflow/internal/middleware"
	"github.com/projectflow/projectflow/internal/structs"
	"github.com/projectflow/projectflow/pkg/resp"
)

// CreateProject handles POST /api/projects.
func (h *Handler) CreateProject(c *gin.Context) {
	var req structs.CreateProjectRequest
	if err := bindJSON(c, &req); err != nil {
		resp.Fail(c.Writer, resp.FromError(err))
		return
	}

	project, err := h.svc.Project.Create(c.Request.Context(), middleware.CurrentUser(c), &req)
	if err != nil {
		resp.Fail(c.Writer, resp.FromError(err))
		return
	}
	resp.WithStatusCode(c.Writer, http.StatusCreated, project)
}

// ListProjects handles GET /api/projects.
func (h *Handler) ListProjects(c *gin.Context) {
	projects, err := h.svc.Project.ListVisible(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		resp.Fail(c.Writer, resp.FromError(err))
		return
	}
	resp.Success(c.Writer, projects)
}

// GetProject handles GET /api/projects/:id.
func (h *Handler) GetProject(c *gin.Context) {
	project, err := h.svc.Project.Get(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		resp.Fail(c.Writer, resp.FromError(err))
		return
	}
	resp.Success(c.Writer, project)
}

// UpdateProject handles PUT /api/projects/:id.
func (h *Handler) UpdateProject(c *gin.Context) {
	var req structs.UpdateProjectRequest
	if err := bindJSON(c, &req); err != nil {
		resp.Fail(c.Writer, resp.FromError(err))
		return
	}

	project, err := h.svc.Project.Update(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), &req)
	if err != nil {
		resp.Fail(c.Writer, resp.FromError(err))
		return
	}
	resp.Success(c.Writer, project)
}

// DeleteProject handles DELETE /api/projects/:id.
func (h *Handler) DeleteProject(c *gin.Context) {
	if err := h.svc.Project.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		resp.Fail(c.Writer, resp.FromError(err))
		return
	}
	resp.Success(c.Writer, "project removed")
}

// ListProjectTasks handles GET /api/projects/:id/tasks.
func (h *Handler) ListProjectTasks(c *gin.Context) {
	tasks, err := h.svc.Project.ListTasks(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		resp.Fail(c.Writer, resp.FromError(err))
		return
	}
	resp.Success(c.Writer, tasks)
}
