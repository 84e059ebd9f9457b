// Package handler wires the HTTP surface: route registration, request
// binding, and translation of service errors onto the wire contract.
package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/projectflow/projectflow/internal/middleware"
	"github.com/projectflow/projectflow/internal/service"
	"github.com/projectflow/projectflow/pkg/ecode"
	"github.com/projectflow/projectflow/pkg/logger"
	"github.com/projectflow/projectflow/pkg/resp"
)

// Handler holds the HTTP handlers.
type Handler struct {
	svc    *service.Service
	logger *logger.Logger
}

// New creates the handler set.
func New(svc *service.Service, log *logger.Logger) *Handler {
	return &Handler{svc: svc, logger: log}
}

// RegisterRoutes mounts the API onto the router.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.Welcome)
	r.GET("/health", h.Health)

	protect := middleware.Protect(h.svc.User)

	users := r.Group("/api/users")
	{
		users.POST("/register", h.Register)
		users.POST("/login", h.Login)
		users.GET("/profile", protect, h.GetProfile)
		users.PUT("/profile", protect, h.UpdateProfile)
		users.GET("", protect, h.ListUsers)
	}

	projects := r.Group("/api/projects", protect)
	{
		projects.POST("", h.CreateProject)
		projects.GET("", h.ListProjects)
		projects.GET("/:id", h.GetProject)
		projects.PUT("/:id", h.UpdateProject)
		projects.DELETE("/:id", h.DeleteProject)
		projects.GET("/:id/tasks", h.ListProjectTasks)
	}

	tasks := r.Group("/api/tasks", protect)
	{
		tasks.POST("", h.CreateTask)
		tasks.GET("", h.ListTasks)
		tasks.GET("/:id", h.GetTask)
		tasks.PUT("/:id", h.UpdateTask)
		tasks.DELETE("/:id", h.DeleteTask)
		tasks.POST("/:id/comments", h.AddComment)
	}
}

// Welcome handles GET /.
func (h *Handler) Welcome(c *gin.Context) {
	resp.Success(c.Writer, "ProjectFlow API is running")
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	resp.Success(c.Writer, map[string]string{"status": "healthy"})
}

// bindJSON binds the request body and converts binding failures into the
// validation error kind.
func bindJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return ecode.Validation(bindMessage(err))
	}
	return nil
}

// bindMessage renders the first field violation as a client-facing message.
func bindMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request body"
	}

	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return "please provide " + field
	case "email":
		return "please provide a valid email"
	case "min":
		return field + " must be at least " + fe.Param() + " characters"
	case "oneof":
		return "invalid " + field
	}
	return "invalid " + field
}
