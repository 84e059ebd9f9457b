package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/projectflow/projectflow/internal/middleware"
	"github.com/projectflow/projectflow/internal/structs"
	"github.com/projectflow/projectflow/pkg/resp"
)

// Register handles POST /api/users/register.
func (h *Handler) Register(c *gin.Context) {
	var req structs.RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		resp.Fail(c.Writer, resp.FromError(err))
		return
	}

	auth, err := h.svc.User.Register(c.Request.Context(), &req)
	if err != nil {
		resp.Fail(c.Writer, resp.FromError(err))
		return
	}
	resp.WithStatusCode(c.Writer, http.StatusCreated, auth)
}

// Login handles POST /api/users/login.
func (h *Handler) Login(c *gin.Context) {
	var req structs.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		resp.Fail(c.Writer, resp.FromError(err))
		return
	}

	auth, err := h.svc.User.Login(c.Request.Context(), &req)
	if err != nil {
		resp.Fail(c.Writer, resp.FromError(err))
		return
	}
	resp.Success(c.Writer, auth)
}

// GetProfile handles GET /api/users/profile.
func (h *Handler) GetProfile(c *gin.Context) {
	resp.Success(c.Writer, middleware.CurrentUser(c))
}

// UpdateProfile handles PUT /api/users/profile.
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req structs.UpdateProfileRequest
	if err := bindJSON(c, &req); err != nil {
		resp.Fail(c.Writer, resp.FromError(err))
		return
	}

	user, err := h.svc.User.UpdateSelf(c.Request.Context(), middleware.CurrentUser(c), &req)
	if err != nil {
		resp.Fail(c.Writer, resp.FromError(err))
		return
	}
	resp.Success(c.Writer, user)
}

// ListUsers handles GET /api/users. Admin only.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.svc.User.List(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		resp.Fail(c.Writer, resp.FromError(err))
		return
	}
	resp.Success(c.Writer, users)
}
