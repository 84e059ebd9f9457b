package structs

import (
	"strings"
	"time"
)

// String fields are trimmed before validation and storage; email case is
// handled at the store, everything else keeps its case. Passwords are never
// trimmed.

// RegisterRequest is the body of POST /api/users/register.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// Normalize trims the caller-supplied strings.
func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
}

// LoginRequest is the body of POST /api/users/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Normalize trims the caller-supplied strings.
func (r *LoginRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

// UpdateProfileRequest is the body of PUT /api/users/profile. Empty fields
// keep the stored value.
type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,min=6"`
}

// Normalize trims the caller-supplied strings.
func (r *UpdateProfileRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
}

// CreateProjectRequest is the body of POST /api/projects.
type CreateProjectRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description" binding:"required"`
	Status      Status     `json:"status" binding:"omitempty,oneof=not-started in-progress completed"`
	Priority    Priority   `json:"priority" binding:"omitempty,oneof=low medium high"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Members     []string   `json:"members"`
}

// Normalize trims the caller-supplied strings.
func (r *CreateProjectRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	trimAll(r.Members)
}

// UpdateProjectRequest is the body of PUT /api/projects/:id. Unset fields
// preserve the stored value; a non-nil Members slice replaces the set.
// Owner is immutable and rejected when present.
type UpdateProjectRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      Status     `json:"status" binding:"omitempty,oneof=not-started in-progress completed"`
	Priority    Priority   `json:"priority" binding:"omitempty,oneof=low medium high"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Members     []string   `json:"members"`
	Owner       string     `json:"owner"`
}

// Normalize trims the caller-supplied strings.
func (r *UpdateProjectRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.Owner = strings.TrimSpace(r.Owner)
	trimAll(r.Members)
}

// CreateTaskRequest is the body of POST /api/tasks.
type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Status      Status     `json:"status" binding:"omitempty,oneof=not-started in-progress completed"`
	Priority    Priority   `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"dueDate"`
	Project     string     `json:"project" binding:"required"`
	AssignedTo  string     `json:"assignedTo"`
}

// Normalize trims the caller-supplied strings.
func (r *CreateTaskRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Project = strings.TrimSpace(r.Project)
	r.AssignedTo = strings.TrimSpace(r.AssignedTo)
}

// UpdateTaskRequest is the body of PUT /api/tasks/:id. Empty fields keep
// the stored value. Project and creator have no bindings here: the surface
// accepts but silently ignores them.
type UpdateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      Status     `json:"status" binding:"omitempty,oneof=not-started in-progress completed"`
	Priority    Priority   `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"dueDate"`
	AssignedTo  string     `json:"assignedTo"`
}

// Normalize trims the caller-supplied strings.
func (r *UpdateTaskRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.AssignedTo = strings.TrimSpace(r.AssignedTo)
}

// AddCommentRequest is the body of POST /api/tasks/:id/comments.
type AddCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// Normalize trims the comment text.
func (r *AddCommentRequest) Normalize() {
	r.Text = strings.TrimSpace(r.Text)
}

func trimAll(values []string) {
	for i, v := range values {
		values[i] = strings.TrimSpace(v)
	}
}
