// Package access centralizes every permission decision in the tracker. The
// resolver is a pure function of the authenticated caller and the loaded
// resource; no other component encodes permission logic, and the resolver
// never reads request bodies.
package access

import (
	"github.com/projectflow/projectflow/internal/structs"
	"github.com/projectflow/projectflow/pkg/ecode"
)

// Action is the operation the caller requests on a resource.
type Action int

const (
	// ActionRead covers loads and listings of a single resource.
	ActionRead Action = iota
	// ActionUpdate covers field mutations.
	ActionUpdate
	// ActionDelete covers resource removal.
	ActionDelete
	// ActionCreateChild covers creating a child under the resource:
	// tasks under a project, comments under a task.
	ActionCreateChild
)

// Resource is a tagged variant over the resource kinds the resolver rules
// on. Construct one from loaded entities, never from request input.
type Resource interface {
	resource()
}

// ProjectResource wraps a loaded project.
type ProjectResource struct {
	Project *structs.Project
}

func (ProjectResource) resource() {}

// TaskResource wraps a loaded task together with its owning project. A nil
// Project marks the task unreachable: its project no longer exists.
type TaskResource struct {
	Task    *structs.Task
	Project *structs.Project
}

func (TaskResource) resource() {}

// UserDirectory is the admin-only user listing.
type UserDirectory struct{}

func (UserDirectory) resource() {}

// Decide returns nil when caller may perform action on res, or a typed
// error (forbidden, or not-found for unreachable resources) otherwise.
func Decide(caller *structs.User, res Resource, action Action) error {
	if caller == nil {
		return ecode.AuthFailed("not authenticated")
	}

	switch r := res.(type) {
	case ProjectResource:
		return decideProject(caller, r.Project, action)
	case TaskResource:
		return decideTask(caller, r, action)
	case UserDirectory:
		if caller.IsAdmin {
			return nil
		}
		return ecode.Forbidden("not authorized as admin")
	}
	return ecode.Forbidden("unknown resource")
}

func decideProject(caller *structs.User, p *structs.Project, action Action) error {
	if p == nil {
		return ecode.NotFound("project not found")
	}

	switch action {
	case ActionRead, ActionCreateChild:
		if isParticipant(caller, p) {
			return nil
		}
		return ecode.Forbidden("not authorized to access this project")
	case ActionUpdate:
		if isOwner(caller, p) {
			return nil
		}
		return ecode.Forbidden("not authorized to update this project")
	case ActionDelete:
		if isOwner(caller, p) {
			return nil
		}
		return ecode.Forbidden("not authorized to delete this project")
	}
	return ecode.Forbidden("not authorized")
}

func decideTask(caller *structs.User, r TaskResource, action Action) error {
	if r.Task == nil {
		return ecode.NotFound("task not found")
	}
	// A task whose project is gone is unreachable for every operation,
	// regardless of who asks.
	if r.Project == nil {
		return ecode.NotFound("task not found")
	}

	switch action {
	case ActionRead, ActionUpdate, ActionCreateChild:
		if isParticipant(caller, r.Project) {
			return nil
		}
		return ecode.Forbidden("not authorized to access this task")
	case ActionDelete:
		if isOwner(caller, r.Project) {
			return nil
		}
		return ecode.Forbidden("not authorized to delete this task")
	}
	return ecode.Forbidden("not authorized")
}

// isOwner compares identifiers by value equality.
func isOwner(caller *structs.User, p *structs.Project) bool {
	return p.Owner == caller.ID
}

// isParticipant accepts the owner or a listed member; an owner never needs
// to be added as a member of their own project.
func isParticipant(caller *structs.User, p *structs.Project) bool {
	return isOwner(caller, p) || p.HasMember(caller.ID)
}
