package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/projectflow/projectflow/internal/access"
	"github.com/projectflow/projectflow/internal/data"
	"github.com/projectflow/projectflow/internal/structs"
	"github.com/projectflow/projectflow/pkg/ecode"
	"github.com/projectflow/projectflow/pkg/logger"
)

// ProjectService handles project lifecycle and the task cascade.
type ProjectService interface {
	Create(ctx context.Context, caller *structs.User, req *structs.CreateProjectRequest) (*structs.ProjectView, error)
	ListVisible(ctx context.Context, caller *structs.User) ([]*structs.ProjectView, error)
	Get(ctx context.Context, caller *structs.User, id string) (*structs.ProjectDetail, error)
	Update(ctx context.Context, caller *structs.User, id string, req *structs.UpdateProjectRequest) (*structs.ProjectView, error)
	Delete(ctx context.Context, caller *structs.User, id string) error
	ListTasks(ctx context.Context, caller *structs.User, id string) ([]*structs.TaskView, error)
}

type projectService struct {
	data   *data.Data
	logger *logger.Logger
}

// NewProjectService creates the project service.
func NewProjectService(d *data.Data, log *logger.Logger) ProjectService {
	return &projectService{data: d, logger: log}
}

// Create stores a new project with the caller fixed as owner. Name and
// description are trimmed; whitespace-only values count as missing.
func (s *projectService) Create(ctx context.Context, caller *structs.User, req *structs.CreateProjectRequest) (*structs.ProjectView, error) {
	req.Normalize()
	if req.Name == "" {
		return nil, ecode.Validation("please provide name")
	}
	if req.Description == "" {
		return nil, ecode.Validation("please provide description")
	}
	if err := validateEnums(req.Status, req.Priority); err != nil {
		return nil, err
	}

	members, err := parseMemberIDs(req.Members, caller.ID)
	if err != nil {
		return nil, err
	}

	project := &structs.Project{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		EndDate:     req.EndDate,
		Owner:       caller.ID,
		Members:     members,
	}
	if project.Status == "" {
		project.Status = structs.StatusNotStarted
	}
	if project.Priority == "" {
		project.Priority = structs.PriorityMedium
	}
	if req.StartDate != nil {
		project.StartDate = *req.StartDate
	}

	project, err = s.data.ProjectRepo.Create(ctx, project)
	if err != nil {
		return nil, err
	}

	refs := userRefs{caller.ID: {ID: caller.ID.Hex(), Name: caller.Name, Email: caller.Email}}
	return projectView(project, refs), nil
}

// ListVisible returns every project where the caller is owner or member,
// with owners expanded.
func (s *projectService) ListVisible(ctx context.Context, caller *structs.User) ([]*structs.ProjectView, error) {
	projects, err := s.data.ProjectRepo.FindVisible(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	var ownerIDs []primitive.ObjectID
	for _, p := range projects {
		ownerIDs = append(ownerIDs, p.Owner)
	}
	refs, err := loadUserRefs(ctx, s.data.UserRepo, ownerIDs)
	if err != nil {
		return nil, err
	}

	views := make([]*structs.ProjectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, projectView(p, refs))
	}
	return views, nil
}

// Get returns the project with owner and members expanded and its tasks
// attached.
func (s *projectService) Get(ctx context.Context, caller *structs.User, id string) (*structs.ProjectDetail, error) {
	project, err := s.data.ProjectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Decide(caller, access.ProjectResource{Project: project}, access.ActionRead); err != nil {
		return nil, err
	}

	tasks, err := s.data.TaskRepo.FindByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	ids := projectUserIDs(project)
	for _, t := range tasks {
		ids = append(ids, taskUserIDs(t, false)...)
	}
	refs, err := loadUserRefs(ctx, s.data.UserRepo, ids)
	if err != nil {
		return nil, err
	}

	return projectDetail(project, tasks, refs), nil
}

// Update applies the provided fields over the stored project. Unset fields
// keep the stored value; a non-nil members slice replaces the whole set.
func (s *projectService) Update(ctx context.Context, caller *structs.User, id string, req *structs.UpdateProjectRequest) (*structs.ProjectView, error) {
	req.Normalize()
	if req.Owner != "" {
		return nil, ecode.Validation("project owner cannot be changed")
	}
	if err := validateEnums(req.Status, req.Priority); err != nil {
		return nil, err
	}

	project, err := s.data.ProjectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Decide(caller, access.ProjectResource{Project: project}, access.ActionUpdate); err != nil {
		return nil, err
	}

	if req.Name != "" {
		project.Name = req.Name
	}
	if req.Description != "" {
		project.Description = req.Description
	}
	if req.Status != "" {
		project.Status = req.Status
	}
	if req.Priority != "" {
		project.Priority = req.Priority
	}
	if req.StartDate != nil {
		project.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		project.EndDate = req.EndDate
	}
	if req.Members != nil {
		members, err := parseMemberIDs(req.Members, project.Owner)
		if err != nil {
			return nil, err
		}
		project.Members = members
	}

	project, err = s.data.ProjectRepo.Update(ctx, project)
	if err != nil {
		return nil, err
	}

	refs, err := loadUserRefs(ctx, s.data.UserRepo, []primitive.ObjectID{project.Owner})
	if err != nil {
		return nil, err
	}
	return projectView(project, refs), nil
}

// Delete removes the project and every task under it. The task removal runs
// first so that a failure between the two steps leaves no orphan tasks
// behind a still-visible project.
func (s *projectService) Delete(ctx context.Context, caller *structs.User, id string) error {
	project, err := s.data.ProjectRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := access.Decide(caller, access.ProjectResource{Project: project}, access.ActionDelete); err != nil {
		return err
	}

	err = s.data.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.data.TaskRepo.DeleteByProject(txCtx, project.ID); err != nil {
			return err
		}
		return s.data.ProjectRepo.Delete(txCtx, project.ID)
	})
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "project cascade complete", "project_id", project.ID.Hex())
	return nil
}

// ListTasks returns the project's tasks with assignee and creator expanded.
// Same authorization as Get.
func (s *projectService) ListTasks(ctx context.Context, caller *structs.User, id string) ([]*structs.TaskView, error) {
	project, err := s.data.ProjectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.Decide(caller, access.ProjectResource{Project: project}, access.ActionRead); err != nil {
		return nil, err
	}

	tasks, err := s.data.TaskRepo.FindByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	var ids []primitive.ObjectID
	for _, t := range tasks {
		ids = append(ids, taskUserIDs(t, false)...)
	}
	refs, err := loadUserRefs(ctx, s.data.UserRepo, ids)
	if err != nil {
		return nil, err
	}

	projectRef := structs.ProjectRef{ID: project.ID.Hex(), Name: project.Name}
	views := make([]*structs.TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, taskView(t, projectRef, refs, false))
	}
	return views, nil
}

// parseMemberIDs converts the wire identifiers, dropping duplicates and the
// owner: an owner never needs to appear in their own members set.
func parseMemberIDs(raw []string, owner primitive.ObjectID) ([]primitive.ObjectID, error) {
	members := make([]primitive.ObjectID, 0, len(raw))
	seen := make(map[primitive.ObjectID]struct{}, len(raw))
	for _, r := range raw {
		id, err := primitive.ObjectIDFromHex(r)
		if err != nil {
			return nil, ecode.Validation("invalid member id")
		}
		if id == owner {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		members = append(members, id)
	}
	return members, nil
}
