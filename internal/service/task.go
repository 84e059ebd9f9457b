package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/projectflow/projectflow/internal/access"
	"github.com/projectflow/projectflow/internal/data"
	"github.com/projectflow/projectflow/internal/structs"
	"github.com/projectflow/projectflow/pkg/ecode"
	"github.com/projectflow/projectflow/pkg/logger"
)

// TaskService handles task lifecycle and the comment thread.
type TaskService interface {
	Create(ctx context.Context, caller *structs.User, req *structs.CreateTaskRequest) (*structs.TaskView, error)
	List(ctx context.Context, caller *structs.User) ([]*structs.TaskView, error)
	Get(ctx context.Context, caller *structs.User, id string) (*structs.TaskView, error)
	Update(ctx context.Context, caller *structs.User, id string, req *structs.UpdateTaskRequest) (*structs.TaskView, error)
	Delete(ctx context.Context, caller *structs.User, id string) error
	AddComment(ctx context.Context, caller *structs.User, id string, req *structs.AddCommentRequest) ([]structs.CommentView, error)
}

type taskService struct {
	data   *data.Data
	logger *logger.Logger
}

// NewTaskService creates the task service.
func NewTaskService(d *data.Data, log *logger.Logger) TaskService {
	return &taskService{data: d, logger: log}
}

// Create stores a new task under the referenced project. The caller must be
// a participant of that project; the creator is always the caller.
func (s *taskService) Create(ctx context.Context, caller *structs.User, req *structs.CreateTaskRequest) (*structs.TaskView, error) {
	req.Normalize()
	if req.Title == "" {
		return nil, ecode.Validation("please provide title")
	}
	if req.Project == "" {
		return nil, ecode.Validation("please provide project")
	}
	if err := validateEnums(req.Status, req.Priority); err != nil {
		return nil, err
	}

	project, err := s.data.ProjectRepo.FindByID(ctx, req.Project)
	if err != nil {
		return nil, err
	}
	if err := access.Decide(caller, access.ProjectResource{Project: project}, access.ActionCreateChild); err != nil {
		return nil, err
	}

	task := &structs.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		Project:     project.ID,
		CreatedBy:   caller.ID,
	}
	if task.Status == "" {
		task.Status = structs.StatusNotStarted
	}
	if task.Priority == "" {
		task.Priority = structs.PriorityMedium
	}
	if req.AssignedTo != "" {
		assignee, err := s.data.UserRepo.FindByID(ctx, req.AssignedTo)
		if err != nil {
			if ecode.CodeOf(err) == ecode.NothingFound {
				return nil, ecode.Validation("assigned user not found")
			}
			return nil, err
		}
		task.AssignedTo = &assignee.ID
	}

	task, err = s.data.TaskRepo.Create(ctx, task)
	if err != nil {
		return nil, err
	}

	refs, err := loadUserRefs(ctx, s.data.UserRepo, taskUserIDs(task, false))
	if err != nil {
		return nil, err
	}
	return taskView(task, structs.ProjectRef{ID: project.ID.Hex(), Name: project.Name}, refs, false), nil
}

// List returns every task across the caller's visible projects.
func (s *taskService) List(ctx context.Context, caller *structs.User) ([]*structs.TaskView, error) {
	projects, err := s.data.ProjectRepo.FindVisible(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	projectIDs := make([]primitive.ObjectID, 0, len(projects))
	projectRefs := make(map[primitive.ObjectID]structs.ProjectRef, len(projects))
	for _, p := range projects {
		projectIDs = append(projectIDs, p.ID)
		projectRefs[p.ID] = structs.ProjectRef{ID: p.ID.Hex(), Name: p.Name}
	}

	tasks, err := s.data.TaskRepo.FindByProjects(ctx, projectIDs)
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

	views := make([]*structs.TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, taskView(t, projectRefs[t.Project], refs, false))
	}
	return views, nil
}

// Get returns the task with project, assignee, creator, and comment authors
// expanded.
func (s *taskService) Get(ctx context.Context, caller *structs.User, id string) (*structs.TaskView, error) {
	task, project, err := s.load(ctx, caller, id, access.ActionRead)
	if err != nil {
		return nil, err
	}

	refs, err := loadUserRefs(ctx, s.data.UserRepo, taskUserIDs(task, true))
	if err != nil {
		return nil, err
	}
	return taskView(task, structs.ProjectRef{ID: project.ID.Hex(), Name: project.Name}, refs, true), nil
}

// Update applies the provided fields over the stored task. Empty fields keep
// the stored value; the project binding and the creator never change.
func (s *taskService) Update(ctx context.Context, caller *structs.User, id string, req *structs.UpdateTaskRequest) (*structs.TaskView, error) {
	req.Normalize()
	if err := validateEnums(req.Status, req.Priority); err != nil {
		return nil, err
	}

	task, project, err := s.load(ctx, caller, id, access.ActionUpdate)
	if err != nil {
		return nil, err
	}

	if req.Title != "" {
		task.Title = req.Title
	}
	if req.Description != "" {
		task.Description = req.Description
	}
	if req.Status != "" {
		task.Status = req.Status
	}
	if req.Priority != "" {
		task.Priority = req.Priority
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.AssignedTo != "" {
		assignee, err := s.data.UserRepo.FindByID(ctx, req.AssignedTo)
		if err != nil {
			if ecode.CodeOf(err) == ecode.NothingFound {
				return nil, ecode.Validation("assigned user not found")
			}
			return nil, err
		}
		task.AssignedTo = &assignee.ID
	}

	task, err = s.data.TaskRepo.Update(ctx, task)
	if err != nil {
		return nil, err
	}

	refs, err := loadUserRefs(ctx, s.data.UserRepo, taskUserIDs(task, false))
	if err != nil {
		return nil, err
	}
	return taskView(task, structs.ProjectRef{ID: project.ID.Hex(), Name: project.Name}, refs, false), nil
}

// Delete removes the task. Only the owner of the task's project may delete;
// membership alone is not enough.
func (s *taskService) Delete(ctx context.Context, caller *structs.User, id string) error {
	task, _, err := s.load(ctx, caller, id, access.ActionDelete)
	if err != nil {
		return err
	}
	return s.data.TaskRepo.Delete(ctx, task.ID)
}

// AddComment appends to the task's comment thread and returns the full
// expanded list. Commenting requires read permission on the task; text is
// trimmed and must not be empty afterwards.
func (s *taskService) AddComment(ctx context.Context, caller *structs.User, id string, req *structs.AddCommentRequest) ([]structs.CommentView, error) {
	req.Normalize()
	if req.Text == "" {
		return nil, ecode.Validation("please provide text")
	}

	task, _, err := s.load(ctx, caller, id, access.ActionCreateChild)
	if err != nil {
		return nil, err
	}

	task, err = s.data.TaskRepo.AppendComment(ctx, task.ID, structs.Comment{
		Text:      req.Text,
		User:      caller.ID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	var ids []primitive.ObjectID
	for _, c := range task.Comments {
		ids = append(ids, c.User)
	}
	refs, err := loadUserRefs(ctx, s.data.UserRepo, ids)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "comment added", "task_id", task.ID.Hex())
	return commentViews(task.Comments, refs), nil
}

// load fetches the task and its project and runs the permission check. A
// task whose project has been removed is treated as gone: the lookup fails
// not-found no matter who asks, so orphans left by a racing project delete
// never leak.
func (s *taskService) load(ctx context.Context, caller *structs.User, id string, action access.Action) (*structs.Task, *structs.Project, error) {
	task, err := s.data.TaskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	project, err := s.data.ProjectRepo.FindByID(ctx, task.Project.Hex())
	if err != nil && ecode.CodeOf(err) != ecode.NothingFound {
		return nil, nil, err
	}

	if err := access.Decide(caller, access.TaskResource{Task: task, Project: project}, action); err != nil {
		return nil, nil, err
	}
	return task, project, nil
}
