package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/projectflow/projectflow/internal/data/repository"
	"github.com/projectflow/projectflow/internal/structs"
)

// userRefs is a lookup of expanded user references keyed by identifier.
// Dangling references (a deleted account still named by a task or comment)
// resolve to a bare-id ref instead of failing the whole response.
type userRefs map[primitive.ObjectID]structs.UserRef

func (m userRefs) get(id primitive.ObjectID) structs.UserRef {
	if ref, ok := m[id]; ok {
		return ref
	}
	return structs.UserRef{ID: id.Hex()}
}

// loadUserRefs fetches the named users in one round-trip and returns the
// expansion map.
func loadUserRefs(ctx context.Context, repo repository.UserRepository, ids []primitive.ObjectID) (userRefs, error) {
	unique := make(map[primitive.ObjectID]struct{}, len(ids))
	distinct := ids[:0:0]
	for _, id := range ids {
		if _, ok := unique[id]; ok {
			continue
		}
		unique[id] = struct{}{}
		distinct = append(distinct, id)
	}

	users, err := repo.FindByIDs(ctx, distinct)
	if err != nil {
		return nil, err
	}

	refs := make(userRefs, len(users))
	for _, u := range users {
		refs[u.ID] = structs.UserRef{ID: u.ID.Hex(), Name: u.Name, Email: u.Email}
	}
	return refs, nil
}

func projectUserIDs(p *structs.Project) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(p.Members)+1)
	ids = append(ids, p.Owner)
	ids = append(ids, p.Members...)
	return ids
}

func taskUserIDs(t *structs.Task, withComments bool) []primitive.ObjectID {
	ids := []primitive.ObjectID{t.CreatedBy}
	if t.AssignedTo != nil {
		ids = append(ids, *t.AssignedTo)
	}
	if withComments {
		for _, c := range t.Comments {
			ids = append(ids, c.User)
		}
	}
	return ids
}

// projectView builds the listing shape: owner expanded, members left bare.
func projectView(p *structs.Project, refs userRefs) *structs.ProjectView {
	members := make([]string, 0, len(p.Members))
	for _, m := range p.Members {
		members = append(members, m.Hex())
	}
	return &structs.ProjectView{
		ID:          p.ID.Hex(),
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		Priority:    p.Priority,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Owner:       refs.get(p.Owner),
		Members:     members,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// projectDetail builds the single-project shape with members expanded and
// tasks attached.
func projectDetail(p *structs.Project, tasks []*structs.Task, refs userRefs) *structs.ProjectDetail {
	members := make([]structs.UserRef, 0, len(p.Members))
	for _, m := range p.Members {
		members = append(members, refs.get(m))
	}

	views := make([]structs.TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, *taskView(t, structs.ProjectRef{ID: p.ID.Hex(), Name: p.Name}, refs, false))
	}

	return &structs.ProjectDetail{
		ID:          p.ID.Hex(),
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		Priority:    p.Priority,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Owner:       refs.get(p.Owner),
		Members:     members,
		Tasks:       views,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// taskView builds the task shape. Comments are expanded only when
// withComments is set; list endpoints leave them out.
func taskView(t *structs.Task, project structs.ProjectRef, refs userRefs, withComments bool) *structs.TaskView {
	view := &structs.TaskView{
		ID:          t.ID.Hex(),
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		Project:     project,
		CreatedBy:   refs.get(t.CreatedBy),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.AssignedTo != nil {
		ref := refs.get(*t.AssignedTo)
		view.AssignedTo = &ref
	}
	if withComments {
		view.Comments = commentViews(t.Comments, refs)
	}
	return view
}

func commentViews(comments []structs.Comment, refs userRefs) []structs.CommentView {
	views := make([]structs.CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, structs.CommentView{
			Text:      c.Text,
			Author:    refs.get(c.User),
			CreatedAt: c.CreatedAt,
		})
	}
	return views
}
