package service

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/projectflow/projectflow/internal/data"
	"github.com/projectflow/projectflow/internal/structs"
	"github.com/projectflow/projectflow/pkg/ecode"
	"github.com/projectflow/projectflow/pkg/logger"
)

// In-memory repositories backing the service tests. They mirror the store
// semantics the services rely on: unique emails, not-found on unknown ids,
// and comment append returning the updated document.

type fakeUserRepo struct {
	users map[primitive.ObjectID]*structs.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*structs.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *structs.User) (*structs.User, error) {
	email := strings.ToLower(user.Email)
	for _, u := range r.users {
		if u.Email == email {
			return nil, ecode.Conflicted("user already exists")
		}
	}
	user.ID = primitive.NewObjectID()
	user.Email = email
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	stored := *user
	r.users[user.ID] = &stored
	return user, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*structs.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ecode.NotFound("user not found")
	}
	u, ok := r.users[objectID]
	if !ok {
		return nil, ecode.NotFound("user not found")
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*structs.User, error) {
	email = strings.ToLower(email)
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ecode.NotFound("user not found")
}

func (r *fakeUserRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]*structs.User, error) {
	var out []*structs.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			copied := *u
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*structs.User, error) {
	out := make([]*structs.User, 0, len(r.users))
	for _, u := range r.users {
		copied := *u
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *structs.User) (*structs.User, error) {
	stored, ok := r.users[user.ID]
	if !ok {
		return nil, ecode.NotFound("user not found")
	}
	email := strings.ToLower(user.Email)
	for id, u := range r.users {
		if id != user.ID && u.Email == email {
			return nil, ecode.Validation("email already in use")
		}
	}
	user.Email = email
	user.UpdatedAt = time.Now().UTC()
	user.CreatedAt = stored.CreatedAt
	copied := *user
	r.users[user.ID] = &copied
	return user, nil
}

type fakeProjectRepo struct {
	projects map[primitive.ObjectID]*structs.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[primitive.ObjectID]*structs.Project)}
}

func (r *fakeProjectRepo) Create(_ context.Context, project *structs.Project) (*structs.Project, error) {
	project.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	project.CreatedAt = now
	project.UpdatedAt = now
	if project.StartDate.IsZero() {
		project.StartDate = now
	}
	if project.Members == nil {
		project.Members = []primitive.ObjectID{}
	}
	stored := *project
	r.projects[project.ID] = &stored
	return project, nil
}

func (r *fakeProjectRepo) FindByID(_ context.Context, id string) (*structs.Project, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ecode.NotFound("project not found")
	}
	p, ok := r.projects[objectID]
	if !ok {
		return nil, ecode.NotFound("project not found")
	}
	copied := *p
	return &copied, nil
}

func (r *fakeProjectRepo) FindVisible(_ context.Context, userID primitive.ObjectID) ([]*structs.Project, error) {
	var out []*structs.Project
	for _, p := range r.projects {
		if p.Owner == userID || p.HasMember(userID) {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) Update(_ context.Context, project *structs.Project) (*structs.Project, error) {
	if _, ok := r.projects[project.ID]; !ok {
		return nil, ecode.NotFound("project not found")
	}
	project.UpdatedAt = time.Now().UTC()
	copied := *project
	r.projects[project.ID] = &copied
	return project, nil
}

func (r *fakeProjectRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.projects[id]; !ok {
		return ecode.NotFound("project not found")
	}
	delete(r.projects, id)
	return nil
}

type fakeTaskRepo struct {
	tasks map[primitive.ObjectID]*structs.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[primitive.ObjectID]*structs.Task)}
}

func (r *fakeTaskRepo) Create(_ context.Context, task *structs.Task) (*structs.Task, error) {
	task.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now
	if task.Comments == nil {
		task.Comments = []structs.Comment{}
	}
	stored := *task
	r.tasks[task.ID] = &stored
	return task, nil
}

func (r *fakeTaskRepo) FindByID(_ context.Context, id string) (*structs.Task, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ecode.NotFound("task not found")
	}
	t, ok := r.tasks[objectID]
	if !ok {
		return nil, ecode.NotFound("task not found")
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTaskRepo) FindByProject(_ context.Context, projectID primitive.ObjectID) ([]*structs.Task, error) {
	var out []*structs.Task
	for _, t := range r.tasks {
		if t.Project == projectID {
			copied := *t
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) FindByProjects(_ context.Context, projectIDs []primitive.ObjectID) ([]*structs.Task, error) {
	var out []*structs.Task
	for _, t := range r.tasks {
		for _, id := range projectIDs {
			if t.Project == id {
				copied := *t
				out = append(out, &copied)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *structs.Task) (*structs.Task, error) {
	if _, ok := r.tasks[task.ID]; !ok {
		return nil, ecode.NotFound("task not found")
	}
	task.UpdatedAt = time.Now().UTC()
	copied := *task
	r.tasks[task.ID] = &copied
	return task, nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.tasks[id]; !ok {
		return ecode.NotFound("task not found")
	}
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) DeleteByProject(_ context.Context, projectID primitive.ObjectID) error {
	for id, t := range r.tasks {
		if t.Project == projectID {
			delete(r.tasks, id)
		}
	}
	return nil
}

func (r *fakeTaskRepo) AppendComment(_ context.Context, id primitive.ObjectID, comment structs.Comment) (*structs.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, ecode.NotFound("task not found")
	}
	t.Comments = append(t.Comments, comment)
	t.UpdatedAt = time.Now().UTC()
	copied := *t
	return &copied, nil
}

// newTestData assembles a data layer over the in-memory repositories.
func newTestData() *data.Data {
	return &data.Data{
		UserRepo:    newFakeUserRepo(),
		ProjectRepo: newFakeProjectRepo(),
		TaskRepo:    newFakeTaskRepo(),
	}
}

func testLogger() *logger.Logger {
	return logger.StdLogger()
}
