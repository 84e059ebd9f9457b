package service

import (
	"context"
	"testing"

	"github.com/projectflow/projectflow/internal/structs"
	"github.com/projectflow/projectflow/pkg/ecode"
)

func createProject(t *testing.T, svc *Service, owner *structs.User, name string, members ...string) *structs.ProjectView {
	t.Helper()
	project, err := svc.Project.Create(context.Background(), owner, &structs.CreateProjectRequest{
		Name:        name,
		Description: "d",
		Members:     members,
	})
	if err != nil {
		t.Fatalf("Create project %s error = %v", name, err)
	}
	return project
}

func TestCreateProjectDefaults(t *testing.T) {
	svc, _ := newTestService()
	alice := register(t, svc, "Alice", "alice@example.com")

	project := createProject(t, svc, alice.User, "P1")

	if project.Status != structs.StatusNotStarted {
		t.Errorf("Status = %q, want %q", project.Status, structs.StatusNotStarted)
	}
	if project.Priority != structs.PriorityMedium {
		t.Errorf("Priority = %q, want %q", project.Priority, structs.PriorityMedium)
	}
	if len(project.Members) != 0 {
		t.Errorf("Members = %v, want empty", project.Members)
	}
	if project.Owner.ID != alice.User.ID.Hex() {
		t.Errorf("Owner = %s, want caller %s", project.Owner.ID, alice.User.ID.Hex())
	}
	if project.StartDate.IsZero() {
		t.Error("StartDate not defaulted")
	}
}

func TestCreateProjectOwnerNeverListedAsMember(t *testing.T) {
	svc, _ := newTestService()
	alice := register(t, svc, "Alice", "alice@example.com")
	bob := register(t, svc, "Bob", "bob@example.com")

	project := createProject(t, svc, alice.User, "P1", alice.User.ID.Hex(), bob.User.ID.Hex(), bob.User.ID.Hex())

	if len(project.Members) != 1 || project.Members[0] != bob.User.ID.Hex() {
		t.Errorf("Members = %v, want only %s", project.Members, bob.User.ID.Hex())
	}
}

func TestCreateProjectInvalidMemberID(t *testing.T) {
	svc, _ := newTestService()
	alice := register(t, svc, "Alice", "alice@example.com")

	_, err := svc.Project.Create(context.Background(), alice.User, &structs.CreateProjectRequest{
		Name:        "P1",
		Description: "d",
		Members:     []string{"not-a-hex-id"},
	})
	if ecode.CodeOf(err) != ecode.RequestErr {
		t.Errorf("invalid member id code = %d, want %d", ecode.CodeOf(err), ecode.RequestErr)
	}
}

func TestCreateProjectTrimsStrings(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	alice := register(t, svc, "Alice", "alice@example.com")

	project, err := svc.Project.Create(ctx, alice.User, &structs.CreateProjectRequest{
		Name:        "  P1  ",
		Description: "\td\n",
	})
	if err != nil {
		t.Fatalf("Create error = %v", err)
	}
	if project.Name != "P1" {
		t.Errorf("Name = %q, want trimmed %q", project.Name, "P1")
	}
	if project.Description != "d" {
		t.Errorf("Description = %q, want trimmed %q", project.Description, "d")
	}

	// Whitespace-only required fields count as missing even though the
	// binding layer sees a non-empty string.
	_, err = svc.Project.Create(ctx, alice.User, &structs.CreateProjectRequest{Name: "   ", Description: "d"})
	if ecode.CodeOf(err) != ecode.RequestErr {
		t.Errorf("whitespace name code = %d, want %d", ecode.CodeOf(err), ecode.RequestErr)
	}
	_, err = svc.Project.Create(ctx, alice.User, &structs.CreateProjectRequest{Name: "P1", Description: "\t"})
	if ecode.CodeOf(err) != ecode.RequestErr {
		t.Errorf("whitespace description code = %d, want %d", ecode.CodeOf(err), ecode.RequestErr)
	}
}

func TestProjectEnumValuesChecked(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	alice := register(t, svc, "Alice", "alice@example.com")

	_, err := svc.Project.Create(ctx, alice.User, &structs.CreateProjectRequest{
		Name:        "P1",
		Description: "d",
		Status:      structs.Status("bogus"),
	})
	if ecode.CodeOf(err) != ecode.RequestErr {
		t.Errorf("bad status code = %d, want %d", ecode.CodeOf(err), ecode.RequestErr)
	}

	project := createProject(t, svc, alice.User, "P1")
	_, err = svc.Project.Update(ctx, alice.User, project.ID, &structs.UpdateProjectRequest{
		Priority: structs.Priority("urgent"),
	})
	if ecode.CodeOf(err) != ecode.RequestErr {
		t.Errorf("bad priority code = %d, want %d", ecode.CodeOf(err), ecode.RequestErr)
	}
}

func TestListVisible(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	alice := register(t, svc, "Alice", "alice@example.com")
	bob := register(t, svc, "Bob", "bob@example.com")
	carol := register(t, svc, "Carol", "carol@example.com")

	createProject(t, svc, alice.User, "P1", bob.User.ID.Hex())
	createProject(t, svc, carol.User, "P2")

	for caller, want := range map[*structs.User]int{alice.User: 1, bob.User: 1, carol.User: 1} {
		got, err := svc.Project.ListVisible(ctx, caller)
		if err != nil {
			t.Fatalf("ListVisible(%s) error = %v", caller.Name, err)
		}
		if len(got) != want {
			t.Errorf("ListVisible(%s) = %d projects, want %d", caller.Name, len(got), want)
		}
	}

	// Every visible project has the caller as owner or member.
	visible, _ := svc.Project.ListVisible(ctx, bob.User)
	for _, p := range visible {
		isOwner := p.Owner.ID == bob.User.ID.Hex()
		isMember := false
		for _, m := range p.Members {
			if m == bob.User.ID.Hex() {
				isMember = true
			}
		}
		if !isOwner && !isMember {
			t.Errorf("project %s visible to non-participant", p.ID)
		}
	}
}

func TestGetProjectAuthorization(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	alice := register(t, svc, "Alice", "alice@example.com")
	bob := register(t, svc, "Bob", "bob@example.com")
	carol := register(t, svc, "Carol", "carol@example.com")

	project := createProject(t, svc, alice.User, "P1", bob.User.ID.Hex())

	if _, err := svc.Project.Get(ctx, bob.User, project.ID); err != nil {
		t.Errorf("member Get error = %v", err)
	}
	if _, err := svc.Project.Get(ctx, carol.User, project.ID); ecode.CodeOf(err) != ecode.AccessDenied {
		t.Errorf("stranger Get code = %d, want %d", ecode.CodeOf(err), ecode.AccessDenied)
	}
	if _, err := svc.Project.Get(ctx, alice.User, "bad-id"); ecode.CodeOf(err) != ecode.NothingFound {
		t.Errorf("unknown id Get code = %d, want %d", ecode.CodeOf(err), ecode.NothingFound)
	}
}

func TestGetProjectExpandsMembersAndTasks(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	alice := register(t, svc, "Alice", "alice@example.com")
	bob := register(t, svc, "Bob", "bob@example.com")

	project := createProject(t, svc, alice.User, "P1", bob.User.ID.Hex())
	if _, err := svc.Task.Create(ctx, bob.User, &structs.CreateTaskRequest{
		Title:      "T1",
		Project:    project.ID,
		AssignedTo: bob.User.ID.Hex(),
	}); err != nil {
		t.Fatalf("Create task error = %v", err)
	}

	detail, err := svc.Project.Get(ctx, alice.User, project.ID)
	if err != nil {
		t.Fatalf("Get error = %v", err)
	}
	if detail.Owner.Email != "alice@example.com" {
		t.Errorf("Owner not expanded: %+v", detail.Owner)
	}
	if len(detail.Members) != 1 || detail.Members[0].Name != "Bob" {
		t.Errorf("Members not expanded: %+v", detail.Members)
	}
	if len(detail.Tasks) != 1 {
		t.Fatalf("Tasks = %d, want 1", len(detail.Tasks))
	}
	task := detail.Tasks[0]
	if task.AssignedTo == nil || task.AssignedTo.Name != "Bob" {
		t.Errorf("assignee not expanded: %+v", task.AssignedTo)
	}
	if task.CreatedBy.Name != "Bob" {
		t.Errorf("creator not expanded: %+v", task.CreatedBy)
	}
}

func TestUpdateProjectOwnerOnly(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	alice := register(t, svc, "Alice", "alice@example.com")
	bob := register(t, svc, "Bob", "bob@example.com")

	project := createProject(t, svc, alice.User, "P1", bob.User.ID.Hex())

	_, err := svc.Project.Update(ctx, bob.User, project.ID, &structs.UpdateProjectRequest{Name: "renamed"})
	if ecode.CodeOf(err) != ecode.AccessDenied {
		t.Errorf("member update code = %d, want %d", ecode.CodeOf(err), ecode.AccessDenied)
	}

	updated, err := svc.Project.Update(ctx, alice.User, project.ID, &structs.UpdateProjectRequest{Status: structs.StatusInProgress})
	if err != nil {
		t.Fatalf("owner update error = %v", err)
	}
	if updated.Status != structs.StatusInProgress {
		t.Errorf("Status = %q, want %q", updated.Status, structs.StatusInProgress)
	}
	if updated.Name != "P1" {
		t.Errorf("Name changed on status-only update: %q", updated.Name)
	}
}

func TestUpdateProjectEmptyBodyIsNoOp(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	alice := register(t, svc, "Alice", "alice@example.com")
	bob := register(t, svc, "Bob", "bob@example.com")

	project := createProject(t, svc, alice.User, "P1", bob.User.ID.Hex())

	updated, err := svc.Project.Update(ctx, alice.User, project.ID, &structs.UpdateProjectRequest{})
	if err != nil {
		t.Fatalf("empty update error = %v", err)
	}
	if updated.Name != project.Name || updated.Description != project.Description ||
		updated.Status != project.Status || updated.Priority != project.Priority {
		t.Errorf("empty update mutated fields: %+v", updated)
	}
	if len(updated.Members) != 1 {
		t.Errorf("empty update replaced members: %v", updated.Members)
	}
}

func TestUpdateProjectMembersReplacement(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	alice := register(t, svc, "Alice", "alice@example.com")
	bob := register(t, svc, "Bob", "bob@example.com")
	carol := register(t, svc, "Carol", "carol@example.com")

	project := createProject(t, svc, alice.User, "P1", bob.User.ID.Hex())

	// An explicit empty slice clears the set; a nil slice keeps it.
	updated, err := svc.Project.Update(ctx, alice.User, project.ID, &structs.UpdateProjectRequest{Members: []string{carol.User.ID.Hex()}})
	if err != nil {
		t.Fatalf("members update error = %v", err)
	}
	if len(updated.Members) != 1 || updated.Members[0] != carol.User.ID.Hex() {
		t.Errorf("Members = %v, want [%s]", updated.Members, carol.User.ID.Hex())
	}

	updated, err = svc.Project.Update(ctx, alice.User, project.ID, &structs.UpdateProjectRequest{Members: []string{}})
	if err != nil {
		t.Fatalf("members clear error = %v", err)
	}
	if len(updated.Members) != 0 {
		t.Errorf("Members = %v, want empty after explicit clear", updated.Members)
	}
}

func TestUpdateProjectOwnerImmutable(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	alice := register(t, svc, "Alice", "alice@example.com")
	bob := register(t, svc, "Bob", "bob@example.com")

	project := createProject(t, svc, alice.User, "P1")

	_, err := svc.Project.Update(ctx, alice.User, project.ID, &structs.UpdateProjectRequest{Owner: bob.User.ID.Hex()})
	if ecode.CodeOf(err) != ecode.RequestErr {
		t.Errorf("owner change code = %d, want %d", ecode.CodeOf(err), ecode.RequestErr)
	}
}

func TestDeleteProjectCascades(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	alice := register(t, svc, "Alice", "alice@example.com")
	bob := register(t, svc, "Bob", "bob@example.com")

	project := createProject(t, svc, alice.User, "P1", bob.User.ID.Hex())
	task, err := svc.Task.Create(ctx, alice.User, &structs.CreateTaskRequest{Title: "T1", Project: project.ID})
	if err != nil {
		t.Fatalf("Create task error = %v", err)
	}

	if err := svc.Project.Delete(ctx, bob.User, project.ID); ecode.CodeOf(err) != ecode.AccessDenied {
		t.Errorf("member delete code = %d, want %d", ecode.CodeOf(err), ecode.AccessDenied)
	}

	if err := svc.Project.Delete(ctx, alice.User, project.ID); err != nil {
		t.Fatalf("owner delete error = %v", err)
	}

	if _, err := svc.Project.Get(ctx, alice.User, project.ID); ecode.CodeOf(err) != ecode.NothingFound {
		t.Errorf("deleted project Get code = %d, want %d", ecode.CodeOf(err), ecode.NothingFound)
	}
	if _, err := svc.Task.Get(ctx, alice.User, task.ID); ecode.CodeOf(err) != ecode.NothingFound {
		t.Errorf("cascaded task Get code = %d, want %d", ecode.CodeOf(err), ecode.NothingFound)
	}
}

func TestListTasksSameAuthorizationAsGet(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	alice := register(t, svc, "Alice", "alice@example.com")
	carol := register(t, svc, "Carol", "carol@example.com")

	project := createProject(t, svc, alice.User, "P1")
	if _, err := svc.Task.Create(ctx, alice.User, &structs.CreateTaskRequest{Title: "T1", Project: project.ID}); err != nil {
		t.Fatalf("Create task error = %v", err)
	}

	tasks, err := svc.Project.ListTasks(ctx, alice.User, project.ID)
	if err != nil {
		t.Fatalf("owner ListTasks error = %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("ListTasks = %d tasks, want 1", len(tasks))
	}
	if tasks[0].CreatedBy.Name != "Alice" {
		t.Errorf("creator not expanded: %+v", tasks[0].CreatedBy)
	}

	if _, err := svc.Project.ListTasks(ctx, carol.User, project.ID); ecode.CodeOf(err) != ecode.AccessDenied {
		t.Errorf("stranger ListTasks code = %d, want %d", ecode.CodeOf(err), ecode.AccessDenied)
	}
}
