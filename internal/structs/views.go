package structs

import "time"

// UserRef is a user reference expanded for the wire: {id, name, email}.
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProjectRef is a project reference expanded for the wire: {id, name}.
type ProjectRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AuthResponse carries the user and a freshly minted bearer credential.
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// ProjectView is the project shape returned by list endpoints: the owner is
// expanded, member identifiers stay bare.
type ProjectView struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Owner       UserRef    `json:"owner"`
	Members     []string   `json:"members"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ProjectDetail is the single-project shape: owner and members expanded,
// tasks attached with assignees expanded.
type ProjectDetail struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Owner       UserRef    `json:"owner"`
	Members     []UserRef  `json:"members"`
	Tasks       []TaskView `json:"tasks"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TaskView is the task shape returned on every task endpoint. Comments are
// attached (with authors expanded) only by the single-task lookup and the
// comment append.
type TaskView struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      Status        `json:"status"`
	Priority    Priority      `json:"priority"`
	DueDate     *time.Time    `json:"dueDate,omitempty"`
	Project     ProjectRef    `json:"project"`
	AssignedTo  *UserRef      `json:"assignedTo,omitempty"`
	CreatedBy   UserRef       `json:"createdBy"`
	Comments    []CommentView `json:"comments,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// CommentView is a comment with its author expanded.
type CommentView struct {
	Text      string    `json:"text"`
	Author    UserRef   `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}
