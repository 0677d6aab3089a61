package turkle

import (
	"encoding/json"
	"time"
)

// User represents a platform account.
type User struct {
	ID          int        `json:"id"                    yaml:"id"`
	Username    string     `json:"username"              yaml:"username"`
	FirstName   string     `json:"first_name"            yaml:"first_name"`
	LastName    string     `json:"last_name"             yaml:"last_name"`
	Email       string     `json:"email"                 yaml:"email"`
	IsActive    bool       `json:"is_active"             yaml:"is_active"`
	DateJoined  *time.Time `json:"date_joined,omitempty" yaml:"date_joined,omitempty"`
	LastLogin   *time.Time `json:"last_login,omitempty"  yaml:"last_login,omitempty"`
	GroupIDs    []int      `json:"groups,omitempty"      yaml:"groups,omitempty"`
	IsStaff     bool       `json:"is_staff"              yaml:"is_staff"`
	IsSuperuser bool       `json:"is_superuser"          yaml:"is_superuser"`
}

// UserCreateRequest represents a request to create a user. Password is write-only.
type UserCreateRequest struct {
	Username  string `json:"username"             yaml:"username"`
	Password  string `json:"password,omitempty"   yaml:"password,omitempty"`
	FirstName string `json:"first_name,omitempty" yaml:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"  yaml:"last_name,omitempty"`
	Email     string `json:"email,omitempty"      yaml:"email,omitempty"`
}

// UserUpdateRequest represents a partial update of one user. ID selects the user.
type UserUpdateRequest struct {
	ID        int     `json:"id"                   yaml:"id"`
	Username  *string `json:"username,omitempty"   yaml:"username,omitempty"`
	Password  *string `json:"password,omitempty"   yaml:"password,omitempty"`
	FirstName *string `json:"first_name,omitempty" yaml:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"  yaml:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"      yaml:"email,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"  yaml:"is_active,omitempty"`
}

// UserRetrieveParams selects a user by id or username. ID wins when both are set.
type UserRetrieveParams struct {
	ID       int
	Username string
}

// Group represents a set of users.
type Group struct {
	ID    int    `json:"id"    yaml:"id"`
	Name  string `json:"name"  yaml:"name"`
	Users []int  `json:"users" yaml:"users"`
}

// GroupCreateRequest represents a request to create a group.
type GroupCreateRequest struct {
	Name  string `json:"name"            yaml:"name"`
	Users []int  `json:"users,omitempty" yaml:"users,omitempty"`
}

// GroupRetrieveParams selects a group by id or name. ID wins when both are
// set. Names are not guaranteed unique, so a name lookup may match several.
type GroupRetrieveParams struct {
	ID   int
	Name string
}

// GroupAddUsersRequest is the body of a group membership addition. Ids are
// sent as given; the server de-duplicates.
type GroupAddUsersRequest struct {
	Users []int `json:"users" yaml:"users"`
}

// Project represents a labeling task template.
type Project struct {
	ID                     int        `json:"id"                       yaml:"id"`
	Name                   string     `json:"name"                     yaml:"name"`
	HTMLTemplate           string     `json:"html_template"            yaml:"html_template"`
	Filename               string     `json:"filename"                 yaml:"filename"`
	Active                 bool       `json:"active"                   yaml:"active"`
	AllottedAssignmentTime int        `json:"allotted_assignment_time" yaml:"allotted_assignment_time"`
	AssignmentsPerTask     int        `json:"assignments_per_task"     yaml:"assignments_per_task"`
	LoginRequired          bool       `json:"login_required"           yaml:"login_required"`
	CreatedAt              *time.Time `json:"created_at,omitempty"     yaml:"created_at,omitempty"`
	UpdatedAt              *time.Time `json:"updated_at,omitempty"     yaml:"updated_at,omitempty"`
}

// ProjectCreateRequest represents a request to create a project.
type ProjectCreateRequest struct {
	Name                   string `json:"name"                               yaml:"name"`
	HTMLTemplate           string `json:"html_template"                      yaml:"html_template"`
	Filename               string `json:"filename"                           yaml:"filename"`
	Active                 *bool  `json:"active,omitempty"                   yaml:"active,omitempty"`
	AllottedAssignmentTime *int   `json:"allotted_assignment_time,omitempty" yaml:"allotted_assignment_time,omitempty"`
	AssignmentsPerTask     *int   `json:"assignments_per_task,omitempty"     yaml:"assignments_per_task,omitempty"`
	LoginRequired          *bool  `json:"login_required,omitempty"           yaml:"login_required,omitempty"`
}

// ProjectUpdateRequest represents a partial update of one project.
type ProjectUpdateRequest struct {
	ID                     int     `json:"id"                                 yaml:"id"`
	Name                   *string `json:"name,omitempty"                     yaml:"name,omitempty"`
	HTMLTemplate           *string `json:"html_template,omitempty"            yaml:"html_template,omitempty"`
	Filename               *string `json:"filename,omitempty"                 yaml:"filename,omitempty"`
	Active                 *bool   `json:"active,omitempty"                   yaml:"active,omitempty"`
	AllottedAssignmentTime *int    `json:"allotted_assignment_time,omitempty" yaml:"allotted_assignment_time,omitempty"`
	AssignmentsPerTask     *int    `json:"assignments_per_task,omitempty"     yaml:"assignments_per_task,omitempty"`
	LoginRequired          *bool   `json:"login_required,omitempty"           yaml:"login_required,omitempty"`
}

// Batch represents a unit of work items for a project.
type Batch struct {
	ID                     int        `json:"id"                       yaml:"id"`
	Name                   string     `json:"name"                     yaml:"name"`
	Project                int        `json:"project"                  yaml:"project"`
	Filename               string     `json:"filename"                 yaml:"filename"`
	Active                 bool       `json:"active"                   yaml:"active"`
	Published              bool       `json:"published"                yaml:"published"`
	AllottedAssignmentTime int        `json:"allotted_assignment_time" yaml:"allotted_assignment_time"`
	AssignmentsPerTask     int        `json:"assignments_per_task"     yaml:"assignments_per_task"`
	LoginRequired          bool       `json:"login_required"           yaml:"login_required"`
	CreatedAt              *time.Time `json:"created_at,omitempty"     yaml:"created_at,omitempty"`
}

// BatchCreateRequest represents a request to create a batch from CSV text.
type BatchCreateRequest struct {
	Name                   string `json:"name"                               yaml:"name"`
	Project                int    `json:"project"                            yaml:"project"`
	CSVText                string `json:"csv_text"                           yaml:"csv_text"`
	Filename               string `json:"filename"                           yaml:"filename"`
	Active                 *bool  `json:"active,omitempty"                   yaml:"active,omitempty"`
	Published              *bool  `json:"published,omitempty"                yaml:"published,omitempty"`
	AllottedAssignmentTime *int   `json:"allotted_assignment_time,omitempty" yaml:"allotted_assignment_time,omitempty"`
	AssignmentsPerTask     *int   `json:"assignments_per_task,omitempty"     yaml:"assignments_per_task,omitempty"`
	LoginRequired          *bool  `json:"login_required,omitempty"           yaml:"login_required,omitempty"`
}

// BatchUpdateRequest represents a partial update of one batch. The server
// rejects CSVText on update; it is carried only so that rejection reaches
// the caller unchanged. Use BatchesClient.AddTasks to add rows.
type BatchUpdateRequest struct {
	ID                     int     `json:"id"                                 yaml:"id"`
	Name                   *string `json:"name,omitempty"                     yaml:"name,omitempty"`
	Active                 *bool   `json:"active,omitempty"                   yaml:"active,omitempty"`
	Published              *bool   `json:"published,omitempty"                yaml:"published,omitempty"`
	AllottedAssignmentTime *int    `json:"allotted_assignment_time,omitempty" yaml:"allotted_assignment_time,omitempty"`
	AssignmentsPerTask     *int    `json:"assignments_per_task,omitempty"     yaml:"assignments_per_task,omitempty"`
	LoginRequired          *bool   `json:"login_required,omitempty"           yaml:"login_required,omitempty"`
	CSVText                *string `json:"csv_text,omitempty"                 yaml:"csv_text,omitempty"`
}

// BatchAddTasksRequest appends CSV rows to an existing batch.
type BatchAddTasksRequest struct {
	CSVText string `json:"csv_text" yaml:"csv_text"`
}

// BatchProgress is the decoded form of a batch progress response.
type BatchProgress struct {
	TotalTasks          int `json:"total_tasks"           yaml:"total_tasks"`
	TotalTaskAssignment int `json:"total_task_assignment" yaml:"total_task_assignment"`
	TotalFinishedTasks  int `json:"total_finished_tasks"  yaml:"total_finished_tasks"`
}

// Permissions is the access-control list of a project or batch.
type Permissions struct {
	Users  []int `json:"users"  yaml:"users"`
	Groups []int `json:"groups" yaml:"groups"`
}

// PermissionsRequest is the body of a permissions add or replace. For add the
// server merges the lists into the existing ACL; for replace it stores them
// verbatim. Nil lists are omitted and no defaults are filled in.
type PermissionsRequest struct {
	Users  []int `json:"users,omitempty"  yaml:"users,omitempty"`
	Groups []int `json:"groups,omitempty" yaml:"groups,omitempty"`
}

// InstanceType names the kind of object that carries permissions.
type InstanceType string

const (
	InstanceProject InstanceType = "project"
	InstanceBatch   InstanceType = "batch"
)

// Valid reports whether t is a recognized instance type.
func (t InstanceType) Valid() bool {
	return t == InstanceProject || t == InstanceBatch
}

// Page is one page of a cursor-paginated collection.
type Page struct {
	Results []json.RawMessage `json:"results"`
	Next    *string           `json:"next"`
}
