package turkle

import (
	"context"
	"time"
)

// UsersClient manages platform accounts.
type UsersClient interface {
	List(ctx context.Context) (string, error)
	Retrieve(ctx context.Context, params *UserRetrieveParams) (string, error)
	Create(ctx context.Context, users []UserCreateRequest) (string, error)
	Update(ctx context.Context, users []UserUpdateRequest) (string, error)
}

// GroupsClient manages groups and their membership.
type GroupsClient interface {
	List(ctx context.Context) (string, error)
	Retrieve(ctx context.Context, params *GroupRetrieveParams) (string, error)
	Create(ctx context.Context, groups []GroupCreateRequest) (string, error)
	AddUsers(ctx context.Context, groupID int, userIDs []int) (string, error)
}

// ProjectsClient manages projects.
type ProjectsClient interface {
	List(ctx context.Context) (string, error)
	Retrieve(ctx context.Context, id int) (string, error)
	Create(ctx context.Context, projects []ProjectCreateRequest) (string, error)
	Update(ctx context.Context, projects []ProjectUpdateRequest) (string, error)
	Batches(ctx context.Context, projectID int) (string, error)
}

// BatchesClient manages batches and their input, results and progress.
type BatchesClient interface {
	List(ctx context.Context) (string, error)
	Retrieve(ctx context.Context, id int) (string, error)
	Create(ctx context.Context, batches []BatchCreateRequest) (string, error)
	Update(ctx context.Context, batches []BatchUpdateRequest) (string, error)
	AddTasks(ctx context.Context, id int, request *BatchAddTasksRequest) (string, error)
	Input(ctx context.Context, id int) (string, error)
	Results(ctx context.Context, id int) (string, error)
	Progress(ctx context.Context, id int) (string, error)
}

// PermissionsClient manages the access-control lists of projects and batches.
type PermissionsClient interface {
	Retrieve(ctx context.Context, instanceType InstanceType, instanceID int) (string, error)
	Add(ctx context.Context, instanceType InstanceType, instanceID int, request *PermissionsRequest) (string, error)
	Replace(ctx context.Context, instanceType InstanceType, instanceID int, request *PermissionsRequest) (string, error)
}

// Client provides access to all resource clients.
type Client interface {
	Users() UsersClient
	Groups() GroupsClient
	Projects() ProjectsClient
	Batches() BatchesClient
	Permissions() PermissionsClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a Client.
//
// Requests are issued once by default. Set RetryMax to retry connection
// errors, 429 and 5xx responses with exponential backoff between
// RetryWaitMin and RetryWaitMax. Per-request deadlines belong on the context
// passed to each call; HTTPTimeout is an optional ceiling for callers
// without one.
type Config struct {
	// BaseURL is the Turkle site, e.g. "http://localhost:8000/". Trailing
	// slashes are stripped.
	BaseURL string
	// Token is the API token sent as "Authorization: TOKEN <token>".
	Token string

	HTTPTimeout  time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	// Debug enables request/response logging when a Logger is provided.
	Debug     bool
	Logger    Logger
	UserAgent string
}
