package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/hltcoe/turkle-client/internal/http"
	"github.com/hltcoe/turkle-client/pkg/turkle"
)

const groupsPath = "/api/groups/"

// GroupsClient implements turkle.GroupsClient.
type GroupsClient struct {
	httpClient *http.Client
}

// NewGroupsClient creates a new groups client.
func NewGroupsClient(httpClient *http.Client) *GroupsClient {
	return &GroupsClient{
		httpClient: httpClient,
	}
}

// List implements turkle.GroupsClient.List.
func (c *GroupsClient) List(ctx context.Context) (string, error) {
	return walk(ctx, c.httpClient, groupsPath)
}

// Retrieve implements turkle.GroupsClient.Retrieve. Group names are not
// unique, so a name lookup walks every match and returns jsonl.
func (c *GroupsClient) Retrieve(ctx context.Context, params *turkle.GroupRetrieveParams) (string, error) {
	switch {
	case params == nil:
		return "", turkle.NewInvalidArgument("id or name must be passed")
	case params.ID > 0:
		return getText(ctx, c.httpClient, groupPath(params.ID))
	case params.Name != "":
		return walk(ctx, c.httpClient, groupsPath+"name/"+url.PathEscape(params.Name)+"/")
	default:
		return "", turkle.NewInvalidArgument("id or name must be passed")
	}
}

// Create implements turkle.GroupsClient.Create.
func (c *GroupsClient) Create(ctx context.Context, groups []turkle.GroupCreateRequest) (string, error) {
	return createEach(ctx, c.httpClient, groupsPath, groups)
}

// AddUsers implements turkle.GroupsClient.AddUsers. The ids are sent as
// given; the server ignores users already in the group.
func (c *GroupsClient) AddUsers(ctx context.Context, groupID int, userIDs []int) (string, error) {
	err := requireID(groupID)
	if err != nil {
		return "", err
	}

	if userIDs == nil {
		userIDs = []int{}
	}

	resp, err := c.httpClient.Post(ctx, groupPath(groupID)+"users/", &turkle.GroupAddUsersRequest{Users: userIDs})
	if err != nil {
		return "", err
	}

	return resp.Text(), nil
}

func groupPath(id int) string {
	return fmt.Sprintf("%s%d/", groupsPath, id)
}
