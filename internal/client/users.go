package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/hltcoe/turkle-client/internal/http"
	"github.com/hltcoe/turkle-client/pkg/turkle"
)

const usersPath = "/api/users/"

// UsersClient implements turkle.UsersClient.
type UsersClient struct {
	httpClient *http.Client
}

// NewUsersClient creates a new users client.
func NewUsersClient(httpClient *http.Client) *UsersClient {
	return &UsersClient{
		httpClient: httpClient,
	}
}

// List implements turkle.UsersClient.List.
func (c *UsersClient) List(ctx context.Context) (string, error) {
	return walk(ctx, c.httpClient, usersPath)
}

// Retrieve implements turkle.UsersClient.Retrieve.
func (c *UsersClient) Retrieve(ctx context.Context, params *turkle.UserRetrieveParams) (string, error) {
	switch {
	case params == nil:
		return "", turkle.NewInvalidArgument("id or username must be passed")
	case params.ID > 0:
		return getText(ctx, c.httpClient, userPath(params.ID))
	case params.Username != "":
		return getText(ctx, c.httpClient, usersPath+"username/"+url.PathEscape(params.Username)+"/")
	default:
		return "", turkle.NewInvalidArgument("id or username must be passed")
	}
}

// Create implements turkle.UsersClient.Create.
func (c *UsersClient) Create(ctx context.Context, users []turkle.UserCreateRequest) (string, error) {
	return createEach(ctx, c.httpClient, usersPath, users)
}

// Update implements turkle.UsersClient.Update.
func (c *UsersClient) Update(ctx context.Context, users []turkle.UserUpdateRequest) (string, error) {
	return updateEach(ctx, c.httpClient, "user", users,
		func(u *turkle.UserUpdateRequest) int { return u.ID },
		userPath)
}

func userPath(id int) string {
	return fmt.Sprintf("%s%d/", usersPath, id)
}
