// Package client implements the Turkle resource clients on top of the
// transport in internal/http.
package client

import (
	"github.com/hltcoe/turkle-client/internal/constants"
	"github.com/hltcoe/turkle-client/internal/http"
	"github.com/hltcoe/turkle-client/pkg/turkle"
)

// Client implements the turkle.Client interface.
type Client struct {
	httpClient *http.Client
	baseURL    string

	// Resource clients
	users       turkle.UsersClient
	groups      turkle.GroupsClient
	projects    turkle.ProjectsClient
	batches     turkle.BatchesClient
	permissions turkle.PermissionsClient
}

// New creates a client for config.BaseURL authenticated with config.Token.
func New(config *turkle.Config) (*Client, error) {
	if config == nil {
		return nil, turkle.ErrConfigRequired
	}

	if config.BaseURL == "" {
		return nil, turkle.ErrBaseURLRequired
	}

	if config.Token == "" {
		return nil, turkle.ErrTokenRequired
	}

	httpClient := http.NewClient(config.BaseURL, config.Token, createHTTPClientOptions(config)...)

	client := &Client{
		httpClient: httpClient,
		baseURL:    httpClient.BaseURL(),
	}

	client.initializeResourceClients()

	return client, nil
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *turkle.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

func (c *Client) initializeResourceClients() {
	c.users = NewUsersClient(c.httpClient)
	c.groups = NewGroupsClient(c.httpClient)
	c.projects = NewProjectsClient(c.httpClient)
	c.batches = NewBatchesClient(c.httpClient)
	c.permissions = NewPermissionsClient(c.httpClient)
}

// BaseURL returns the normalized base URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Users implements turkle.Client.Users.
func (c *Client) Users() turkle.UsersClient {
	return c.users
}

// Groups implements turkle.Client.Groups.
func (c *Client) Groups() turkle.GroupsClient {
	return c.groups
}

// Projects implements turkle.Client.Projects.
func (c *Client) Projects() turkle.ProjectsClient {
	return c.projects
}

// Batches implements turkle.Client.Batches.
func (c *Client) Batches() turkle.BatchesClient {
	return c.batches
}

// Permissions implements turkle.Client.Permissions.
func (c *Client) Permissions() turkle.PermissionsClient {
	return c.permissions
}
