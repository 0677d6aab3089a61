package client

import (
	"context"

	"github.com/hltcoe/turkle-client/internal/http"
	"github.com/hltcoe/turkle-client/pkg/turkle"
)

// PermissionsClient implements turkle.PermissionsClient.
type PermissionsClient struct {
	httpClient *http.Client
}

// NewPermissionsClient creates a new permissions client.
func NewPermissionsClient(httpClient *http.Client) *PermissionsClient {
	return &PermissionsClient{
		httpClient: httpClient,
	}
}

// Retrieve implements turkle.PermissionsClient.Retrieve.
func (c *PermissionsClient) Retrieve(ctx context.Context, instanceType turkle.InstanceType, instanceID int) (string, error) {
	path, err := permissionsPath(instanceType, instanceID)
	if err != nil {
		return "", err
	}

	return getText(ctx, c.httpClient, path)
}

// Add implements turkle.PermissionsClient.Add. The server merges the given
// users and groups into the existing lists.
func (c *PermissionsClient) Add(
	ctx context.Context,
	instanceType turkle.InstanceType,
	instanceID int,
	request *turkle.PermissionsRequest,
) (string, error) {
	path, err := permissionsPath(instanceType, instanceID)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Post(ctx, path, nonNil(request))
	if err != nil {
		return "", err
	}

	return resp.Text(), nil
}

// Replace implements turkle.PermissionsClient.Replace. The server stores the
// lists exactly as sent.
func (c *PermissionsClient) Replace(
	ctx context.Context,
	instanceType turkle.InstanceType,
	instanceID int,
	request *turkle.PermissionsRequest,
) (string, error) {
	path, err := permissionsPath(instanceType, instanceID)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Put(ctx, path, nonNil(request))
	if err != nil {
		return "", err
	}

	return resp.Text(), nil
}

func permissionsPath(instanceType turkle.InstanceType, instanceID int) (string, error) {
	var base string

	switch instanceType {
	case turkle.InstanceProject:
		base = projectPath(instanceID)
	case turkle.InstanceBatch:
		base = batchPath(instanceID)
	default:
		return "", turkle.NewInvalidArgument("Unrecognized instance type: %s", instanceType)
	}

	err := requireID(instanceID)
	if err != nil {
		return "", err
	}

	return base + "permissions/", nil
}

func nonNil(request *turkle.PermissionsRequest) *turkle.PermissionsRequest {
	if request == nil {
		return &turkle.PermissionsRequest{}
	}

	return request
}
