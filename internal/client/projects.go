package client

import (
	"context"
	"fmt"

	"github.com/hltcoe/turkle-client/internal/http"
	"github.com/hltcoe/turkle-client/pkg/turkle"
)

const projectsPath = "/api/projects/"

// ProjectsClient implements turkle.ProjectsClient.
type ProjectsClient struct {
	httpClient *http.Client
}

// NewProjectsClient creates a new projects client.
func NewProjectsClient(httpClient *http.Client) *ProjectsClient {
	return &ProjectsClient{
		httpClient: httpClient,
	}
}

// List implements turkle.ProjectsClient.List.
func (c *ProjectsClient) List(ctx context.Context) (string, error) {
	return walk(ctx, c.httpClient, projectsPath)
}

// Retrieve implements turkle.ProjectsClient.Retrieve.
func (c *ProjectsClient) Retrieve(ctx context.Context, id int) (string, error) {
	err := requireID(id)
	if err != nil {
		return "", err
	}

	return getText(ctx, c.httpClient, projectPath(id))
}

// Create implements turkle.ProjectsClient.Create.
func (c *ProjectsClient) Create(ctx context.Context, projects []turkle.ProjectCreateRequest) (string, error) {
	return createEach(ctx, c.httpClient, projectsPath, projects)
}

// Update implements turkle.ProjectsClient.Update.
func (c *ProjectsClient) Update(ctx context.Context, projects []turkle.ProjectUpdateRequest) (string, error) {
	return updateEach(ctx, c.httpClient, "project", projects,
		func(p *turkle.ProjectUpdateRequest) int { return p.ID },
		projectPath)
}

// Batches implements turkle.ProjectsClient.Batches.
func (c *ProjectsClient) Batches(ctx context.Context, projectID int) (string, error) {
	err := requireID(projectID)
	if err != nil {
		return "", err
	}

	return walk(ctx, c.httpClient, projectPath(projectID)+"batches/")
}

func projectPath(id int) string {
	return fmt.Sprintf("%s%d/", projectsPath, id)
}
