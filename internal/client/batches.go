package client

import (
	"context"
	"fmt"

	"github.com/hltcoe/turkle-client/internal/http"
	"github.com/hltcoe/turkle-client/pkg/turkle"
)

const batchesPath = "/api/batches/"

// BatchesClient implements turkle.BatchesClient.
type BatchesClient struct {
	httpClient *http.Client
}

// NewBatchesClient creates a new batches client.
func NewBatchesClient(httpClient *http.Client) *BatchesClient {
	return &BatchesClient{
		httpClient: httpClient,
	}
}

// List implements turkle.BatchesClient.List.
func (c *BatchesClient) List(ctx context.Context) (string, error) {
	return walk(ctx, c.httpClient, batchesPath)
}

// Retrieve implements turkle.BatchesClient.Retrieve.
func (c *BatchesClient) Retrieve(ctx context.Context, id int) (string, error) {
	return c.nested(ctx, id, "")
}

// Create implements turkle.BatchesClient.Create.
func (c *BatchesClient) Create(ctx context.Context, batches []turkle.BatchCreateRequest) (string, error) {
	return createEach(ctx, c.httpClient, batchesPath, batches)
}

// Update implements turkle.BatchesClient.Update. A csv_text set on a request
// is sent as is and rejected by the server; new tasks go through AddTasks.
func (c *BatchesClient) Update(ctx context.Context, batches []turkle.BatchUpdateRequest) (string, error) {
	return updateEach(ctx, c.httpClient, "batch", batches,
		func(b *turkle.BatchUpdateRequest) int { return b.ID },
		batchPath)
}

// AddTasks implements turkle.BatchesClient.AddTasks.
func (c *BatchesClient) AddTasks(ctx context.Context, id int, request *turkle.BatchAddTasksRequest) (string, error) {
	err := requireID(id)
	if err != nil {
		return "", err
	}

	if request == nil {
		request = &turkle.BatchAddTasksRequest{}
	}

	resp, err := c.httpClient.Post(ctx, batchPath(id)+"tasks/", request)
	if err != nil {
		return "", err
	}

	return resp.Text(), nil
}

// Input implements turkle.BatchesClient.Input. The body is CSV.
func (c *BatchesClient) Input(ctx context.Context, id int) (string, error) {
	return c.nested(ctx, id, "input/")
}

// Results implements turkle.BatchesClient.Results. The body is CSV.
func (c *BatchesClient) Results(ctx context.Context, id int) (string, error) {
	return c.nested(ctx, id, "results/")
}

// Progress implements turkle.BatchesClient.Progress.
func (c *BatchesClient) Progress(ctx context.Context, id int) (string, error) {
	return c.nested(ctx, id, "progress/")
}

func (c *BatchesClient) nested(ctx context.Context, id int, suffix string) (string, error) {
	err := requireID(id)
	if err != nil {
		return "", err
	}

	return getText(ctx, c.httpClient, batchPath(id)+suffix)
}

func batchPath(id int) string {
	return fmt.Sprintf("%s%d/", batchesPath, id)
}
