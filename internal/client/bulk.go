package client

import (
	"context"
	"strings"

	"github.com/hltcoe/turkle-client/internal/constants"
	"github.com/hltcoe/turkle-client/internal/http"
	"github.com/hltcoe/turkle-client/pkg/turkle"
)

// createEach POSTs every item to path, one request per item, and joins the
// response bodies with newlines. The first failure stops the loop; items
// already sent stay created.
func createEach[T any](ctx context.Context, httpClient *http.Client, path string, items []T) (string, error) {
	bodies := make([]string, 0, len(items))

	for i := range items {
		resp, err := httpClient.Post(ctx, path, &items[i])
		if err != nil {
			return "", err
		}

		bodies = append(bodies, resp.Text())
	}

	return strings.Join(bodies, constants.LineSeparator), nil
}

// updateEach PATCHes every item to its detail path. Every item must carry an
// id; that is checked before the first request is sent.
func updateEach[T any](
	ctx context.Context,
	httpClient *http.Client,
	resource string,
	items []T,
	idOf func(*T) int,
	detailPath func(id int) string,
) (string, error) {
	for i := range items {
		if idOf(&items[i]) <= 0 {
			return "", turkle.NewInvalidArgument("id must be set for every %s to update", resource)
		}
	}

	bodies := make([]string, 0, len(items))

	for i := range items {
		resp, err := httpClient.Patch(ctx, detailPath(idOf(&items[i])), &items[i])
		if err != nil {
			return "", err
		}

		bodies = append(bodies, resp.Text())
	}

	return strings.Join(bodies, constants.LineSeparator), nil
}

// getText GETs path and returns the body verbatim.
func getText(ctx context.Context, httpClient *http.Client, path string) (string, error) {
	resp, err := httpClient.Get(ctx, path, nil)
	if err != nil {
		return "", err
	}

	return resp.Text(), nil
}

func requireID(id int) error {
	if id <= 0 {
		return turkle.NewInvalidArgument("id must be passed")
	}

	return nil
}
