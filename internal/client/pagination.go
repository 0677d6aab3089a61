package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hltcoe/turkle-client/internal/constants"
	"github.com/hltcoe/turkle-client/internal/http"
	"github.com/hltcoe/turkle-client/internal/wire"
	"github.com/hltcoe/turkle-client/pkg/turkle"
)

// walk follows the "next" links starting at path and returns every result as
// one compact JSON object per line, in server order, without a trailing
// newline. Any failure discards what was collected so far.
func walk(ctx context.Context, httpClient *http.Client, path string) (string, error) {
	var out bytes.Buffer

	cursor := path
	for cursor != "" {
		resp, err := httpClient.Get(ctx, cursor, nil)
		if err != nil {
			return "", err
		}

		page, err := parsePage(resp.Body)
		if err != nil {
			return "", fmt.Errorf("parsing page %s: %w", cursor, err)
		}

		for _, item := range page.Results {
			err = appendLine(&out, item)
			if err != nil {
				return "", fmt.Errorf("encoding item from %s: %w", cursor, err)
			}
		}

		cursor = ""
		if page.Next != nil {
			cursor = *page.Next
		}
	}

	return strings.TrimSuffix(out.String(), constants.LineSeparator), nil
}

// parsePage accepts the paginated envelope or, for endpoints that answer
// unpaginated, a bare array treated as the last page.
func parsePage(body []byte) (*turkle.Page, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty body", turkle.ErrMalformedPage)
	}

	var page turkle.Page

	switch body[0] {
	case '[':
		err := json.Unmarshal(body, &page.Results)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", turkle.ErrMalformedPage, err)
		}
	case '{':
		err := json.Unmarshal(body, &page)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", turkle.ErrMalformedPage, err)
		}
	default:
		return nil, fmt.Errorf("%w: expected object or array", turkle.ErrMalformedPage)
	}

	return &page, nil
}

func appendLine(out *bytes.Buffer, item json.RawMessage) error {
	err := wire.AppendCompact(out, item)
	if err != nil {
		return err
	}

	out.WriteString(constants.LineSeparator)

	return nil
}
