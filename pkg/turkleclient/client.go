package turkleclient

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/hltcoe/turkle-client/internal/client"
	"github.com/hltcoe/turkle-client/pkg/turkle"
)

// New creates a Turkle API client from config. config is not modified.
func New(config *turkle.Config) (turkle.Client, error) {
	if config == nil {
		return nil, turkle.ErrConfigRequired
	}

	baseURL := strings.TrimRight(strings.TrimSpace(config.BaseURL), "/")
	if baseURL == "" {
		return nil, turkle.ErrBaseURLRequired
	}

	parsed, err := url.Parse(baseURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %s", turkle.ErrInvalidBaseURL, config.BaseURL)
	}

	if config.Token == "" {
		return nil, turkle.ErrTokenRequired
	}

	normalized := *config
	normalized.BaseURL = baseURL

	cli, err := client.New(&normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return cli, nil
}

// NewWithToken creates a client for baseURL authenticated with token.
func NewWithToken(baseURL, token string) (turkle.Client, error) {
	return New(&turkle.Config{
		BaseURL: baseURL,
		Token:   token,
	})
}
