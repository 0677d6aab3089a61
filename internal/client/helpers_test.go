package client

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/hltcoe/turkle-client/pkg/turkle"
	"github.com/stretchr/testify/require"
)

// recordedRequest is what the test server saw for one request.
type recordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Body     string
	Header   http.Header
}

// testServer counts and records every request it receives.
type testServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []recordedRequest
}

func newTestServer(t *testing.T, handler http.HandlerFunc) *testServer {
	t.Helper()

	server := &testServer{}
	server.Server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		body, _ := io.ReadAll(request.Body)

		server.mu.Lock()
		server.requests = append(server.requests, recordedRequest{
			Method:   request.Method,
			Path:     request.URL.Path,
			RawQuery: request.URL.RawQuery,
			Body:     string(body),
			Header:   request.Header.Clone(),
		})
		server.mu.Unlock()

		writer.Header().Set("Content-Type", "application/json")
		handler(writer, request)
	}))

	t.Cleanup(server.Close)

	return server
}

func (s *testServer) Requests() []recordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]recordedRequest(nil), s.requests...)
}

// respond writes status and body.
func respond(writer http.ResponseWriter, status int, body string) {
	writer.WriteHeader(status)
	_, _ = writer.Write([]byte(body))
}

// routes answers GET/POST/... by "METHOD /path"; anything else is a 404.
func routes(table map[string]string) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		body, ok := table[request.Method+" "+request.URL.RequestURI()]
		if !ok {
			body, ok = table[request.Method+" "+request.URL.Path]
		}

		if !ok {
			respond(writer, http.StatusNotFound, `{"detail": "Not found."}`)

			return
		}

		respond(writer, http.StatusOK, body)
	}
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	client, err := New(&turkle.Config{BaseURL: baseURL, Token: "test-token"})
	require.NoError(t, err)

	return client
}

// requireClientError asserts err is a *turkle.ClientError of kind with message.
func requireClientError(t *testing.T, err error, kind turkle.ErrorKind, message string) {
	t.Helper()

	require.Error(t, err)

	clientErr, ok := err.(*turkle.ClientError) //nolint:errorlint // must be returned unwrapped
	require.True(t, ok, "expected *turkle.ClientError, got %T", err)
	require.Equal(t, kind, clientErr.Kind)
	require.Equal(t, message, clientErr.Message)
}
