package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	turklehttp "github.com/hltcoe/turkle-client/internal/http"
	"github.com/hltcoe/turkle-client/pkg/turkle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockLogger for testing.
type MockLogger struct {
	mu   sync.Mutex
	logs []map[string]interface{}
}

func (l *MockLogger) record(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logs = append(l.logs, map[string]interface{}{"level": level, "msg": msg, "fields": fields})
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) { l.record("debug", msg, fields) }
func (l *MockLogger) Info(msg string, fields map[string]interface{})  { l.record("info", msg, fields) }
func (l *MockLogger) Warn(msg string, fields map[string]interface{})  { l.record("warn", msg, fields) }
func (l *MockLogger) Error(msg string, fields map[string]interface{}) { l.record("error", msg, fields) }

func jsonHandler(status int, body string) http.HandlerFunc {
	return func(writer http.ResponseWriter, _ *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(status)
		_, _ = writer.Write([]byte(body))
	}
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()

	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/users/", request.URL.Path)
			assert.Equal(t, "GET", request.Method)
			assert.Equal(t, "TOKEN test-token", request.Header.Get("Authorization"))
			assert.Equal(t, "application/json", request.Header.Get("Accept"))

			_ = json.NewEncoder(writer).Encode(map[string]interface{}{"id": 1, "username": "admin"})
		}))
		defer server.Close()

		client := turklehttp.NewClient(server.URL, "test-token")

		resp, err := client.Do(context.Background(), &turklehttp.Request{
			Method: "GET",
			Path:   "/api/users/",
		})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.JSONEq(t, `{"id": 1, "username": "admin"}`, resp.Text())
	})

	t.Run("trailing slashes on base URL are stripped", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/projects/", request.URL.Path)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := turklehttp.NewClient(server.URL+"//", "t")
		assert.Equal(t, server.URL, client.BaseURL())

		_, err := client.Get(context.Background(), "/api/projects/", nil)
		require.NoError(t, err)
	})

	t.Run("absolute URL is used as is", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/users/", request.URL.Path)
			assert.Equal(t, "page=2", request.URL.RawQuery)
			assert.Equal(t, "TOKEN t", request.Header.Get("Authorization"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := turklehttp.NewClient("http://unused.invalid", "t")

		_, err := client.Get(context.Background(), server.URL+"/api/users/?page=2", nil)
		require.NoError(t, err)
	})

	t.Run("request with query parameters", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/users/", request.URL.Path)
			assert.Equal(t, "page=2", request.URL.RawQuery)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := turklehttp.NewClient(server.URL, "t")

		resp, err := client.Get(context.Background(), "/api/users/", url.Values{"page": []string{"2"}})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("request with body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]string

			_ = json.NewDecoder(request.Body).Decode(&body)
			assert.Equal(t, "Annotators", body["name"])

			writer.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := turklehttp.NewClient(server.URL, "t")

		resp, err := client.Post(context.Background(), "/api/groups/", map[string]string{"name": "Annotators"})
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)
	})

	t.Run("custom headers", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "custom-value", request.Header.Get("X-Custom-Header"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := turklehttp.NewClient(server.URL, "t")

		resp, err := client.Do(context.Background(), &turklehttp.Request{
			Method:  "GET",
			Path:    "/api/users/",
			Headers: map[string]string{"X-Custom-Header": "custom-value"},
		})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("with debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(jsonHandler(http.StatusOK, `{"result": "ok"}`))
		defer server.Close()

		logger := &MockLogger{}
		client := turklehttp.NewClient(server.URL, "t", turklehttp.WithLogger(logger), turklehttp.WithDebug(true))

		_, err := client.Get(context.Background(), "/api/users/", nil)
		require.NoError(t, err)

		assert.Len(t, logger.logs, 2)
		assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
		assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])
	})

	t.Run("user agent", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "labeler/2.0", request.Header.Get("User-Agent"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := turklehttp.NewClient(server.URL, "t", turklehttp.WithUserAgent("labeler/2.0"))

		_, err := client.Get(context.Background(), "/", nil)
		require.NoError(t, err)
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_ErrorTranslation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		status      int
		body        string
		expectError bool
		message     string
	}{
		{
			name:        "detail message is passed through",
			status:      http.StatusNotFound,
			body:        `{"detail": "No User matches the given query."}`,
			expectError: true,
			message:     "No User matches the given query.",
		},
		{
			name:        "detail wins over field errors",
			status:      http.StatusForbidden,
			body:        `{"username": ["taken"], "detail": "You do not have permission to perform this action."}`,
			expectError: true,
			message:     "You do not have permission to perform this action.",
		},
		{
			name:        "first field error in body order",
			status:      http.StatusBadRequest,
			body:        `{"csv_text": ["Cannot update csv_text on an existing batch"], "name": ["bad"]}`,
			expectError: true,
			message:     "csv_text - Cannot update csv_text on an existing batch",
		},
		{
			name:        "field error as plain string",
			status:      http.StatusBadRequest,
			body:        `{"project": "Invalid pk"}`,
			expectError: true,
			message:     "project - Invalid pk",
		},
		{
			name:        "non JSON body",
			status:      http.StatusInternalServerError,
			body:        `<html>Server Error</html>`,
			expectError: true,
			message:     "500 Internal Server Error",
		},
		{
			name:        "JSON array body",
			status:      http.StatusBadRequest,
			body:        `["something broke"]`,
			expectError: true,
			message:     "400 Bad Request",
		},
		{
			name:        "empty body is not an error",
			status:      http.StatusNotFound,
			body:        ``,
			expectError: false,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(jsonHandler(testCase.status, testCase.body))
			defer server.Close()

			client := turklehttp.NewClient(server.URL, "t")

			resp, err := client.Get(context.Background(), "/api/users/9/", nil)
			require.NotNil(t, resp)
			assert.Equal(t, testCase.status, resp.StatusCode)

			if !testCase.expectError {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, testCase.message, err.Error())
			assert.True(t, turkle.IsServerError(err))

			clientErr := &turkle.ClientError{}
			require.True(t, errors.As(err, &clientErr))
			assert.Equal(t, testCase.status, clientErr.StatusCode)
		})
	}
}

func TestClient_ConnectionFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(jsonHandler(http.StatusOK, `{}`))
	baseURL := server.URL
	server.Close()

	client := turklehttp.NewClient(baseURL+"/", "t")

	resp, err := client.Get(context.Background(), "/api/users/", nil)
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, turkle.IsConnectionFailure(err))
	assert.Equal(t, "Unable to connect to "+baseURL, err.Error())
}

func TestClient_ContextCanceled(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(jsonHandler(http.StatusOK, `{}`))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := turklehttp.NewClient(server.URL, "t")

	_, err := client.Get(ctx, "/api/users/", nil)
	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, turkle.IsConnectionFailure(err))
}

func TestClient_Methods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		method string
		fn     func(*turklehttp.Client, context.Context) (*turklehttp.Response, error)
	}{
		{
			name:   "GET",
			method: "GET",
			fn: func(c *turklehttp.Client, ctx context.Context) (*turklehttp.Response, error) {
				return c.Get(ctx, "/test", nil)
			},
		},
		{
			name:   "POST",
			method: "POST",
			fn: func(c *turklehttp.Client, ctx context.Context) (*turklehttp.Response, error) {
				return c.Post(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "PUT",
			method: "PUT",
			fn: func(c *turklehttp.Client, ctx context.Context) (*turklehttp.Response, error) {
				return c.Put(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "PATCH",
			method: "PATCH",
			fn: func(c *turklehttp.Client, ctx context.Context) (*turklehttp.Response, error) {
				return c.Patch(ctx, "/test", map[string]string{"key": "value"})
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.method, request.Method)
				assert.Equal(t, "/test", request.URL.Path)
				writer.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			client := turklehttp.NewClient(server.URL, "t")
			resp, err := testCase.fn(client, context.Background())
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)
		})
	}
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_RetryLogic(t *testing.T) {
	t.Parallel()

	t.Run("no retries by default", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			attempts.Add(1)
			writer.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client := turklehttp.NewClient(server.URL, "t")

		resp, err := client.Get(context.Background(), "/test", nil)
		require.NoError(t, err)
		assert.Equal(t, 503, resp.StatusCode)
		assert.Equal(t, int32(1), attempts.Load())
	})

	t.Run("retries on 5xx errors", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			if attempts.Add(1) < 3 {
				writer.WriteHeader(http.StatusInternalServerError)
			} else {
				writer.WriteHeader(http.StatusOK)
			}
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := turklehttp.NewClient(server.URL, "t",
			turklehttp.WithLogger(logger),
			turklehttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		resp, err := client.Get(context.Background(), "/test", nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, int32(3), attempts.Load())

		require.Len(t, logger.logs, 2)
		assert.Equal(t, "Retrying HTTP Request", logger.logs[0]["msg"])
	})

	t.Run("retries on rate limiting", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			if attempts.Add(1) < 2 {
				writer.WriteHeader(http.StatusTooManyRequests)
			} else {
				writer.WriteHeader(http.StatusOK)
			}
		}))
		defer server.Close()

		client := turklehttp.NewClient(server.URL, "t", turklehttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		resp, err := client.Get(context.Background(), "/test", nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, int32(2), attempts.Load())
	})

	t.Run("does not retry on client errors", func(t *testing.T) {
		t.Parallel()

		var attempts atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			attempts.Add(1)
			writer.WriteHeader(http.StatusBadRequest)
			_, _ = writer.Write([]byte(`{"name": ["This field is required."]}`))
		}))
		defer server.Close()

		client := turklehttp.NewClient(server.URL, "t", turklehttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		resp, err := client.Get(context.Background(), "/test", nil)
		require.Error(t, err)
		assert.Equal(t, "name - This field is required.", err.Error())
		assert.Equal(t, 400, resp.StatusCode)
		assert.Equal(t, int32(1), attempts.Load())
	})
}
