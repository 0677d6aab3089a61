package client

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/hltcoe/turkle-client/pkg/turkle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsersClient_Retrieve(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, routes(map[string]string{
		"GET /api/users/3/":                     `{"id": 3, "username": "annotator"}`,
		"GET /api/users/username/anno%20tator/": `{"id": 4, "username": "anno tator"}`,
		"GET /api/users/username/annotator/":    `{"id": 3, "username": "annotator"}`,
	}))
	client := newTestClient(t, server.URL)

	tests := []struct {
		name     string
		params   *turkle.UserRetrieveParams
		expected string
	}{
		{name: "by id", params: &turkle.UserRetrieveParams{ID: 3}, expected: `{"id": 3, "username": "annotator"}`},
		{name: "by username", params: &turkle.UserRetrieveParams{Username: "annotator"}, expected: `{"id": 3, "username": "annotator"}`},
		{name: "username is escaped", params: &turkle.UserRetrieveParams{Username: "anno tator"}, expected: `{"id": 4, "username": "anno tator"}`},
		{name: "id wins over username", params: &turkle.UserRetrieveParams{ID: 3, Username: "someone-else"}, expected: `{"id": 3, "username": "annotator"}`},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			out, err := client.Users().Retrieve(context.Background(), testCase.params)
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, out)
		})
	}
}

func TestUsersClient_RetrieveWithoutSelector(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, routes(nil))
	client := newTestClient(t, server.URL)

	for _, params := range []*turkle.UserRetrieveParams{nil, {}} {
		out, err := client.Users().Retrieve(context.Background(), params)
		requireClientError(t, err, turkle.KindInvalidArgument, "id or username must be passed")
		assert.Empty(t, out)
	}

	assert.Empty(t, server.Requests())
}

func TestUsersClient_RetrieveNotFound(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, func(writer http.ResponseWriter, _ *http.Request) {
		respond(writer, http.StatusNotFound, `{"detail": "No User matches the given query."}`)
	})

	_, err := newTestClient(t, server.URL).Users().Retrieve(context.Background(), &turkle.UserRetrieveParams{ID: 99})
	requireClientError(t, err, turkle.KindServer, "No User matches the given query.")
	assert.True(t, turkle.IsNotFound(err))
}

func TestUsersClient_Create(t *testing.T) {
	t.Parallel()

	var created atomic.Int32

	server := newTestServer(t, func(writer http.ResponseWriter, _ *http.Request) {
		respond(writer, http.StatusCreated, fmt.Sprintf(`{"id": %d}`, created.Add(1)))
	})

	out, err := newTestClient(t, server.URL).Users().Create(context.Background(), []turkle.UserCreateRequest{
		{Username: "u1", Password: "p1"},
		{Username: "u2", Password: "p2", FirstName: "Zoë"},
	})
	require.NoError(t, err)
	assert.Equal(t, "{\"id\": 1}\n{\"id\": 2}", out)

	requests := server.Requests()
	require.Len(t, requests, 2)

	for _, request := range requests {
		assert.Equal(t, "POST", request.Method)
		assert.Equal(t, "/api/users/", request.Path)
	}

	assert.JSONEq(t, `{"username": "u1", "password": "p1"}`, requests[0].Body)
	assert.JSONEq(t, `{"username": "u2", "password": "p2", "first_name": "Zoë"}`, requests[1].Body)
}

func TestUsersClient_CreatePartialFailure(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := newTestServer(t, func(writer http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			respond(writer, http.StatusCreated, `{"id": 1, "username": "u1"}`)

			return
		}

		respond(writer, http.StatusBadRequest, `{"username": ["A user with that username already exists."]}`)
	})

	out, err := newTestClient(t, server.URL).Users().Create(context.Background(), []turkle.UserCreateRequest{
		{Username: "u1", Password: "p"},
		{Username: "u1", Password: "p"},
		{Username: "u3", Password: "p"},
	})
	requireClientError(t, err, turkle.KindServer, "username - A user with that username already exists.")
	assert.Empty(t, out)
	assert.Equal(t, int32(2), calls.Load())

	requests := server.Requests()
	require.Len(t, requests, 2)
	assert.JSONEq(t, `{"username": "u1", "password": "p"}`, requests[0].Body)
}

func TestUsersClient_Update(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, func(writer http.ResponseWriter, request *http.Request) {
		respond(writer, http.StatusOK, `{"path": "`+request.URL.Path+`"}`)
	})

	active := false
	email := "new@example.com"

	out, err := newTestClient(t, server.URL).Users().Update(context.Background(), []turkle.UserUpdateRequest{
		{ID: 2, IsActive: &active},
		{ID: 5, Email: &email},
	})
	require.NoError(t, err)
	assert.Equal(t, "{\"path\": \"/api/users/2/\"}\n{\"path\": \"/api/users/5/\"}", out)

	requests := server.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, "PATCH", requests[0].Method)
	assert.JSONEq(t, `{"id": 2, "is_active": false}`, requests[0].Body)
	assert.JSONEq(t, `{"id": 5, "email": "new@example.com"}`, requests[1].Body)
}

func TestUsersClient_UpdateRequiresEveryID(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, routes(nil))

	email := "x@example.com"

	_, err := newTestClient(t, server.URL).Users().Update(context.Background(), []turkle.UserUpdateRequest{
		{ID: 1, Email: &email},
		{Email: &email},
	})
	requireClientError(t, err, turkle.KindInvalidArgument, "id must be set for every user to update")
	assert.Empty(t, server.Requests())
}
