package ats

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentboard/internal/domain"
)

func TestNewClient_TrailingSlash(t *testing.T) {
	c := NewClient("http://localhost:4567/")
	assert.Equal(t, "http://localhost:4567", c.BaseURL)
}

func TestLogin_Success(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": 15, "username": "kminchelle", "email": "kminchelle@qq.com",
			"firstName": "Jeanne", "lastName": "Halvorson",
		})
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, WithExpiresInMins(30))
	identity, err := c.Login(context.Background(), "kminchelle", "0lelplR")
	require.NoError(t, err)

	assert.Equal(t, 15, identity.ID)
	assert.Equal(t, "Jeanne Halvorson", identity.FullName())
	assert.InDelta(t, 30, gotBody["expiresInMins"], 0.001)
}

func TestLogin_RejectedOnNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"Invalid credentials"}`, http.StatusBadRequest)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL)
	_, err := c.Login(context.Background(), "nobody", "wrong")
	require.Error(t, err)
	var rejected *domain.AuthRejectedError
	assert.ErrorAs(t, err, &rejected)
}

func TestLogin_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(srv.URL)
	_, err := c.Login(context.Background(), "kminchelle", "0lelplR")
	require.Error(t, err)
	var transport *domain.TransportError
	assert.ErrorAs(t, err, &transport)
}

func TestListCandidates_PagingParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users", r.URL.Path)
		assert.Equal(t, "20", r.URL.Query().Get("skip"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"users": []map[string]any{
				{"id": 21, "firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com",
					"company": map[string]any{"name": "Analytical Engines", "department": "R&D"}},
			},
			"total": 208,
		})
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL)
	page, err := c.ListCandidates(context.Background(), 20, 10)
	require.NoError(t, err)

	assert.Equal(t, 208, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Analytical Engines", page.Items[0].Company.Name)
	assert.Equal(t, "R&D", page.Items[0].Company.Department)
}

func TestListCandidates_MissingCompanyDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"users": []map[string]any{
				{"id": 5, "firstName": "No", "lastName": "Company", "email": "n@example.com"},
			},
			"total": 1,
		})
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL)
	page, err := c.ListCandidates(context.Background(), 0, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Unknown Company", page.Items[0].Company.Name)
	assert.Equal(t, "Engineering", page.Items[0].Company.Department)
}

func TestSearchCandidates_QueryEscaped(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/search", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		_ = json.NewEncoder(w).Encode(map[string]any{"users": []map[string]any{}, "total": 0})
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL)
	page, err := c.SearchCandidates(context.Background(), "smith & co")
	require.NoError(t, err)
	assert.Equal(t, "smith & co", gotQuery)
	assert.Zero(t, page.Total)
	assert.Empty(t, page.Items)
}

func TestGetCandidate_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL)
	_, err := c.GetCandidate(context.Background(), 9999)
	require.Error(t, err)
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestListTodos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/todos", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("userId"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"todos": []map[string]any{
				{"id": 1, "todo": "Phone screen", "completed": true, "userId": 7},
				{"id": 2, "todo": "Onsite loop", "completed": false, "userId": 7},
			},
		})
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL)
	todos, err := c.ListTodos(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, todos, 2)
	assert.True(t, todos[0].Completed)
	assert.Equal(t, "Onsite loop", todos[1].Todo)
}

func TestListPosts_ReactionShapes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/posts", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"posts": []map[string]any{
				{"id": 1, "title": "Strong systems round", "userId": 7, "reactions": 12},
				{"id": 2, "title": "Culture interview", "userId": 7,
					"reactions": map[string]int{"likes": 4, "dislikes": 1}},
			},
		})
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL)
	posts, err := c.ListPosts(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, 12, posts[0].Reactions.Likes, "legacy integer reactions become likes")
	assert.Zero(t, posts[0].Reactions.Dislikes)
	assert.Equal(t, 4, posts[1].Reactions.Likes)
	assert.Equal(t, 1, posts[1].Reactions.Dislikes)
}

func TestGetJSON_ServerErrorIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL)
	_, err := c.ListCandidates(context.Background(), 0, 10)
	require.Error(t, err)
	var transport *domain.TransportError
	assert.ErrorAs(t, err, &transport)
}
