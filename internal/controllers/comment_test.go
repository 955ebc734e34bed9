package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommentLifecycle(t *testing.T) {
	env := newTestEnv(t)
	alice, aliceAccess := env.seedAccount(t, "alice")
	_, bobAccess := env.seedAccount(t, "bob")
	env.seedVideo(t, alice.Id, "clip")

	resp, body := env.request(t, authed(
		jsonRequest(t, http.MethodPost, "/api/comment/1", map[string]string{"content": "first!"}), bobAccess))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Contains(t, string(body.Data), `"content":"first!"`)
	require.Contains(t, string(body.Data), `"username":"bob"`)

	// Only the author may edit.
	resp, _ = env.request(t, authed(
		jsonRequest(t, http.MethodPatch, "/api/comment/comment/1", map[string]string{"content": "edited"}), aliceAccess))
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = env.request(t, authed(
		jsonRequest(t, http.MethodPatch, "/api/comment/comment/1", map[string]string{"content": "edited"}), bobAccess))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body.Data), `"content":"edited"`)

	resp, _ = env.request(t, authed(
		jsonRequest(t, http.MethodDelete, "/api/comment/comment/1", nil), aliceAccess))
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = env.request(t, authed(
		jsonRequest(t, http.MethodDelete, "/api/comment/comment/1", nil), bobAccess))
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCommentOnMissingVideoIs404(t *testing.T) {
	env := newTestEnv(t)
	_, access := env.seedAccount(t, "alice")

	resp, _ := env.request(t, authed(
		jsonRequest(t, http.MethodPost, "/api/comment/99", map[string]string{"content": "hello"}), access))
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCommentRequiresContent(t *testing.T) {
	env := newTestEnv(t)
	alice, access := env.seedAccount(t, "alice")
	env.seedVideo(t, alice.Id, "clip")

	resp, _ := env.request(t, authed(
		jsonRequest(t, http.MethodPost, "/api/comment/1", map[string]string{"content": "   "}), access))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCommentListPaginates(t *testing.T) {
	env := newTestEnv(t)
	alice, access := env.seedAccount(t, "alice")
	video := env.seedVideo(t, alice.Id, "clip")

	for _, content := range []string{"one", "two", "three"} {
		resp, _ := env.request(t, authed(
			jsonRequest(t, http.MethodPost, "/api/comment/1", map[string]string{"content": content}), access))
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}
	_ = video

	resp, body := env.request(t, authed(httpGet("/api/comment/1?page=1&limit=2"), access))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page struct {
		Items []struct {
			Content string `json:"content"`
		} `json:"items"`
		Total   int64 `json:"total"`
		HasNext bool  `json:"hasNext"`
	}
	require.NoError(t, jsonUnmarshal(body.Data, &page))
	require.Len(t, page.Items, 2)
	require.EqualValues(t, 3, page.Total)
	require.True(t, page.HasNext)
	// Newest first.
	require.Equal(t, "three", page.Items[0].Content)
}
