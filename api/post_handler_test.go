package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostEndpointsRequireAuthentication(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/posts", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusUnauthorized, env.StatusCode)
}

func TestCreatePostDefaultsStatusAndSetsAuthor(t *testing.T) {
	ts := newTestServer(t)
	user, token := ts.createUser(t, "author")

	rec := ts.do(t, http.MethodPost, "/posts", token, map[string]any{
		"title": "first post",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Post created successfully", env.Message)

	var post postResponse
	decodeData(t, env, &post)
	assert.Equal(t, "first post", post.Title)
	assert.EqualValues(t, "DRAFT", post.Status)
	assert.Equal(t, user.ID, post.Author.ID)
	assert.Empty(t, post.Tags)
}

func TestCreatePostValidation(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.createUser(t, "author")

	rec := ts.do(t, http.MethodPost, "/posts", token, map[string]any{
		"title":  "",
		"status": "ARCHIVED",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "validation failed", env.Message)

	var fields []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	}
	decodeData(t, env, &fields)
	require.Len(t, fields, 2)
	assert.Equal(t, "title", fields[0].Field)
	assert.Equal(t, "status", fields[1].Field)
}

func TestCreatePostWithUnknownCategory(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.createUser(t, "author")

	rec := ts.do(t, http.MethodPost, "/posts", token, map[string]any{
		"title":        "orphan",
		"category_ids": []string{uuid.NewString()},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "validation failed", env.Message)
}

func TestOnlyTheAuthorMayUpdateOrDelete(t *testing.T) {
	ts := newTestServer(t)
	_, ownerToken := ts.createUser(t, "owner")
	_, intruderToken := ts.createUser(t, "intruder")

	rec := ts.do(t, http.MethodPost, "/posts", ownerToken, map[string]any{
		"title": "mine",
		"tags":  []string{"a", "b"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created postResponse
	decodeData(t, decodeEnvelope(t, rec), &created)

	postPath := "/posts/" + created.ID.String()
	replacement := map[string]any{
		"title":  "stolen",
		"status": "PUBLISHED",
		"tags":   []string{"c"},
	}

	rec = ts.do(t, http.MethodPut, postPath, intruderToken, replacement)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(t, http.MethodDelete, postPath, intruderToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// The owner's update is a full replacement, tags included.
	rec = ts.do(t, http.MethodPut, postPath, ownerToken, replacement)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated postResponse
	decodeData(t, decodeEnvelope(t, rec), &updated)
	assert.Equal(t, "stolen", updated.Title)
	assert.EqualValues(t, "PUBLISHED", updated.Status)
	assert.Equal(t, []string{"c"}, updated.Tags)

	rec = ts.do(t, http.MethodDelete, postPath, ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, postPath, ownerToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPagedPostsEnvelope(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.createUser(t, "prolific")

	for i := 1; i <= 5; i++ {
		rec := ts.do(t, http.MethodPost, "/posts", token, map[string]any{
			"title": fmt.Sprintf("post %d", i),
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := ts.do(t, http.MethodGet, "/posts/pages?page=1&page_size=2", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var first testListData
	decodeData(t, decodeEnvelope(t, rec), &first)
	assert.EqualValues(t, 5, first.Count)
	require.Len(t, first.Results, 2)
	require.NotNil(t, first.Next)
	assert.Contains(t, *first.Next, "page=2")
	assert.Nil(t, first.Previous)

	rec = ts.do(t, http.MethodGet, "/posts/pages?page=3&page_size=2", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var last testListData
	decodeData(t, decodeEnvelope(t, rec), &last)
	require.Len(t, last.Results, 1)
	assert.Nil(t, last.Next)
	require.NotNil(t, last.Previous)
	assert.Contains(t, *last.Previous, "page=2")

	// Past the last page is a bounds error, not an empty success.
	rec = ts.do(t, http.MethodGet, "/posts/pages?page=4&page_size=2", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchFindsPostThroughTagOnce(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.createUser(t, "searcher")

	rec := ts.do(t, http.MethodPost, "/posts", token, map[string]any{
		"title":   "release notes",
		"content": "nothing to see",
		"tags":    []string{"golang", "gophers"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodPost, "/posts", token, map[string]any{
		"title": "unrelated",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// "go" matches both tags of the first post; it must come back once.
	rec = ts.do(t, http.MethodGet, "/posts/search?search=go", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var data testListData
	decodeData(t, decodeEnvelope(t, rec), &data)
	assert.EqualValues(t, 1, data.Count)
	require.Len(t, data.Results, 1)
	assert.Equal(t, "release notes", data.Results[0].Title)
}

func TestPostsByCategoryEndpoint(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.createUser(t, "curator")

	rec := ts.do(t, http.MethodPost, "/categories", token, map[string]any{
		"name": "releases",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var category categoryResponse
	decodeData(t, decodeEnvelope(t, rec), &category)

	rec = ts.do(t, http.MethodPost, "/posts", token, map[string]any{
		"title":        "tagged post",
		"category_ids": []string{category.ID.String()},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodGet, "/posts/category/"+category.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var data testListData
	decodeData(t, decodeEnvelope(t, rec), &data)
	assert.EqualValues(t, 1, data.Count)
	require.Len(t, data.Results, 1)
	require.Len(t, data.Results[0].Categories, 1)
	assert.Equal(t, "releases", data.Results[0].Categories[0].Name)

	rec = ts.do(t, http.MethodGet, "/posts/category/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
