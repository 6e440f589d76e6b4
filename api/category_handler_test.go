package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryLifecycle(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.createUser(t, "editor")

	rec := ts.do(t, http.MethodPost, "/categories", token, map[string]any{
		"name":        "tutorials",
		"description": "step by step guides",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Category created successfully", env.Message)

	var created categoryResponse
	decodeData(t, env, &created)
	assert.Equal(t, "tutorials", created.Name)

	rec = ts.do(t, http.MethodPost, "/categories", token, map[string]any{
		"name": "tutorials",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(t, http.MethodGet, "/categories", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []categoryResponse
	decodeData(t, decodeEnvelope(t, rec), &listed)
	require.Len(t, listed, 1)

	categoryPath := "/categories/" + created.ID.String()

	rec = ts.do(t, http.MethodGet, categoryPath, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodDelete, categoryPath, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, categoryPath, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateCategoryValidation(t *testing.T) {
	ts := newTestServer(t)
	_, token := ts.createUser(t, "editor")

	rec := ts.do(t, http.MethodPost, "/categories", token, map[string]any{
		"name": "   ",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation failed", decodeEnvelope(t, rec).Message)
}
