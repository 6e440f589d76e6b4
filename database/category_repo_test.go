package database

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-cms/backend/models"
)

func TestCategoryRepoFindByName(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepo(db)
	created := createTestCategory(t, db, "essays")

	found, err := repo.FindByName("essays")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)

	missing, err := repo.FindByName("absent")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCategoryDeleteRemovesLinksOnly(t *testing.T) {
	db := newTestDB(t)
	categoryRepo := NewCategoryRepo(db)
	postRepo := NewPostRepo(db)
	author := createTestUser(t, db, "radia", "Radia", "Perlman")
	cat := createTestCategory(t, db, "networking")

	post := createTestPost(t, postRepo, author, "spanning trees", "", nil, []uuid.UUID{cat.ID})

	require.NoError(t, categoryRepo.Delete(cat.ID))

	var linkCount int64
	require.NoError(t, db.Model(&models.PostCategory{}).Where("category_id = ?", cat.ID).Count(&linkCount).Error)
	assert.Zero(t, linkCount)

	// The post itself is untouched, it only loses the link.
	survivor, err := postRepo.FindByID(post.ID)
	require.NoError(t, err)
	require.NotNil(t, survivor)
	assert.Empty(t, survivor.Categories)
}
