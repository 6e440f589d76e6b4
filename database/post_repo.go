package database

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/inkwell-cms/backend/errs"
	"github.com/inkwell-cms/backend/models"
)

type PostRepo struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db}
}

// withAssociations loads the author, tags and category links (with their
// categories) alongside each post.
func withAssociations(db *gorm.DB) *gorm.DB {
	return db.Preload("Author").Preload("Tags").Preload("Categories.Category")
}

// FindAll returns every post in creation order.
func (r *PostRepo) FindAll() ([]models.Post, error) {
	var posts []models.Post
	err := withAssociations(r.db).Order("posts.created_at, posts.id").Find(&posts).Error
	return posts, err
}

// FindByID returns a post by its ID, or nil when no such post exists.
func (r *PostRepo) FindByID(id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := withAssociations(r.db).First(&post, "posts.id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Create persists a new post together with its tags and category links in a
// single transaction.
func (r *PostRepo) Create(post *models.Post, tagNames []string, categoryIDs []uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(post).Error; err != nil {
			return err
		}
		return replaceAssociations(tx, post.ID, tagNames, categoryIDs)
	})
}

// Update overwrites the post's own columns and replaces its tags and
// category links. Everything runs in one transaction so concurrent readers
// never observe a post stripped of its associations mid-update.
func (r *PostRepo) Update(post *models.Post, tagNames []string, categoryIDs []uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(post).Error; err != nil {
			return err
		}
		return replaceAssociations(tx, post.ID, tagNames, categoryIDs)
	})
}

// Delete removes a post and cascades to its tags and category links. The
// cascade is executed explicitly inside the transaction rather than left to
// driver-level foreign keys.
func (r *PostRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Tag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.PostCategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, "id = ?", id).Error
	})
}

// replaceAssociations implements the destructive replace policy: all
// existing tags and category links are deleted, then recreated from the
// supplied values. No diffing, no merging. Each category id must resolve to
// an existing category.
func replaceAssociations(tx *gorm.DB, postID uuid.UUID, tagNames []string, categoryIDs []uuid.UUID) error {
	if err := tx.Where("post_id = ?", postID).Delete(&models.Tag{}).Error; err != nil {
		return err
	}
	for _, name := range tagNames {
		tag := models.Tag{PostID: postID, Name: name}
		if err := tx.Create(&tag).Error; err != nil {
			return err
		}
	}

	if err := tx.Where("post_id = ?", postID).Delete(&models.PostCategory{}).Error; err != nil {
		return err
	}
	ids := dedupeIDs(categoryIDs)
	if len(ids) > 0 {
		var count int64
		if err := tx.Model(&models.Category{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
			return err
		}
		if count != int64(len(ids)) {
			return errs.NewValidationError("category_ids", "category not found")
		}
	}
	for _, categoryID := range ids {
		link := models.PostCategory{PostID: postID, CategoryID: categoryID}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

// dedupeIDs keeps the first occurrence of each id, preserving order.
// Duplicate (post, category) links are refused at write time even though
// the schema declares no unique constraint on the join table.
func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Page returns one window over all posts.
func (r *PostRepo) Page(params PageParams) (*PostPage, error) {
	return r.page(func() *gorm.DB { return r.db.Model(&models.Post{}) }, params)
}

// PageByCategory returns one window over the posts linked to a category.
// A category with no posts yields an empty page, not an error.
func (r *PostRepo) PageByCategory(categoryID uuid.UUID, params PageParams) (*PostPage, error) {
	return r.page(func() *gorm.DB {
		return r.db.Model(&models.Post{}).
			Joins("JOIN post_categories ON post_categories.post_id = posts.id").
			Where("post_categories.category_id = ?", categoryID)
	}, params)
}

// PageByAuthor returns one window over the posts written by an author.
func (r *PostRepo) PageByAuthor(authorID uuid.UUID, params PageParams) (*PostPage, error) {
	return r.page(func() *gorm.DB {
		return r.db.Model(&models.Post{}).Where("posts.author_id = ?", authorID)
	}, params)
}

// PageBySearch matches the term as a case-insensitive substring of the
// title, content, any tag name, or the author's first or last name. A post
// matching through several fields appears once. An empty term returns all
// posts unfiltered.
func (r *PostRepo) PageBySearch(term string, params PageParams) (*PostPage, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return r.Page(params)
	}
	pattern := "%" + strings.ToLower(term) + "%"
	return r.page(func() *gorm.DB {
		return r.db.Model(&models.Post{}).
			Joins("JOIN users ON users.id = posts.author_id").
			Joins("LEFT JOIN tags ON tags.post_id = posts.id").
			Where(
				"LOWER(posts.title) LIKE ? OR LOWER(COALESCE(posts.content, '')) LIKE ? OR LOWER(COALESCE(tags.name, '')) LIKE ? OR LOWER(users.first_name) LIKE ? OR LOWER(users.last_name) LIKE ?",
				pattern, pattern, pattern, pattern, pattern,
			)
	}, params)
}

// page runs the shared count/window/fetch sequence. The builder is invoked
// once per query because gorm statements are single-use. Joined queries can
// match a post more than once, so the count is over distinct ids and the
// fetch groups by primary key.
func (r *PostRepo) page(build func() *gorm.DB, params PageParams) (*PostPage, error) {
	var total int64
	if err := build().Distinct("posts.id").Count(&total).Error; err != nil {
		return nil, err
	}
	if err := params.Check(total); err != nil {
		return nil, err
	}

	var posts []models.Post
	err := withAssociations(build()).
		Group("posts.id").
		Order("posts.created_at, posts.id").
		Limit(params.PageSize).
		Offset(params.Offset()).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return &PostPage{TotalCount: total, Posts: posts}, nil
}
