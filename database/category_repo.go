package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inkwell-cms/backend/models"
)

type CategoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db}
}

// FindAll returns all categories ordered by name.
func (r *CategoryRepo) FindAll() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Order("name").Find(&categories).Error
	return categories, err
}

// FindByID returns a category by id, or nil when no such category exists.
func (r *CategoryRepo) FindByID(id uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByName returns a category by its unique name, or nil when absent.
func (r *CategoryRepo) FindByName(name string) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// Add inserts a new category into the database
func (r *CategoryRepo) Add(category *models.Category) error {
	return r.db.Create(category).Error
}

// Delete removes a category and the post links referencing it. Posts
// themselves are untouched; they only lose the link.
func (r *CategoryRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&models.PostCategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, "id = ?", id).Error
	})
}
