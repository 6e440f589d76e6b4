package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/inkwell-cms/backend/models"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// FindAll returns all users from the database
func (r *UserRepo) FindAll() ([]models.User, error) {
	var users []models.User
	err := r.db.Order("created_at, id").Find(&users).Error
	return users, err
}

// FindByID returns a user by id, or nil when no such user exists.
func (r *UserRepo) FindByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername returns a user by username, or nil when no such user exists.
func (r *UserRepo) FindByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail returns a user by email, or nil when no such user exists.
func (r *UserRepo) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Add inserts a new user into the database
func (r *UserRepo) Add(user *models.User) error {
	return r.db.Omit(clause.Associations).Create(user).Error
}

// Update overwrites the user's profile columns.
func (r *UserRepo) Update(user *models.User) error {
	return r.db.Omit(clause.Associations).Save(user).Error
}

// Delete removes a user and cascades to their posts, including each post's
// tags and category links.
func (r *UserRepo) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		postIDs := tx.Model(&models.Post{}).Select("id").Where("author_id = ?", id)
		if err := tx.Where("post_id IN (?)", postIDs).Delete(&models.Tag{}).Error; err != nil {
			return err
		}
		postIDs = tx.Model(&models.Post{}).Select("id").Where("author_id = ?", id)
		if err := tx.Where("post_id IN (?)", postIDs).Delete(&models.PostCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", id).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", id).Error
	})
}
