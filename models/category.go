package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category has an independent lifecycle; posts reference it through
// PostCategory links but never own it.
type Category struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name        string    `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex"`
	Description *string   `json:"description,omitempty" db:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" db:"created_at" gorm:"type:timestamp;not null"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at" gorm:"type:timestamp;not null"`
}

func (Category) TableName() string { return "categories" }

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
