package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag belongs to exactly one post. Tags are not shared or deduplicated
// across posts; each post carries its own tag rows.
type Tag struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	PostID    uuid.UUID `json:"post_id" db:"post_id" gorm:"type:uuid;not null;index"`
	Name      string    `json:"name" db:"name" gorm:"type:text;not null;index"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"type:timestamp;not null"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"type:timestamp;not null"`
}

func (Tag) TableName() string { return "tags" }

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
