package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostCategory is the join row realizing the post<->category many-to-many.
// No unique constraint on (post_id, category_id); the repository dedupes the
// supplied ids before linking instead.
type PostCategory struct {
	ID         uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	PostID     uuid.UUID `json:"post_id" db:"post_id" gorm:"type:uuid;not null;index"`
	CategoryID uuid.UUID `json:"category_id" db:"category_id" gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time `json:"created_at" db:"created_at" gorm:"type:timestamp;not null"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at" gorm:"type:timestamp;not null"`

	Category Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:CASCADE"`
}

func (PostCategory) TableName() string { return "post_categories" }

func (pc *PostCategory) BeforeCreate(tx *gorm.DB) error {
	if pc.ID == uuid.Nil {
		pc.ID = uuid.New()
	}
	return nil
}
