package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostStatus is the publication state of a post.
type PostStatus string

const (
	StatusDraft     PostStatus = "DRAFT"
	StatusPublished PostStatus = "PUBLISHED"
)

// Valid reports whether s is one of the enumerated statuses.
func (s PostStatus) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Post is the primary content entity. A post exclusively owns its tags and
// its category links; deleting a post removes both.
type Post struct {
	ID        uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title     string     `json:"title" db:"title" gorm:"type:text;not null;index"`
	Content   *string    `json:"content,omitempty" db:"content" gorm:"type:text"`
	Status    PostStatus `json:"status" db:"status" gorm:"type:varchar(10);not null;default:DRAFT;index"`
	AuthorID  uuid.UUID  `json:"author_id" db:"author_id" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time  `json:"created_at" db:"created_at" gorm:"type:timestamp;not null"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at" gorm:"type:timestamp;not null"`

	Author     User           `json:"author,omitempty" gorm:"foreignKey:AuthorID;references:ID"`
	Tags       []Tag          `json:"tags,omitempty" gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
	Categories []PostCategory `json:"categories,omitempty" gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
}

func (Post) TableName() string { return "posts" }

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = StatusDraft
	}
	return nil
}
