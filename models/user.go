package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account that can authenticate and author posts.
// PasswordHash is a bcrypt hash and is never serialized.
type User struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Username     string    `json:"username" db:"username" gorm:"type:text;not null;uniqueIndex"`
	Email        string    `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex"`
	FirstName    string    `json:"first_name" db:"first_name" gorm:"type:text;not null"`
	LastName     string    `json:"last_name" db:"last_name" gorm:"type:text;not null"`
	PasswordHash string    `json:"-" db:"password_hash" gorm:"type:text;not null"`
	CreatedAt    time.Time `json:"created_at" db:"created_at" gorm:"type:timestamp;not null"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at" gorm:"type:timestamp;not null"`

	Posts []Post `json:"posts,omitempty" gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE"`
}

func (User) TableName() string { return "users" }

// BeforeCreate assigns the id in code so the schema works on both the
// postgres and sqlite drivers.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
