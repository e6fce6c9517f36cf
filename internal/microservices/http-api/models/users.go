package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the local mirror of an identity-provider account.
// ExternalID is the provider's subject id; rows are created lazily on first
// authenticated use or by a lifecycle webhook.
type User struct {
	ID         string    `gorm:"primaryKey;type:uuid" json:"id"`
	ExternalID string    `gorm:"uniqueIndex;not null" json:"-"`
	Email      string    `gorm:"not null" json:"email,omitempty"`
	Name       *string   `json:"name"`
	Avatar     *string   `json:"avatar"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	Novels    []Novel  `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;" json:"-"`
	Followers []Follow `gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE;" json:"-"`
	Following []Follow `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE;" json:"-"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}
