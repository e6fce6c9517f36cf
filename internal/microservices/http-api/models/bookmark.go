package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Bookmark struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_bookmarks_user_novel" json:"userId"`
	NovelID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_bookmarks_user_novel;index" json:"novelId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`

	// Associations
	User  *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
	Novel *Novel `gorm:"foreignKey:NovelID;constraint:OnDelete:CASCADE;" json:"novel,omitempty"`
}

func (b *Bookmark) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

func (Bookmark) TableName() string {
	return "bookmarks"
}
