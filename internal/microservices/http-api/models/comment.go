package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid"`
	Content   string    `json:"content" gorm:"not null;type:text"`
	UserID    string    `json:"userId" gorm:"type:uuid;not null;index"`
	NovelID   string    `json:"novelId" gorm:"type:uuid;not null;index"`
	ChapterID *string   `json:"chapterId" gorm:"type:uuid;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`

	// Associations
	User    *User    `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Novel   *Novel   `json:"-" gorm:"foreignKey:NovelID;constraint:OnDelete:CASCADE;"`
	Chapter *Chapter `json:"chapter,omitempty" gorm:"foreignKey:ChapterID;constraint:OnDelete:CASCADE;"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

func (Comment) TableName() string {
	return "comments"
}
