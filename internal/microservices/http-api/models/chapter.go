package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Chapter numbers are unique per novel. A delete leaves a gap; nothing is renumbered.
type Chapter struct {
	ID          string    `json:"id" gorm:"primaryKey;type:uuid"`
	NovelID     string    `json:"novelId" gorm:"type:uuid;not null;uniqueIndex:idx_chapters_novel_number"`
	Number      int       `json:"number" gorm:"not null;uniqueIndex:idx_chapters_novel_number;check:chk_chapters_number_positive,number > 0"`
	Title       string    `json:"title" gorm:"not null"`
	Content     string    `json:"content,omitempty" gorm:"not null;type:text"`
	WordCount   int       `json:"wordCount" gorm:"not null"`
	IsPublished bool      `json:"isPublished" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"autoUpdateTime"`

	Novel *Novel `json:"novel,omitempty" gorm:"foreignKey:NovelID"`
}

func (c *Chapter) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

func (Chapter) TableName() string {
	return "chapters"
}
