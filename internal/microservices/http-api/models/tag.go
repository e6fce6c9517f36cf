package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag is a free-form label owned by exactly one novel.
type Tag struct {
	ID      string `json:"id" gorm:"primaryKey;type:uuid"`
	Name    string `json:"name" gorm:"not null"`
	NovelID string `json:"novelId" gorm:"type:uuid;not null;index"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

func (Tag) TableName() string {
	return "tags"
}
