package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReadingHistory keeps one row per (user, chapter); repeated reads refresh ReadAt.
type ReadingHistory struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_reading_history_user_chapter" json:"userId"`
	ChapterID string    `gorm:"type:uuid;not null;uniqueIndex:idx_reading_history_user_chapter;index" json:"chapterId"`
	ReadAt    time.Time `gorm:"not null;index" json:"readAt"`

	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
	Chapter *Chapter `gorm:"foreignKey:ChapterID;constraint:OnDelete:CASCADE;" json:"chapter,omitempty"`
}

func (h *ReadingHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	return nil
}

// TableName overrides the table name used by ReadingHistory to `reading_history`
func (ReadingHistory) TableName() string {
	return "reading_history"
}
