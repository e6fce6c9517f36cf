package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NovelStatus string

const (
	NovelOngoing   NovelStatus = "ONGOING"
	NovelCompleted NovelStatus = "COMPLETED"
	NovelHiatus    NovelStatus = "HIATUS"
)

// NovelStatuses lists every accepted status value.
var NovelStatuses = []NovelStatus{NovelOngoing, NovelCompleted, NovelHiatus}

type Novel struct {
	ID          string      `json:"id" gorm:"primaryKey;type:uuid"`
	Title       string      `json:"title" gorm:"not null"`
	Description string      `json:"description" gorm:"not null;type:text"`
	CoverImage  *string     `json:"coverImage"`
	Status      NovelStatus `json:"status" gorm:"type:varchar(16);not null;default:'ONGOING'"`
	AuthorID    string      `json:"authorId" gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time   `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time   `json:"updatedAt" gorm:"autoUpdateTime"`

	// association
	Author   *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Genres   []Genre   `json:"genres" gorm:"many2many:novel_genres;constraint:OnDelete:CASCADE;"`
	Tags     []Tag     `json:"tags" gorm:"foreignKey:NovelID;constraint:OnDelete:CASCADE;"`
	Chapters []Chapter `json:"chapters,omitempty" gorm:"foreignKey:NovelID;constraint:OnDelete:CASCADE;"`

	// filled by the repository from a grouped count, not stored
	ChapterCount int64 `json:"chapterCount" gorm:"-"`
}

func (n *Novel) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.Status == "" {
		n.Status = NovelOngoing
	}
	return nil
}

func (Novel) TableName() string {
	return "novels"
}
