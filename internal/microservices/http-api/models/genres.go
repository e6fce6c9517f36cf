package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Genre struct {
	ID   string `json:"id" gorm:"primaryKey;type:uuid"`
	Name string `json:"name" gorm:"unique;not null"`
}

func (g *Genre) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	return nil
}

func (Genre) TableName() string {
	return "genres"
}
