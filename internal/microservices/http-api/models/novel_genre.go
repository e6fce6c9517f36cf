package models

// explicit join model for the novel <-> genre many2many table, used when the
// genre set of a novel is diffed instead of cleared
type NovelGenre struct {
	NovelID string `json:"novelId" gorm:"primaryKey;type:uuid"`
	GenreID string `json:"genreId" gorm:"primaryKey;type:uuid;index"`
}

func (NovelGenre) TableName() string {
	return "novel_genres"
}
