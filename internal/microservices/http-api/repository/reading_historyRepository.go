package repository

import (
	"context"
	"fmt"
	"time"

	"novelhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReadingHistoryRepository interface {
	Upsert(ctx context.Context, userID, chapterID string, readAt time.Time) (*models.ReadingHistory, error)
	LatestInNovel(ctx context.Context, userID, novelID string) (*models.ReadingHistory, error)
	ListByUser(ctx context.Context, userID string) ([]models.ReadingHistory, error)
}

type readingHistoryRepository struct {
	db *gorm.DB
}

func NewReadingHistoryRepository(db *gorm.DB) ReadingHistoryRepository {
	return &readingHistoryRepository{db: db}
}

// Upsert records a read of the chapter. A repeated read refreshes read_at in place.
func (r *readingHistoryRepository) Upsert(ctx context.Context, userID, chapterID string, readAt time.Time) (*models.ReadingHistory, error) {
	entry := &models.ReadingHistory{
		UserID:    userID,
		ChapterID: chapterID,
		ReadAt:    readAt,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "chapter_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"read_at"}),
		}).
		Omit(clause.Associations).
		Create(entry).Error
	if err != nil {
		return nil, fmt.Errorf("upsert reading history: %w", err)
	}

	var out models.ReadingHistory
	if err := r.db.WithContext(ctx).
		Preload("Chapter", func(db *gorm.DB) *gorm.DB { return db.Omit("content") }).
		Where("user_id = ? AND chapter_id = ?", userID, chapterID).
		First(&out).Error; err != nil {
		return nil, fmt.Errorf("reload reading history: %w", err)
	}
	return &out, nil
}

// LatestInNovel returns the caller's most recent read within the novel, or
// gorm.ErrRecordNotFound.
func (r *readingHistoryRepository) LatestInNovel(ctx context.Context, userID, novelID string) (*models.ReadingHistory, error) {
	var h models.ReadingHistory
	err := r.db.WithContext(ctx).
		Preload("Chapter", func(db *gorm.DB) *gorm.DB { return db.Omit("content") }).
		Joins("JOIN chapters ON chapters.id = reading_history.chapter_id").
		Where("reading_history.user_id = ? AND chapters.novel_id = ?", userID, novelID).
		Order("reading_history.read_at DESC").
		First(&h).Error
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// ListByUser returns every history row of the user, most recent first.
func (r *readingHistoryRepository) ListByUser(ctx context.Context, userID string) ([]models.ReadingHistory, error) {
	var list []models.ReadingHistory
	if err := r.db.WithContext(ctx).
		Preload("Chapter", func(db *gorm.DB) *gorm.DB { return db.Omit("content") }).
		Preload("Chapter.Novel").
		Preload("Chapter.Novel.Author", publicAuthor).
		Preload("Chapter.Novel.Genres", func(db *gorm.DB) *gorm.DB { return db.Order("genres.name") }).
		Where("user_id = ?", userID).
		Order("read_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list reading history: %w", err)
	}

	refs := make([]*models.Novel, 0, len(list))
	for i := range list {
		if list[i].Chapter != nil {
			refs = append(refs, list[i].Chapter.Novel)
		}
	}
	if err := attachChapterCountsTo(r.db.WithContext(ctx), refs); err != nil {
		return nil, err
	}
	return list, nil
}
