package repository

import (
	"context"
	"fmt"

	"novelhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookmarkRepository interface {
	Add(ctx context.Context, userID, novelID string) (bool, error)
	Remove(ctx context.Context, userID, novelID string) (int64, error)
	List(ctx context.Context, userID string) ([]models.Bookmark, error)
	Exists(ctx context.Context, userID, novelID string) (bool, error)
}

type bookmarkRepository struct {
	db *gorm.DB
}

func NewBookmarkRepository(db *gorm.DB) BookmarkRepository {
	return &bookmarkRepository{db: db}
}

// Add inserts the bookmark and reports whether a row was created. An existing
// (user, novel) pair is left alone and reported as false.
func (r *bookmarkRepository) Add(ctx context.Context, userID, novelID string) (bool, error) {
	bookmark := &models.Bookmark{
		UserID:  userID,
		NovelID: novelID,
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "novel_id"}},
			DoNothing: true,
		}).
		Omit(clause.Associations).
		Create(bookmark)
	if res.Error != nil {
		return false, fmt.Errorf("add bookmark: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Remove deletes every matching row; removing nothing is not an error.
func (r *bookmarkRepository) Remove(ctx context.Context, userID, novelID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND novel_id = ?", userID, novelID).
		Delete(&models.Bookmark{})
	if res.Error != nil {
		return 0, fmt.Errorf("remove bookmark: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *bookmarkRepository) List(ctx context.Context, userID string) ([]models.Bookmark, error) {
	var list []models.Bookmark
	if err := r.db.WithContext(ctx).
		Preload("Novel").
		Preload("Novel.Author", publicAuthor).
		Preload("Novel.Genres", func(db *gorm.DB) *gorm.DB { return db.Order("genres.name") }).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}

	refs := make([]*models.Novel, 0, len(list))
	for i := range list {
		refs = append(refs, list[i].Novel)
	}
	if err := attachChapterCountsTo(r.db.WithContext(ctx), refs); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *bookmarkRepository) Exists(ctx context.Context, userID, novelID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Bookmark{}).
		Where("user_id = ? AND novel_id = ?", userID, novelID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
