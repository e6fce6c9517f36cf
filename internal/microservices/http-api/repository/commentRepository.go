package repository

import (
	"context"
	"fmt"

	"novelhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	ListByNovel(ctx context.Context, novelID string, chapterID *string) ([]models.Comment, error)
	Delete(ctx context.Context, id string) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts the comment and returns it with author and chapter loaded.
func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	var out models.Comment
	if err := r.withAuthor(r.db.WithContext(ctx)).First(&out, "id = ?", comment.ID).Error; err != nil {
		return nil, fmt.Errorf("reload comment: %w", err)
	}
	return &out, nil
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	var c models.Comment
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByNovel returns comments newest first. A non-nil chapterID narrows the list
// to that chapter.
func (r *commentRepository) ListByNovel(ctx context.Context, novelID string, chapterID *string) ([]models.Comment, error) {
	db := r.withAuthor(r.db.WithContext(ctx)).Where("novel_id = ?", novelID)
	if chapterID != nil {
		db = db.Where("chapter_id = ?", *chapterID)
	}
	var list []models.Comment
	if err := db.Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return list, nil
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Comment{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *commentRepository) withAuthor(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User", publicAuthor).
		Preload("Chapter", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "novel_id", "number", "title")
		})
}
