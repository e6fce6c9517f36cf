package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"novelhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChapterRepository defines chapter persistence.
type ChapterRepository interface {
	CreateNext(ctx context.Context, chapter *models.Chapter) error
	GetByID(ctx context.Context, id string) (*models.Chapter, error)
	Update(ctx context.Context, id string, fields map[string]any) (*models.Chapter, error)
	Delete(ctx context.Context, id string) error
	ListByNovel(ctx context.Context, novelID string, publishedOnly bool) ([]models.Chapter, error)
	Neighbors(ctx context.Context, novelID string, number int) (prev, next *models.Chapter, err error)
}

type chapterRepository struct {
	db *gorm.DB
}

func NewChapterRepository(db *gorm.DB) ChapterRepository {
	return &chapterRepository{db: db}
}

// NextChapterNumber returns the number following the current maximum, starting at 1.
func NextChapterNumber(max sql.NullInt64) int {
	if !max.Valid {
		return 1
	}
	return int(max.Int64) + 1
}

// CreateNext assigns the next sequence number and inserts the chapter. The parent
// novel row is locked for the transaction so concurrent creations serialize.
func (r *chapterRepository) CreateNext(ctx context.Context, chapter *models.Chapter) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var novel models.Novel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&novel, "id = ?", chapter.NovelID).Error; err != nil {
			return err
		}

		var max sql.NullInt64
		if err := tx.Model(&models.Chapter{}).
			Where("novel_id = ?", chapter.NovelID).
			Select("MAX(number)").
			Scan(&max).Error; err != nil {
			return fmt.Errorf("max chapter number: %w", err)
		}
		chapter.Number = NextChapterNumber(max)

		if err := tx.Omit(clause.Associations).Create(chapter).Error; err != nil {
			return fmt.Errorf("create chapter: %w", err)
		}
		if err := tx.Model(&models.Novel{}).
			Where("id = ?", chapter.NovelID).
			Update("updated_at", time.Now()).Error; err != nil {
			return fmt.Errorf("touch novel: %w", err)
		}
		return nil
	})
}

func (r *chapterRepository) GetByID(ctx context.Context, id string) (*models.Chapter, error) {
	var ch models.Chapter
	if err := r.db.WithContext(ctx).First(&ch, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ch, nil
}

func (r *chapterRepository) Update(ctx context.Context, id string, fields map[string]any) (*models.Chapter, error) {
	if len(fields) > 0 {
		res := r.db.WithContext(ctx).Model(&models.Chapter{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, fmt.Errorf("update chapter: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.GetByID(ctx, id)
}

func (r *chapterRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Chapter{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete chapter: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListByNovel returns chapter headers ordered by number; bodies are not loaded.
func (r *chapterRepository) ListByNovel(ctx context.Context, novelID string, publishedOnly bool) ([]models.Chapter, error) {
	db := r.db.WithContext(ctx).
		Omit("content").
		Where("novel_id = ?", novelID)
	if publishedOnly {
		db = db.Where("is_published = ?", true)
	}
	var list []models.Chapter
	if err := db.Order("number asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	return list, nil
}

// Neighbors finds the closest published chapters before and after number.
// Either result is nil when there is none.
func (r *chapterRepository) Neighbors(ctx context.Context, novelID string, number int) (*models.Chapter, *models.Chapter, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Select("id", "novel_id", "number", "title").
			Where("novel_id = ? AND is_published = ?", novelID, true)
	}

	var prev []models.Chapter
	if err := base().Where("number < ?", number).Order("number desc").Limit(1).Find(&prev).Error; err != nil {
		return nil, nil, fmt.Errorf("previous chapter: %w", err)
	}
	var next []models.Chapter
	if err := base().Where("number > ?", number).Order("number asc").Limit(1).Find(&next).Error; err != nil {
		return nil, nil, fmt.Errorf("next chapter: %w", err)
	}

	var p, n *models.Chapter
	if len(prev) > 0 {
		p = &prev[0]
	}
	if len(next) > 0 {
		n = &next[0]
	}
	return p, n, nil
}
