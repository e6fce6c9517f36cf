package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"novelhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NovelSort selects the ordering of a novel listing.
type NovelSort string

const (
	SortNewest  NovelSort = "newest"
	SortPopular NovelSort = "popular"
)

// NovelFilter narrows a novel search. Zero values disable a filter.
type NovelFilter struct {
	Query   string
	GenreID string
	Tag     string
	Sort    NovelSort
}

// Orderings for ListByAuthor.
const (
	OrderCreatedDesc = "created_at desc"
	OrderUpdatedDesc = "updated_at desc"
)

// NovelUpdate carries the columns and associations to change. Nil slices leave the
// association untouched; a non-nil empty slice clears it.
type NovelUpdate struct {
	Fields   map[string]any
	GenreIDs *[]string
	Tags     *[]string
}

type NovelRepository interface {
	Create(ctx context.Context, novel *models.Novel, genreIDs []string, tags []string) error
	GetByID(ctx context.Context, id string) (*models.Novel, error)
	GetDetail(ctx context.Context, id string) (*models.Novel, error)
	Update(ctx context.Context, id string, upd NovelUpdate) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, filter NovelFilter) ([]models.Novel, error)
	ListByAuthor(ctx context.Context, authorID string, order string) ([]models.Novel, error)
}

type novelRepository struct {
	db *gorm.DB
}

func NewNovelRepository(db *gorm.DB) NovelRepository {
	return &novelRepository{db: db}
}

// Create inserts the novel, its tags and genre links in one transaction.
func (r *novelRepository) Create(ctx context.Context, novel *models.Novel, genreIDs []string, tags []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(novel).Error; err != nil {
			return fmt.Errorf("create novel: %w", err)
		}
		if err := insertTags(tx, novel.ID, tags); err != nil {
			return err
		}
		return linkGenres(tx, novel.ID, genreIDs)
	})
}

func (r *novelRepository) GetByID(ctx context.Context, id string) (*models.Novel, error) {
	var n models.Novel
	if err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// GetDetail loads the novel with author, genres, tags and its chapter count.
func (r *novelRepository) GetDetail(ctx context.Context, id string) (*models.Novel, error) {
	var n models.Novel
	err := r.withListing(r.db.WithContext(ctx)).First(&n, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	list := []models.Novel{n}
	if err := attachChapterCounts(r.db.WithContext(ctx), list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

func (r *novelRepository) Update(ctx context.Context, id string, upd NovelUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fields := make(map[string]any, len(upd.Fields)+1)
		for k, v := range upd.Fields {
			fields[k] = v
		}
		// always bump updated_at so association-only edits still reorder the dashboard
		fields["updated_at"] = time.Now()
		res := tx.Model(&models.Novel{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return fmt.Errorf("update novel: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if upd.GenreIDs != nil {
			var current []string
			if err := tx.Model(&models.NovelGenre{}).
				Where("novel_id = ?", id).
				Pluck("genre_id", &current).Error; err != nil {
				return fmt.Errorf("load novel genres: %w", err)
			}
			add, remove := diffIDs(current, *upd.GenreIDs)
			if len(remove) > 0 {
				if err := tx.Where("novel_id = ? AND genre_id IN ?", id, remove).
					Delete(&models.NovelGenre{}).Error; err != nil {
					return fmt.Errorf("unlink genres: %w", err)
				}
			}
			if err := linkGenres(tx, id, add); err != nil {
				return err
			}
		}

		if upd.Tags != nil {
			var current []namedRow
			if err := tx.Model(&models.Tag{}).
				Select("id", "name").
				Where("novel_id = ?", id).
				Order("name").
				Scan(&current).Error; err != nil {
				return fmt.Errorf("load tags: %w", err)
			}
			create, drop := diffNamed(current, *upd.Tags)
			if len(drop) > 0 {
				if err := tx.Where("id IN ?", drop).Delete(&models.Tag{}).Error; err != nil {
					return fmt.Errorf("drop tags: %w", err)
				}
			}
			if err := insertTags(tx, id, create); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the novel and everything hanging off it atomically.
func (r *novelRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("novel_id = ?", id).Delete(&models.Tag{}).Error; err != nil {
			return fmt.Errorf("delete tags: %w", err)
		}
		if err := tx.Where("novel_id = ?", id).Delete(&models.NovelGenre{}).Error; err != nil {
			return fmt.Errorf("delete genre links: %w", err)
		}
		if err := tx.Where("novel_id = ?", id).Delete(&models.Chapter{}).Error; err != nil {
			return fmt.Errorf("delete chapters: %w", err)
		}
		res := tx.Delete(&models.Novel{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("delete novel: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// Search performs a case-insensitive substring match on title or description and
// applies the optional genre and tag filters.
func (r *novelRepository) Search(ctx context.Context, filter NovelFilter) ([]models.Novel, error) {
	db := r.withListing(r.db.WithContext(ctx).Model(&models.Novel{}))

	if q := strings.TrimSpace(filter.Query); q != "" {
		p := "%" + escapeLike(q) + "%"
		db = db.Where("(novels.title ILIKE ? OR novels.description ILIKE ?)", p, p)
	}
	if filter.GenreID != "" {
		db = db.Where("EXISTS (SELECT 1 FROM novel_genres ng WHERE ng.novel_id = novels.id AND ng.genre_id = ?)", filter.GenreID)
	}
	if tag := strings.TrimSpace(filter.Tag); tag != "" {
		db = db.Where("EXISTS (SELECT 1 FROM tags t WHERE t.novel_id = novels.id AND LOWER(t.name) = LOWER(?))", tag)
	}

	if filter.Sort == SortPopular {
		db = db.Order("(SELECT COUNT(*) FROM chapters c WHERE c.novel_id = novels.id) DESC").
			Order("novels.created_at DESC")
	} else {
		db = db.Order("novels.created_at DESC")
	}

	var list []models.Novel
	if err := db.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("search novels: %w", err)
	}
	if err := attachChapterCounts(r.db.WithContext(ctx), list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *novelRepository) ListByAuthor(ctx context.Context, authorID string, order string) ([]models.Novel, error) {
	if order == "" {
		order = OrderCreatedDesc
	}
	var list []models.Novel
	if err := r.db.WithContext(ctx).
		Preload("Genres", func(db *gorm.DB) *gorm.DB { return db.Order("genres.name") }).
		Preload("Tags").
		Where("author_id = ?", authorID).
		Order(order).
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list novels by author: %w", err)
	}
	if err := attachChapterCounts(r.db.WithContext(ctx), list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *novelRepository) withListing(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author", publicAuthor).
		Preload("Genres", func(db *gorm.DB) *gorm.DB { return db.Order("genres.name") }).
		Preload("Tags")
}

// publicAuthor limits a preloaded author to the fields shown on public pages.
func publicAuthor(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "avatar")
}

func insertTags(tx *gorm.DB, novelID string, names []string) error {
	if len(names) == 0 {
		return nil
	}
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		tags = append(tags, models.Tag{Name: name, NovelID: novelID})
	}
	if err := tx.Create(&tags).Error; err != nil {
		return fmt.Errorf("create tags: %w", err)
	}
	return nil
}

func linkGenres(tx *gorm.DB, novelID string, genreIDs []string) error {
	if len(genreIDs) == 0 {
		return nil
	}
	links := make([]models.NovelGenre, 0, len(genreIDs))
	for _, gid := range genreIDs {
		links = append(links, models.NovelGenre{NovelID: novelID, GenreID: gid})
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error; err != nil {
		return fmt.Errorf("link genres: %w", err)
	}
	return nil
}

type chapterCountRow struct {
	NovelID string
	Total   int64
}

// attachChapterCounts fills ChapterCount on every novel with one grouped query.
func attachChapterCounts(db *gorm.DB, novels []models.Novel) error {
	if len(novels) == 0 {
		return nil
	}
	ids := make([]string, len(novels))
	for i := range novels {
		ids[i] = novels[i].ID
	}
	var rows []chapterCountRow
	if err := db.Model(&models.Chapter{}).
		Select("novel_id, COUNT(*) AS total").
		Where("novel_id IN ?", ids).
		Group("novel_id").
		Scan(&rows).Error; err != nil {
		return fmt.Errorf("count chapters: %w", err)
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.NovelID] = row.Total
	}
	for i := range novels {
		novels[i].ChapterCount = counts[novels[i].ID]
	}
	return nil
}

// attachChapterCountsTo fills ChapterCount on novels preloaded through another row.
// Nil entries are skipped.
func attachChapterCountsTo(db *gorm.DB, refs []*models.Novel) error {
	novels := make([]models.Novel, 0, len(refs))
	for _, n := range refs {
		if n != nil {
			novels = append(novels, models.Novel{ID: n.ID})
		}
	}
	if err := attachChapterCounts(db, novels); err != nil {
		return err
	}
	counts := make(map[string]int64, len(novels))
	for _, n := range novels {
		counts[n.ID] = n.ChapterCount
	}
	for _, n := range refs {
		if n != nil {
			n.ChapterCount = counts[n.ID]
		}
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
