package repository

import (
	"context"
	"fmt"

	"novelhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GenreRepository interface {
	GetAll(ctx context.Context) ([]models.Genre, error)
	CountByIDs(ctx context.Context, ids []string) (int64, error)
	SeedNames(ctx context.Context, names []string) (int64, error)
}

type genreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db}
}

func (r *genreRepository) GetAll(ctx context.Context) ([]models.Genre, error) {
	var list []models.Genre
	if err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get genres: %w", err)
	}
	return list, nil
}

// CountByIDs reports how many of ids refer to existing genres.
func (r *genreRepository) CountByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Genre{}).
		Where("id IN ?", ids).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count genres: %w", err)
	}
	return count, nil
}

// SeedNames inserts the genres that do not exist yet and returns how many were added.
func (r *genreRepository) SeedNames(ctx context.Context, names []string) (int64, error) {
	if len(names) == 0 {
		return 0, nil
	}
	genres := make([]models.Genre, 0, len(names))
	for _, name := range names {
		genres = append(genres, models.Genre{Name: name})
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&genres)
	if res.Error != nil {
		return 0, fmt.Errorf("seed genres: %w", res.Error)
	}
	return res.RowsAffected, nil
}
