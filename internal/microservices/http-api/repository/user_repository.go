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

// UserStats aggregates the counters shown on an author profile.
type UserStats struct {
	NovelCount     int64 `json:"novelCount"`
	FollowerCount  int64 `json:"followerCount"`
	FollowingCount int64 `json:"followingCount"`
	ChapterCount   int64 `json:"chapterCount"`
	WordCount      int64 `json:"wordCount"`
}

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByExternalID(ctx context.Context, externalID string) (*models.User, error)
	CreateIfAbsent(ctx context.Context, user *models.User) (*models.User, error)
	Upsert(ctx context.Context, user *models.User) (*models.User, error)
	UpdateByExternalID(ctx context.Context, externalID string, email string, name, avatar *string) error
	DeleteByExternalID(ctx context.Context, externalID string) error
	UpdateName(ctx context.Context, id, name string) (*models.User, error)
	Stats(ctx context.Context, id string) (*UserStats, error)
}

// userRepository is the GORM implementation of UserRepository.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository in a GORM implementation
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	// return nil on error so a zero-value user is never mistaken for a found one
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateIfAbsent inserts the user unless a row with the same external id exists and
// returns the stored row either way. Concurrent first requests converge on one row.
func (r *userRepository) CreateIfAbsent(ctx context.Context, user *models.User) (*models.User, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			DoNothing: true,
		}).
		Create(user).Error
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return r.FindByExternalID(ctx, user.ExternalID)
}

// Upsert inserts the user or refreshes email, name and avatar of the existing row.
func (r *userRepository) Upsert(ctx context.Context, user *models.User) (*models.User, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"email", "name", "avatar", "updated_at"}),
		}).
		Create(user).Error
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return r.FindByExternalID(ctx, user.ExternalID)
}

func (r *userRepository) UpdateByExternalID(ctx context.Context, externalID string, email string, name, avatar *string) error {
	fields := map[string]any{
		"name":       name,
		"avatar":     avatar,
		"updated_at": time.Now(),
	}
	if email != "" {
		fields["email"] = email
	}
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("external_id = ?", externalID).
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepository) DeleteByExternalID(ctx context.Context, externalID string) error {
	result := r.db.WithContext(ctx).Where("external_id = ?", externalID).Delete(&models.User{})
	if result.Error != nil {
		return fmt.Errorf("delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepository) UpdateName(ctx context.Context, id, name string) (*models.User, error) {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]any{"name": name, "updated_at": time.Now()})
	if result.Error != nil {
		return nil, fmt.Errorf("update user name: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *userRepository) Stats(ctx context.Context, id string) (*UserStats, error) {
	var stats UserStats
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM novels WHERE author_id = @id) AS novel_count,
			(SELECT COUNT(*) FROM follows WHERE following_id = @id) AS follower_count,
			(SELECT COUNT(*) FROM follows WHERE follower_id = @id) AS following_count,
			(SELECT COUNT(*) FROM chapters c JOIN novels n ON n.id = c.novel_id WHERE n.author_id = @id) AS chapter_count,
			(SELECT COALESCE(SUM(c.word_count), 0) FROM chapters c JOIN novels n ON n.id = c.novel_id WHERE n.author_id = @id) AS word_count
	`, sql.Named("id", id)).Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}
	return &stats, nil
}
