package repository

import (
	"context"
	"fmt"
	"time"

	"novelhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowedAuthor is an author the caller follows, with counts read at query time.
type FollowedAuthor struct {
	ID            string    `json:"id"`
	Name          *string   `json:"name"`
	Avatar        *string   `json:"avatar"`
	NovelCount    int64     `json:"novelCount"`
	FollowerCount int64     `json:"followerCount"`
	FollowedAt    time.Time `json:"followedAt"`
}

type FollowRepository interface {
	Add(ctx context.Context, followerID, followingID string) (bool, error)
	Remove(ctx context.Context, followerID, followingID string) (int64, error)
	Exists(ctx context.Context, followerID, followingID string) (bool, error)
	ListFollowing(ctx context.Context, followerID string) ([]FollowedAuthor, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Add(ctx context.Context, followerID, followingID string) (bool, error) {
	follow := &models.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "follower_id"}, {Name: "following_id"}},
			DoNothing: true,
		}).
		Omit(clause.Associations).
		Create(follow)
	if res.Error != nil {
		return false, fmt.Errorf("add follow: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *followRepository) Remove(ctx context.Context, followerID, followingID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return 0, fmt.Errorf("remove follow: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *followRepository) ListFollowing(ctx context.Context, followerID string) ([]FollowedAuthor, error) {
	var list []FollowedAuthor
	err := r.db.WithContext(ctx).
		Table("follows f").
		Select(`u.id, u.name, u.avatar, f.created_at AS followed_at,
			(SELECT COUNT(*) FROM novels n WHERE n.author_id = u.id) AS novel_count,
			(SELECT COUNT(*) FROM follows x WHERE x.following_id = u.id) AS follower_count`).
		Joins("JOIN users u ON u.id = f.following_id").
		Where("f.follower_id = ?", followerID).
		Order("f.created_at DESC").
		Scan(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list following: %w", err)
	}
	return list, nil
}
