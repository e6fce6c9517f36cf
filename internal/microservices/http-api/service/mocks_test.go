package service

import (
	"context"
	"time"

	"novelhub/internal/microservices/http-api/models"
	"novelhub/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) CreateIfAbsent(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Upsert(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateByExternalID(ctx context.Context, externalID string, email string, name, avatar *string) error {
	args := m.Called(ctx, externalID, email, name, avatar)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteByExternalID(ctx context.Context, externalID string) error {
	args := m.Called(ctx, externalID)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateName(ctx context.Context, id, name string) (*models.User, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Stats(ctx context.Context, id string) (*repository.UserStats, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.UserStats), args.Error(1)
}

// MockNovelRepository mocks the NovelRepository interface
type MockNovelRepository struct {
	mock.Mock
}

func (m *MockNovelRepository) Create(ctx context.Context, novel *models.Novel, genreIDs []string, tags []string) error {
	args := m.Called(ctx, novel, genreIDs, tags)
	return args.Error(0)
}

func (m *MockNovelRepository) GetByID(ctx context.Context, id string) (*models.Novel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Novel), args.Error(1)
}

func (m *MockNovelRepository) GetDetail(ctx context.Context, id string) (*models.Novel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Novel), args.Error(1)
}

func (m *MockNovelRepository) Update(ctx context.Context, id string, upd repository.NovelUpdate) error {
	args := m.Called(ctx, id, upd)
	return args.Error(0)
}

func (m *MockNovelRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockNovelRepository) Search(ctx context.Context, filter repository.NovelFilter) ([]models.Novel, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Novel), args.Error(1)
}

func (m *MockNovelRepository) ListByAuthor(ctx context.Context, authorID string, order string) ([]models.Novel, error) {
	args := m.Called(ctx, authorID, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Novel), args.Error(1)
}

// MockChapterRepository mocks the ChapterRepository interface
type MockChapterRepository struct {
	mock.Mock
}

func (m *MockChapterRepository) CreateNext(ctx context.Context, chapter *models.Chapter) error {
	args := m.Called(ctx, chapter)
	return args.Error(0)
}

func (m *MockChapterRepository) GetByID(ctx context.Context, id string) (*models.Chapter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Chapter), args.Error(1)
}

func (m *MockChapterRepository) Update(ctx context.Context, id string, fields map[string]any) (*models.Chapter, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Chapter), args.Error(1)
}

func (m *MockChapterRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockChapterRepository) ListByNovel(ctx context.Context, novelID string, publishedOnly bool) ([]models.Chapter, error) {
	args := m.Called(ctx, novelID, publishedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Chapter), args.Error(1)
}

func (m *MockChapterRepository) Neighbors(ctx context.Context, novelID string, number int) (*models.Chapter, *models.Chapter, error) {
	args := m.Called(ctx, novelID, number)
	var prev, next *models.Chapter
	if p := args.Get(0); p != nil {
		prev = p.(*models.Chapter)
	}
	if n := args.Get(1); n != nil {
		next = n.(*models.Chapter)
	}
	return prev, next, args.Error(2)
}

// MockGenreRepository mocks the GenreRepository interface
type MockGenreRepository struct {
	mock.Mock
}

func (m *MockGenreRepository) GetAll(ctx context.Context) ([]models.Genre, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Genre), args.Error(1)
}

func (m *MockGenreRepository) CountByIDs(ctx context.Context, ids []string) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGenreRepository) SeedNames(ctx context.Context, names []string) (int64, error) {
	args := m.Called(ctx, names)
	return args.Get(0).(int64), args.Error(1)
}

// MockBookmarkRepository mocks the BookmarkRepository interface
type MockBookmarkRepository struct {
	mock.Mock
}

func (m *MockBookmarkRepository) Add(ctx context.Context, userID, novelID string) (bool, error) {
	args := m.Called(ctx, userID, novelID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookmarkRepository) Remove(ctx context.Context, userID, novelID string) (int64, error) {
	args := m.Called(ctx, userID, novelID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookmarkRepository) List(ctx context.Context, userID string) ([]models.Bookmark, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Bookmark), args.Error(1)
}

func (m *MockBookmarkRepository) Exists(ctx context.Context, userID, novelID string) (bool, error) {
	args := m.Called(ctx, userID, novelID)
	return args.Bool(0), args.Error(1)
}

// MockFollowRepository mocks the FollowRepository interface
type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Add(ctx context.Context, followerID, followingID string) (bool, error) {
	args := m.Called(ctx, followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) Remove(ctx context.Context, followerID, followingID string) (int64, error) {
	args := m.Called(ctx, followerID, followingID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFollowRepository) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	args := m.Called(ctx, followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) ListFollowing(ctx context.Context, followerID string) ([]repository.FollowedAuthor, error) {
	args := m.Called(ctx, followerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.FollowedAuthor), args.Error(1)
}

// MockCommentRepository mocks the CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	args := m.Called(ctx, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByNovel(ctx context.Context, novelID string, chapterID *string) ([]models.Comment, error) {
	args := m.Called(ctx, novelID, chapterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReadingHistoryRepository mocks the ReadingHistoryRepository interface
type MockReadingHistoryRepository struct {
	mock.Mock
}

func (m *MockReadingHistoryRepository) Upsert(ctx context.Context, userID, chapterID string, readAt time.Time) (*models.ReadingHistory, error) {
	args := m.Called(ctx, userID, chapterID, readAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReadingHistory), args.Error(1)
}

func (m *MockReadingHistoryRepository) LatestInNovel(ctx context.Context, userID, novelID string) (*models.ReadingHistory, error) {
	args := m.Called(ctx, userID, novelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReadingHistory), args.Error(1)
}

func (m *MockReadingHistoryRepository) ListByUser(ctx context.Context, userID string) ([]models.ReadingHistory, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReadingHistory), args.Error(1)
}
