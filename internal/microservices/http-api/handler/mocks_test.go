package handler_test

import (
	"context"
	"net/http"

	"novelhub/internal/microservices/http-api/dto"
	"novelhub/internal/microservices/http-api/models"
	"novelhub/internal/microservices/http-api/repository"
	"novelhub/internal/microservices/http-api/service"
	"novelhub/internal/shared"

	"github.com/stretchr/testify/mock"
)

// --- MOCK SERVICES ---

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Resolve(ctx context.Context, caller *shared.Principal) (*models.User, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Lookup(ctx context.Context, caller *shared.Principal) (*models.User, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Sync(ctx context.Context, caller *shared.Principal) (*models.User, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, caller *shared.Principal, req dto.UpdateProfileRequest) (*models.User, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) AuthorProfile(ctx context.Context, caller *shared.Principal, authorID string) (*dto.AuthorProfileResponse, error) {
	args := m.Called(ctx, caller, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthorProfileResponse), args.Error(1)
}

func (m *MockUserService) ApplyEvent(ctx context.Context, evt service.IdentityEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

type MockNovelService struct {
	mock.Mock
}

func (m *MockNovelService) Create(ctx context.Context, caller *shared.Principal, req dto.CreateNovelRequest) (*models.Novel, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Novel), args.Error(1)
}

func (m *MockNovelService) Update(ctx context.Context, caller *shared.Principal, novelID string, req dto.UpdateNovelRequest) (*models.Novel, error) {
	args := m.Called(ctx, caller, novelID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Novel), args.Error(1)
}

func (m *MockNovelService) Delete(ctx context.Context, caller *shared.Principal, novelID string) error {
	args := m.Called(ctx, caller, novelID)
	return args.Error(0)
}

func (m *MockNovelService) Get(ctx context.Context, caller *shared.Principal, novelID string) (*dto.NovelDetailResponse, error) {
	args := m.Called(ctx, caller, novelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.NovelDetailResponse), args.Error(1)
}

func (m *MockNovelService) Search(ctx context.Context, q dto.NovelSearchQuery) ([]models.Novel, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Novel), args.Error(1)
}

func (m *MockNovelService) ListGenres(ctx context.Context) ([]models.Genre, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Genre), args.Error(1)
}

func (m *MockNovelService) Dashboard(ctx context.Context, caller *shared.Principal) (*dto.DashboardResponse, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DashboardResponse), args.Error(1)
}

func (m *MockNovelService) Manage(ctx context.Context, caller *shared.Principal, novelID string) (*dto.NovelDetailResponse, error) {
	args := m.Called(ctx, caller, novelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.NovelDetailResponse), args.Error(1)
}

type MockChapterService struct {
	mock.Mock
}

func (m *MockChapterService) Create(ctx context.Context, caller *shared.Principal, novelID string, req dto.CreateChapterRequest) (*models.Chapter, error) {
	args := m.Called(ctx, caller, novelID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Chapter), args.Error(1)
}

func (m *MockChapterService) Update(ctx context.Context, caller *shared.Principal, novelID, chapterID string, req dto.UpdateChapterRequest) (*models.Chapter, error) {
	args := m.Called(ctx, caller, novelID, chapterID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Chapter), args.Error(1)
}

func (m *MockChapterService) Delete(ctx context.Context, caller *shared.Principal, novelID, chapterID string) error {
	args := m.Called(ctx, caller, novelID, chapterID)
	return args.Error(0)
}

func (m *MockChapterService) ListPublished(ctx context.Context, novelID string) ([]models.Chapter, error) {
	args := m.Called(ctx, novelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Chapter), args.Error(1)
}

func (m *MockChapterService) Read(ctx context.Context, caller *shared.Principal, novelID, chapterID string) (*dto.ChapterView, error) {
	args := m.Called(ctx, caller, novelID, chapterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ChapterView), args.Error(1)
}

type MockBookmarkService struct {
	mock.Mock
}

func (m *MockBookmarkService) Add(ctx context.Context, caller *shared.Principal, req dto.AddBookmarkRequest) error {
	args := m.Called(ctx, caller, req)
	return args.Error(0)
}

func (m *MockBookmarkService) Remove(ctx context.Context, caller *shared.Principal, novelID string) error {
	args := m.Called(ctx, caller, novelID)
	return args.Error(0)
}

func (m *MockBookmarkService) IsBookmarked(ctx context.Context, caller *shared.Principal, novelID string) (bool, error) {
	args := m.Called(ctx, caller, novelID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookmarkService) List(ctx context.Context, caller *shared.Principal) ([]models.Bookmark, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Bookmark), args.Error(1)
}

type MockFollowService struct {
	mock.Mock
}

func (m *MockFollowService) Follow(ctx context.Context, caller *shared.Principal, req dto.FollowRequest) error {
	args := m.Called(ctx, caller, req)
	return args.Error(0)
}

func (m *MockFollowService) Unfollow(ctx context.Context, caller *shared.Principal, authorID string) error {
	args := m.Called(ctx, caller, authorID)
	return args.Error(0)
}

func (m *MockFollowService) IsFollowing(ctx context.Context, caller *shared.Principal, authorID string) (bool, error) {
	args := m.Called(ctx, caller, authorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowService) ListFollowing(ctx context.Context, caller *shared.Principal) ([]repository.FollowedAuthor, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.FollowedAuthor), args.Error(1)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) Create(ctx context.Context, caller *shared.Principal, req dto.CreateCommentRequest) (*models.Comment, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) Delete(ctx context.Context, caller *shared.Principal, commentID string) error {
	args := m.Called(ctx, caller, commentID)
	return args.Error(0)
}

func (m *MockCommentService) List(ctx context.Context, caller *shared.Principal, novelID string, chapterID *string) (*dto.CommentListResponse, error) {
	args := m.Called(ctx, caller, novelID, chapterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentListResponse), args.Error(1)
}

type MockReadingHistoryService struct {
	mock.Mock
}

func (m *MockReadingHistoryService) Record(ctx context.Context, caller *shared.Principal, req dto.RecordReadRequest) (*models.ReadingHistory, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReadingHistory), args.Error(1)
}

func (m *MockReadingHistoryService) LastInNovel(ctx context.Context, caller *shared.Principal, novelID string) (*models.ReadingHistory, error) {
	args := m.Called(ctx, caller, novelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReadingHistory), args.Error(1)
}

func (m *MockReadingHistoryService) History(ctx context.Context, caller *shared.Principal) ([]dto.HistoryEntry, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.HistoryEntry), args.Error(1)
}

// --- MOCK INFRASTRUCTURE ---

type MockCoverUploader struct {
	mock.Mock
}

func (m *MockCoverUploader) PresignCover(ctx context.Context) (*dto.UploadTicket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UploadTicket), args.Error(1)
}

type MockReplayGuard struct {
	mock.Mock
}

func (m *MockReplayGuard) Claim(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockReplayGuard) Release(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockSignatureVerifier struct {
	mock.Mock
}

func (m *MockSignatureVerifier) Verify(payload []byte, headers http.Header) error {
	args := m.Called(payload, headers)
	return args.Error(0)
}

type stubPinger struct {
	err error
}

func (p stubPinger) PingContext(context.Context) error { return p.err }
