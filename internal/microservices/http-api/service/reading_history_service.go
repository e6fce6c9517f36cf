package service

import (
	"context"
	"time"

	"novelhub/internal/microservices/http-api/dto"
	"novelhub/internal/microservices/http-api/models"
	"novelhub/internal/microservices/http-api/repository"
	"novelhub/internal/shared"
)

type ReadingHistoryService interface {
	Record(ctx context.Context, caller *shared.Principal, req dto.RecordReadRequest) (*models.ReadingHistory, error)
	LastInNovel(ctx context.Context, caller *shared.Principal, novelID string) (*models.ReadingHistory, error)
	History(ctx context.Context, caller *shared.Principal) ([]dto.HistoryEntry, error)
}

type readingHistoryService struct {
	users    UserService
	chapters repository.ChapterRepository
	history  repository.ReadingHistoryRepository
	now      func() time.Time
}

func NewReadingHistoryService(users UserService, chapters repository.ChapterRepository, history repository.ReadingHistoryRepository) ReadingHistoryService {
	return &readingHistoryService{users: users, chapters: chapters, history: history, now: time.Now}
}

// Record marks the chapter as read now. Reading it again only refreshes the time.
func (s *readingHistoryService) Record(ctx context.Context, caller *shared.Principal, req dto.RecordReadRequest) (*models.ReadingHistory, error) {
	user, err := s.users.Resolve(ctx, caller)
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}
	if _, err := s.chapters.GetByID(ctx, req.ChapterID); err != nil {
		return nil, notFoundOr(err, ErrChapterNotFound)
	}
	return s.history.Upsert(ctx, user.ID, req.ChapterID, s.now())
}

// LastInNovel returns the most recent read in the novel, or nil when there is none
// or the caller is anonymous.
func (s *readingHistoryService) LastInNovel(ctx context.Context, caller *shared.Principal, novelID string) (*models.ReadingHistory, error) {
	if err := parseID(novelID); err != nil {
		return nil, err
	}
	user, err := s.users.Lookup(ctx, caller)
	if err != nil || user == nil {
		return nil, err
	}
	h, err := s.history.LatestInNovel(ctx, user.ID, novelID)
	if repository.IsNotFound(err) {
		return nil, nil
	}
	return h, err
}

// History returns one entry per novel, the most recently read novel first.
func (s *readingHistoryService) History(ctx context.Context, caller *shared.Principal) ([]dto.HistoryEntry, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	user, err := s.users.Lookup(ctx, caller)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return []dto.HistoryEntry{}, nil
	}
	rows, err := s.history.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	collapsed := CollapseByNovel(rows)
	out := make([]dto.HistoryEntry, 0, len(collapsed))
	for _, h := range collapsed {
		chapter := h.Chapter
		novel := chapter.Novel
		chapter.Novel = nil
		out = append(out, dto.HistoryEntry{
			ID:      h.ID,
			ReadAt:  h.ReadAt,
			Chapter: chapter,
			Novel:   novel,
		})
	}
	return out, nil
}
