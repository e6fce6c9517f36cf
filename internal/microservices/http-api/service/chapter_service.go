package service

import (
	"context"

	"novelhub/internal/microservices/http-api/dto"
	"novelhub/internal/microservices/http-api/models"
	"novelhub/internal/microservices/http-api/repository"
	"novelhub/internal/shared"
)

type ChapterService interface {
	Create(ctx context.Context, caller *shared.Principal, novelID string, req dto.CreateChapterRequest) (*models.Chapter, error)
	Update(ctx context.Context, caller *shared.Principal, novelID, chapterID string, req dto.UpdateChapterRequest) (*models.Chapter, error)
	Delete(ctx context.Context, caller *shared.Principal, novelID, chapterID string) error
	ListPublished(ctx context.Context, novelID string) ([]models.Chapter, error)
	Read(ctx context.Context, caller *shared.Principal, novelID, chapterID string) (*dto.ChapterView, error)
}

type chapterService struct {
	users    UserService
	novels   repository.NovelRepository
	chapters repository.ChapterRepository
}

func NewChapterService(users UserService, novels repository.NovelRepository, chapters repository.ChapterRepository) ChapterService {
	return &chapterService{users: users, novels: novels, chapters: chapters}
}

// Create appends a chapter with the next sequence number. It is published unless the
// request says otherwise.
func (s *chapterService) Create(ctx context.Context, caller *shared.Principal, novelID string, req dto.CreateChapterRequest) (*models.Chapter, error) {
	if _, _, err := ownedNovel(ctx, s.users, s.novels, caller, novelID); err != nil {
		return nil, err
	}
	req.Normalize()
	if err := validate(req); err != nil {
		return nil, err
	}

	published := true
	if req.IsPublished != nil {
		published = *req.IsPublished
	}
	chapter := &models.Chapter{
		NovelID:     novelID,
		Title:       req.Title,
		Content:     req.Content,
		WordCount:   CountWords(req.Content),
		IsPublished: published,
	}
	if err := s.chapters.CreateNext(ctx, chapter); err != nil {
		return nil, notFoundOr(err, ErrNovelNotFound)
	}
	return chapter, nil
}

func (s *chapterService) Update(ctx context.Context, caller *shared.Principal, novelID, chapterID string, req dto.UpdateChapterRequest) (*models.Chapter, error) {
	if _, err := s.ownedChapter(ctx, caller, novelID, chapterID); err != nil {
		return nil, err
	}
	req.Normalize()
	if err := validate(req); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Content != nil {
		fields["content"] = *req.Content
		fields["word_count"] = CountWords(*req.Content)
	}
	if req.IsPublished != nil {
		fields["is_published"] = *req.IsPublished
	}
	chapter, err := s.chapters.Update(ctx, chapterID, fields)
	if err != nil {
		return nil, notFoundOr(err, ErrChapterNotFound)
	}
	return chapter, nil
}

// Delete removes the chapter. Remaining chapters keep their numbers.
func (s *chapterService) Delete(ctx context.Context, caller *shared.Principal, novelID, chapterID string) error {
	if _, err := s.ownedChapter(ctx, caller, novelID, chapterID); err != nil {
		return err
	}
	return notFoundOr(s.chapters.Delete(ctx, chapterID), ErrChapterNotFound)
}

func (s *chapterService) ListPublished(ctx context.Context, novelID string) ([]models.Chapter, error) {
	if err := parseID(novelID); err != nil {
		return nil, err
	}
	if _, err := s.novels.GetByID(ctx, novelID); err != nil {
		return nil, notFoundOr(err, ErrNovelNotFound)
	}
	chapters, err := s.chapters.ListByNovel(ctx, novelID, true)
	if err != nil {
		return nil, err
	}
	if chapters == nil {
		chapters = []models.Chapter{}
	}
	return chapters, nil
}

// Read returns a chapter with its published neighbours. Drafts are visible only to
// the novel's author; everyone else gets not found.
func (s *chapterService) Read(ctx context.Context, caller *shared.Principal, novelID, chapterID string) (*dto.ChapterView, error) {
	if err := parseID(novelID); err != nil {
		return nil, err
	}
	if err := parseID(chapterID); err != nil {
		return nil, err
	}
	novel, err := s.novels.GetDetail(ctx, novelID)
	if err != nil {
		return nil, notFoundOr(err, ErrNovelNotFound)
	}
	chapter, err := s.chapters.GetByID(ctx, chapterID)
	if err != nil {
		return nil, notFoundOr(err, ErrChapterNotFound)
	}
	if chapter.NovelID != novel.ID {
		return nil, ErrChapterNotFound
	}
	if !chapter.IsPublished {
		viewer, err := s.users.Lookup(ctx, caller)
		if err != nil {
			return nil, err
		}
		if viewer == nil || viewer.ID != novel.AuthorID {
			return nil, ErrChapterNotFound
		}
	}

	prev, next, err := s.chapters.Neighbors(ctx, novelID, chapter.Number)
	if err != nil {
		return nil, err
	}
	return &dto.ChapterView{Chapter: chapter, Novel: novel, Previous: prev, Next: next}, nil
}

// ownedChapter checks novel ownership, then that the chapter belongs to that novel.
func (s *chapterService) ownedChapter(ctx context.Context, caller *shared.Principal, novelID, chapterID string) (*models.Chapter, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if err := parseID(chapterID); err != nil {
		return nil, err
	}
	if _, _, err := ownedNovel(ctx, s.users, s.novels, caller, novelID); err != nil {
		return nil, err
	}
	chapter, err := s.chapters.GetByID(ctx, chapterID)
	if err != nil {
		return nil, notFoundOr(err, ErrChapterNotFound)
	}
	if chapter.NovelID != novelID {
		return nil, ErrChapterNotFound
	}
	return chapter, nil
}
