package service

import (
	"context"

	"novelhub/internal/microservices/http-api/dto"
	"novelhub/internal/microservices/http-api/models"
	"novelhub/internal/microservices/http-api/repository"
	"novelhub/internal/shared"
)

type BookmarkService interface {
	Add(ctx context.Context, caller *shared.Principal, req dto.AddBookmarkRequest) error
	Remove(ctx context.Context, caller *shared.Principal, novelID string) error
	IsBookmarked(ctx context.Context, caller *shared.Principal, novelID string) (bool, error)
	List(ctx context.Context, caller *shared.Principal) ([]models.Bookmark, error)
}

type bookmarkService struct {
	users     UserService
	novels    repository.NovelRepository
	bookmarks repository.BookmarkRepository
}

func NewBookmarkService(users UserService, novels repository.NovelRepository, bookmarks repository.BookmarkRepository) BookmarkService {
	return &bookmarkService{users: users, novels: novels, bookmarks: bookmarks}
}

// Add bookmarks the novel. A second bookmark of the same novel is a conflict.
func (s *bookmarkService) Add(ctx context.Context, caller *shared.Principal, req dto.AddBookmarkRequest) error {
	user, err := s.users.Resolve(ctx, caller)
	if err != nil {
		return err
	}
	if err := validate(req); err != nil {
		return err
	}
	if _, err := s.novels.GetByID(ctx, req.NovelID); err != nil {
		return notFoundOr(err, ErrNovelNotFound)
	}
	created, err := s.bookmarks.Add(ctx, user.ID, req.NovelID)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return ErrAlreadyBookmarked
		}
		return err
	}
	if !created {
		return ErrAlreadyBookmarked
	}
	return nil
}

// Remove deletes any bookmark of the novel; removing a missing bookmark succeeds.
func (s *bookmarkService) Remove(ctx context.Context, caller *shared.Principal, novelID string) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	if err := parseID(novelID); err != nil {
		return err
	}
	user, err := s.users.Lookup(ctx, caller)
	if err != nil || user == nil {
		return err
	}
	_, err = s.bookmarks.Remove(ctx, user.ID, novelID)
	return err
}

func (s *bookmarkService) IsBookmarked(ctx context.Context, caller *shared.Principal, novelID string) (bool, error) {
	if err := parseID(novelID); err != nil {
		return false, err
	}
	user, err := s.users.Lookup(ctx, caller)
	if err != nil || user == nil {
		return false, err
	}
	return s.bookmarks.Exists(ctx, user.ID, novelID)
}

func (s *bookmarkService) List(ctx context.Context, caller *shared.Principal) ([]models.Bookmark, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	user, err := s.users.Lookup(ctx, caller)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return []models.Bookmark{}, nil
	}
	list, err := s.bookmarks.List(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.Bookmark{}
	}
	return list, nil
}
