package service

import (
	"context"

	"novelhub/internal/microservices/http-api/dto"
	"novelhub/internal/microservices/http-api/models"
	"novelhub/internal/microservices/http-api/repository"
	"novelhub/internal/shared"
)

type CommentService interface {
	Create(ctx context.Context, caller *shared.Principal, req dto.CreateCommentRequest) (*models.Comment, error)
	Delete(ctx context.Context, caller *shared.Principal, commentID string) error
	List(ctx context.Context, caller *shared.Principal, novelID string, chapterID *string) (*dto.CommentListResponse, error)
}

type commentService struct {
	users    UserService
	novels   repository.NovelRepository
	chapters repository.ChapterRepository
	comments repository.CommentRepository
}

func NewCommentService(users UserService, novels repository.NovelRepository, chapters repository.ChapterRepository, comments repository.CommentRepository) CommentService {
	return &commentService{users: users, novels: novels, chapters: chapters, comments: comments}
}

func (s *commentService) Create(ctx context.Context, caller *shared.Principal, req dto.CreateCommentRequest) (*models.Comment, error) {
	user, err := s.users.Resolve(ctx, caller)
	if err != nil {
		return nil, err
	}
	req.Normalize()
	if err := validate(req); err != nil {
		return nil, err
	}
	if _, err := s.novels.GetByID(ctx, req.NovelID); err != nil {
		return nil, notFoundOr(err, ErrNovelNotFound)
	}
	if req.ChapterID != nil {
		chapter, err := s.chapters.GetByID(ctx, *req.ChapterID)
		if err != nil {
			return nil, notFoundOr(err, ErrChapterNotFound)
		}
		if chapter.NovelID != req.NovelID {
			return nil, ErrChapterMismatch
		}
	}

	return s.comments.Create(ctx, &models.Comment{
		Content:   req.Content,
		UserID:    user.ID,
		NovelID:   req.NovelID,
		ChapterID: req.ChapterID,
	})
}

// Delete removes a comment. Only its author may do so, the novel's owner included.
func (s *commentService) Delete(ctx context.Context, caller *shared.Principal, commentID string) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	if err := parseID(commentID); err != nil {
		return err
	}
	user, err := s.users.Resolve(ctx, caller)
	if err != nil {
		return err
	}
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return notFoundOr(err, ErrCommentNotFound)
	}
	if comment.UserID != user.ID {
		return ErrNotCommentAuthor
	}
	return notFoundOr(s.comments.Delete(ctx, commentID), ErrCommentNotFound)
}

func (s *commentService) List(ctx context.Context, caller *shared.Principal, novelID string, chapterID *string) (*dto.CommentListResponse, error) {
	if novelID == "" {
		return nil, newError(ErrValidation, "novelId is required")
	}
	if err := parseID(novelID); err != nil {
		return nil, err
	}
	if chapterID != nil {
		if err := parseID(*chapterID); err != nil {
			return nil, err
		}
	}
	comments, err := s.comments.ListByNovel(ctx, novelID, chapterID)
	if err != nil {
		return nil, err
	}
	viewer, err := s.users.Lookup(ctx, caller)
	if err != nil {
		return nil, err
	}

	resp := &dto.CommentListResponse{Comments: make([]dto.CommentResponse, 0, len(comments))}
	for i := range comments {
		resp.Comments = append(resp.Comments, dto.FromModelToCommentResponse(&comments[i]))
	}
	if viewer != nil {
		id := viewer.ID
		resp.CurrentUserID = &id
	}
	return resp, nil
}
