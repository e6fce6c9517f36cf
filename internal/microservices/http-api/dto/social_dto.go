package dto

import (
	"strings"
	"time"

	"novelhub/internal/microservices/http-api/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// AddBookmarkRequest used for POST /api/bookmarks
type AddBookmarkRequest struct {
	NovelID string `json:"novelId"`
}

func (r AddBookmarkRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.NovelID, validation.Required, is.UUID),
	)
}

// FollowRequest used for POST /api/follow
type FollowRequest struct {
	AuthorID string `json:"authorId"`
}

func (r FollowRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.AuthorID, validation.Required, is.UUID),
	)
}

// CreateCommentRequest used for POST /api/comments
type CreateCommentRequest struct {
	NovelID   string  `json:"novelId"`
	ChapterID *string `json:"chapterId,omitempty"`
	Content   string  `json:"content"`
}

func (r *CreateCommentRequest) Normalize() {
	r.Content = strings.TrimSpace(r.Content)
	r.ChapterID = trimOptional(r.ChapterID)
}

func (r CreateCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.NovelID, validation.Required, is.UUID),
		validation.Field(&r.ChapterID, is.UUID),
		validation.Field(&r.Content, validation.Required, validation.RuneLength(1, 5000)),
	)
}

// CommentAuthor is the public part of a comment's author.
type CommentAuthor struct {
	ID     string  `json:"id"`
	Name   *string `json:"name"`
	Avatar *string `json:"avatar"`
}

// CommentChapter identifies the chapter a comment is scoped to.
type CommentChapter struct {
	ID     string `json:"id"`
	Number int    `json:"number"`
	Title  string `json:"title"`
}

type CommentResponse struct {
	ID        string          `json:"id"`
	Content   string          `json:"content"`
	NovelID   string          `json:"novelId"`
	ChapterID *string         `json:"chapterId"`
	CreatedAt time.Time       `json:"createdAt"`
	User      *CommentAuthor  `json:"user"`
	Chapter   *CommentChapter `json:"chapter"`
}

// CommentListResponse carries the requester's local user id, or null when anonymous,
// so clients can decide delete eligibility per comment.
type CommentListResponse struct {
	Comments      []CommentResponse `json:"comments"`
	CurrentUserID *string           `json:"currentUserId"`
}

// FromModelToCommentResponse converts a Comment model to CommentResponse DTO
func FromModelToCommentResponse(c *models.Comment) CommentResponse {
	resp := CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		NovelID:   c.NovelID,
		ChapterID: c.ChapterID,
		CreatedAt: c.CreatedAt,
	}
	if c.User != nil {
		resp.User = &CommentAuthor{ID: c.User.ID, Name: c.User.Name, Avatar: c.User.Avatar}
	}
	if c.Chapter != nil {
		resp.Chapter = &CommentChapter{ID: c.Chapter.ID, Number: c.Chapter.Number, Title: c.Chapter.Title}
	}
	return resp
}

// RecordReadRequest used for POST /api/reading-history
type RecordReadRequest struct {
	ChapterID string `json:"chapterId"`
}

func (r RecordReadRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ChapterID, validation.Required, is.UUID),
	)
}

// HistoryEntry is one "continue reading" pointer: the latest chapter read in a novel.
type HistoryEntry struct {
	ID      string          `json:"id"`
	ReadAt  time.Time       `json:"readAt"`
	Chapter *models.Chapter `json:"chapter"`
	Novel   *models.Novel   `json:"novel"`
}
