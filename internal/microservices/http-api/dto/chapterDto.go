package dto

import (
	"strings"

	"novelhub/internal/microservices/http-api/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateChapterRequest used for POST /api/novels/:id/chapters.
// IsPublished defaults to true when omitted.
type CreateChapterRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	IsPublished *bool  `json:"isPublished,omitempty"`
}

func (r *CreateChapterRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
}

func (r CreateChapterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.RuneLength(1, 200)),
		validation.Field(&r.Content, validation.Required),
	)
}

// UpdateChapterRequest used for PATCH /api/novels/:id/chapters/:chapterId
type UpdateChapterRequest struct {
	Title       *string `json:"title,omitempty"`
	Content     *string `json:"content,omitempty"`
	IsPublished *bool   `json:"isPublished,omitempty"`
}

func (r *UpdateChapterRequest) Normalize() {
	if r.Title != nil {
		t := strings.TrimSpace(*r.Title)
		r.Title = &t
	}
}

func (r UpdateChapterRequest) Validate() error {
	return validation.Errors{
		"title":   validation.Validate(r.Title, validation.NilOrNotEmpty, validation.RuneLength(1, 200)),
		"content": validation.Validate(r.Content, validation.NilOrNotEmpty),
	}.Filter()
}

// ChapterView is a chapter page with its published neighbours.
type ChapterView struct {
	Chapter  *models.Chapter `json:"chapter"`
	Novel    *models.Novel   `json:"novel"`
	Previous *models.Chapter `json:"previous"`
	Next     *models.Chapter `json:"next"`
}
