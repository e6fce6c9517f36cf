package dto

import (
	"strings"

	"novelhub/internal/microservices/http-api/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreateNovelRequest used for POST /api/novels
type CreateNovelRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	CoverImage  *string  `json:"coverImage,omitempty"`
	GenreIDs    []string `json:"genreIds,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Normalize trims text fields and cleans the tag list.
func (r *CreateNovelRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.CoverImage = trimOptional(r.CoverImage)
	r.Tags = NormalizeTags(r.Tags)
}

func (r CreateNovelRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.RuneLength(1, 200)),
		validation.Field(&r.Description, validation.Required),
		validation.Field(&r.CoverImage, validation.NilOrNotEmpty, is.URL),
		validation.Field(&r.GenreIDs, validation.Each(validation.Required, is.UUID)),
		validation.Field(&r.Tags, validation.Each(validation.RuneLength(1, 50))),
	)
}

// UpdateNovelRequest used for PATCH /api/novels/:id. Only supplied fields change.
// An empty coverImage clears the cover; an empty genreIds or tags list clears that set.
type UpdateNovelRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	CoverImage  *string   `json:"coverImage,omitempty"`
	Status      *string   `json:"status,omitempty"`
	GenreIDs    *[]string `json:"genreIds,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}

func (r *UpdateNovelRequest) Normalize() {
	if r.Title != nil {
		t := strings.TrimSpace(*r.Title)
		r.Title = &t
	}
	if r.Description != nil {
		d := strings.TrimSpace(*r.Description)
		r.Description = &d
	}
	if r.CoverImage != nil {
		c := strings.TrimSpace(*r.CoverImage)
		r.CoverImage = &c
	}
	if r.Status != nil {
		s := strings.ToUpper(strings.TrimSpace(*r.Status))
		r.Status = &s
	}
	if r.Tags != nil {
		tags := NormalizeTags(*r.Tags)
		if tags == nil {
			tags = []string{}
		}
		r.Tags = &tags
	}
}

func (r UpdateNovelRequest) Validate() error {
	var genreIDs, tags []string
	if r.GenreIDs != nil {
		genreIDs = *r.GenreIDs
	}
	if r.Tags != nil {
		tags = *r.Tags
	}
	return validation.Errors{
		"title":       validation.Validate(r.Title, validation.NilOrNotEmpty, validation.RuneLength(1, 200)),
		"description": validation.Validate(r.Description, validation.NilOrNotEmpty),
		"coverImage":  validation.Validate(r.CoverImage, is.URL),
		"status":      validation.Validate(r.Status, validation.NilOrNotEmpty, validation.In(statusValues()...)),
		"genreIds":    validation.Validate(genreIDs, validation.Each(validation.Required, is.UUID)),
		"tags":        validation.Validate(tags, validation.Each(validation.RuneLength(1, 50))),
	}.Filter()
}

// Fields returns the column updates described by the request.
func (r UpdateNovelRequest) Fields() map[string]any {
	fields := map[string]any{}
	if r.Title != nil {
		fields["title"] = *r.Title
	}
	if r.Description != nil {
		fields["description"] = *r.Description
	}
	if r.CoverImage != nil {
		if *r.CoverImage == "" {
			fields["cover_image"] = nil
		} else {
			fields["cover_image"] = *r.CoverImage
		}
	}
	if r.Status != nil {
		fields["status"] = models.NovelStatus(*r.Status)
	}
	return fields
}

// NormalizeTags trims every tag and drops empties and case-insensitive duplicates,
// keeping the first spelling.
func NormalizeTags(tags []string) []string {
	var out []string
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}

// NovelSearchQuery binds GET /api/novels/search.
type NovelSearchQuery struct {
	Query   string `form:"q"`
	GenreID string `form:"genre"`
	Tag     string `form:"tag"`
	Sort    string `form:"sort"`
}

func (q NovelSearchQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.GenreID, is.UUID),
		validation.Field(&q.Sort, validation.In("newest", "popular")),
	)
}

// DashboardResponse is the author's own listing with totals.
type DashboardResponse struct {
	Novels        []models.Novel `json:"novels"`
	TotalNovels   int            `json:"totalNovels"`
	TotalChapters int64          `json:"totalChapters"`
}

// NovelDetailResponse is a novel page: the novel plus the chapters visible to the caller.
type NovelDetailResponse struct {
	*models.Novel
	Chapters []models.Chapter `json:"chapters"`
	IsAuthor bool             `json:"isAuthor"`
}

func statusValues() []interface{} {
	values := make([]interface{}, 0, len(models.NovelStatuses))
	for _, s := range models.NovelStatuses {
		values = append(values, string(s))
	}
	return values
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
