package dto

import (
	"strings"
	"time"

	"novelhub/internal/microservices/http-api/models"
	"novelhub/internal/microservices/http-api/repository"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// UpdateProfileRequest used for PATCH /api/profile
type UpdateProfileRequest struct {
	Name string `json:"name"`
}

func (r *UpdateProfileRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, 100)),
	)
}

// AuthorProfileResponse is the public author page.
type AuthorProfileResponse struct {
	Author      *models.User         `json:"author"`
	Novels      []models.Novel       `json:"novels"`
	Stats       repository.UserStats `json:"stats"`
	IsFollowing bool                 `json:"isFollowing"`
}

// UploadTicket is a short-lived direct upload grant for a cover image.
type UploadTicket struct {
	UploadURL string    `json:"uploadUrl"`
	PublicURL string    `json:"publicUrl"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}
