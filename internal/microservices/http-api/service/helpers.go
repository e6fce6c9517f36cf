package service

import (
	"strings"

	"novelhub/internal/microservices/http-api/models"
	"novelhub/internal/shared"

	"github.com/google/uuid"
)

// validator is implemented by request DTOs.
type validator interface {
	Validate() error
}

func validate(v validator) error {
	return validationError(v.Validate())
}

func requireCaller(caller *shared.Principal) error {
	if caller == nil || caller.Subject == "" {
		return ErrSignInRequired
	}
	return nil
}

func parseID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return nil
}

// CountWords returns the number of whitespace-delimited tokens in body.
func CountWords(body string) int {
	return len(strings.Fields(body))
}

// CollapseByNovel keeps the first entry seen for every novel. With history ordered
// most recent first the result holds each novel's latest read, in the same order.
func CollapseByNovel(history []models.ReadingHistory) []models.ReadingHistory {
	out := make([]models.ReadingHistory, 0, len(history))
	seen := make(map[string]bool, len(history))
	for _, h := range history {
		if h.Chapter == nil {
			continue
		}
		if seen[h.Chapter.NovelID] {
			continue
		}
		seen[h.Chapter.NovelID] = true
		out = append(out, h)
	}
	return out
}
