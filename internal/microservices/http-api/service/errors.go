package service

import (
	"errors"

	"novelhub/internal/microservices/http-api/repository"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Error kinds. Every error returned by a service unwraps to at most one of these.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrValidation      = errors.New("validation failed")
	ErrConflict        = errors.New("conflict")
	ErrVerification    = errors.New("verification failed")
)

// kindError carries a user-facing message and unwraps to its kind.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

func newError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

var (
	ErrSignInRequired = newError(ErrUnauthenticated, "sign in required")

	ErrUserNotFound    = newError(ErrNotFound, "user not found")
	ErrAuthorNotFound  = newError(ErrNotFound, "author not found")
	ErrNovelNotFound   = newError(ErrNotFound, "novel not found")
	ErrChapterNotFound = newError(ErrNotFound, "chapter not found")
	ErrCommentNotFound = newError(ErrNotFound, "comment not found")

	ErrNotNovelAuthor   = newError(ErrForbidden, "only the author can modify this novel")
	ErrNotCommentAuthor = newError(ErrForbidden, "only the author can delete this comment")

	ErrEmailRequired   = newError(ErrValidation, "email is required")
	ErrInvalidID       = newError(ErrValidation, "invalid id")
	ErrUnknownGenre    = newError(ErrValidation, "unknown genre")
	ErrSelfFollow      = newError(ErrValidation, "cannot follow yourself")
	ErrChapterMismatch = newError(ErrValidation, "chapter does not belong to this novel")

	ErrAlreadyBookmarked = newError(ErrConflict, "novel already bookmarked")
	ErrAlreadyFollowing  = newError(ErrConflict, "already following this author")
)

// validationError wraps an ozzo-validation result as a Validation kind.
func validationError(err error) error {
	if err == nil {
		return nil
	}
	var internal validation.InternalError
	if errors.As(err, &internal) {
		return err
	}
	return newError(ErrValidation, err.Error())
}

// notFoundOr maps a missing row to notFound and passes any other error through.
func notFoundOr(err, notFound error) error {
	if repository.IsNotFound(err) {
		return notFound
	}
	return err
}
