package service

import (
	"context"
	"fmt"
	"strings"

	"novelhub/internal/microservices/http-api/dto"
	"novelhub/internal/microservices/http-api/models"
	"novelhub/internal/microservices/http-api/repository"
	"novelhub/internal/shared"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"
)

// Identity-provider lifecycle event types.
const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

// IdentityEvent is a verified account-lifecycle notification from the identity provider.
type IdentityEvent struct {
	Type      string
	Subject   string
	Email     string
	FirstName string
	LastName  string
	ImageURL  string
}

func (e IdentityEvent) principal() shared.Principal {
	return shared.Principal{
		Subject:   e.Subject,
		Email:     e.Email,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		ImageURL:  e.ImageURL,
	}
}

// UserService bridges identity-provider subjects to local users.
type UserService interface {
	// Resolve returns the caller's local user, creating it on first use.
	Resolve(ctx context.Context, caller *shared.Principal) (*models.User, error)
	// Lookup returns the caller's local user or nil; it never creates one.
	Lookup(ctx context.Context, caller *shared.Principal) (*models.User, error)
	Sync(ctx context.Context, caller *shared.Principal) (*models.User, error)
	UpdateProfile(ctx context.Context, caller *shared.Principal, req dto.UpdateProfileRequest) (*models.User, error)
	AuthorProfile(ctx context.Context, caller *shared.Principal, authorID string) (*dto.AuthorProfileResponse, error)
	ApplyEvent(ctx context.Context, evt IdentityEvent) error
}

type userService struct {
	users   repository.UserRepository
	novels  repository.NovelRepository
	follows repository.FollowRepository
}

func NewUserService(users repository.UserRepository, novels repository.NovelRepository, follows repository.FollowRepository) UserService {
	return &userService{users: users, novels: novels, follows: follows}
}

func userFromPrincipal(p shared.Principal) *models.User {
	u := &models.User{
		ExternalID: p.Subject,
		Email:      strings.TrimSpace(p.Email),
		Avatar:     p.Avatar(),
	}
	if name, ok := p.DisplayName(); ok {
		u.Name = &name
	}
	return u
}

func (s *userService) Resolve(ctx context.Context, caller *shared.Principal) (*models.User, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	user, err := s.users.FindByExternalID(ctx, caller.Subject)
	if err == nil {
		return user, nil
	}
	if !repository.IsNotFound(err) {
		return nil, err
	}
	if strings.TrimSpace(caller.Email) == "" {
		return nil, ErrEmailRequired
	}
	user, err = s.users.CreateIfAbsent(ctx, userFromPrincipal(*caller))
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Info().Str("user_id", user.ID).Msg("created local user on first use")
	return user, nil
}

func (s *userService) Lookup(ctx context.Context, caller *shared.Principal) (*models.User, error) {
	if caller == nil || caller.Subject == "" {
		return nil, nil
	}
	user, err := s.users.FindByExternalID(ctx, caller.Subject)
	if repository.IsNotFound(err) {
		return nil, nil
	}
	return user, err
}

func (s *userService) Sync(ctx context.Context, caller *shared.Principal) (*models.User, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if strings.TrimSpace(caller.Email) == "" {
		return nil, ErrEmailRequired
	}
	return s.users.Upsert(ctx, userFromPrincipal(*caller))
}

func (s *userService) UpdateProfile(ctx context.Context, caller *shared.Principal, req dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.Resolve(ctx, caller)
	if err != nil {
		return nil, err
	}
	req.Normalize()
	if err := validate(req); err != nil {
		return nil, err
	}
	updated, err := s.users.UpdateName(ctx, user.ID, req.Name)
	if err != nil {
		return nil, notFoundOr(err, ErrUserNotFound)
	}
	return updated, nil
}

// AuthorProfile loads the author with novels, stats and the caller's follow state.
// The independent reads run in parallel and the first failure cancels the rest.
func (s *userService) AuthorProfile(ctx context.Context, caller *shared.Principal, authorID string) (*dto.AuthorProfileResponse, error) {
	if err := parseID(authorID); err != nil {
		return nil, err
	}
	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, notFoundOr(err, ErrAuthorNotFound)
	}

	viewer, err := s.Lookup(ctx, caller)
	if err != nil {
		return nil, err
	}
	if viewer == nil || viewer.ID != author.ID {
		author.Email = ""
	}

	resp := &dto.AuthorProfileResponse{Author: author}
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		novels, err := s.novels.ListByAuthor(ctx, authorID, repository.OrderCreatedDesc)
		if err != nil {
			return err
		}
		resp.Novels = novels
		return nil
	})
	p.Go(func(ctx context.Context) error {
		stats, err := s.users.Stats(ctx, authorID)
		if err != nil {
			return err
		}
		resp.Stats = *stats
		return nil
	})
	if viewer != nil && viewer.ID != authorID {
		p.Go(func(ctx context.Context) error {
			following, err := s.follows.Exists(ctx, viewer.ID, authorID)
			if err != nil {
				return err
			}
			resp.IsFollowing = following
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, fmt.Errorf("author profile: %w", err)
	}
	if resp.Novels == nil {
		resp.Novels = []models.Novel{}
	}
	return resp, nil
}

// ApplyEvent mirrors a lifecycle event into the local users table. Updates and
// deletes for unknown subjects are logged and skipped.
func (s *userService) ApplyEvent(ctx context.Context, evt IdentityEvent) error {
	log := zerolog.Ctx(ctx).With().Str("event", evt.Type).Str("subject", evt.Subject).Logger()
	if evt.Subject == "" {
		return newError(ErrValidation, "event has no subject id")
	}

	switch evt.Type {
	case EventUserCreated:
		if strings.TrimSpace(evt.Email) == "" {
			return ErrEmailRequired
		}
		user, err := s.users.Upsert(ctx, userFromPrincipal(evt.principal()))
		if err != nil {
			return err
		}
		log.Info().Str("user_id", user.ID).Msg("user created from identity event")
	case EventUserUpdated:
		u := userFromPrincipal(evt.principal())
		err := s.users.UpdateByExternalID(ctx, evt.Subject, u.Email, u.Name, u.Avatar)
		if repository.IsNotFound(err) {
			log.Warn().Msg("identity update for unknown user, skipped")
			return nil
		}
		if err != nil {
			return err
		}
		log.Info().Msg("user updated from identity event")
	case EventUserDeleted:
		err := s.users.DeleteByExternalID(ctx, evt.Subject)
		if repository.IsNotFound(err) {
			log.Warn().Msg("identity delete for unknown user, skipped")
			return nil
		}
		if err != nil {
			return err
		}
		log.Info().Msg("user deleted from identity event")
	default:
		log.Debug().Msg("identity event ignored")
	}
	return nil
}
