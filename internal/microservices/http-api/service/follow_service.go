package service

import (
	"context"

	"novelhub/internal/microservices/http-api/dto"
	"novelhub/internal/microservices/http-api/repository"
	"novelhub/internal/shared"
)

type FollowService interface {
	Follow(ctx context.Context, caller *shared.Principal, req dto.FollowRequest) error
	Unfollow(ctx context.Context, caller *shared.Principal, authorID string) error
	IsFollowing(ctx context.Context, caller *shared.Principal, authorID string) (bool, error)
	ListFollowing(ctx context.Context, caller *shared.Principal) ([]repository.FollowedAuthor, error)
}

type followService struct {
	users    UserService
	userRepo repository.UserRepository
	follows  repository.FollowRepository
}

func NewFollowService(users UserService, userRepo repository.UserRepository, follows repository.FollowRepository) FollowService {
	return &followService{users: users, userRepo: userRepo, follows: follows}
}

func (s *followService) Follow(ctx context.Context, caller *shared.Principal, req dto.FollowRequest) error {
	user, err := s.users.Resolve(ctx, caller)
	if err != nil {
		return err
	}
	if err := validate(req); err != nil {
		return err
	}
	if _, err := s.userRepo.FindByID(ctx, req.AuthorID); err != nil {
		return notFoundOr(err, ErrAuthorNotFound)
	}
	if req.AuthorID == user.ID {
		return ErrSelfFollow
	}
	created, err := s.follows.Add(ctx, user.ID, req.AuthorID)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return ErrAlreadyFollowing
		}
		return err
	}
	if !created {
		return ErrAlreadyFollowing
	}
	return nil
}

// Unfollow removes any follow edge to the author; a missing edge is not an error.
func (s *followService) Unfollow(ctx context.Context, caller *shared.Principal, authorID string) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	if err := parseID(authorID); err != nil {
		return err
	}
	user, err := s.users.Lookup(ctx, caller)
	if err != nil || user == nil {
		return err
	}
	_, err = s.follows.Remove(ctx, user.ID, authorID)
	return err
}

func (s *followService) IsFollowing(ctx context.Context, caller *shared.Principal, authorID string) (bool, error) {
	if err := parseID(authorID); err != nil {
		return false, err
	}
	user, err := s.users.Lookup(ctx, caller)
	if err != nil || user == nil {
		return false, err
	}
	return s.follows.Exists(ctx, user.ID, authorID)
}

func (s *followService) ListFollowing(ctx context.Context, caller *shared.Principal) ([]repository.FollowedAuthor, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	user, err := s.users.Lookup(ctx, caller)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return []repository.FollowedAuthor{}, nil
	}
	list, err := s.follows.ListFollowing(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []repository.FollowedAuthor{}
	}
	return list, nil
}
