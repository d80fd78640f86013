package service

import (
	"context"

	"devconnect/internal/models"
	"devconnect/internal/observability"
	"devconnect/internal/repository"
)

// SocialService manages the directed follow graph between users.
type SocialService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// FollowResult reflects both sides of the mutated edge: who the actor now
// follows and who follows the target.
type FollowResult struct {
	Following []uint `json:"following"`
	Followers []uint `json:"followers"`
}

func NewSocialService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *SocialService {
	return &SocialService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

func (s *SocialService) Follow(ctx context.Context, actorID, targetID uint) (*FollowResult, error) {
	if actorID == targetID {
		return nil, models.NewConflictError("You cannot follow yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return nil, err
	}

	created, err := s.followRepo.Create(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, models.NewConflictError("Already following this user")
	}

	observability.RecordEngagement("user_followed")
	return s.followResult(ctx, actorID, targetID)
}

func (s *SocialService) Unfollow(ctx context.Context, actorID, targetID uint) (*FollowResult, error) {
	if actorID == targetID {
		return nil, models.NewConflictError("You cannot unfollow yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return nil, err
	}

	deleted, err := s.followRepo.Delete(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, models.NewConflictError("Not following this user")
	}
	return s.followResult(ctx, actorID, targetID)
}

func (s *SocialService) ListFollowing(ctx context.Context, subjectID uint) ([]*models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, subjectID); err != nil {
		return nil, err
	}
	ids, err := s.followRepo.ListFollowingIDs(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	return s.loadUsers(ctx, ids)
}

func (s *SocialService) ListFollowers(ctx context.Context, subjectID uint) ([]*models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, subjectID); err != nil {
		return nil, err
	}
	ids, err := s.followRepo.ListFollowerIDs(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	return s.loadUsers(ctx, ids)
}

func (s *SocialService) followResult(ctx context.Context, actorID, targetID uint) (*FollowResult, error) {
	following, err := s.followRepo.ListFollowingIDs(ctx, actorID)
	if err != nil {
		return nil, err
	}
	followers, err := s.followRepo.ListFollowerIDs(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if following == nil {
		following = []uint{}
	}
	if followers == nil {
		followers = []uint{}
	}
	return &FollowResult{Following: following, Followers: followers}, nil
}

func (s *SocialService) loadUsers(ctx context.Context, ids []uint) ([]*models.User, error) {
	users := make([]*models.User, 0, len(ids))
	for _, id := range ids {
		user, err := s.userRepo.GetByID(ctx, id)
		if err != nil {
			if appErr, ok := err.(*models.AppError); ok && appErr.Code == models.CodeNotFound {
				continue
			}
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}
