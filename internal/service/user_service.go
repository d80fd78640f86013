package service

import (
	"context"
	"strings"

	"devconnect/internal/cache"
	"devconnect/internal/models"
	"devconnect/internal/repository"
)

const (
	maxBioLen      = 500
	maxSkills      = 20
	maxSkillLen    = 50
	maxLinkLen     = 200
	maxUsernameLen = 30
)

type UserService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

type UpdateProfileInput struct {
	UserID      uint
	Bio         *string
	Avatar      *string
	Skills      []string
	SocialLinks *models.SocialLinks
}

func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository) *UserService {
	return &UserService{
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

// GetProfile loads a user with both sides of their follow graph attached.
func (s *UserService) GetProfile(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	followers, err := s.followRepo.ListFollowerIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	following, err := s.followRepo.ListFollowingIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	if followers == nil {
		followers = []uint{}
	}
	if following == nil {
		following = []uint{}
	}
	user.Followers = followers
	user.Following = following
	user.FollowerCount = len(followers)
	return user, nil
}

// UpdateProfile mutates only the fields present in the input. Username and
// email are immutable after signup.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Bio != nil {
		if len(*in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = *in.Bio
	}
	if in.Avatar != nil {
		user.Avatar = *in.Avatar
	}
	if in.Skills != nil {
		skills, err := normalizeSkills(in.Skills)
		if err != nil {
			return nil, err
		}
		user.Skills = skills
	}
	if in.SocialLinks != nil {
		if err := validateSocialLinks(in.SocialLinks); err != nil {
			return nil, err
		}
		user.SocialLinks = in.SocialLinks
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, user.ID)
}

// searchPage is the cached envelope for one page of search results.
type searchPage struct {
	Users []models.User `json:"users"`
	Total int64         `json:"total"`
}

// SearchUsers matches against username, bio, and skills, ordered by follower
// count so established accounts surface first. Result pages are cached for a
// short TTL rather than invalidated; see cache.SearchTTL.
func (s *UserService) SearchUsers(ctx context.Context, query string, page, limit int) ([]models.User, models.Pagination, error) {
	if strings.TrimSpace(query) == "" {
		return nil, models.Pagination{}, models.NewValidationError("Search query is required")
	}
	if err := validatePageLimit(page, limit); err != nil {
		return nil, models.Pagination{}, err
	}

	key := cache.SearchKey(strings.ToLower(strings.TrimSpace(query)), page, limit)
	var cached searchPage
	err := cache.Aside(ctx, key, &cached, cache.SearchTTL, func() error {
		offset := (page - 1) * limit
		users, err := s.userRepo.Search(ctx, query, limit, offset)
		if err != nil {
			return err
		}
		total, err := s.userRepo.CountSearch(ctx, query)
		if err != nil {
			return err
		}
		cached = searchPage{Users: users, Total: total}
		return nil
	})
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return cached.Users, models.NewPagination(page, limit, cached.Total), nil
}

func normalizeSkills(skills []string) ([]string, error) {
	var out []string
	seen := map[string]struct{}{}
	for _, skill := range skills {
		v := strings.TrimSpace(skill)
		if v == "" {
			continue
		}
		if len(v) > maxSkillLen {
			return nil, models.NewValidationError("Skill too long (max 50 characters)")
		}
		key := strings.ToLower(v)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	if len(out) > maxSkills {
		return nil, models.NewValidationError("Too many skills (max 20)")
	}
	return out, nil
}

func validateSocialLinks(links *models.SocialLinks) error {
	for _, v := range []string{links.GitHub, links.LinkedIn, links.Twitter, links.Website} {
		if len(v) > maxLinkLen {
			return models.NewValidationError("Social link too long (max 200 characters)")
		}
	}
	return nil
}
