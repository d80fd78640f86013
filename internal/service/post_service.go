package service

import (
	"context"
	"strings"
	"time"

	"devconnect/internal/models"
	"devconnect/internal/observability"
	"devconnect/internal/repository"
)

const (
	maxContentLen = 5000
	maxSnippetLen = 20000
	maxTags       = 5
	maxTagLen     = 50
	maxPageLimit  = 100
)

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

type CreatePostInput struct {
	UserID      uint
	Content     string
	CodeSnippet *models.CodeSnippet
	Tags        []string
}

type UpdatePostInput struct {
	UserID      uint
	PostID      uint
	Content     *string
	CodeSnippet *models.CodeSnippet
	Tags        []string
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

// LikeResult is the engagement state returned after a like or unlike.
type LikeResult struct {
	LikeCount int    `json:"like_count"`
	Likes     []uint `json:"likes"`
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

// validatePageLimit rejects out-of-range paging parameters outright rather
// than clamping them, so a bad request never silently becomes page one.
func validatePageLimit(page, limit int) error {
	if page < 1 {
		return models.NewValidationError("page must be >= 1")
	}
	if limit < 1 {
		return models.NewValidationError("limit must be >= 1")
	}
	if limit > maxPageLimit {
		return models.NewValidationError("limit must be <= 100")
	}
	return nil
}

// normalizeTags lowercases, trims, and dedupes, preserving first-seen order.
func normalizeTags(tags []string) ([]string, error) {
	var out []string
	seen := map[string]struct{}{}
	for _, tag := range tags {
		t := strings.ToLower(strings.TrimSpace(tag))
		if t == "" {
			continue
		}
		if len(t) > maxTagLen {
			return nil, models.NewValidationError("Tag too long (max 50 characters)")
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	if len(out) > maxTags {
		return nil, models.NewValidationError("Too many tags (max 5)")
	}
	return out, nil
}

func validateSnippet(snippet *models.CodeSnippet) error {
	if snippet == nil {
		return nil
	}
	if strings.TrimSpace(snippet.Code) == "" {
		return models.NewValidationError("Code snippet cannot be empty")
	}
	if len(snippet.Code) > maxSnippetLen {
		return models.NewValidationError("Code snippet too long (max 20000 characters)")
	}
	lang := strings.ToLower(snippet.Language)
	if !models.SnippetLanguages[lang] {
		return models.NewValidationError("Unsupported snippet language")
	}
	snippet.Language = lang
	return nil
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 5000 characters)")
	}
	if err := validateSnippet(in.CodeSnippet); err != nil {
		return nil, err
	}
	tags, err := normalizeTags(in.Tags)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:      in.UserID,
		Content:     in.Content,
		CodeSnippet: in.CodeSnippet,
		Tags:        tags,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	observability.RecordEngagement("post_created")
	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// GetFeed assembles the viewer's reverse-chronological feed: posts authored
// by followed users plus the viewer's own.
func (s *PostService) GetFeed(ctx context.Context, viewerID uint, page, limit int) ([]*models.Post, models.Pagination, error) {
	if err := validatePageLimit(page, limit); err != nil {
		return nil, models.Pagination{}, err
	}

	start := time.Now()
	defer observability.ObserveFeedQuery("following", start)

	offset := (page - 1) * limit
	posts, err := s.postRepo.GetFeed(ctx, viewerID, limit, offset)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	total, err := s.postRepo.CountFeed(ctx, viewerID)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return posts, models.NewPagination(page, limit, total), nil
}

// GetUserPosts returns a single author's posts, newest first.
func (s *PostService) GetUserPosts(ctx context.Context, subjectID uint, page, limit int) ([]*models.Post, models.Pagination, error) {
	if err := validatePageLimit(page, limit); err != nil {
		return nil, models.Pagination{}, err
	}
	if _, err := s.userRepo.GetByID(ctx, subjectID); err != nil {
		return nil, models.Pagination{}, err
	}

	offset := (page - 1) * limit
	posts, err := s.postRepo.GetByUserID(ctx, subjectID, limit, offset)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	total, err := s.postRepo.CountByUserID(ctx, subjectID)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return posts, models.NewPagination(page, limit, total), nil
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own posts")
	}

	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			return nil, models.NewValidationError("Content is required")
		}
		if len(*in.Content) > maxContentLen {
			return nil, models.NewValidationError("Content too long (max 5000 characters)")
		}
		post.Content = *in.Content
	}
	if in.CodeSnippet != nil {
		if err := validateSnippet(in.CodeSnippet); err != nil {
			return nil, err
		}
		post.CodeSnippet = in.CodeSnippet
	}
	if in.Tags != nil {
		tags, err := normalizeTags(in.Tags)
		if err != nil {
			return nil, err
		}
		post.Tags = tags
	}
	post.IsEdited = true

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return err
	}
	if post.UserID != in.UserID {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, in.PostID)
}

// LikePost records the like. Liking a post twice is a conflict rather than a
// silent no-op so clients can distinguish double-taps from state drift.
func (s *PostService) LikePost(ctx context.Context, userID, postID uint) (*LikeResult, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	inserted, err := s.postRepo.Like(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, models.NewConflictError("Post already liked")
	}

	observability.RecordEngagement("post_liked")
	return s.likeResult(ctx, postID)
}

func (s *PostService) UnlikePost(ctx context.Context, userID, postID uint) (*LikeResult, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	removed, err := s.postRepo.Unlike(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, models.NewConflictError("Post not liked")
	}
	return s.likeResult(ctx, postID)
}

func (s *PostService) likeResult(ctx context.Context, postID uint) (*LikeResult, error) {
	likes, err := s.postRepo.ListLikerIDs(ctx, postID)
	if err != nil {
		return nil, err
	}
	if likes == nil {
		likes = []uint{}
	}
	return &LikeResult{LikeCount: len(likes), Likes: likes}, nil
}
