package service

import (
	"context"
	"strings"

	"devconnect/internal/models"
	"devconnect/internal/observability"
	"devconnect/internal/repository"
)

const maxCommentLen = 2000

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

type CreateCommentInput struct {
	UserID   uint
	PostID   uint
	ParentID *uint
	Content  string
}

type UpdateCommentInput struct {
	UserID    uint
	PostID    uint
	CommentID uint
	Content   string
}

type DeleteCommentInput struct {
	UserID    uint
	PostID    uint
	CommentID uint
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// CreateComment adds a comment or a reply. Threads are one level deep: a
// reply's parent must itself be a top-level comment on the same post.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 2000 characters)")
	}
	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}

	if in.ParentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.PostID != in.PostID {
			return nil, models.NewValidationError("Parent comment belongs to a different post")
		}
		if parent.ParentID != nil {
			return nil, models.NewConflictError("Cannot reply to a reply")
		}
	}

	comment := &models.Comment{
		Content:  in.Content,
		UserID:   in.UserID,
		PostID:   in.PostID,
		ParentID: in.ParentID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	observability.RecordEngagement("comment_created")
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments returns a page of top-level comments with their replies
// attached. Replies are not paginated; a thread is fetched whole.
func (s *CommentService) ListComments(ctx context.Context, postID uint, page, limit int) ([]*models.Comment, models.Pagination, error) {
	if err := validatePageLimit(page, limit); err != nil {
		return nil, models.Pagination{}, err
	}
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, models.Pagination{}, err
	}

	offset := (page - 1) * limit
	comments, err := s.commentRepo.ListTopLevel(ctx, postID, limit, offset)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	total, err := s.commentRepo.CountTopLevel(ctx, postID)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	if len(comments) > 0 {
		parentIDs := make([]uint, len(comments))
		for i, c := range comments {
			parentIDs[i] = c.ID
		}
		replies, err := s.commentRepo.ListReplies(ctx, parentIDs)
		if err != nil {
			return nil, models.Pagination{}, err
		}
		byParent := make(map[uint][]models.Comment, len(comments))
		for _, r := range replies {
			byParent[*r.ParentID] = append(byParent[*r.ParentID], *r)
		}
		for _, c := range comments {
			c.Replies = byParent[c.ID]
		}
	}

	return comments, models.NewPagination(page, limit, total), nil
}

func (s *CommentService) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	return s.commentRepo.GetByID(ctx, id)
}

// UpdateComment edits a comment addressed as /posts/:id/comments/:commentId.
// A comment reached through the wrong post is not found, not forbidden.
func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.PostID != in.PostID {
		return nil, models.NewNotFoundError("Comment", in.CommentID)
	}
	if comment.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own comments")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 2000 characters)")
	}

	comment.Content = in.Content
	comment.IsEdited = true
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// DeleteComment removes the comment and, for a top-level comment, its
// replies. It returns the deleted comment so handlers can publish events.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.PostID != in.PostID {
		return nil, models.NewNotFoundError("Comment", in.CommentID)
	}
	if comment.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only delete your own comments")
	}

	if _, err := s.commentRepo.DeleteCascade(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
