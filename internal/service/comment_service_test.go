package service

import (
	"context"
	"strings"
	"testing"

	"devconnect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn        func(context.Context, *models.Comment) error
	getByIDFn       func(context.Context, uint) (*models.Comment, error)
	listTopLevelFn  func(context.Context, uint, int, int) ([]*models.Comment, error)
	countTopLevelFn func(context.Context, uint) (int64, error)
	listRepliesFn   func(context.Context, []uint) ([]*models.Comment, error)
	updateFn        func(context.Context, *models.Comment) error
	deleteCascadeFn func(context.Context, *models.Comment) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListTopLevel(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error) {
	return s.listTopLevelFn(ctx, postID, limit, offset)
}
func (s *commentRepoStub) CountTopLevel(ctx context.Context, postID uint) (int64, error) {
	return s.countTopLevelFn(ctx, postID)
}
func (s *commentRepoStub) ListReplies(ctx context.Context, parentIDs []uint) ([]*models.Comment, error) {
	return s.listRepliesFn(ctx, parentIDs)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) DeleteCascade(ctx context.Context, comment *models.Comment) (int64, error) {
	return s.deleteCascadeFn(ctx, comment)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:        func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn:       func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listTopLevelFn:  func(_ context.Context, _ uint, _, _ int) ([]*models.Comment, error) { return nil, nil },
		countTopLevelFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		listRepliesFn:   func(_ context.Context, _ []uint) ([]*models.Comment, error) { return nil, nil },
		updateFn:        func(_ context.Context, _ *models.Comment) error { return nil },
		deleteCascadeFn: func(_ context.Context, _ *models.Comment) (int64, error) { return 1, nil },
	}
}

func uintPtr(v uint) *uint { return &v }

func TestCommentService_CreateComment_Validation(t *testing.T) {
	t.Parallel()

	svc := NewCommentService(noopCommentRepo(), noopPostRepo())
	ctx := context.Background()

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreateComment(ctx, CreateCommentInput{UserID: 1, PostID: 1})
		assertValidationError(t, err)
	})

	t.Run("content too long", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreateComment(ctx, CreateCommentInput{
			UserID:  1,
			PostID:  1,
			Content: strings.Repeat("x", 2001),
		})
		assertValidationError(t, err)
	})

	t.Run("post not found propagates repo error", func(t *testing.T) {
		t.Parallel()
		repoErr := models.NewNotFoundError("Post", 99)
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
			return nil, repoErr
		}
		svc2 := NewCommentService(noopCommentRepo(), postRepo)
		_, err := svc2.CreateComment(ctx, CreateCommentInput{UserID: 1, PostID: 99, Content: "hi"})
		assert.ErrorIs(t, err, repoErr)
	})
}

func TestCommentService_CreateComment_Threading(t *testing.T) {
	t.Parallel()

	t.Run("reply to top-level comment succeeds", func(t *testing.T) {
		t.Parallel()
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			if id == 7 {
				return &models.Comment{ID: 7, PostID: 1}, nil
			}
			return &models.Comment{ID: id, PostID: 1, ParentID: uintPtr(7)}, nil
		}
		commentRepo.createFn = func(_ context.Context, c *models.Comment) error {
			c.ID = 8
			return nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo())
		reply, err := svc.CreateComment(context.Background(), CreateCommentInput{
			UserID:   1,
			PostID:   1,
			ParentID: uintPtr(7),
			Content:  "agreed",
		})
		require.NoError(t, err)
		assert.Equal(t, uint(8), reply.ID)
	})

	t.Run("reply to a reply conflicts", func(t *testing.T) {
		t.Parallel()
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) {
			return &models.Comment{ID: 8, PostID: 1, ParentID: uintPtr(7)}, nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo())
		_, err := svc.CreateComment(context.Background(), CreateCommentInput{
			UserID:   1,
			PostID:   1,
			ParentID: uintPtr(8),
			Content:  "nested",
		})
		assertConflictError(t, err)
	})

	t.Run("parent on another post is invalid", func(t *testing.T) {
		t.Parallel()
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) {
			return &models.Comment{ID: 7, PostID: 2}, nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo())
		_, err := svc.CreateComment(context.Background(), CreateCommentInput{
			UserID:   1,
			PostID:   1,
			ParentID: uintPtr(7),
			Content:  "wrong thread",
		})
		assertValidationError(t, err)
	})
}

func TestCommentService_ListComments_AttachesReplies(t *testing.T) {
	t.Parallel()

	commentRepo := noopCommentRepo()
	commentRepo.listTopLevelFn = func(_ context.Context, _ uint, _, _ int) ([]*models.Comment, error) {
		return []*models.Comment{{ID: 1}, {ID: 2}}, nil
	}
	commentRepo.countTopLevelFn = func(_ context.Context, _ uint) (int64, error) { return 2, nil }
	commentRepo.listRepliesFn = func(_ context.Context, parentIDs []uint) ([]*models.Comment, error) {
		assert.Equal(t, []uint{1, 2}, parentIDs)
		return []*models.Comment{
			{ID: 3, ParentID: uintPtr(1)},
			{ID: 4, ParentID: uintPtr(1)},
		}, nil
	}

	svc := NewCommentService(commentRepo, noopPostRepo())
	comments, pagination, err := svc.ListComments(context.Background(), 1, 1, 20)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Len(t, comments[0].Replies, 2)
	assert.Empty(t, comments[1].Replies)
	assert.Equal(t, models.Pagination{Page: 1, Limit: 20, Total: 2, Pages: 1}, pagination)
}

func TestCommentService_UpdateComment_Ownership(t *testing.T) {
	t.Parallel()

	t.Run("non-owner is forbidden", func(t *testing.T) {
		t.Parallel()
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) {
			return &models.Comment{ID: 1, PostID: 5, UserID: 10}, nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo())
		_, err := svc.UpdateComment(context.Background(), UpdateCommentInput{UserID: 1, PostID: 5, CommentID: 1, Content: "new"})
		assertForbiddenError(t, err)
	})

	t.Run("wrong post is not found", func(t *testing.T) {
		t.Parallel()
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) {
			return &models.Comment{ID: 1, PostID: 6, UserID: 1}, nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo())
		_, err := svc.UpdateComment(context.Background(), UpdateCommentInput{UserID: 1, PostID: 5, CommentID: 1, Content: "new"})
		assertNotFoundError(t, err)
	})

	t.Run("empty content is invalid", func(t *testing.T) {
		t.Parallel()
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) {
			return &models.Comment{ID: 1, PostID: 5, UserID: 1}, nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo())
		_, err := svc.UpdateComment(context.Background(), UpdateCommentInput{UserID: 1, PostID: 5, CommentID: 1, Content: ""})
		assertValidationError(t, err)
	})

	t.Run("owner update marks edited", func(t *testing.T) {
		t.Parallel()
		stored := &models.Comment{ID: 1, PostID: 5, UserID: 1, Content: "old"}
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) { return stored, nil }
		commentRepo.updateFn = func(_ context.Context, c *models.Comment) error {
			stored = c
			return nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo())
		comment, err := svc.UpdateComment(context.Background(), UpdateCommentInput{UserID: 1, PostID: 5, CommentID: 1, Content: "updated"})
		require.NoError(t, err)
		assert.Equal(t, "updated", comment.Content)
		assert.True(t, comment.IsEdited)
	})
}

func TestCommentService_DeleteComment_Ownership(t *testing.T) {
	t.Parallel()

	t.Run("owner can delete", func(t *testing.T) {
		t.Parallel()
		var cascaded bool
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) {
			return &models.Comment{ID: 1, UserID: 1, PostID: 5}, nil
		}
		commentRepo.deleteCascadeFn = func(_ context.Context, c *models.Comment) (int64, error) {
			cascaded = true
			return 1, nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo())
		comment, err := svc.DeleteComment(context.Background(), DeleteCommentInput{UserID: 1, PostID: 5, CommentID: 1})
		require.NoError(t, err)
		assert.True(t, cascaded)
		assert.Equal(t, uint(5), comment.PostID)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		t.Parallel()
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) {
			return &models.Comment{ID: 1, PostID: 5, UserID: 10}, nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo())
		_, err := svc.DeleteComment(context.Background(), DeleteCommentInput{UserID: 1, PostID: 5, CommentID: 1})
		assertForbiddenError(t, err)
	})

	t.Run("wrong post is not found", func(t *testing.T) {
		t.Parallel()
		var cascaded bool
		commentRepo := noopCommentRepo()
		commentRepo.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) {
			return &models.Comment{ID: 1, PostID: 6, UserID: 1}, nil
		}
		commentRepo.deleteCascadeFn = func(_ context.Context, _ *models.Comment) (int64, error) {
			cascaded = true
			return 1, nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo())
		_, err := svc.DeleteComment(context.Background(), DeleteCommentInput{UserID: 1, PostID: 5, CommentID: 1})
		assertNotFoundError(t, err)
		assert.False(t, cascaded)
	})
}
