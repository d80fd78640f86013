package repository

import (
	"testing"

	"devconnect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_CreateRecountsPost(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)

	author := createTestUser(t, db, "author")
	post := createTestPost(t, db, author.ID, "post")

	top := &models.Comment{PostID: post.ID, UserID: author.ID, Content: "first"}
	require.NoError(t, repo.Create(testCtx, top))
	assert.Equal(t, 1, fetchPost(t, db, post.ID).CommentCount)

	// Replies count toward the post's comment_count too.
	reply := &models.Comment{PostID: post.ID, UserID: author.ID, Content: "reply", ParentID: &top.ID}
	require.NoError(t, repo.Create(testCtx, reply))
	assert.Equal(t, 2, fetchPost(t, db, post.ID).CommentCount)
}

func TestCommentRepository_ListTopLevelWithReplies(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)

	author := createTestUser(t, db, "author")
	post := createTestPost(t, db, author.ID, "post")

	first := &models.Comment{PostID: post.ID, UserID: author.ID, Content: "first"}
	require.NoError(t, repo.Create(testCtx, first))
	second := &models.Comment{PostID: post.ID, UserID: author.ID, Content: "second"}
	require.NoError(t, repo.Create(testCtx, second))
	reply := &models.Comment{PostID: post.ID, UserID: author.ID, Content: "reply", ParentID: &first.ID}
	require.NoError(t, repo.Create(testCtx, reply))

	top, err := repo.ListTopLevel(testCtx, post.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, top, 2)
	// Oldest top-level comment first.
	assert.Equal(t, first.ID, top[0].ID)
	assert.Equal(t, second.ID, top[1].ID)

	count, err := repo.CountTopLevel(testCtx, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	replies, err := repo.ListReplies(testCtx, []uint{first.ID, second.ID})
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, reply.ID, replies[0].ID)

	// Empty parent set short-circuits without touching the DB.
	none, err := repo.ListReplies(testCtx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCommentRepository_DeleteCascade(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)

	author := createTestUser(t, db, "author")
	post := createTestPost(t, db, author.ID, "post")

	top := &models.Comment{PostID: post.ID, UserID: author.ID, Content: "top"}
	require.NoError(t, repo.Create(testCtx, top))
	replyA := &models.Comment{PostID: post.ID, UserID: author.ID, Content: "a", ParentID: &top.ID}
	require.NoError(t, repo.Create(testCtx, replyA))
	replyB := &models.Comment{PostID: post.ID, UserID: author.ID, Content: "b", ParentID: &top.ID}
	require.NoError(t, repo.Create(testCtx, replyB))
	other := &models.Comment{PostID: post.ID, UserID: author.ID, Content: "untouched"}
	require.NoError(t, repo.Create(testCtx, other))

	require.Equal(t, 4, fetchPost(t, db, post.ID).CommentCount)

	removed, err := repo.DeleteCascade(testCtx, top)
	require.NoError(t, err)
	assert.EqualValues(t, 3, removed)
	assert.Equal(t, 1, fetchPost(t, db, post.ID).CommentCount)

	_, err = repo.GetByID(testCtx, replyA.ID)
	require.Error(t, err)

	// Deleting a reply removes only itself.
	reply := &models.Comment{PostID: post.ID, UserID: author.ID, Content: "r", ParentID: &other.ID}
	require.NoError(t, repo.Create(testCtx, reply))
	require.Equal(t, 2, fetchPost(t, db, post.ID).CommentCount)

	removed, err = repo.DeleteCascade(testCtx, reply)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)
	assert.Equal(t, 1, fetchPost(t, db, post.ID).CommentCount)

	got, err := repo.GetByID(testCtx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, "untouched", got.Content)
}

func TestCommentRepository_UpdateMarksEdited(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)

	author := createTestUser(t, db, "author")
	post := createTestPost(t, db, author.ID, "post")

	comment := &models.Comment{PostID: post.ID, UserID: author.ID, Content: "before"}
	require.NoError(t, repo.Create(testCtx, comment))

	comment.Content = "after"
	comment.IsEdited = true
	require.NoError(t, repo.Update(testCtx, comment))

	got, err := repo.GetByID(testCtx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Content)
	assert.True(t, got.IsEdited)
}
