package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepository_CreateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	created, err := repo.Create(testCtx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, created)

	// A second insert of the same edge reports false.
	created, err = repo.Create(testCtx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, created)

	exists, err := repo.Exists(testCtx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	// The edge is directed; the reverse does not exist.
	exists, err = repo.Exists(testCtx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	deleted, err := repo.Delete(testCtx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(testCtx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestFollowRepository_DerivedLists(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	_, err := repo.Create(testCtx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = repo.Create(testCtx, alice.ID, carol.ID)
	require.NoError(t, err)
	_, err = repo.Create(testCtx, carol.ID, bob.ID)
	require.NoError(t, err)

	following, err := repo.ListFollowingIDs(testCtx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{bob.ID, carol.ID}, following)

	// Both sides of every edge agree because they are the same row.
	followers, err := repo.ListFollowerIDs(testCtx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{alice.ID, carol.ID}, followers)

	count, err := repo.CountFollowers(testCtx, bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	none, err := repo.ListFollowerIDs(testCtx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}
