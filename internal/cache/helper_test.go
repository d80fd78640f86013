package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func withMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestGetSetJSON(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	var got cachedUser
	found, err := GetJSON(ctx, UserKey(1), &got)
	require.NoError(t, err)
	assert.False(t, found)

	want := cachedUser{ID: 1, Username: "gopher"}
	require.NoError(t, SetJSON(ctx, UserKey(1), want, UserTTL))

	found, err = GetJSON(ctx, UserKey(1), &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, want, got)
}

func TestGetSetJSON_NilClientIsNoop(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	var got cachedUser
	found, err := GetJSON(ctx, UserKey(1), &got)
	assert.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, SetJSON(ctx, UserKey(1), cachedUser{ID: 1}, time.Minute))
}

func TestAside(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *cachedUser) func() error {
		return func() error {
			calls++
			*dest = cachedUser{ID: 2, Username: "ferret"}
			return nil
		}
	}

	var first cachedUser
	require.NoError(t, Aside(ctx, UserKey(2), &first, UserTTL, fetch(&first)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "ferret", first.Username)

	// Second read is served from cache.
	var second cachedUser
	require.NoError(t, Aside(ctx, UserKey(2), &second, UserTTL, fetch(&second)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)

	// After expiry the fetch runs again.
	mr.FastForward(UserTTL + time.Second)
	var third cachedUser
	require.NoError(t, Aside(ctx, UserKey(2), &third, UserTTL, fetch(&third)))
	assert.Equal(t, 2, calls)
}

func TestInvalidate(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PostKey(9), cachedUser{ID: 9}, PostTTL))
	InvalidatePost(ctx, 9)

	var got cachedUser
	found, err := GetJSON(ctx, PostKey(9), &got)
	require.NoError(t, err)
	assert.False(t, found)
}
