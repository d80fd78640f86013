package cache

import (
	"context"
	"fmt"
	"time"
)

// Key formats. Profile and post entries are invalidated on every mutation
// touching them; search pages are short-lived instead of invalidated, since
// any profile or follow change could affect an unknown set of queries.
const (
	UserKeyPrefix   = "user:%d"
	PostKeyPrefix   = "post:%d"
	SearchKeyPrefix = "search:%s:%d:%d" // query, page, limit
	TokenDenyPrefix = "jwt:deny:%s"
)

const (
	UserTTL   = 5 * time.Minute
	PostTTL   = 30 * time.Minute
	SearchTTL = 1 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func SearchKey(q string, page, limit int) string {
	return fmt.Sprintf(SearchKeyPrefix, q, page, limit)
}

func TokenDenyKey(jti string) string {
	return fmt.Sprintf(TokenDenyPrefix, jti)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}
