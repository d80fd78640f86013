package models

import "time"

// Like is a single user-likes-post edge. Rows are hard-deleted on unlike;
// the unique index makes duplicate likes a constraint violation rather than
// a read-then-write race.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_post;index" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
