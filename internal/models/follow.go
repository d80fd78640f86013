package models

import "time"

// Follow is a directed edge: follower follows followee. It is the single
// source of truth for the social graph; follower and following lists are
// derived queries over this table, so the two sides can never disagree.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follows_edge;index" json:"follower_id"`
	FolloweeID uint      `gorm:"not null;uniqueIndex:idx_follows_edge;index" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`
}
