// Package notifications publishes engagement events to Redis channels.
// Delivery is fire-and-forget: consumers subscribe out of process, and the
// API keeps no connection state of its own.
package notifications

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Event types published on engagement activity.
const (
	EventPostCreated    = "post_created"
	EventPostLiked      = "post_liked"
	EventCommentCreated = "comment_created"
	EventCommentDeleted = "comment_deleted"
	EventUserFollowed   = "user_followed"
)

// BroadcastChannel carries every published event; per-user channels carry
// only events targeting that user. Out-of-process consumers pick either.
const BroadcastChannel = "notifications:broadcast"

// Event is the payload published for every engagement notification.
type Event struct {
	Type      string    `json:"type"`
	ActorID   uint      `json:"actor_id"`
	PostID    uint      `json:"post_id,omitempty"`
	CommentID uint      `json:"comment_id,omitempty"`
	TargetID  uint      `json:"target_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Notifier publishes engagement events into Redis channels.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishEvent sends the event to the target user's channel (when a target
// is set) and to the broadcast channel. Publishing is best-effort; a nil
// client is a no-op.
func (n *Notifier) PublishEvent(ctx context.Context, targetUserID uint, event Event) error {
	if n.rdb == nil {
		return nil
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if targetUserID != 0 {
		if err := n.rdb.Publish(ctx, UserChannel(targetUserID), payload).Err(); err != nil {
			return err
		}
	}
	return n.rdb.Publish(ctx, BroadcastChannel, payload).Err()
}

// UserChannel derives the Redis channel name for a user.
func UserChannel(userID uint) string {
	return "notifications:user:" + strconv.FormatUint(uint64(userID), 10)
}
