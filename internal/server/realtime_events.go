package server

import (
	"context"
	"log"

	"devconnect/internal/notifications"
)

// publishEvent sends an engagement event to the target user's channel and
// the broadcast channel. Delivery is best-effort and never fails a request.
func (s *Server) publishEvent(targetUserID uint, event notifications.Event) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.PublishEvent(context.Background(), targetUserID, event); err != nil {
		log.Printf("failed to publish %s event: %v", event.Type, err)
	}
}
