package server

import (
	"devconnect/internal/models"
	"devconnect/internal/notifications"

	"github.com/gofiber/fiber/v2"
)

// FollowUser handles POST /api/users/:id/follow
func (s *Server) FollowUser(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.socialService.Follow(c.Context(), userID, targetID)
	if err != nil {
		return respondServiceError(c, err)
	}

	s.publishEvent(targetID, notifications.Event{
		Type:     notifications.EventUserFollowed,
		ActorID:  userID,
		TargetID: targetID,
	})

	return c.JSON(result)
}

// UnfollowUser handles DELETE /api/users/:id/follow
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.socialService.Unfollow(c.Context(), userID, targetID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(result)
}

// GetFollowers handles GET /api/users/:id/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	subjectID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	users, err := s.socialService.ListFollowers(c.Context(), subjectID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if users == nil {
		users = []*models.User{}
	}
	return c.JSON(fiber.Map{"followers": users})
}

// GetFollowing handles GET /api/users/:id/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	subjectID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	users, err := s.socialService.ListFollowing(c.Context(), subjectID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if users == nil {
		users = []*models.User{}
	}
	return c.JSON(fiber.Map{"following": users})
}
