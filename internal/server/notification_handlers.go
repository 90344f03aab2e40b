package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /notifications/:userId
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	list, err := s.notificationService.ListForUser(c.UserContext(), userID)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"count": len(list), "notifications": list})
}

// DeleteNotification handles DELETE /notifications/:id
func (s *Server) DeleteNotification(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.notificationService.Delete(c.UserContext(), id); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Notification deleted ✅"})
}
