package server

import (
	"errors"
	"log/slog"

	"skillshare/internal/models"
	"skillshare/internal/notifications"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

const wsUserLocal = "wsUserID"

// IssueWSTicket handles POST /ws/ticket
// @Summary Issue a WebSocket ticket
// @Description Returns a single-use ticket for GET /ws/notifications, valid for 60 seconds
// @Tags realtime
// @Produce json
// @Success 200 {object} object{ticket=string,expiresIn=int}
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /ws/ticket [post]
func (s *Server) IssueWSTicket(c *fiber.Ctx) error {
	user, err := s.currentUser(c)
	if err != nil {
		return respondAppError(c, err)
	}

	ticket, err := s.tickets.Issue(c.UserContext(), user.ID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{
		"ticket":    ticket,
		"expiresIn": int(notifications.TicketTTL.Seconds()),
	})
}

// WebSocketUpgrade consumes the ticket query parameter and admits the upgrade.
func (s *Server) WebSocketUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	userID, err := s.tickets.Consume(c.UserContext(), c.Query("ticket"))
	if err != nil {
		if errors.Is(err, notifications.ErrInvalidTicket) {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired WebSocket ticket"))
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	c.Locals(wsUserLocal, userID)
	return c.Next()
}

// NotificationsSocket streams the caller's notifications as they are stored.
func (s *Server) NotificationsSocket() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, ok := conn.Locals(wsUserLocal).(uint)
		if !ok {
			_ = conn.Close()
			return
		}

		client, err := s.hub.Register(userID, conn)
		if err != nil {
			slog.Warn("notification socket rejected",
				slog.Uint64("user_id", uint64(userID)),
				slog.String("error", err.Error()),
			)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		go client.WritePump()
		client.ReadPump()
	})
}
