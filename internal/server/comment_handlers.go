package server

import (
	"skillshare/internal/models"
	"skillshare/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const commentNotFound = "Comment not found"

// CreateComment handles POST /posts/:id/comment
// The post is taken from the path; the body carries userId and text.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req models.CommentRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	req.PostID = postID
	if req.UserID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("userId is required"))
	}

	comment, err := s.commentService.AddComment(c.UserContext(), req)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Comment added 💬", "comment": comment})
}

// GetComments handles GET /posts/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.ListComments(c.UserContext(), postID)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"count": len(comments), "comments": comments})
}

// GetComment handles GET /posts/comments/:commentId
func (s *Server) GetComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	comment, err := s.commentService.GetComment(c.UserContext(), id)
	if err != nil {
		return respondLookupError(c, err, commentNotFound)
	}
	return c.JSON(fiber.Map{"comment": comment})
}

// UpdateComment handles PUT /posts/comments/:commentId
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	var req models.CommentRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	if err := validation.Struct(&req); err != nil {
		return respondAppError(c, err)
	}

	comment, err := s.commentService.UpdateComment(c.UserContext(), id, req.Text)
	if err != nil {
		return respondLookupError(c, err, commentNotFound)
	}
	return c.JSON(fiber.Map{"message": "Comment updated ✅", "comment": comment})
}

// DeleteComment handles DELETE /posts/comments/:commentId
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(c.UserContext(), id); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Comment deleted 🗑"})
}
