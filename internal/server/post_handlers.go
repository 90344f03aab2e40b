package server

import (
	"errors"
	"mime/multipart"

	"skillshare/internal/models"
	"skillshare/internal/service"
	"skillshare/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

const postNotFound = "Post not found"

// CreatePost handles POST /posts/create
// @Summary Create a post
// @Description Multipart form with userId, content and an optional file
// @Tags posts
// @Accept mpfd
// @Produce json
// @Param userId formData int true "Author ID"
// @Param content formData string false "Post content"
// @Param file formData file false "Media file"
// @Success 200 {object} object{message=string,post=models.Post}
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts/create [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID, ok := parseUint(c.FormValue("userId"))
	if !ok {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("userId is required"))
	}

	upload, closeFn, err := formUpload(c)
	if err != nil {
		return respondAppError(c, err)
	}
	defer closeFn()

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		UserID:  userID,
		Content: c.FormValue("content"),
		Media:   upload,
	})
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post with image created ✅", "post": post})
}

// GetPosts handles GET /posts
// @Summary List posts
// @Tags posts
// @Produce json
// @Success 200 {object} object{count=int,posts=[]models.Post}
// @Security BearerAuth
// @Router /posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.UserContext())
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"count": len(posts), "posts": posts})
}

// GetPost handles GET /posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return respondLookupError(c, err, postNotFound)
	}
	return c.JSON(fiber.Map{"post": post})
}

// UpdatePost handles PUT /posts/:id/update
// A new file replaces the post's media; without one the media is kept.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	upload, closeFn, err := formUpload(c)
	if err != nil {
		return respondAppError(c, err)
	}
	defer closeFn()

	post, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		PostID:  id,
		Content: c.FormValue("content"),
		Media:   upload,
	})
	if err != nil {
		return respondLookupError(c, err, postNotFound)
	}
	return c.JSON(fiber.Map{"message": "Post updated ✅", "post": post})
}

// DeletePost handles DELETE /posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.UserContext(), id); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted ✅"})
}

// LikePost handles POST /posts/:id/like
func (s *Server) LikePost(c *fiber.Ctx) error {
	id, req, err := s.likeRequest(c)
	if err != nil {
		return nil
	}

	if err := s.postService.LikePost(c.UserContext(), id, req.UserID); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post liked 👍"})
}

// UnlikePost handles POST /posts/:id/unlike
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	id, req, err := s.likeRequest(c)
	if err != nil {
		return nil
	}

	if err := s.postService.UnlikePost(c.UserContext(), id, req.UserID); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post unliked 👎"})
}

func (s *Server) likeRequest(c *fiber.Ctx) (uint, models.LikeRequest, error) {
	var req models.LikeRequest
	id, err := s.parseID(c, "id")
	if err != nil {
		return 0, req, err
	}
	if err := parseBody(c, &req); err != nil {
		return 0, req, err
	}
	if err := validation.Struct(&req); err != nil {
		_ = respondAppError(c, err)
		return 0, req, errResponseWritten
	}
	return id, req, nil
}

// formUpload returns the optional "file" part of a multipart request. The
// returned close function is always safe to call.
func formUpload(c *fiber.Ctx) (*service.MediaUpload, func(), error) {
	noop := func() {}

	fh, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, fasthttp.ErrMissingFile) || errors.Is(err, fasthttp.ErrNoMultipartForm) {
			return nil, noop, nil
		}
		return nil, noop, models.NewValidationError("Invalid multipart form")
	}
	if fh.Size == 0 && fh.Filename == "" {
		return nil, noop, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, noop, models.NewInternalError(err)
	}
	return &service.MediaUpload{Filename: fh.Filename, Content: f}, closer(f), nil
}

func closer(f multipart.File) func() {
	return func() { _ = f.Close() }
}
