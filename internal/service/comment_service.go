package service

import (
	"context"

	"skillshare/internal/models"
	"skillshare/internal/observability"
	"skillshare/internal/repository"
	"skillshare/internal/validation"

	"go.opentelemetry.io/otel/attribute"
)

// CommentService manages comments. Reads and writes go by comment id
// without ownership checks.
type CommentService struct {
	comments      repository.CommentRepository
	posts         repository.PostRepository
	notifications NotificationSender
}

func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository, notifications NotificationSender) *CommentService {
	return &CommentService{comments: comments, posts: posts, notifications: notifications}
}

// AddComment stores the comment and notifies the post author when someone
// else commented. The comment is kept even if the post cannot be found.
func (s *CommentService) AddComment(ctx context.Context, req models.CommentRequest) (_ *models.Comment, err error) {
	ctx, span := observability.StartSpan(ctx, "comments", "add",
		attribute.Int64("post_id", int64(req.PostID)),
		attribute.Int64("user_id", int64(req.UserID)),
	)
	defer func() { observability.EndSpan(span, err) }()

	if err := validation.Struct(&req); err != nil {
		return nil, err
	}

	comment := &models.Comment{PostID: req.PostID, UserID: req.UserID, Text: req.Text}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	post, err := s.posts.GetByID(ctx, req.PostID)
	if err != nil {
		if models.IsNotFound(err) {
			return comment, nil
		}
		return nil, err
	}
	if post.UserID != req.UserID {
		if _, err := s.notifications.Send(ctx, post.UserID, req.UserID, models.NotificationComment, &post.ID); err != nil {
			return nil, err
		}
	}
	return comment, nil
}

func (s *CommentService) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	return s.comments.GetByID(ctx, id)
}

func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	return s.comments.ListByPost(ctx, postID)
}

// UpdateComment replaces the comment text.
func (s *CommentService) UpdateComment(ctx context.Context, id uint, text string) (*models.Comment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	comment.Text = text
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, id uint) error {
	return s.comments.Delete(ctx, id)
}
