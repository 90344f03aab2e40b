package service

import (
	"context"
	"io"
	"log/slog"

	"skillshare/internal/models"
	"skillshare/internal/observability"
	"skillshare/internal/repository"
	"skillshare/internal/storage"

	"go.opentelemetry.io/otel/attribute"
)

// MediaUpload is a single file attached to a post.
type MediaUpload struct {
	Filename string
	Content  io.Reader
}

type CreatePostInput struct {
	UserID  uint
	Content string
	Media   *MediaUpload
}

type UpdatePostInput struct {
	PostID  uint
	Content string
	Media   *MediaUpload
}

// PostService manages posts, their media and their likes.
type PostService struct {
	posts         repository.PostRepository
	media         storage.MediaStore
	notifications NotificationSender
}

func NewPostService(posts repository.PostRepository, media storage.MediaStore, notifications NotificationSender) *PostService {
	return &PostService{posts: posts, media: media, notifications: notifications}
}

// CreatePost stores the post. An attached file becomes its only media reference.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.UserID == 0 {
		return nil, models.NewValidationError("userId is required")
	}

	post := &models.Post{UserID: in.UserID, Content: in.Content, MediaURLs: []string{}}
	if in.Media != nil {
		name, err := s.media.Save(ctx, in.Media.Filename, in.Media.Content)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		post.MediaURLs = []string{name}
	}

	if err := s.posts.Create(ctx, post); err != nil {
		s.deleteMedia(ctx, post.MediaURLs)
		return nil, err
	}
	return post, nil
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.posts.GetByID(ctx, id)
}

func (s *PostService) ListPosts(ctx context.Context) ([]models.Post, error) {
	return s.posts.List(ctx)
}

// UpdatePost replaces the content. A new file replaces the previous media;
// failures removing the old files are logged and ignored.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	post.Content = in.Content
	if in.Media != nil {
		s.deleteMedia(ctx, post.MediaURLs)
		name, err := s.media.Save(ctx, in.Media.Filename, in.Media.Content)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		post.MediaURLs = []string{name}
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes the post's media and then the post. Missing posts are a no-op.
func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if models.IsNotFound(err) {
			return nil
		}
		return err
	}
	s.deleteMedia(ctx, post.MediaURLs)
	return s.posts.Delete(ctx, id)
}

// LikePost adds userID to the post's likes and notifies the author for a new
// like from someone else. Missing posts are a no-op.
func (s *PostService) LikePost(ctx context.Context, postID, userID uint) (err error) {
	ctx, span := observability.StartSpan(ctx, "posts", "like",
		attribute.Int64("post_id", int64(postID)),
		attribute.Int64("user_id", int64(userID)),
	)
	defer func() { observability.EndSpan(span, err) }()

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if models.IsNotFound(err) {
			return nil
		}
		return err
	}

	added, err := s.posts.AddLike(ctx, postID, userID)
	if err != nil {
		return err
	}
	if !added || post.UserID == userID {
		return nil
	}
	_, err = s.notifications.Send(ctx, post.UserID, userID, models.NotificationLike, &post.ID)
	return err
}

// UnlikePost removes userID from the post's likes. It never notifies.
func (s *PostService) UnlikePost(ctx context.Context, postID, userID uint) error {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		if models.IsNotFound(err) {
			return nil
		}
		return err
	}
	return s.posts.RemoveLike(ctx, postID, userID)
}

func (s *PostService) deleteMedia(ctx context.Context, names []string) {
	for _, name := range names {
		if err := s.media.Delete(ctx, name); err != nil {
			slog.WarnContext(ctx, "failed to delete post media",
				slog.String("name", name),
				slog.String("error", err.Error()),
			)
		}
	}
}
