package service

import (
	"context"
	"log/slog"

	"skillshare/internal/models"
	"skillshare/internal/observability"
	"skillshare/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// Publisher pushes a stored notification to live listeners.
type Publisher interface {
	Publish(ctx context.Context, n *models.Notification) error
}

// NotificationService records interaction notifications. Storing a record is
// what makes it delivered; live push through the Publisher is best-effort.
type NotificationService struct {
	repo      repository.NotificationRepository
	publisher Publisher
}

func NewNotificationService(repo repository.NotificationRepository, publisher Publisher) *NotificationService {
	return &NotificationService{repo: repo, publisher: publisher}
}

// MessageFor returns the fixed message attached to kind.
func MessageFor(kind models.NotificationKind) string {
	switch kind {
	case models.NotificationLike:
		return models.MessageLiked
	case models.NotificationComment:
		return models.MessageCommented
	case models.NotificationFollow:
		return models.MessageFollowed
	default:
		return string(kind)
	}
}

// Send persists a notification for recipientID and hands it to the publisher.
func (s *NotificationService) Send(ctx context.Context, recipientID, senderID uint, kind models.NotificationKind, subjectID *uint) (_ *models.Notification, err error) {
	ctx, span := observability.StartSpan(ctx, "notifications", "send",
		attribute.String("kind", string(kind)),
		attribute.Int64("recipient_id", int64(recipientID)),
	)
	defer func() { observability.EndSpan(span, err) }()

	n := &models.Notification{
		RecipientID: recipientID,
		SenderID:    senderID,
		Kind:        kind,
		SubjectID:   subjectID,
		Message:     MessageFor(kind),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	observability.NotificationsTotal.WithLabelValues(string(kind)).Inc()

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, n); err != nil {
			observability.NotificationPublishFailures.Inc()
			slog.WarnContext(ctx, "failed to publish notification",
				slog.Uint64("notification_id", uint64(n.ID)),
				slog.String("error", err.Error()),
			)
		}
	}
	return n, nil
}

// ListForUser returns the user's notifications newest first.
func (s *NotificationService) ListForUser(ctx context.Context, userID uint) ([]models.Notification, error) {
	return s.repo.ListByRecipient(ctx, userID)
}

func (s *NotificationService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
