package service

import (
	"context"

	"skillshare/internal/models"
	"skillshare/internal/observability"
	"skillshare/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// NotificationSender stores an interaction notification.
type NotificationSender interface {
	Send(ctx context.Context, recipientID, senderID uint, kind models.NotificationKind, subjectID *uint) (*models.Notification, error)
}

// FollowService maintains the follow graph. Each (follower, following) pair
// is one edge row, so both directions are read from the same record.
type FollowService struct {
	users         repository.UserRepository
	follows       repository.FollowRepository
	notifications NotificationSender
}

func NewFollowService(users repository.UserRepository, follows repository.FollowRepository, notifications NotificationSender) *FollowService {
	return &FollowService{users: users, follows: follows, notifications: notifications}
}

// Follow makes followerID follow targetID and notifies the target. It
// returns false without changes for a self-follow or when either user is
// missing.
func (s *FollowService) Follow(ctx context.Context, targetID, followerID uint) (ok bool, err error) {
	ctx, span := observability.StartSpan(ctx, "follow", "follow",
		attribute.Int64("target_id", int64(targetID)),
		attribute.Int64("follower_id", int64(followerID)),
	)
	defer func() {
		observeFollow("follow", ok, err)
		observability.EndSpan(span, err)
	}()

	if targetID == followerID {
		return false, nil
	}
	exists, err := s.bothExist(ctx, targetID, followerID)
	if err != nil || !exists {
		return false, err
	}

	if _, err := s.follows.Add(ctx, followerID, targetID); err != nil {
		return false, err
	}
	if _, err := s.notifications.Send(ctx, targetID, followerID, models.NotificationFollow, nil); err != nil {
		return false, err
	}
	return true, nil
}

// Unfollow removes the edge. It succeeds whenever both users exist, whether
// or not the edge was present, and never notifies. A user unfollowing
// themselves is accepted and removes nothing.
func (s *FollowService) Unfollow(ctx context.Context, targetID, followerID uint) (ok bool, err error) {
	ctx, span := observability.StartSpan(ctx, "follow", "unfollow",
		attribute.Int64("target_id", int64(targetID)),
		attribute.Int64("follower_id", int64(followerID)),
	)
	defer func() {
		observeFollow("unfollow", ok, err)
		observability.EndSpan(span, err)
	}()

	exists, err := s.bothExist(ctx, targetID, followerID)
	if err != nil || !exists {
		return false, err
	}
	if err := s.follows.Remove(ctx, followerID, targetID); err != nil {
		return false, err
	}
	return true, nil
}

// Followers returns the ids following userID. Unknown users have none.
func (s *FollowService) Followers(ctx context.Context, userID uint) ([]uint, error) {
	return s.follows.FollowerIDs(ctx, userID)
}

// Following returns the ids userID follows. Unknown users have none.
func (s *FollowService) Following(ctx context.Context, userID uint) ([]uint, error) {
	return s.follows.FollowingIDs(ctx, userID)
}

func (s *FollowService) bothExist(ctx context.Context, ids ...uint) (bool, error) {
	for _, id := range ids {
		if _, err := s.users.GetByID(ctx, id); err != nil {
			if models.IsNotFound(err) {
				return false, nil
			}
			return false, err
		}
	}
	return true, nil
}

func observeFollow(op string, ok bool, err error) {
	result := "ok"
	switch {
	case err != nil:
		result = "error"
	case !ok:
		result = "rejected"
	}
	observability.FollowOperations.WithLabelValues(op, result).Inc()
}
