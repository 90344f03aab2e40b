package models

import "time"

// NotificationKind names the interaction that produced a notification.
type NotificationKind string

const (
	NotificationLike    NotificationKind = "like"
	NotificationComment NotificationKind = "comment"
	NotificationFollow  NotificationKind = "follow"
)

// Fixed messages attached to each kind.
const (
	MessageLiked     = "❤️ Someone liked your post."
	MessageCommented = "💬 Someone commented on your post."
	MessageFollowed  = "👤 Someone followed you."
)

// Notification is an immutable record addressed to RecipientID.
type Notification struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	RecipientID uint             `gorm:"not null;index:idx_notifications_recipient_created" json:"userId"`
	SenderID    uint             `gorm:"not null" json:"senderId"`
	Kind        NotificationKind `gorm:"type:varchar(16);not null" json:"type"`
	SubjectID   *uint            `json:"postId"`
	Message     string           `json:"message"`
	CreatedAt   time.Time        `gorm:"index:idx_notifications_recipient_created" json:"createdAt"`
}
