package models

import "time"

// Post is a user's published content with at most one attached media file.
type Post struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	UserID    uint     `gorm:"not null;index" json:"userId"`
	Content   string   `gorm:"type:text" json:"content"`
	MediaURLs []string `gorm:"serializer:json;type:text" json:"mediaUrls"`

	// Loaded from post_likes.
	LikedUserIDs []uint `gorm:"-" json:"likedUserIds"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostLike records that UserID likes PostID. The pair is unique.
type PostLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"userId"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post;index" json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for GORM
func (PostLike) TableName() string {
	return "post_likes"
}

// Comment belongs to exactly one post. Removing the post leaves its comments.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"postId"`
	UserID    uint      `gorm:"not null" json:"userId"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LikeRequest is the body of like and unlike calls.
type LikeRequest struct {
	UserID uint `json:"userId" validate:"required"`
}

// CommentRequest is the body of comment create and update calls.
type CommentRequest struct {
	PostID uint   `json:"postId"`
	UserID uint   `json:"userId"`
	Text   string `json:"text" validate:"required,max=5000"`
}
