package models

import "time"

// Follow is a single directed edge: FollowerID follows FollowingID.
// One row per pair keeps both directions of the graph in agreement.
type Follow struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FollowerID  uint      `gorm:"not null;uniqueIndex:idx_follow_pair" json:"followerId"`
	FollowingID uint      `gorm:"not null;uniqueIndex:idx_follow_pair;index:idx_follows_following" json:"followingId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
