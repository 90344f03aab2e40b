// Package models contains data structures for the application's domain models.
package models

import "time"

// User is a registered member. Followers and following are derived from the
// follows table and are not columns of this row.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Email      string    `gorm:"uniqueIndex;not null" json:"email"`
	Password   string    `gorm:"not null" json:"-"`
	Firstname  string    `json:"firstname"`
	Lastname   string    `json:"lastname"`
	ProfilePic string    `json:"profilePic"`
	Bio        string    `json:"bio"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// UserProfile is the public view of a user.
type UserProfile struct {
	ID         uint   `json:"id"`
	Firstname  string `json:"firstname"`
	Lastname   string `json:"lastname"`
	ProfilePic string `json:"profilePic"`
	Bio        string `json:"bio"`
}

// Profile converts the user into its public view.
func (u *User) Profile() UserProfile {
	return UserProfile{
		ID:         u.ID,
		Firstname:  u.Firstname,
		Lastname:   u.Lastname,
		ProfilePic: u.ProfilePic,
		Bio:        u.Bio,
	}
}

// UpdateProfileRequest carries the editable profile fields.
type UpdateProfileRequest struct {
	Firstname  string `json:"firstname" validate:"max=100"`
	Lastname   string `json:"lastname" validate:"max=100"`
	ProfilePic string `json:"profilePic" validate:"max=512"`
	Bio        string `json:"bio" validate:"max=2000"`
}
