package models

import "time"

// Workout plan statuses.
const (
	WorkoutStatusPlanned    = "Planned"
	WorkoutStatusInProgress = "In Progress"
	WorkoutStatusCompleted  = "Completed"
)

// WorkoutPlan is a user's list of exercises with a target date.
type WorkoutPlan struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"userId" validate:"required"`
	Title       string    `gorm:"not null" json:"title" validate:"required,max=200"`
	Description string    `gorm:"type:text" json:"description"`
	Exercises   []string  `gorm:"serializer:json;type:text" json:"exercises" validate:"dive,max=200"`
	Deadline    string    `json:"deadline"`
	Status      string    `json:"status" validate:"omitempty,oneof=Planned 'In Progress' Completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MealPlan is a user's list of nutrition topics with a target date.
type MealPlan struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"userId" validate:"required"`
	Title       string    `gorm:"not null" json:"title" validate:"required,max=200"`
	Description string    `gorm:"type:text" json:"description"`
	Topics      []string  `gorm:"serializer:json;type:text" json:"topics" validate:"dive,max=200"`
	Deadline    string    `json:"deadline"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
