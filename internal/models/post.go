package models

import "time"

// Post represents a piece of content published by a user.
// UserID is set from the authenticated requester at creation and never changes.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	Content   string    `json:"content" gorm:"type:text" validate:"required"`
	UserID    uint      `json:"user_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
