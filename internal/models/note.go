package models

import (
	"time"
)

// Note represents a user's note. Every note belongs to exactly one
// user and is removed when that user's account is deleted.
type Note struct {
	ID          int64     `json:"id" db:"note_id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	Title       string    `json:"title" db:"title" validate:"required,min=1,max=200"`
	Description string    `json:"description" db:"description" validate:"required,min=1"`
	Category    string    `json:"category" db:"category"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the database table name for the Note model.
func (n *Note) TableName() string {
	return "notes"
}

// NoteRequest represents the data for creating or updating a note.
// The category defaults to "General" when omitted.
type NoteRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"required,min=1"`
	Category    string `json:"category" validate:"omitempty,max=50"`
}
