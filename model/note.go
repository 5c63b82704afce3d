package model

import "time"

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Note belongs to exactly one user. ID and UserID never change after
// creation.
type Note struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	Title     string    `bson:"title"`
	Content   string    `bson:"content"`
	Priority  string    `bson:"priority,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NoteFilter selects a page of one owner's notes. Search matches title or
// content case-insensitively.
type NoteFilter struct {
	UserID   string
	Search   string
	Priority string
	Offset   int
	Limit    int
}
