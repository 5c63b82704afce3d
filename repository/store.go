// Package repository persists users and notes. Every backend translates its
// driver errors into ErrNotFound, ErrConflict or a wrapped error so callers
// never depend on a specific driver.
package repository

import (
	"context"
	"errors"
	"time"

	"notesapi/model"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("unique constraint violation")
)

type UserRepository interface {
	// CreateUser returns ErrConflict when the username or email is taken.
	CreateUser(ctx context.Context, user *model.User) error
	FindUserByID(ctx context.Context, id string) (*model.User, error)
	// FindUserByUsername is an exact, case-sensitive match.
	FindUserByUsername(ctx context.Context, username string) (*model.User, error)
	UserExists(ctx context.Context, username, email string) (bool, error)
}

// NoteRepository methods that take an id always match on id and owner
// together.
type NoteRepository interface {
	CreateNote(ctx context.Context, note *model.Note) error
	FindNote(ctx context.Context, id, userID string) (*model.Note, error)
	// ListNotes returns one page, most recently updated first, and the
	// total number of matches.
	ListNotes(ctx context.Context, filter model.NoteFilter) ([]*model.Note, int, error)
	// UpdateNote writes title, content, priority and updated_at.
	UpdateNote(ctx context.Context, note *model.Note) error
	DeleteNote(ctx context.Context, id, userID string) error
}

type Store interface {
	UserRepository
	NoteRepository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
