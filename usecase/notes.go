package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"notesapi/logging"
	"notesapi/model"
	"notesapi/repository"
	"notesapi/services"
	"notesapi/utils"

	"github.com/google/uuid"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
	// MaxPage keeps page*limit within int.
	MaxPage      = math.MaxInt / MaxLimit
)

// NoteInput is the client-editable part of a note. A nil Priority on update
// keeps the stored value; an empty one clears it.
type NoteInput struct {
	Title    string
	Content  string
	Priority *string
}

type ListQuery struct {
	Page     int
	Limit    int
	Search   string
	Priority string
}

type NotePage struct {
	Notes      []*model.Note
	Page       int
	Limit      int
	Total      int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

type NotesService struct {
	notes    repository.NoteRepository
	renderer *services.MarkdownRenderer
	log      logging.Logger
	now      func() time.Time
}

func NewNotesService(notes repository.NoteRepository, renderer *services.MarkdownRenderer, log logging.Logger) *NotesService {
	return &NotesService{
		notes:    notes,
		renderer: renderer,
		log:      log,
		now:      time.Now,
	}
}

func validateNote(in NoteInput) error {
	if utils.Validate.Var(in.Title, "notblank") != nil || utils.Validate.Var(in.Content, "notblank") != nil {
		return invalid("Title and content are required")
	}
	if utils.Validate.Var(in.Title, "max=255") != nil {
		return invalid("Title must be 255 characters or less")
	}
	if in.Priority != nil && utils.Validate.Var(*in.Priority, "omitempty,priority") != nil {
		return invalid("Priority must be one of low, medium, high")
	}
	return nil
}

func parseNoteID(raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", ErrInvalidNoteID
	}
	return id.String(), nil
}

func (s *NotesService) Create(ctx context.Context, userID string, in NoteInput) (*model.Note, error) {
	if err := validateNote(in); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	note := &model.Note{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     in.Title,
		Content:   in.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Priority != nil {
		note.Priority = *in.Priority
	}

	if err := s.notes.CreateNote(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	utils.TrackNoteOperation("create")
	s.log.Debug(ctx, "note created", "note_id", note.ID, "user_id", userID)
	return note, nil
}

// List returns one page of the caller's notes, most recently updated
// first. Out-of-range page and limit values fall back to defaults.
func (s *NotesService) List(ctx context.Context, userID string, q ListQuery) (*NotePage, error) {
	if q.Priority != "" && !utils.IsValidPriority(q.Priority) {
		return nil, invalid("Invalid priority filter", "priority must be one of low, medium, high")
	}

	page, limit := q.Page, q.Limit
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	notes, total, err := s.notes.ListNotes(ctx, model.NoteFilter{
		UserID:   userID,
		Search:   q.Search,
		Priority: q.Priority,
		Offset:   (page - 1) * limit,
		Limit:    limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	utils.TrackNoteOperation("list")
	return &NotePage{
		Notes:      notes,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
		HasNext:    page*limit < total,
		HasPrev:    page > 1,
	}, nil
}

func (s *NotesService) Get(ctx context.Context, userID, rawID string) (*model.Note, error) {
	id, err := parseNoteID(rawID)
	if err != nil {
		return nil, err
	}

	note, err := s.notes.FindNote(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}

	utils.TrackNoteOperation("get")
	return note, nil
}

func (s *NotesService) Update(ctx context.Context, userID, rawID string, in NoteInput) (*model.Note, error) {
	id, err := parseNoteID(rawID)
	if err != nil {
		return nil, err
	}
	if err := validateNote(in); err != nil {
		return nil, err
	}

	existing, err := s.notes.FindNote(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}

	existing.Title = in.Title
	existing.Content = in.Content
	if in.Priority != nil {
		existing.Priority = *in.Priority
	}
	existing.UpdatedAt = s.now().UTC()

	if err := s.notes.UpdateNote(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	utils.TrackNoteOperation("update")
	return existing, nil
}

func (s *NotesService) Delete(ctx context.Context, userID, rawID string) error {
	id, err := parseNoteID(rawID)
	if err != nil {
		return err
	}

	if err := s.notes.DeleteNote(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNoteNotFound
		}
		return fmt.Errorf("failed to delete note: %w", err)
	}

	utils.TrackNoteOperation("delete")
	s.log.Debug(ctx, "note deleted", "note_id", id, "user_id", userID)
	return nil
}

// Render returns the note content as an HTML fragment.
func (s *NotesService) Render(ctx context.Context, userID, rawID string) (*model.Note, []byte, error) {
	note, err := s.Get(ctx, userID, rawID)
	if err != nil {
		return nil, nil, err
	}

	html, err := s.renderer.Render([]byte(note.Content))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to render note: %w", err)
	}

	utils.TrackNoteOperation("render")
	return note, html, nil
}
