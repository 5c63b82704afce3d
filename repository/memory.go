package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"notesapi/model"
)

type memoryNote struct {
	note model.Note
	seq  uint64
}

// MemoryStore keeps everything in process. Uniqueness is checked and
// enforced under one lock, so concurrent registrations cannot both win.
type MemoryStore struct {
	mu         sync.RWMutex
	users      map[string]model.User
	byUsername map[string]string
	byEmail    map[string]string
	notes      map[string]*memoryNote
	seq        uint64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:      make(map[string]model.User),
		byUsername: make(map[string]string),
		byEmail:    make(map[string]string),
		notes:      make(map[string]*memoryNote),
	}
}

func (s *MemoryStore) CreateUser(ctx context.Context, user *model.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byUsername[user.Username]; taken {
		return ErrConflict
	}
	if _, taken := s.byEmail[user.Email]; taken {
		return ErrConflict
	}
	if _, taken := s.users[user.ID]; taken {
		return ErrConflict
	}

	s.users[user.ID] = *user
	s.byUsername[user.Username] = user.ID
	s.byEmail[user.Email] = user.ID
	return nil
}

func (s *MemoryStore) FindUserByID(ctx context.Context, id string) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (s *MemoryStore) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUsername[username]
	if !ok {
		return nil, ErrNotFound
	}
	user := s.users[id]
	return &user, nil
}

func (s *MemoryStore) UserExists(ctx context.Context, username, email string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, byName := s.byUsername[username]
	_, byEmail := s.byEmail[email]
	return byName || byEmail, nil
}

// DeleteUser removes a user and cascades to their notes. It is not exposed
// over HTTP.
func (s *MemoryStore) DeleteUser(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	delete(s.byUsername, user.Username)
	delete(s.byEmail, user.Email)
	for noteID, n := range s.notes {
		if n.note.UserID == id {
			delete(s.notes, noteID)
		}
	}
	return nil
}

func (s *MemoryStore) CreateNote(ctx context.Context, note *model.Note) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[note.UserID]; !ok {
		return ErrNotFound
	}
	if _, taken := s.notes[note.ID]; taken {
		return ErrConflict
	}

	s.seq++
	s.notes[note.ID] = &memoryNote{note: *note, seq: s.seq}
	return nil
}

func (s *MemoryStore) FindNote(ctx context.Context, id, userID string) (*model.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.notes[id]
	if !ok || n.note.UserID != userID {
		return nil, ErrNotFound
	}
	note := n.note
	return &note, nil
}

func (s *MemoryStore) ListNotes(ctx context.Context, filter model.NoteFilter) ([]*model.Note, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	s.mu.RLock()
	matches := make([]*memoryNote, 0)
	search := strings.ToLower(filter.Search)
	for _, n := range s.notes {
		if n.note.UserID != filter.UserID {
			continue
		}
		if filter.Priority != "" && n.note.Priority != filter.Priority {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(n.note.Title), search) &&
			!strings.Contains(strings.ToLower(n.note.Content), search) {
			continue
		}
		copied := *n
		matches = append(matches, &copied)
	}
	s.mu.RUnlock()

	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if !a.note.UpdatedAt.Equal(b.note.UpdatedAt) {
			return a.note.UpdatedAt.After(b.note.UpdatedAt)
		}
		return a.seq > b.seq
	})

	total := len(matches)
	start := min(max(filter.Offset, 0), total)
	end := total
	if filter.Limit > 0 {
		end = min(start+filter.Limit, total)
	}

	page := make([]*model.Note, 0, end-start)
	for _, n := range matches[start:end] {
		note := n.note
		page = append(page, &note)
	}
	return page, total, nil
}

func (s *MemoryStore) UpdateNote(ctx context.Context, note *model.Note) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notes[note.ID]
	if !ok || n.note.UserID != note.UserID {
		return ErrNotFound
	}
	n.note.Title = note.Title
	n.note.Content = note.Content
	n.note.Priority = note.Priority
	n.note.UpdatedAt = note.UpdatedAt

	*note = n.note
	return nil
}

func (s *MemoryStore) DeleteNote(ctx context.Context, id, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notes[id]
	if !ok || n.note.UserID != userID {
		return ErrNotFound
	}
	delete(s.notes, id)
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryStore) Close(context.Context) error {
	return nil
}
