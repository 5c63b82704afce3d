package repository

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"notesapi/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUser(name string) *model.User {
	return &model.User{
		ID:           uuid.NewString(),
		Username:     name,
		Email:        name + "@example.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}
}

func newTestNote(userID, title string, updated time.Time) *model.Note {
	return &model.Note{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Content:   "content of " + title,
		CreatedAt: updated,
		UpdatedAt: updated,
	}
}

// runStoreContract exercises behaviour every Store must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("UserUniqueness", func(t *testing.T) {
		s := newStore(t)
		alice := newTestUser("alice")
		require.NoError(t, s.CreateUser(ctx, alice))

		sameName := newTestUser("alice")
		sameName.Email = "other@example.com"
		assert.ErrorIs(t, s.CreateUser(ctx, sameName), ErrConflict)

		sameEmail := newTestUser("alice2")
		sameEmail.Email = alice.Email
		assert.ErrorIs(t, s.CreateUser(ctx, sameEmail), ErrConflict)

		exists, err := s.UserExists(ctx, "nobody", alice.Email)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = s.UserExists(ctx, "nobody", "nobody@example.com")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("UserLookupIsExact", func(t *testing.T) {
		s := newStore(t)
		bob := newTestUser("bob")
		require.NoError(t, s.CreateUser(ctx, bob))

		got, err := s.FindUserByUsername(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, bob.ID, got.ID)
		assert.Equal(t, "hash", got.PasswordHash)

		_, err = s.FindUserByUsername(ctx, "Bob")
		assert.ErrorIs(t, err, ErrNotFound)

		byID, err := s.FindUserByID(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, "bob", byID.Username)

		_, err = s.FindUserByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("ConcurrentRegistrationOnlyOneWins", func(t *testing.T) {
		s := newStore(t)
		var wins atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				u := newTestUser("racer")
				u.Email = fmt.Sprintf("racer%d@example.com", i)
				if err := s.CreateUser(ctx, u); err == nil {
					wins.Add(1)
				} else {
					assert.ErrorIs(t, err, ErrConflict)
				}
			}(i)
		}
		wg.Wait()
		assert.Equal(t, int32(1), wins.Load())
	})

	t.Run("NoteOwnerScoping", func(t *testing.T) {
		s := newStore(t)
		owner := newTestUser("owner")
		other := newTestUser("other")
		require.NoError(t, s.CreateUser(ctx, owner))
		require.NoError(t, s.CreateUser(ctx, other))

		note := newTestNote(owner.ID, "secret", time.Now().UTC().Truncate(time.Millisecond))
		require.NoError(t, s.CreateNote(ctx, note))

		_, err := s.FindNote(ctx, note.ID, other.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		hijack := *note
		hijack.UserID = other.ID
		hijack.Title = "pwned"
		assert.ErrorIs(t, s.UpdateNote(ctx, &hijack), ErrNotFound)
		assert.ErrorIs(t, s.DeleteNote(ctx, note.ID, other.ID), ErrNotFound)

		got, err := s.FindNote(ctx, note.ID, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, "secret", got.Title)
	})

	t.Run("UpdateAndDelete", func(t *testing.T) {
		s := newStore(t)
		owner := newTestUser("editor")
		require.NoError(t, s.CreateUser(ctx, owner))

		created := time.Now().UTC().Add(-time.Hour).Truncate(time.Millisecond)
		note := newTestNote(owner.ID, "draft", created)
		require.NoError(t, s.CreateNote(ctx, note))

		edit := &model.Note{
			ID:        note.ID,
			UserID:    owner.ID,
			Title:     "final",
			Content:   "done",
			Priority:  model.PriorityHigh,
			UpdatedAt: created.Add(time.Hour),
		}
		require.NoError(t, s.UpdateNote(ctx, edit))
		assert.Equal(t, "final", edit.Title)
		assert.Equal(t, model.PriorityHigh, edit.Priority)
		assert.True(t, edit.CreatedAt.Equal(created))

		require.NoError(t, s.DeleteNote(ctx, note.ID, owner.ID))
		_, err := s.FindNote(ctx, note.ID, owner.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, s.DeleteNote(ctx, note.ID, owner.ID), ErrNotFound)
	})

	t.Run("ListPaginationSearchAndOrder", func(t *testing.T) {
		s := newStore(t)
		owner := newTestUser("lister")
		other := newTestUser("stranger")
		require.NoError(t, s.CreateUser(ctx, owner))
		require.NoError(t, s.CreateUser(ctx, other))

		base := time.Now().UTC().Add(-time.Hour).Truncate(time.Millisecond)
		for i := 0; i < 15; i++ {
			n := newTestNote(owner.ID, fmt.Sprintf("note %02d", i), base.Add(time.Duration(i)*time.Minute))
			if i%5 == 0 {
				n.Content = "Contains the Magic word"
				n.Priority = model.PriorityHigh
			}
			require.NoError(t, s.CreateNote(ctx, n))
		}
		require.NoError(t, s.CreateNote(ctx, newTestNote(other.ID, "magic elsewhere", base)))

		page, total, err := s.ListNotes(ctx, model.NoteFilter{UserID: owner.ID, Offset: 10, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 15, total)
		require.Len(t, page, 5)
		assert.Equal(t, "note 04", page[0].Title)

		first, _, err := s.ListNotes(ctx, model.NoteFilter{UserID: owner.ID, Limit: 3})
		require.NoError(t, err)
		require.Len(t, first, 3)
		assert.Equal(t, "note 14", first[0].Title)
		assert.Equal(t, "note 13", first[1].Title)

		found, total, err := s.ListNotes(ctx, model.NoteFilter{UserID: owner.ID, Search: "mAgIc", Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Len(t, found, 3)

		high, total, err := s.ListNotes(ctx, model.NoteFilter{UserID: owner.ID, Priority: model.PriorityHigh, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Len(t, high, 2)

		none, total, err := s.ListNotes(ctx, model.NoteFilter{UserID: owner.ID, Search: "50%", Limit: 10})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, none)
	})
}
