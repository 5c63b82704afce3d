package usecase

import (
	"context"
	"testing"
	"time"

	"notesapi/logging"
	"notesapi/model"
	"notesapi/repository"
	"notesapi/services"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "usecase-test-secret-0123456789abcdef"

type fixture struct {
	store *repository.MemoryStore
	users *UserService
	notes *NotesService
	clock *testClock
}

type testClock struct{ t time.Time }

func (c *testClock) Now() time.Time { return c.t }
func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repository.NewMemoryStore()
	clock := &testClock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}

	users := NewUserService(store, services.NewPasswordHasher(bcrypt.MinCost),
		services.NewTokenService(testSecret), logging.Discard())
	users.now = clock.Now

	notes := NewNotesService(store, services.NewMarkdownRenderer(), logging.Discard())
	notes.now = clock.Now

	return &fixture{store: store, users: users, notes: notes, clock: clock}
}

func (f *fixture) register(t *testing.T, name string) *model.User {
	t.Helper()
	u, err := f.users.Register(context.Background(), RegisterInput{
		Username: name,
		Email:    name + "@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	return u
}

func ptr(s string) *string { return &s }
