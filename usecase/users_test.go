package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"notesapi/model"
	"notesapi/repository"
	"notesapi/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_ValidationOrder(t *testing.T) {
	tests := []struct {
		name        string
		in          RegisterInput
		wantMessage string
		wantDetails []string
	}{
		{
			name:        "all missing",
			in:          RegisterInput{},
			wantMessage: "All fields are required",
			wantDetails: []string{"username", "email", "password"},
		},
		{
			name:        "email missing",
			in:          RegisterInput{Username: "al", Password: "1"},
			wantMessage: "All fields are required",
			wantDetails: []string{"email"},
		},
		{
			name:        "short password wins over short username",
			in:          RegisterInput{Username: "al", Email: "a@x.com", Password: "12345"},
			wantMessage: "Password must be at least 6 characters long",
		},
		{
			name:        "short username",
			in:          RegisterInput{Username: "al", Email: "a@x.com", Password: "secret1"},
			wantMessage: "Username must be between 3 and 50 characters",
		},
		{
			name:        "long username",
			in:          RegisterInput{Username: strings.Repeat("a", 51), Email: "a@x.com", Password: "secret1"},
			wantMessage: "Username must be between 3 and 50 characters",
		},
		{
			name:        "bad email",
			in:          RegisterInput{Username: "alice", Email: "not-an-email", Password: "secret1"},
			wantMessage: "Invalid email format",
		},
	}

	f := newFixture(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.users.Register(context.Background(), tt.in)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantMessage, verr.Message)
			assert.Equal(t, tt.wantDetails, verr.Details)
		})
	}
}

func TestRegister_StoresHashNotPassword(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "alice")

	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, "secret1", u.PasswordHash)
	assert.True(t, services.NewPasswordHasher(0).Verify("secret1", u.PasswordHash))
	assert.True(t, f.clock.Now().Equal(u.CreatedAt))
}

func TestRegister_LongPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	password := strings.Repeat("p", 80)

	_, err := f.users.Register(ctx, RegisterInput{Username: "alice", Email: "alice@example.com", Password: password})
	require.NoError(t, err)

	_, _, err = f.users.Login(ctx, LoginInput{Username: "alice", Password: password})
	require.NoError(t, err)

	_, _, err = f.users.Login(ctx, LoginInput{Username: "alice", Password: password[:72]})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister_Duplicates(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice")
	ctx := context.Background()

	_, err := f.users.Register(ctx, RegisterInput{Username: "alice", Email: "other@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrDuplicateUser)

	_, err = f.users.Register(ctx, RegisterInput{Username: "alice2", Email: "alice@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrDuplicateUser)
}

// raceStore hides existing users from the pre-check so the store
// constraint is what rejects the duplicate.
type raceStore struct {
	*repository.MemoryStore
}

func (raceStore) UserExists(context.Context, string, string) (bool, error) { return false, nil }

func TestRegister_StoreConflictIsDuplicate(t *testing.T) {
	f := newFixture(t)
	f.users.users = raceStore{f.store}
	f.register(t, "alice")

	_, err := f.users.Register(context.Background(), RegisterInput{
		Username: "alice", Email: "x@example.com", Password: "secret1",
	})
	assert.ErrorIs(t, err, ErrDuplicateUser)
}

func TestRegister_ConcurrentSameUsername(t *testing.T) {
	f := newFixture(t)
	f.users.users = raceStore{f.store}

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.users.Register(context.Background(), RegisterInput{
				Username: "racer",
				Email:    "racer" + string(rune('a'+i)) + "@example.com",
				Password: "secret1",
			})
		}(i)
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, ErrDuplicateUser)
	}
	assert.Equal(t, 1, ok)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	alice := f.register(t, "alice")
	ctx := context.Background()

	token, u, err := f.users.Login(ctx, LoginInput{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, u.ID)

	claims, err := services.NewTokenService(testSecret).Verify(token)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestLogin_IdenticalFailures(t *testing.T) {
	f := newFixture(t)
	f.register(t, "alice")
	ctx := context.Background()

	_, _, wrongPassword := f.users.Login(ctx, LoginInput{Username: "alice", Password: "nope123"})
	_, _, unknownUser := f.users.Login(ctx, LoginInput{Username: "mallory", Password: "secret1"})
	_, _, wrongCase := f.users.Login(ctx, LoginInput{Username: "Alice", Password: "secret1"})

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongCase, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestLogin_MissingFields(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.users.Login(context.Background(), LoginInput{Username: "alice"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Username and password are required", verr.Message)
}

type failingUsers struct {
	repository.UserRepository
}

func (failingUsers) FindUserByUsername(context.Context, string) (*model.User, error) {
	return nil, errors.New("connection refused")
}

func TestLogin_StoreFailureIsNotCredentialsError(t *testing.T) {
	f := newFixture(t)
	f.users.users = failingUsers{}

	_, _, err := f.users.Login(context.Background(), LoginInput{Username: "alice", Password: "secret1"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestProfile(t *testing.T) {
	f := newFixture(t)
	alice := f.register(t, "alice")
	ctx := context.Background()

	u, err := f.users.Profile(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	require.NoError(t, f.store.DeleteUser(ctx, alice.ID))
	_, err = f.users.Profile(ctx, alice.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
