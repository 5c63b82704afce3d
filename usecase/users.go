package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"notesapi/logging"
	"notesapi/model"
	"notesapi/repository"
	"notesapi/services"
	"notesapi/utils"

	"github.com/google/uuid"
)

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

type UserService struct {
	users  repository.UserRepository
	hasher *services.PasswordHasher
	tokens *services.TokenService
	log    logging.Logger
	now    func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func NewUserService(users repository.UserRepository, hasher *services.PasswordHasher,
	tokens *services.TokenService, log logging.Logger) *UserService {
	return &UserService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		log:    log,
		now:    time.Now,
	}
}

// Register validates input, hashes the password and stores a new user.
// Checks run in a fixed order and the first failure is returned.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if err := validateRegistration(in); err != nil {
		utils.TrackAuthAttempt("failure", "register")
		return nil, err
	}

	exists, err := s.users.UserExists(ctx, in.Username, in.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		utils.TrackAuthAttempt("failure", "register")
		return nil, ErrDuplicateUser
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			utils.TrackAuthAttempt("failure", "register")
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	utils.TrackAuthAttempt("success", "register")
	s.log.Info(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

func validateRegistration(in RegisterInput) error {
	var missing []string
	if utils.Validate.Var(in.Username, "required") != nil {
		missing = append(missing, "username")
	}
	if utils.Validate.Var(in.Email, "required") != nil {
		missing = append(missing, "email")
	}
	if utils.Validate.Var(in.Password, "required") != nil {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return invalid("All fields are required", missing...)
	}

	if utils.Validate.Var(in.Password, "min=6") != nil {
		return invalid("Password must be at least 6 characters long")
	}
	if utils.Validate.Var(in.Username, "min=3,max=50") != nil {
		return invalid("Username must be between 3 and 50 characters")
	}
	if utils.Validate.Var(in.Email, "email") != nil {
		return invalid("Invalid email format")
	}
	return nil
}

// Login returns a fresh token for valid credentials. Unknown usernames and
// wrong passwords both yield ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, in LoginInput) (string, *model.User, error) {
	if in.Username == "" || in.Password == "" {
		return "", nil, invalid("Username and password are required")
	}

	user, err := s.users.FindUserByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Burn the same bcrypt time as a real comparison.
			s.hasher.Verify(in.Password, s.placeholderHash())
			utils.TrackAuthAttempt("failure", "login")
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(in.Password, user.PasswordHash) {
		utils.TrackAuthAttempt("failure", "login")
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return "", nil, err
	}

	utils.TrackAuthAttempt("success", "login")
	return token, user, nil
}

func (s *UserService) placeholderHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash(uuid.NewString())
		if err == nil {
			s.dummyHash = hash
		}
	})
	return s.dummyHash
}

func (s *UserService) Profile(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
