package repository

import (
	"context"

	"notesapi/model"
	"notesapi/utils"
)

func (s *PostgresStore) CreateUser(ctx context.Context, user *model.User) error {
	defer utils.TrackDBOperation("insert", "users").ObserveDuration()

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	query :=
		`INSERT INTO users (id, username, email, password_hash, created_at)
		 VALUES ($1, $2, $3, $4, $5)`

	_, err := s.db.ExecContext(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt)
	return translateError(err)
}

func (s *PostgresStore) FindUserByID(ctx context.Context, id string) (*model.User, error) {
	defer utils.TrackDBOperation("find", "users").ObserveDuration()

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	query :=
		`SELECT id, username, email, password_hash, created_at FROM users
		 WHERE id = $1`

	user := &model.User{}
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return user, nil
}

func (s *PostgresStore) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	defer utils.TrackDBOperation("find", "users").ObserveDuration()

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	query :=
		`SELECT id, username, email, password_hash, created_at FROM users
		 WHERE username = $1`

	user := &model.User{}
	err := s.db.QueryRowContext(ctx, query, username).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	return user, nil
}

func (s *PostgresStore) UserExists(ctx context.Context, username, email string) (bool, error) {
	defer utils.TrackDBOperation("exists", "users").ObserveDuration()

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	query := `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 OR email = $2)`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, username, email).Scan(&exists); err != nil {
		return false, translateError(err)
	}
	return exists, nil
}
