package repository

import (
	"context"
	"fmt"
	"strings"

	"notesapi/model"
	"notesapi/utils"
)

const noteColumns = `id, user_id, title, content, COALESCE(priority, ''), created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*model.Note, error) {
	note := &model.Note{}
	err := row.Scan(&note.ID, &note.UserID, &note.Title, &note.Content,
		&note.Priority, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return note, nil
}

// escapeLike makes user input literal inside an ILIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (s *PostgresStore) CreateNote(ctx context.Context, note *model.Note) error {
	defer utils.TrackDBOperation("insert", "notes").ObserveDuration()

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	query :=
		`INSERT INTO notes (id, user_id, title, content, priority, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)`

	_, err := s.db.ExecContext(ctx, query,
		note.ID, note.UserID, note.Title, note.Content, note.Priority, note.CreatedAt, note.UpdatedAt)
	return translateError(err)
}

func (s *PostgresStore) FindNote(ctx context.Context, id, userID string) (*model.Note, error) {
	defer utils.TrackDBOperation("find", "notes").ObserveDuration()

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	query := `SELECT ` + noteColumns + ` FROM notes WHERE id = $1 AND user_id = $2`

	note, err := scanNote(s.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		return nil, translateError(err)
	}
	return note, nil
}

func (s *PostgresStore) ListNotes(ctx context.Context, filter model.NoteFilter) ([]*model.Note, int, error) {
	defer utils.TrackDBOperation("list", "notes").ObserveDuration()

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	where := []string{"user_id = $1"}
	args := []any{filter.UserID}

	if filter.Search != "" {
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(`(title ILIKE $%d ESCAPE '\' OR content ILIKE $%d ESCAPE '\')`, n, n))
	}
	if filter.Priority != "" {
		args = append(args, filter.Priority)
		where = append(where, fmt.Sprintf("priority = $%d", len(args)))
	}
	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM notes WHERE ` + whereClause
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, translateError(err)
	}

	query := `SELECT ` + noteColumns + ` FROM notes WHERE ` + whereClause +
		` ORDER BY updated_at DESC, created_at DESC, id DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, translateError(err)
	}
	defer rows.Close()

	notes := make([]*model.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, 0, translateError(err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, translateError(err)
	}
	return notes, total, nil
}

func (s *PostgresStore) UpdateNote(ctx context.Context, note *model.Note) error {
	defer utils.TrackDBOperation("update", "notes").ObserveDuration()

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	query :=
		`UPDATE notes SET title = $3, content = $4, priority = NULLIF($5, ''), updated_at = $6
		 WHERE id = $1 AND user_id = $2
		 RETURNING ` + noteColumns

	updated, err := scanNote(s.db.QueryRowContext(ctx, query,
		note.ID, note.UserID, note.Title, note.Content, note.Priority, note.UpdatedAt))
	if err != nil {
		return translateError(err)
	}
	*note = *updated
	return nil
}

func (s *PostgresStore) DeleteNote(ctx context.Context, id, userID string) error {
	defer utils.TrackDBOperation("delete", "notes").ObserveDuration()

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return translateError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return translateError(err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
