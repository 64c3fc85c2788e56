package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/inotebook/backend/internal/database"
	"github.com/inotebook/backend/internal/models"
	"github.com/inotebook/backend/internal/utils"
)

// NoteRepository defines methods for interacting with note data. All
// read and write paths are scoped by owner; a note ID alone is never
// enough to touch a row.
type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) error
	GetAllForUser(ctx context.Context, userID int64) ([]*models.Note, error)
	Update(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, noteID, userID int64) error
	DeleteAllForUserTx(ctx context.Context, tx *sql.Tx, userID int64) error
}

// PostgresNoteRepository is a PostgreSQL implementation of NoteRepository
type PostgresNoteRepository struct {
	db *database.Pool
}

// NewNoteRepository creates a new NoteRepository
func NewNoteRepository(db *database.Pool) NoteRepository {
	return &PostgresNoteRepository{
		db: db,
	}
}

// Create adds a new note to the database
func (r *PostgresNoteRepository) Create(ctx context.Context, note *models.Note) error {
	startTime := time.Now()

	now := time.Now()
	note.CreatedAt = now
	note.UpdatedAt = now

	query := `
        INSERT INTO notes (user_id, title, description, category, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING note_id
    `

	err := r.db.QueryRowContext(
		ctx,
		query,
		note.UserID,
		note.Title,
		note.Description,
		note.Category,
		note.CreatedAt,
		note.UpdatedAt,
	).Scan(&note.ID)

	utils.LogDBQuery(
		query,
		[]interface{}{note.UserID, note.Title, note.Description, note.Category, note.CreatedAt, note.UpdatedAt},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	return nil
}

// GetAllForUser retrieves all notes belonging to a user, newest first.
func (r *PostgresNoteRepository) GetAllForUser(ctx context.Context, userID int64) ([]*models.Note, error) {
	startTime := time.Now()

	query := `
        SELECT note_id, user_id, title, description, category, created_at, updated_at
        FROM notes
        WHERE user_id = $1
        ORDER BY created_at DESC
    `

	rows, err := r.db.QueryContext(ctx, query, userID)

	utils.LogDBQuery(query, []interface{}{userID}, time.Since(startTime), err)

	if err != nil {
		return nil, fmt.Errorf("failed to get notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*models.Note, 0)
	for rows.Next() {
		note := &models.Note{}
		if err := rows.Scan(
			&note.ID,
			&note.UserID,
			&note.Title,
			&note.Description,
			&note.Category,
			&note.CreatedAt,
			&note.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notes: %w", err)
	}

	return notes, nil
}

// Update modifies a note. The owner check is part of the WHERE clause,
// so updating another user's note reports not found.
func (r *PostgresNoteRepository) Update(ctx context.Context, note *models.Note) error {
	startTime := time.Now()

	note.UpdatedAt = time.Now()

	query := `
        UPDATE notes
        SET title = $1, description = $2, category = $3, updated_at = $4
        WHERE note_id = $5 AND user_id = $6
    `

	result, err := r.db.ExecContext(
		ctx,
		query,
		note.Title,
		note.Description,
		note.Category,
		note.UpdatedAt,
		note.ID,
		note.UserID,
	)

	utils.LogDBQuery(
		query,
		[]interface{}{note.Title, note.Description, note.Category, note.UpdatedAt, note.ID, note.UserID},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return utils.NewNotFoundError("Note", note.ID)
	}

	return nil
}

// Delete removes a note owned by the given user.
func (r *PostgresNoteRepository) Delete(ctx context.Context, noteID, userID int64) error {
	startTime := time.Now()

	query := `DELETE FROM notes WHERE note_id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, noteID, userID)

	utils.LogDBQuery(query, []interface{}{noteID, userID}, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return utils.NewNotFoundError("Note", noteID)
	}

	return nil
}

// DeleteAllForUserTx removes every note of a user inside an existing
// transaction. Used by the cascading account delete.
func (r *PostgresNoteRepository) DeleteAllForUserTx(ctx context.Context, tx *sql.Tx, userID int64) error {
	startTime := time.Now()

	query := `DELETE FROM notes WHERE user_id = $1`

	_, err := tx.ExecContext(ctx, query, userID)

	utils.LogDBQuery(query, []interface{}{userID}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("failed to delete notes for user: %w", err)
	}

	return nil
}
