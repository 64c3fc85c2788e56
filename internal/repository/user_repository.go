// Package repository implements PostgreSQL persistence for users,
// admins, notes, and the admin dashboard aggregates.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/inotebook/backend/internal/database"
	"github.com/inotebook/backend/internal/models"
	"github.com/inotebook/backend/internal/utils"
)

// NotesPurger deletes all notes of a user inside an existing
// transaction. It is supplied by the note repository so the cascading
// account delete can remove notes and user atomically.
type NotesPurger func(ctx context.Context, tx *sql.Tx, userID int64) error

// UserRepository defines methods for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	SetResetToken(ctx context.Context, userID int64, tokenHash string, expires time.Time) error
	RedeemResetToken(ctx context.Context, tokenHash, newPasswordHash string) (int64, error)
	DeleteCascade(ctx context.Context, id int64, purgeNotes NotesPurger) error
}

// PostgresUserRepository is a PostgreSQL implementation of UserRepository
type PostgresUserRepository struct {
	db *database.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *database.Pool) UserRepository {
	return &PostgresUserRepository{
		db: db,
	}
}

// Create adds a new user to the database.
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	startTime := time.Now()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
        INSERT INTO users (fullname, email, password_hash, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING user_id
    `

	err := r.db.QueryRowContext(
		ctx,
		query,
		user.FullName,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)

	utils.LogDBQuery(
		query,
		[]interface{}{user.FullName, user.Email, "[REDACTED]", user.CreatedAt, user.UpdatedAt},
		time.Since(startTime),
		err,
	)

	if err != nil {
		// 23505 is the PostgreSQL error code for unique_violation
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return utils.NewDuplicateError("User", "email", user.Email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().
		Int64("user_id", user.ID).
		Str("email", user.Email).
		Msg("User created")

	return nil
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	startTime := time.Now()

	query := `
        SELECT user_id, fullname, email, password_hash, reset_token_hash, reset_token_expires, created_at, updated_at
        FROM users
        WHERE user_id = $1
    `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.ResetTokenHash,
		&user.ResetTokenExpires,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	utils.LogDBQuery(query, []interface{}{id}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("User", id)
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email. The match is exact and
// case-sensitive: the stored spelling of the email is the identity.
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	startTime := time.Now()

	query := `
        SELECT user_id, fullname, email, password_hash, reset_token_hash, reset_token_expires, created_at, updated_at
        FROM users
        WHERE email = $1
    `

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.ResetTokenHash,
		&user.ResetTokenExpires,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	utils.LogDBQuery(query, []interface{}{email}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("User", fmt.Sprintf("email=%s", email))
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// SetResetToken stores the hash and expiry of a newly issued reset
// token on the user row. A prior unexpired token is overwritten, so at
// most one reset token is live per account.
func (r *PostgresUserRepository) SetResetToken(ctx context.Context, userID int64, tokenHash string, expires time.Time) error {
	startTime := time.Now()

	query := `
        UPDATE users
        SET reset_token_hash = $1, reset_token_expires = $2, updated_at = $3
        WHERE user_id = $4
    `

	result, err := r.db.ExecContext(ctx, query, tokenHash, expires, time.Now(), userID)

	utils.LogDBQuery(
		query,
		[]interface{}{"[REDACTED]", expires, time.Now(), userID},
		time.Since(startTime),
		err,
	)

	if err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return utils.NewNotFoundError("User", userID)
	}

	return nil
}

// RedeemResetToken atomically consumes a reset token: it locks the
// matching user row, checks the expiry, installs the new password hash,
// and clears both reset columns so the token is single-use. Unknown,
// already used, and expired tokens all produce the same error. The
// bcrypt hash is computed by the caller before this transaction begins,
// keeping slow work outside the row lock.
func (r *PostgresUserRepository) RedeemResetToken(ctx context.Context, tokenHash, newPasswordHash string) (int64, error) {
	var userID int64

	err := r.db.Transaction(ctx, func(tx *sql.Tx) error {
		startTime := time.Now()

		selectQuery := `
            SELECT user_id, reset_token_expires
            FROM users
            WHERE reset_token_hash = $1
            FOR UPDATE
        `

		var expires time.Time
		err := tx.QueryRowContext(ctx, selectQuery, tokenHash).Scan(&userID, &expires)

		utils.LogDBQuery(selectQuery, []interface{}{"[REDACTED]"}, time.Since(startTime), err)

		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return utils.NewInvalidOrExpiredResetTokenError()
			}
			return fmt.Errorf("failed to look up reset token: %w", err)
		}

		if time.Now().After(expires) {
			return utils.NewInvalidOrExpiredResetTokenError()
		}

		updateQuery := `
            UPDATE users
            SET password_hash = $1, reset_token_hash = NULL, reset_token_expires = NULL, updated_at = $2
            WHERE user_id = $3
        `

		startTime = time.Now()
		_, err = tx.ExecContext(ctx, updateQuery, newPasswordHash, time.Now(), userID)

		utils.LogDBQuery(
			updateQuery,
			[]interface{}{"[REDACTED]", time.Now(), userID},
			time.Since(startTime),
			err,
		)

		if err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}

		return nil
	})

	if err != nil {
		return 0, err
	}

	log.Info().
		Int64("user_id", userID).
		Msg("Password reset completed")

	return userID, nil
}

// DeleteCascade removes a user and all their notes in one transaction.
// Notes go first so a failure midway rolls everything back and the
// account is never left orphaned from its data.
func (r *PostgresUserRepository) DeleteCascade(ctx context.Context, id int64, purgeNotes NotesPurger) error {
	err := r.db.Transaction(ctx, func(tx *sql.Tx) error {
		if err := purgeNotes(ctx, tx, id); err != nil {
			return fmt.Errorf("failed to delete user notes: %w", err)
		}

		startTime := time.Now()

		query := `DELETE FROM users WHERE user_id = $1`
		result, err := tx.ExecContext(ctx, query, id)

		utils.LogDBQuery(query, []interface{}{id}, time.Since(startTime), err)

		if err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return utils.NewNotFoundError("User", id)
		}

		return nil
	})

	if err != nil {
		return err
	}

	log.Info().
		Int64("user_id", id).
		Msg("User account and notes deleted")

	return nil
}
