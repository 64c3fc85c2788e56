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

// AdminRepository defines methods for interacting with admin accounts.
type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	GetByID(ctx context.Context, id int64) (*models.Admin, error)
}

// PostgresAdminRepository is a PostgreSQL implementation of AdminRepository
type PostgresAdminRepository struct {
	db *database.Pool
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(db *database.Pool) AdminRepository {
	return &PostgresAdminRepository{
		db: db,
	}
}

// Create adds a new admin to the database
func (r *PostgresAdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	startTime := time.Now()

	admin.CreatedAt = time.Now()

	query := `
        INSERT INTO admins (email, password_hash, created_at)
        VALUES ($1, $2, $3)
        RETURNING admin_id
    `

	err := r.db.QueryRowContext(
		ctx,
		query,
		admin.Email,
		admin.PasswordHash,
		admin.CreatedAt,
	).Scan(&admin.ID)

	utils.LogDBQuery(
		query,
		[]interface{}{admin.Email, "[REDACTED]", admin.CreatedAt},
		time.Since(startTime),
		err,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return utils.NewDuplicateError("Admin", "email", admin.Email)
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}

	log.Info().
		Int64("admin_id", admin.ID).
		Str("email", admin.Email).
		Msg("Admin created")

	return nil
}

// GetByEmail retrieves an admin by email, matched exactly.
func (r *PostgresAdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	startTime := time.Now()

	query := `
        SELECT admin_id, email, password_hash, created_at
        FROM admins
        WHERE email = $1
    `

	admin := &models.Admin{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&admin.ID,
		&admin.Email,
		&admin.PasswordHash,
		&admin.CreatedAt,
	)

	utils.LogDBQuery(query, []interface{}{email}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("Admin", fmt.Sprintf("email=%s", email))
		}
		return nil, fmt.Errorf("failed to get admin by email: %w", err)
	}

	return admin, nil
}

// GetByID retrieves an admin by ID
func (r *PostgresAdminRepository) GetByID(ctx context.Context, id int64) (*models.Admin, error) {
	startTime := time.Now()

	query := `
        SELECT admin_id, email, password_hash, created_at
        FROM admins
        WHERE admin_id = $1
    `

	admin := &models.Admin{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&admin.ID,
		&admin.Email,
		&admin.PasswordHash,
		&admin.CreatedAt,
	)

	utils.LogDBQuery(query, []interface{}{id}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("Admin", id)
		}
		return nil, fmt.Errorf("failed to get admin by ID: %w", err)
	}

	return admin, nil
}
