package migrations

import (
	"context"
	"database/sql"
)

// createUsersTable creates the users table. The reset token columns are
// nullable and only populated during an active password-reset window.
func createUsersTable() Migration {
	return Migration{
		Name:        "create_users_table",
		Description: "Creates the users table",
		TableName:   "users",
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			query := `
				CREATE TABLE IF NOT EXISTS users (
					user_id BIGSERIAL PRIMARY KEY,
					fullname VARCHAR(100) NOT NULL,
					email VARCHAR(255) NOT NULL,
					password_hash VARCHAR(255) NOT NULL,
					reset_token_hash VARCHAR(64),
					reset_token_expires TIMESTAMP,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					CONSTRAINT users_email_key UNIQUE (email)
				);
				CREATE INDEX IF NOT EXISTS idx_users_reset_token_hash ON users(reset_token_hash);
			`
			_, err := tx.ExecContext(ctx, query)
			return err
		},
	}
}

// createAdminsTable creates the admins table.
func createAdminsTable() Migration {
	return Migration{
		Name:        "create_admins_table",
		Description: "Creates the admins table",
		TableName:   "admins",
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			query := `
				CREATE TABLE IF NOT EXISTS admins (
					admin_id BIGSERIAL PRIMARY KEY,
					email VARCHAR(255) NOT NULL,
					password_hash VARCHAR(255) NOT NULL,
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					CONSTRAINT admins_email_key UNIQUE (email)
				)
			`
			_, err := tx.ExecContext(ctx, query)
			return err
		},
	}
}

// createNotesTable creates the notes table. The application deletes
// notes and user in one transaction; the FK cascade is a backstop for
// out-of-band deletes.
func createNotesTable() Migration {
	return Migration{
		Name:        "create_notes_table",
		Description: "Creates the notes table",
		TableName:   "notes",
		RunSQL: func(ctx context.Context, tx *sql.Tx) error {
			query := `
				CREATE TABLE IF NOT EXISTS notes (
					note_id BIGSERIAL PRIMARY KEY,
					user_id BIGINT NOT NULL,
					title VARCHAR(200) NOT NULL,
					description TEXT NOT NULL,
					category VARCHAR(50) DEFAULT 'General',
					created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
					CONSTRAINT fk_notes_user FOREIGN KEY (user_id) REFERENCES users(user_id) ON DELETE CASCADE
				);
				CREATE INDEX IF NOT EXISTS idx_notes_user_id ON notes(user_id);
			`
			_, err := tx.ExecContext(ctx, query)
			return err
		},
	}
}

// GetMigrations returns all migrations in execution order. Users come
// first because notes reference them.
func GetMigrations() []Migration {
	return []Migration{
		createUsersTable(),
		createAdminsTable(),
		createNotesTable(),
	}
}
