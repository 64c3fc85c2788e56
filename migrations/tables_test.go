package migrations_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inotebook/backend/migrations"
)

func TestGetMigrations_Order(t *testing.T) {
	all := migrations.GetMigrations()

	require.Len(t, all, 3)
	// Notes reference users, so users must come first
	assert.Equal(t, "create_users_table", all[0].Name)
	assert.Equal(t, "create_admins_table", all[1].Name)
	assert.Equal(t, "create_notes_table", all[2].Name)
}

func TestGetMigrations_TableNames(t *testing.T) {
	for _, m := range migrations.GetMigrations() {
		assert.NotEmpty(t, m.Name)
		assert.NotEmpty(t, m.Description)
		assert.NotEmpty(t, m.TableName)
		assert.NotNil(t, m.RunSQL)
	}
}

func TestMigrations_SQLExecutes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for _, m := range migrations.GetMigrations() {
		mock.ExpectBegin()
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS " + m.TableName).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		tx, err := db.Begin()
		require.NoError(t, err)
		require.NoError(t, m.RunSQL(context.Background(), tx))
		require.NoError(t, tx.Commit())
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}
