package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateRunsEveryStatement(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for range schema {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS").WillReturnResult(sqlmock.NewResult(0, 0))
	}
	require.NoError(t, Migrate(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateStopsOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").WillReturnError(errors.New("denied"))
	err = Migrate(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrate step 1")
}

func TestMySQLErrorClassification(t *testing.T) {
	assert.True(t, IsDuplicate(&mysql.MySQLError{Number: 1062}))
	assert.True(t, IsForeignKey(&mysql.MySQLError{Number: 1451}))
	assert.True(t, IsForeignKey(&mysql.MySQLError{Number: 1452}))
	assert.False(t, IsDuplicate(errors.New("1062")))
	assert.False(t, IsForeignKey(nil))
}
