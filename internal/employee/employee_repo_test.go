package employee

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestRepository_WithTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	repo := NewRepository(gormDB).(*repository)

	t.Run("Statements Run On The Caller Transaction", func(t *testing.T) {
		mock.ExpectBegin()
		tx, err := db.Begin()
		require.NoError(t, err)

		bound := repo.WithTx(tx).(*repository)

		// Inserts issued through the bound repository must commit or roll
		// back with the outbox row, so the session's connection has to be
		// the transaction itself, not the autocommit pool.
		got, ok := bound.db.Statement.ConnPool.(*sql.Tx)
		assert.True(t, ok)
		assert.Same(t, tx, got)

		mock.ExpectRollback()
		require.NoError(t, tx.Rollback())
	})

	t.Run("Base Repository Stays On The Pool", func(t *testing.T) {
		_, ok := repo.db.Statement.ConnPool.(*sql.Tx)
		assert.False(t, ok)
	})

	t.Run("Nil Transaction Is The Repository Itself", func(t *testing.T) {
		assert.Same(t, repo, repo.WithTx(nil).(*repository))
	})
}
