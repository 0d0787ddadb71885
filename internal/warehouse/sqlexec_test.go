package warehouse

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLExecutor_Exec(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mock.ExpectExec("CREATE TABLE t").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectClose()

	exec := NewSQLExecutor(db)
	require.NoError(t, exec.Exec(context.Background(), "CREATE TABLE t (id INT)"))
	require.NoError(t, exec.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLExecutor_ExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DROP TABLE missing").WillReturnError(errors.New("table missing does not exist"))

	exec := NewSQLExecutor(db)
	err = exec.Exec(context.Background(), "DROP TABLE missing")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestSQLExecutor_NotConnected(t *testing.T) {
	exec := NewSQLExecutor(nil)

	require.Error(t, exec.Exec(context.Background(), "SELECT 1"))
	assert.NoError(t, exec.Close())
}
