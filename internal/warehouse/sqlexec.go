package warehouse

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLExecutor adapts a database/sql handle to the Executor interface. It is
// the execution path shared by every driver-backed backend.
type SQLExecutor struct {
	db *sql.DB
}

// NewSQLExecutor wraps an open database handle. The executor takes
// ownership: Close closes the handle.
func NewSQLExecutor(db *sql.DB) *SQLExecutor {
	return &SQLExecutor{db: db}
}

// Exec runs one statement and discards any result set.
func (e *SQLExecutor) Exec(ctx context.Context, stmt string) error {
	if e.db == nil {
		return fmt.Errorf("database connection not established")
	}
	if _, err := e.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("execute statement: %w", err)
	}
	return nil
}

// Close closes the underlying handle.
func (e *SQLExecutor) Close() error {
	if e.db != nil {
		return e.db.Close()
	}
	return nil
}
