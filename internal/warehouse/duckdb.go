package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

func init() {
	Register("duckdb", func(logger *slog.Logger) Backend { return NewDuckDBBackend(logger) })
}

// DuckDBBackend executes statements against an embedded DuckDB database.
// It exists for offline validation of SQL files: same splitter, same
// runner, no warehouse round-trips.
type DuckDBBackend struct {
	*SQLExecutor
	logger *slog.Logger
}

// NewDuckDBBackend creates an unconnected DuckDB backend.
func NewDuckDBBackend(logger *slog.Logger) *DuckDBBackend {
	if logger == nil {
		logger = slog.Default()
	}
	return &DuckDBBackend{SQLExecutor: NewSQLExecutor(nil), logger: logger}
}

// Connect opens the database at cfg.Path, or an in-memory database when the
// path is empty.
func (b *DuckDBBackend) Connect(ctx context.Context, cfg Config) error {
	db, err := sql.Open("duckdb", cfg.Path)
	if err != nil {
		return fmt.Errorf("open duckdb: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("ping duckdb: %w", err)
	}

	b.SQLExecutor = NewSQLExecutor(db)
	b.logger.Debug("connected to duckdb", "path", cfg.Path)
	return nil
}
