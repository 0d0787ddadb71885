package warehouse

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestDuckDBBackend_ConnectInMemory(t *testing.T) {
	ctx := context.Background()
	be := NewDuckDBBackend(nil)

	if err := be.Connect(ctx, Config{}); err != nil {
		t.Fatalf("failed to connect to in-memory DuckDB: %v", err)
	}
	defer be.Close()
}

func TestDuckDBBackend_ConnectFileBased(t *testing.T) {
	ctx := context.Background()
	be := NewDuckDBBackend(nil)

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.duckdb")

	if err := be.Connect(ctx, Config{Path: dbPath}); err != nil {
		t.Fatalf("failed to connect to file-based DuckDB: %v", err)
	}
	defer be.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestDuckDBBackend_Exec(t *testing.T) {
	ctx := context.Background()
	be := NewDuckDBBackend(nil)

	if err := be.Connect(ctx, Config{}); err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer be.Close()

	if err := be.Exec(ctx, `CREATE TABLE events (id INTEGER, note VARCHAR)`); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	if err := be.Exec(ctx, `INSERT INTO events VALUES (1, 'a;b'), (2, 'c')`); err != nil {
		t.Fatalf("failed to insert data: %v", err)
	}
}

func TestDuckDBBackend_ExecInvalidSQL(t *testing.T) {
	ctx := context.Background()
	be := NewDuckDBBackend(nil)

	if err := be.Connect(ctx, Config{}); err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer be.Close()

	if err := be.Exec(ctx, `SELEKT 1`); err == nil {
		t.Error("expected error for invalid SQL, got nil")
	}
}
