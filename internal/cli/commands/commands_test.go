// Package commands tests CLI command creation and argument handling.
package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarry-labs/quarry/internal/cli/config"
)

func TestNewRunCommand(t *testing.T) {
	cmd := NewRunCommand()

	assert.Equal(t, "run <file.sql>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	// Verify flags exist
	flags := []string{"local", "database"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewExtractCommand(t *testing.T) {
	cmd := NewExtractCommand()

	assert.Equal(t, "extract", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	flags := []string{"output", "datasets"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewScheduleCommand(t *testing.T) {
	cmd := NewScheduleCommand()

	assert.Equal(t, "schedule", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	flags := []string{"name", "schedule", "dataset", "table", "sql"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewStreamCommand(t *testing.T) {
	cmd := NewStreamCommand()

	assert.Equal(t, "stream", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")

	flags := []string{"dataset", "table"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.2.3", "2026-01-01", "abc1234")

	assert.Equal(t, "version", cmd.Use)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.Run(cmd, nil)

	assert.Contains(t, out.String(), "quarry v1.2.3")
	assert.Contains(t, out.String(), "abc1234")
}

func TestRunCommand_RequiresOneArg(t *testing.T) {
	cmd := NewRunCommand()
	err := cmd.Args(cmd, nil)
	require.Error(t, err)

	err = cmd.Args(cmd, []string{"a.sql", "b.sql"})
	require.Error(t, err)

	err = cmd.Args(cmd, []string{"a.sql"})
	require.NoError(t, err)
}

func TestRunCommand_MissingFile(t *testing.T) {
	cmd := NewRunCommand()
	cmd.SetContext(context.Background())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.RunE(cmd, []string{"no-such-file.sql"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SQL file not found")
	assert.Contains(t, err.Error(), "no-such-file.sql")
}

func TestScheduleCommand_RejectsNonBigQueryBackend(t *testing.T) {
	cmd := NewScheduleCommand()

	cfg := config.FromContext(context.Background())
	cfg.Backend = "duckdb"
	cmd.SetContext(config.WithConfig(context.Background(), cfg))
	cmd.SetOut(&bytes.Buffer{})

	err := cmd.RunE(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bigquery")
}
