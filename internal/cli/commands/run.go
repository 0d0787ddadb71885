package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quarry-labs/quarry/internal/runner"
	"github.com/quarry-labs/quarry/internal/sqlsplit"
)

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	var (
		local    bool
		database string
	)

	cmd := &cobra.Command{
		Use:   "run <file.sql>",
		Short: "Execute a SQL file statement by statement",
		Long: `Execute a SQL file against the warehouse, one statement at a time.

The file is split on semicolons outside quoted strings, comment-only and
blank lines are dropped, and the remaining statements run sequentially.
Execution stops at the first failing statement.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger := commandContext(cmd)

			path := args[0]
			raw, err := os.ReadFile(path)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("SQL file not found: %s", path)
				}
				return fmt.Errorf("reading %s: %w", path, err)
			}

			if database != "" {
				cfg.Database = database
				local = true
			}
			if local {
				cfg.Backend = "duckdb"
			}

			stmts := sqlsplit.Executable(sqlsplit.Parse(string(raw)))

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Executing %s against %s", path, cfg.Backend)
			if cfg.Backend == "bigquery" {
				fmt.Fprintf(out, " project %s", cfg.ProjectID)
			}
			fmt.Fprintf(out, "\nFound %d statement(s)\n\n", len(stmts))

			backend, err := connectBackend(cmd, cfg, logger)
			if err != nil {
				return err
			}
			defer backend.Close()

			r := runner.New(backend, runner.WithOutput(out), runner.WithLogger(logger))
			return r.Run(cmd.Context(), stmts)
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Run against an in-process DuckDB database instead of BigQuery")
	cmd.Flags().StringVar(&database, "database", "", "DuckDB database file (default: in-memory, implies --local)")

	return cmd
}
