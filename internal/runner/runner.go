// Package runner executes a batch of SQL statements sequentially against a
// warehouse backend, stopping at the first failure.
package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/quarry-labs/quarry/internal/sqlsplit"
	"github.com/quarry-labs/quarry/internal/warehouse"
)

const separator = "----------------------------------------"

// ExecutionError reports the statement that failed and aborts the batch.
type ExecutionError struct {
	Ordinal  int
	Position int
	Total    int
	SQL      string
	Err      error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("statement %d/%d failed: %v", e.Position, e.Total, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// Runner feeds statements one at a time to an Executor, strictly in order.
// Later statements may depend on objects created by earlier ones, so there
// is no concurrency and no skip-and-continue.
type Runner struct {
	exec   warehouse.Executor
	out    io.Writer
	logger *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput sets the progress report destination (default os.Stdout).
func WithOutput(w io.Writer) Option {
	return func(r *Runner) { r.out = w }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// New creates a Runner bound to an executor.
func New(exec warehouse.Executor, opts ...Option) *Runner {
	r := &Runner{
		exec:   exec,
		out:    os.Stdout,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes every statement in order, blocking on each until the service
// reports completion. The first failure prints the error and the full
// statement text, abandons the rest of the batch, and returns an
// ExecutionError. An empty batch is trivial success.
func (r *Runner) Run(ctx context.Context, stmts []sqlsplit.Statement) error {
	total := len(stmts)
	if total == 0 {
		fmt.Fprintln(r.out, "No statements to execute")
		return nil
	}

	for i, stmt := range stmts {
		pos := i + 1
		fmt.Fprintf(r.out, "[%d/%d] %s\n", pos, total, stmt.Preview())
		r.logger.Debug("executing statement", "position", pos, "total", total, "ordinal", stmt.Ordinal)

		if err := r.exec.Exec(ctx, stmt.Cleaned); err != nil {
			fmt.Fprintf(r.out, "         FAILED\n\n")
			fmt.Fprintf(r.out, "Error: %v\n\n", err)
			fmt.Fprintln(r.out, "Full statement that failed:")
			fmt.Fprintln(r.out, separator)
			fmt.Fprintln(r.out, strings.TrimRight(stmt.Cleaned, "\n"))
			fmt.Fprintln(r.out, separator)
			r.logger.Error("batch aborted", "position", pos, "total", total, "error", err)
			return &ExecutionError{
				Ordinal:  stmt.Ordinal,
				Position: pos,
				Total:    total,
				SQL:      stmt.Cleaned,
				Err:      err,
			}
		}

		fmt.Fprintf(r.out, "         OK\n\n")
	}

	fmt.Fprintf(r.out, "All %d statement(s) completed successfully\n", total)
	return nil
}
