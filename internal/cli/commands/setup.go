// Package commands contains the CLI subcommands for quarry.
package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/quarry-labs/quarry/internal/cli/config"
	"github.com/quarry-labs/quarry/internal/warehouse"
)

// commandContext extracts the loaded configuration and logger from the
// command's context. Both are installed by the root command's
// PersistentPreRunE, so they are always present in normal operation.
func commandContext(cmd *cobra.Command) (*config.Config, *slog.Logger) {
	cfg := config.FromContext(cmd.Context())
	logger := config.GetLogger(cmd.Context())
	return cfg, logger
}

// connectBackend looks up the named backend in the registry and connects
// it. Missing application credentials are not fatal for BigQuery: on GCP
// the client falls back to ambient credentials, so we only warn.
func connectBackend(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) (warehouse.Backend, error) {
	if cfg.Backend == "bigquery" && cfg.CredentialsFile == "" {
		logger.Warn("GOOGLE_APPLICATION_CREDENTIALS is not set, relying on ambient credentials")
	}

	backend, err := warehouse.New(cfg.Backend, logger)
	if err != nil {
		return nil, err
	}

	wcfg := warehouse.Config{
		Backend:         cfg.Backend,
		ProjectID:       cfg.ProjectID,
		Location:        cfg.Location,
		CredentialsFile: cfg.CredentialsFile,
		Path:            cfg.Database,
	}
	if err := backend.Connect(cmd.Context(), wcfg); err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", cfg.Backend, err)
	}
	return backend, nil
}
