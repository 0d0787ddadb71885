package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quarry-labs/quarry/internal/transfer"
)

// NewScheduleCommand creates the schedule command.
func NewScheduleCommand() *cobra.Command {
	var (
		name     string
		schedule string
		dataset  string
		table    string
		sqlFile  string
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Create a scheduled query via the Data Transfer API",
		Long: `Create a BigQuery scheduled query. Without flags this registers the
nightly customer segment refresh into reporting_ecommerce; individual
fields can be overridden, and --sql replaces the query body with the
contents of a file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger := commandContext(cmd)

			if cfg.Backend != "bigquery" {
				return fmt.Errorf("scheduled queries require the bigquery backend, got %q", cfg.Backend)
			}
			if cfg.CredentialsFile == "" {
				logger.Warn("GOOGLE_APPLICATION_CREDENTIALS is not set, relying on ambient credentials")
			}

			spec := transfer.DefaultSpec(cfg.ProjectID)
			if name != "" {
				spec.DisplayName = name
			}
			if schedule != "" {
				spec.Schedule = schedule
			}
			if dataset != "" {
				spec.DestinationDataset = dataset
			}
			if table != "" {
				spec.DestinationTable = table
			}
			if sqlFile != "" {
				raw, err := os.ReadFile(sqlFile)
				if err != nil {
					if os.IsNotExist(err) {
						return fmt.Errorf("SQL file not found: %s", sqlFile)
					}
					return fmt.Errorf("reading %s: %w", sqlFile, err)
				}
				spec.Query = string(raw)
			}

			creator, err := transfer.NewCreator(cmd.Context(), cfg.ProjectID, cfg.Location, cfg.CredentialsFile, logger)
			if err != nil {
				return err
			}
			defer creator.Close()

			created, err := creator.Create(cmd.Context(), spec)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created scheduled query %q\n", created.GetDisplayName())
			fmt.Fprintf(out, "  Name:     %s\n", created.GetName())
			fmt.Fprintf(out, "  Schedule: %s\n", created.GetSchedule())
			fmt.Fprintf(out, "  Dataset:  %s\n", created.GetDestinationDatasetId())
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name of the scheduled query")
	cmd.Flags().StringVar(&schedule, "schedule", "", "Schedule expression, e.g. \"every day 02:00\"")
	cmd.Flags().StringVar(&dataset, "dataset", "", "Destination dataset")
	cmd.Flags().StringVar(&table, "table", "", "Destination table name template")
	cmd.Flags().StringVar(&sqlFile, "sql", "", "File containing the query body")

	return cmd
}
