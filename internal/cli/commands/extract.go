package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quarry-labs/quarry/internal/extract"
	"github.com/quarry-labs/quarry/internal/warehouse"
)

// NewExtractCommand creates the extract command.
func NewExtractCommand() *cobra.Command {
	var (
		output   string
		datasets []string
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract warehouse metadata into a JSON report",
		Long: `Extract metadata from the configured BigQuery project into a single
JSON report: datasets, tables, columns, views, routines, scheduled
queries, storage, constraints, partitions, streaming buffers, derived
lineage, data quality signals, and recent jobs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger := commandContext(cmd)

			if output != "" {
				cfg.Output = output
			}
			if len(datasets) > 0 {
				cfg.Datasets = datasets
			}

			backend, err := connectBackend(cmd, cfg, logger)
			if err != nil {
				return err
			}
			defer backend.Close()

			src, ok := backend.(warehouse.MetadataSource)
			if !ok {
				return fmt.Errorf("backend %q does not expose metadata", cfg.Backend)
			}

			ex := extract.New(src, extract.Options{
				ProjectID: cfg.ProjectID,
				Location:  cfg.Location,
				Datasets:  cfg.Datasets,
				Logger:    logger,
			})

			report, err := ex.Extract(cmd.Context())
			if err != nil {
				return err
			}

			if err := report.Write(cfg.Output); err != nil {
				return fmt.Errorf("writing report: %w", err)
			}

			out := cmd.OutOrStdout()
			report.Summary(out)
			fmt.Fprintf(out, "\nReport written to %s\n", cfg.Output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file for the JSON report")
	cmd.Flags().StringSliceVar(&datasets, "datasets", nil, "Datasets to scan (default: the configured set)")

	return cmd
}
