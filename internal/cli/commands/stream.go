package commands

import (
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/spf13/cobra"
	"google.golang.org/api/option"

	"github.com/quarry-labs/quarry/internal/stream"
)

// NewStreamCommand creates the stream command.
func NewStreamCommand() *cobra.Command {
	var (
		dataset string
		table   string
	)

	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Stream demo shipping events into BigQuery",
		Long: `Insert demo shipping events through the BigQuery streaming API. The
rows remain in the table's streaming buffer for up to 90 minutes, which
makes the buffer observable in a subsequent extract run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger := commandContext(cmd)

			if cfg.Backend != "bigquery" {
				return fmt.Errorf("streaming inserts require the bigquery backend, got %q", cfg.Backend)
			}
			if cfg.CredentialsFile == "" {
				logger.Warn("GOOGLE_APPLICATION_CREDENTIALS is not set, relying on ambient credentials")
			}

			var opts []option.ClientOption
			if cfg.CredentialsFile != "" {
				opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
			}
			client, err := bigquery.NewClient(cmd.Context(), cfg.ProjectID, opts...)
			if err != nil {
				return fmt.Errorf("create bigquery client: %w", err)
			}
			defer client.Close()

			events := stream.DemoEvents(time.Now())
			ins := client.Dataset(dataset).Table(table).Inserter()
			if err := stream.Insert(cmd.Context(), ins, events, logger); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Streamed %d event(s) into %s.%s\n", len(events), dataset, table)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataset, "dataset", "raw_ecommerce", "Target dataset")
	cmd.Flags().StringVar(&table, "table", "shipping_events", "Target table")

	return cmd
}
