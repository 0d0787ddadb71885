// Package transfer creates scheduled queries through the BigQuery Data
// Transfer API.
package transfer

import (
	"context"
	"fmt"
	"log/slog"

	datatransfer "cloud.google.com/go/bigquery/datatransfer/apiv1"
	"cloud.google.com/go/bigquery/datatransfer/apiv1/datatransferpb"
	"google.golang.org/api/option"
	"google.golang.org/protobuf/types/known/structpb"
)

// scheduledQueryDataSource is the transfer data source ID for scheduled
// queries.
const scheduledQueryDataSource = "scheduled_query"

// Spec describes one scheduled query to create.
type Spec struct {
	DisplayName        string
	Query              string
	DestinationDataset string
	DestinationTable   string
	WriteDisposition   string
	Schedule           string
}

// DefaultSpec returns the nightly customer segment refresh the demo
// warehouse ships with.
func DefaultSpec(projectID string) Spec {
	return Spec{
		DisplayName:        "Nightly Customer Segment Refresh",
		DestinationDataset: "reporting_ecommerce",
		DestinationTable:   "customer_segment_daily",
		WriteDisposition:   "WRITE_TRUNCATE",
		Schedule:           "every day 02:00",
		Query: fmt.Sprintf(`SELECT
    CURRENT_DATE() AS snapshot_date,
    customer_segment,
    COUNT(*) AS customer_count,
    ROUND(AVG(lifetime_revenue), 2) AS avg_lifetime_revenue,
    SUM(lifetime_revenue) AS total_segment_revenue
FROM `+"`%s.analytics_ecommerce.customer_360`"+`
GROUP BY 1, 2
ORDER BY customer_count DESC`, projectID),
	}
}

// BuildTransferConfig converts a Spec into the wire representation.
func BuildTransferConfig(spec Spec) (*datatransferpb.TransferConfig, error) {
	params, err := structpb.NewStruct(map[string]any{
		"query":                           spec.Query,
		"destination_table_name_template": spec.DestinationTable,
		"write_disposition":               spec.WriteDisposition,
	})
	if err != nil {
		return nil, fmt.Errorf("build transfer params: %w", err)
	}
	return &datatransferpb.TransferConfig{
		Destination: &datatransferpb.TransferConfig_DestinationDatasetId{
			DestinationDatasetId: spec.DestinationDataset,
		},
		DisplayName:  spec.DisplayName,
		DataSourceId: scheduledQueryDataSource,
		Params:       params,
		Schedule:     spec.Schedule,
	}, nil
}

// Creator creates scheduled queries in one project and location.
type Creator struct {
	client    *datatransfer.Client
	projectID string
	location  string
	logger    *slog.Logger
}

// NewCreator opens a Data Transfer client. The API must be enabled in the
// target project.
func NewCreator(ctx context.Context, projectID, location, credentialsFile string, logger *slog.Logger) (*Creator, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := datatransfer.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create data transfer client: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Creator{client: client, projectID: projectID, location: location, logger: logger}, nil
}

// Close releases the transfer client.
func (c *Creator) Close() error {
	return c.client.Close()
}

// Create registers the scheduled query and returns the created config.
func (c *Creator) Create(ctx context.Context, spec Spec) (*datatransferpb.TransferConfig, error) {
	cfg, err := BuildTransferConfig(spec)
	if err != nil {
		return nil, err
	}

	parent := fmt.Sprintf("projects/%s/locations/%s", c.projectID, c.location)
	created, err := c.client.CreateTransferConfig(ctx, &datatransferpb.CreateTransferConfigRequest{
		Parent:         parent,
		TransferConfig: cfg,
	})
	if err != nil {
		return nil, fmt.Errorf("create transfer config: %w", err)
	}

	c.logger.Info("created scheduled query",
		"name", created.GetName(),
		"display_name", created.GetDisplayName(),
		"schedule", created.GetSchedule(),
		"dataset", created.GetDestinationDatasetId())
	return created, nil
}
