package warehouse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"cloud.google.com/go/bigquery"
	datatransfer "cloud.google.com/go/bigquery/datatransfer/apiv1"
	"cloud.google.com/go/bigquery/datatransfer/apiv1/datatransferpb"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

func init() {
	Register("bigquery", func(logger *slog.Logger) Backend { return NewBigQueryBackend(logger) })
}

// BigQueryBackend executes statements and reads metadata through the
// BigQuery client libraries. One client is acquired on Connect and reused
// for every call; statement execution is synchronous (run, then wait).
type BigQueryBackend struct {
	client *bigquery.Client
	cfg    Config
	logger *slog.Logger
}

// NewBigQueryBackend creates an unconnected BigQuery backend.
func NewBigQueryBackend(logger *slog.Logger) *BigQueryBackend {
	if logger == nil {
		logger = slog.Default()
	}
	return &BigQueryBackend{logger: logger}
}

// Connect creates the BigQuery client. When no credentials file is
// configured the client resolves application default credentials on its
// own.
func (b *BigQueryBackend) Connect(ctx context.Context, cfg Config) error {
	opts := b.clientOptions(cfg)
	client, err := bigquery.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return fmt.Errorf("create bigquery client: %w", err)
	}
	if cfg.Location != "" {
		client.Location = cfg.Location
	}

	b.client = client
	b.cfg = cfg
	b.logger.Debug("connected to bigquery", "project", cfg.ProjectID, "location", cfg.Location)
	return nil
}

func (b *BigQueryBackend) clientOptions(cfg Config) []option.ClientOption {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	return opts
}

// Close releases the BigQuery client.
func (b *BigQueryBackend) Close() error {
	if b.client != nil {
		return b.client.Close()
	}
	return nil
}

// Exec submits one statement and blocks until the job completes. A job
// that finishes with an error status is reported as an error.
func (b *BigQueryBackend) Exec(ctx context.Context, sqlText string) error {
	if b.client == nil {
		return fmt.Errorf("bigquery client not connected")
	}

	job, err := b.client.Query(sqlText).Run(ctx)
	if err != nil {
		return fmt.Errorf("submit query: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("wait for query: %w", err)
	}
	if err := status.Err(); err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	return nil
}

// Query runs a metadata query and drains all rows.
func (b *BigQueryBackend) Query(ctx context.Context, sqlText string) ([]Row, error) {
	if b.client == nil {
		return nil, fmt.Errorf("bigquery client not connected")
	}

	it, err := b.client.Query(sqlText).Read(ctx)
	if err != nil {
		return nil, mapNotFound(err)
	}

	var rows []Row
	for {
		var values map[string]bigquery.Value
		err := it.Next(&values)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		row := make(Row, len(values))
		for k, v := range values {
			row[k] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// DatasetMeta fetches dataset-level metadata.
func (b *BigQueryBackend) DatasetMeta(ctx context.Context, datasetID string) (*DatasetMeta, error) {
	if b.client == nil {
		return nil, fmt.Errorf("bigquery client not connected")
	}

	md, err := b.client.Dataset(datasetID).Metadata(ctx)
	if err != nil {
		return nil, mapNotFound(err)
	}

	meta := &DatasetMeta{
		ProjectID:   b.cfg.ProjectID,
		DatasetID:   datasetID,
		Description: md.Description,
		Location:    md.Location,
		Created:     md.CreationTime,
		Modified:    md.LastModifiedTime,
		Labels:      md.Labels,
	}
	for _, entry := range md.Access {
		meta.AccessEntries = append(meta.AccessEntries, AccessEntry{
			Role:       string(entry.Role),
			EntityType: entityTypeName(entry.EntityType),
			Entity:     entry.Entity,
		})
	}
	return meta, nil
}

// TableMetas fetches full metadata for every table and view in a dataset.
func (b *BigQueryBackend) TableMetas(ctx context.Context, datasetID string) ([]TableMeta, error) {
	if b.client == nil {
		return nil, fmt.Errorf("bigquery client not connected")
	}

	var metas []TableMeta
	it := b.client.Dataset(datasetID).Tables(ctx)
	for {
		tbl, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapNotFound(err)
		}

		md, err := tbl.Metadata(ctx)
		if err != nil {
			// A table can disappear between listing and describing.
			b.logger.Warn("describe table failed", "dataset", datasetID, "table", tbl.TableID, "error", err)
			continue
		}
		metas = append(metas, b.tableMeta(datasetID, tbl.TableID, md))
	}
	return metas, nil
}

func (b *BigQueryBackend) tableMeta(datasetID, tableID string, md *bigquery.TableMetadata) TableMeta {
	meta := TableMeta{
		ProjectID:   b.cfg.ProjectID,
		DatasetID:   datasetID,
		Name:        tableID,
		Type:        string(md.Type),
		Description: md.Description,
		Created:     md.CreationTime,
		Modified:    md.LastModifiedTime,
		NumRows:     md.NumRows,
		NumBytes:    md.NumBytes,
		Labels:      md.Labels,
		ViewQuery:   md.ViewQuery,
	}
	if md.TimePartitioning != nil {
		meta.Partitioning = &PartitioningMeta{
			Type:  string(md.TimePartitioning.Type),
			Field: md.TimePartitioning.Field,
		}
	} else if md.RangePartitioning != nil {
		meta.Partitioning = &PartitioningMeta{
			Type:  "RANGE",
			Field: md.RangePartitioning.Field,
		}
	}
	if md.Clustering != nil {
		meta.ClusteringFields = md.Clustering.Fields
	}
	if md.StreamingBuffer != nil {
		meta.StreamingBuffer = &StreamingBufferMeta{
			EstimatedRows:   md.StreamingBuffer.EstimatedRows,
			EstimatedBytes:  md.StreamingBuffer.EstimatedBytes,
			OldestEntryTime: md.StreamingBuffer.OldestEntryTime,
		}
	}
	for _, field := range md.Schema {
		meta.Schema = append(meta.Schema, ColumnMeta{
			Name:        field.Name,
			Type:        string(field.Type),
			Mode:        fieldMode(field),
			Description: field.Description,
		})
	}
	return meta
}

// ScheduledQueries lists scheduled query transfer configs through the Data
// Transfer API. The transfer client is created per call; the API may not be
// enabled in every project.
func (b *BigQueryBackend) ScheduledQueries(ctx context.Context) ([]ScheduledQueryMeta, error) {
	client, err := datatransfer.NewClient(ctx, b.clientOptions(b.cfg)...)
	if err != nil {
		return nil, fmt.Errorf("create data transfer client: %w", err)
	}
	defer func() { _ = client.Close() }()

	parent := fmt.Sprintf("projects/%s/locations/%s", b.cfg.ProjectID, b.cfg.Location)
	it := client.ListTransferConfigs(ctx, &datatransferpb.ListTransferConfigsRequest{
		Parent:        parent,
		DataSourceIds: []string{"scheduled_query"},
	})

	var queries []ScheduledQueryMeta
	for {
		cfg, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list transfer configs: %w", err)
		}

		meta := ScheduledQueryMeta{
			Name:               cfg.GetDisplayName(),
			DestinationDataset: cfg.GetDestinationDatasetId(),
			Schedule:           cfg.GetSchedule(),
			Disabled:           cfg.GetDisabled(),
			State:              cfg.GetState().String(),
		}
		if name := cfg.GetName(); name != "" {
			parts := strings.Split(name, "/")
			meta.ConfigID = parts[len(parts)-1]
		}
		if params := cfg.GetParams(); params != nil {
			meta.Query = params.GetFields()["query"].GetStringValue()
		}
		queries = append(queries, meta)
	}
	return queries, nil
}

// mapNotFound rewraps a 404 from the service as ErrNotFound so the
// extraction path can treat missing objects as empty categories.
func mapNotFound(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == 404 {
		return fmt.Errorf("%w: %s", ErrNotFound, apiErr.Message)
	}
	return err
}

func fieldMode(field *bigquery.FieldSchema) string {
	switch {
	case field.Repeated:
		return "REPEATED"
	case field.Required:
		return "REQUIRED"
	default:
		return "NULLABLE"
	}
}

func entityTypeName(t bigquery.EntityType) string {
	switch t {
	case bigquery.DomainEntity:
		return "domain"
	case bigquery.GroupEmailEntity:
		return "groupByEmail"
	case bigquery.UserEmailEntity:
		return "userByEmail"
	case bigquery.SpecialGroupEntity:
		return "specialGroup"
	case bigquery.ViewEntity:
		return "view"
	case bigquery.IAMMemberEntity:
		return "iamMember"
	case bigquery.RoutineEntity:
		return "routine"
	default:
		return "unknown"
	}
}
