// Package warehouse provides the backends that quarry executes SQL against
// and reads metadata from.
//
// Two interfaces define the boundary: Executor, the single synchronous
// "execute this statement" call the runner depends on, and MetadataSource,
// the read-only calls the metadata extractor depends on. BigQuery implements
// both; DuckDB implements Executor for offline runs.
package warehouse

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound marks an optional schema object that does not exist. Callers
// in the extraction path treat it as "empty result for that category", never
// as a failure. The SQL runner never sees it.
var ErrNotFound = errors.New("not found")

// Config holds the settings for connecting to a backend.
type Config struct {
	// Backend selects the registered backend ("bigquery" or "duckdb").
	Backend string

	// ProjectID is the target GCP project for the BigQuery backend.
	ProjectID string

	// Location is the BigQuery location ("us", "eu", ...).
	Location string

	// CredentialsFile is the service account key path. Empty means the
	// client falls back to application default credentials.
	CredentialsFile string

	// Path is the database file path for the DuckDB backend. Empty means
	// in-memory.
	Path string
}

// Executor runs one SQL statement at a time, blocking until the service
// reports success or failure.
type Executor interface {
	Exec(ctx context.Context, sql string) error
	Close() error
}

// Backend is an Executor that manages its own connection lifecycle.
type Backend interface {
	Connect(ctx context.Context, cfg Config) error
	Executor
}

// Row is one result row from a metadata query, keyed by column name.
type Row map[string]any

// DatasetMeta describes one dataset.
type DatasetMeta struct {
	ProjectID     string            `json:"project_id"`
	DatasetID     string            `json:"dataset_id"`
	Description   string            `json:"description,omitempty"`
	Location      string            `json:"location"`
	Created       time.Time         `json:"created"`
	Modified      time.Time         `json:"modified"`
	Labels        map[string]string `json:"labels,omitempty"`
	AccessEntries []AccessEntry     `json:"access_entries,omitempty"`
}

// AccessEntry is one dataset-level ACL entry.
type AccessEntry struct {
	Role       string `json:"role"`
	EntityType string `json:"entity_type"`
	Entity     string `json:"entity_id"`
}

// ColumnMeta describes one column of a table schema.
type ColumnMeta struct {
	Name        string `json:"name"`
	Type        string `json:"field_type"`
	Mode        string `json:"mode"`
	Description string `json:"description,omitempty"`
}

// PartitioningMeta describes table partitioning, when configured.
type PartitioningMeta struct {
	Type  string `json:"type"`
	Field string `json:"field,omitempty"`
}

// StreamingBufferMeta describes rows sitting in the streaming buffer.
type StreamingBufferMeta struct {
	EstimatedRows   uint64    `json:"estimated_rows"`
	EstimatedBytes  uint64    `json:"estimated_bytes"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
}

// TableMeta describes one table or view.
type TableMeta struct {
	ProjectID        string               `json:"project_id"`
	DatasetID        string               `json:"dataset_id"`
	Name             string               `json:"table_name"`
	Type             string               `json:"table_type"`
	Description      string               `json:"description,omitempty"`
	Created          time.Time            `json:"created"`
	Modified         time.Time            `json:"modified"`
	NumRows          uint64               `json:"num_rows"`
	NumBytes         int64                `json:"num_bytes"`
	Labels           map[string]string    `json:"labels,omitempty"`
	Partitioning     *PartitioningMeta    `json:"partitioning,omitempty"`
	ClusteringFields []string             `json:"clustering_fields,omitempty"`
	StreamingBuffer  *StreamingBufferMeta `json:"streaming_buffer,omitempty"`
	ViewQuery        string               `json:"view_definition,omitempty"`
	Schema           []ColumnMeta         `json:"schema_fields"`
}

// ScheduledQueryMeta describes one scheduled query transfer config.
type ScheduledQueryMeta struct {
	Name               string `json:"name"`
	ConfigID           string `json:"config_id"`
	DestinationDataset string `json:"destination_dataset"`
	Schedule           string `json:"schedule"`
	Disabled           bool   `json:"disabled"`
	State              string `json:"state,omitempty"`
	Query              string `json:"query,omitempty"`
}

// MetadataSource exposes the read-only calls the extractor needs. An
// object that does not exist yields ErrNotFound, which the extractor maps
// to an empty category.
type MetadataSource interface {
	// DatasetMeta describes one dataset.
	DatasetMeta(ctx context.Context, datasetID string) (*DatasetMeta, error)

	// TableMetas describes every table and view in a dataset.
	TableMetas(ctx context.Context, datasetID string) ([]TableMeta, error)

	// Query runs a metadata query and returns all rows.
	Query(ctx context.Context, sql string) ([]Row, error)

	// ScheduledQueries lists the project's scheduled query configs.
	ScheduledQueries(ctx context.Context) ([]ScheduledQueryMeta, error)
}
