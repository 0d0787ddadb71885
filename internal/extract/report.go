package extract

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/quarry-labs/quarry/internal/warehouse"
)

// Version identifies the report format.
const Version = "2.0.0-comprehensive"

// Header records the provenance of a report.
type Header struct {
	ProjectID        string    `json:"project_id"`
	ExtractedAt      time.Time `json:"extracted_at"`
	DatasetsScanned  []string  `json:"datasets_scanned"`
	ExtractorVersion string    `json:"extractor_version"`
}

// TableEdge is one table-level lineage edge.
type TableEdge struct {
	Upstream   string `json:"upstream"`
	Downstream string `json:"downstream"`
	Transform  string `json:"transform"`
}

// ColumnEdge is one column-level lineage edge.
type ColumnEdge struct {
	Upstream   string `json:"upstream_col"`
	Downstream string `json:"downstream_col"`
	Transform  string `json:"transform"`
}

// Lineage groups the derived lineage edges.
type Lineage struct {
	TableEdges  []TableEdge  `json:"table_lineage"`
	ColumnEdges []ColumnEdge `json:"column_lineage"`
}

// ColumnProfile holds quality signals for one column.
type ColumnProfile struct {
	Name          string   `json:"column_name"`
	Type          string   `json:"data_type"`
	TotalRows     int64    `json:"total_rows"`
	NullCount     int64    `json:"null_count"`
	NullPct       float64  `json:"null_pct"`
	DistinctCount int64    `json:"distinct_count"`
	UniquenessPct float64  `json:"uniqueness_pct"`
	Min           *float64 `json:"min,omitempty"`
	Max           *float64 `json:"max,omitempty"`
	Mean          *float64 `json:"mean,omitempty"`
	MinLength     *int64   `json:"min_length,omitempty"`
	MaxLength     *int64   `json:"max_length,omitempty"`
	Error         string   `json:"error,omitempty"`
}

// TableQuality holds quality signals for one table.
type TableQuality struct {
	DatasetID string          `json:"dataset_id"`
	TableName string          `json:"table_name"`
	TableType string          `json:"table_type"`
	RowCount  uint64          `json:"row_count"`
	Columns   []ColumnProfile `json:"columns"`
	Note      string          `json:"note,omitempty"`
}

// DatasetAccess groups one dataset's ACL entries.
type DatasetAccess struct {
	DatasetID     string                  `json:"dataset_id"`
	AccessEntries []warehouse.AccessEntry `json:"access_entries"`
}

// AuthorizedView is a view granted cross-dataset read access.
type AuthorizedView struct {
	DatasetID string `json:"dataset_id"`
	View      string `json:"authorized_view"`
}

// AccessReport groups the access and permissions metadata.
type AccessReport struct {
	DatasetPermissions []DatasetAccess  `json:"dataset_permissions"`
	IAMPolicies        []warehouse.Row  `json:"iam_policies"`
	AuthorizedViews    []AuthorizedView `json:"authorized_views"`
}

// PIIColumn is one column flagged as likely PII by name.
type PIIColumn struct {
	DatasetID      string `json:"dataset_id"`
	TableName      string `json:"table_name"`
	ColumnName     string `json:"column_name"`
	Classification string `json:"pii_classification"`
	Confidence     string `json:"confidence"`
}

// StreamingBufferRecord ties a streaming buffer to its table.
type StreamingBufferRecord struct {
	DatasetID string                        `json:"dataset_id"`
	TableName string                        `json:"table_name"`
	Buffer    warehouse.StreamingBufferMeta `json:"buffer"`
}

// Report is the full metadata extraction output. Every category is present
// in the JSON even when empty; an absent schema object contributes an empty
// slice, never an error.
type Report struct {
	Extraction        Header                         `json:"extraction_metadata"`
	Datasets          []warehouse.DatasetMeta        `json:"datasets"`
	Tables            []warehouse.TableMeta          `json:"tables"`
	Columns           []warehouse.Row                `json:"columns"`
	ColumnFieldPaths  []warehouse.Row                `json:"column_field_paths"`
	Views             []warehouse.Row                `json:"views"`
	Routines          []warehouse.Row                `json:"routines"`
	RoutineParameters []warehouse.Row                `json:"routine_parameters"`
	ScheduledQueries  []warehouse.ScheduledQueryMeta `json:"scheduled_queries"`
	Storage           []warehouse.Row                `json:"storage"`
	TableConstraints  []warehouse.Row                `json:"table_constraints"`
	KeyColumnUsage    []warehouse.Row                `json:"key_column_usage"`
	TableOptions      []warehouse.Row                `json:"table_options"`
	RowLevelSecurity  []warehouse.Row                `json:"row_level_security"`
	Snapshots         []warehouse.Row                `json:"snapshots"`
	Partitions        []warehouse.Row                `json:"partitions"`
	StreamingBuffers  []StreamingBufferRecord        `json:"streaming_buffers"`
	Lineage           Lineage                        `json:"lineage"`
	Quality           []TableQuality                 `json:"quality"`
	Access            AccessReport                   `json:"access"`
	Jobs              []warehouse.Row                `json:"jobs"`
	PIIClassification []PIIColumn                    `json:"pii_classification"`
	SearchIndexes     []warehouse.Row                `json:"search_indexes"`
	VectorIndexes     []warehouse.Row                `json:"vector_indexes"`
	MaterializedViews []warehouse.Row                `json:"materialized_views"`
	BIEngine          []warehouse.Row                `json:"bi_engine"`
}

// Write renders the report as indented JSON to path.
func (r *Report) Write(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Summary renders a category-count table.
func (r *Report) Summary(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Category", "Count"})

	rows := []struct {
		name  string
		count int
	}{
		{"Datasets", len(r.Datasets)},
		{"Tables/Views", len(r.Tables)},
		{"Columns", len(r.Columns)},
		{"Column Field Paths", len(r.ColumnFieldPaths)},
		{"View Definitions", len(r.Views)},
		{"Routines", len(r.Routines)},
		{"Routine Parameters", len(r.RoutineParameters)},
		{"Scheduled Queries", len(r.ScheduledQueries)},
		{"Storage Entries", len(r.Storage)},
		{"Table Constraints", len(r.TableConstraints)},
		{"Key Column Usage", len(r.KeyColumnUsage)},
		{"Table Options", len(r.TableOptions)},
		{"RLS Policies", len(r.RowLevelSecurity)},
		{"Snapshots", len(r.Snapshots)},
		{"Partitions", len(r.Partitions)},
		{"Streaming Buffers", len(r.StreamingBuffers)},
		{"Table Lineage Edges", len(r.Lineage.TableEdges)},
		{"Column Lineage Edges", len(r.Lineage.ColumnEdges)},
		{"Tables Profiled", len(r.Quality)},
		{"Dataset Permissions", len(r.Access.DatasetPermissions)},
		{"Authorized Views", len(r.Access.AuthorizedViews)},
		{"Recent Jobs", len(r.Jobs)},
		{"PII Columns", len(r.PIIClassification)},
		{"Search Indexes", len(r.SearchIndexes)},
		{"Vector Indexes", len(r.VectorIndexes)},
		{"Materialized Views", len(r.MaterializedViews)},
		{"BI Engine Entries", len(r.BIEngine)},
	}
	for _, row := range rows {
		t.AppendRow(table.Row{row.name, row.count})
	}
	t.Render()
}
