// Package extract pulls warehouse metadata into a single JSON report:
// datasets, tables, columns, views, routines, scheduled queries, storage,
// constraints, partitions, streaming buffers, lineage, quality signals, and
// recent jobs.
//
// Extraction is resilient by category: a category that cannot be read is
// logged and left empty, and the rest of the report still gets built. An
// optional object that simply does not exist (a dataset with no views, no
// routines) is an empty result, not an error. This tolerance is confined to
// this package; the SQL runner never absorbs errors.
package extract

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/quarry-labs/quarry/internal/warehouse"
)

// Options configures an Extractor.
type Options struct {
	ProjectID string
	Location  string
	Datasets  []string
	Logger    *slog.Logger
}

// Extractor reads metadata categories from a source and assembles a Report.
type Extractor struct {
	src      warehouse.MetadataSource
	project  string
	location string
	datasets []string
	logger   *slog.Logger
	now      func() time.Time
}

// New creates an Extractor over a metadata source.
func New(src warehouse.MetadataSource, opts Options) *Extractor {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	location := opts.Location
	if location == "" {
		location = "us"
	}
	return &Extractor{
		src:      src,
		project:  opts.ProjectID,
		location: location,
		datasets: opts.Datasets,
		logger:   logger,
		now:      time.Now,
	}
}

// Extract builds the full report. Category failures are logged and leave
// that category empty; the report itself is always produced.
func (e *Extractor) Extract(ctx context.Context) (*Report, error) {
	report := &Report{
		Extraction: Header{
			ProjectID:        e.project,
			ExtractedAt:      e.now().UTC(),
			DatasetsScanned:  e.datasets,
			ExtractorVersion: Version,
		},
	}

	report.Datasets = e.extractDatasets(ctx)
	report.Tables = e.extractTables(ctx)
	report.Columns = e.queryPerDataset(ctx, "columns", columnsQuery)
	report.ColumnFieldPaths = e.queryPerDataset(ctx, "column field paths", fieldPathsQuery)
	report.Views = e.queryPerDataset(ctx, "views", viewsQuery)
	report.Routines = e.queryPerDataset(ctx, "routines", routinesQuery)
	report.RoutineParameters = e.queryPerDataset(ctx, "routine parameters", routineParametersQuery)
	report.ScheduledQueries = e.extractScheduledQueries(ctx)
	report.Storage = e.extractStorage(ctx)
	report.TableConstraints = e.queryPerDataset(ctx, "table constraints", constraintsQuery)
	report.KeyColumnUsage = e.queryPerDataset(ctx, "key column usage", keyColumnUsageQuery)
	report.TableOptions = e.queryPerDataset(ctx, "table options", tableOptionsQuery)
	report.RowLevelSecurity = e.queryPerDataset(ctx, "row access policies", rowAccessPoliciesQuery)
	report.Snapshots = e.queryPerDataset(ctx, "table snapshots", tableSnapshotsQuery)
	report.Partitions = e.queryPerDataset(ctx, "partitions", partitionsQuery)
	report.StreamingBuffers = streamingBuffers(report.Tables)
	report.Lineage = deriveLineage(report.Tables)
	report.Quality = e.extractQuality(ctx, report.Tables)
	report.Access = buildAccess(report.Datasets)
	report.Jobs = e.extractJobs(ctx)
	report.PIIClassification = classifyPII(report.Columns)
	report.SearchIndexes = e.queryPerDataset(ctx, "search indexes", searchIndexesQuery)
	report.VectorIndexes = e.queryPerDataset(ctx, "vector indexes", vectorIndexesQuery)
	report.MaterializedViews = e.queryPerDataset(ctx, "materialized views", materializedViewsQuery)
	report.BIEngine = e.extractBIEngine(ctx)

	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

func (e *Extractor) extractDatasets(ctx context.Context) []warehouse.DatasetMeta {
	var datasets []warehouse.DatasetMeta
	for _, id := range e.datasets {
		meta, err := e.src.DatasetMeta(ctx, id)
		if err != nil {
			e.logCategoryError("dataset metadata", id, err)
			continue
		}
		datasets = append(datasets, *meta)
	}
	return datasets
}

func (e *Extractor) extractTables(ctx context.Context) []warehouse.TableMeta {
	var tables []warehouse.TableMeta
	for _, id := range e.datasets {
		metas, err := e.src.TableMetas(ctx, id)
		if err != nil {
			e.logCategoryError("table metadata", id, err)
			continue
		}
		tables = append(tables, metas...)
	}
	return tables
}

// queryPerDataset runs one INFORMATION_SCHEMA query per dataset and merges
// the rows.
func (e *Extractor) queryPerDataset(ctx context.Context, category string, query func(project, dataset string) string) []warehouse.Row {
	var rows []warehouse.Row
	for _, id := range e.datasets {
		result, err := e.src.Query(ctx, query(e.project, id))
		if err != nil {
			e.logCategoryError(category, id, err)
			continue
		}
		rows = append(rows, result...)
	}
	return rows
}

func (e *Extractor) extractScheduledQueries(ctx context.Context) []warehouse.ScheduledQueryMeta {
	queries, err := e.src.ScheduledQueries(ctx)
	if err != nil {
		// Requires the Data Transfer API, which not every project enables.
		e.logger.Warn("could not list scheduled queries", "error", err)
		return nil
	}
	return queries
}

func (e *Extractor) extractStorage(ctx context.Context) []warehouse.Row {
	var rows []warehouse.Row
	for _, id := range e.datasets {
		result, err := e.src.Query(ctx, storageQuery(e.project, e.location, id))
		if err != nil {
			e.logCategoryError("storage metadata", id, err)
			continue
		}
		rows = append(rows, result...)
	}
	return rows
}

func (e *Extractor) extractJobs(ctx context.Context) []warehouse.Row {
	rows, err := e.src.Query(ctx, jobsQuery(e.project, e.location))
	if err != nil {
		e.logger.Warn("could not query job history", "error", err)
		return nil
	}
	return rows
}

func (e *Extractor) extractBIEngine(ctx context.Context) []warehouse.Row {
	rows, err := e.src.Query(ctx, biCapacitiesQuery(e.project, e.location))
	if err != nil {
		// BI Engine is rarely enabled.
		e.logger.Debug("could not query BI Engine capacities", "error", err)
		return nil
	}
	return rows
}

func (e *Extractor) logCategoryError(category, dataset string, err error) {
	if errors.Is(err, warehouse.ErrNotFound) {
		e.logger.Debug("category absent", "category", category, "dataset", dataset)
		return
	}
	e.logger.Warn("could not extract category", "category", category, "dataset", dataset, "error", err)
}

// buildAccess regroups the already-fetched dataset ACLs into the access
// section: per-dataset permission lists plus the authorized views among
// them. IAM policies need extra API scopes and stay empty.
func buildAccess(datasets []warehouse.DatasetMeta) AccessReport {
	var access AccessReport
	for _, ds := range datasets {
		access.DatasetPermissions = append(access.DatasetPermissions, DatasetAccess{
			DatasetID:     ds.DatasetID,
			AccessEntries: ds.AccessEntries,
		})
		for _, entry := range ds.AccessEntries {
			if entry.EntityType == "view" {
				access.AuthorizedViews = append(access.AuthorizedViews, AuthorizedView{
					DatasetID: ds.DatasetID,
					View:      entry.Entity,
				})
			}
		}
	}
	return access
}

func streamingBuffers(tables []warehouse.TableMeta) []StreamingBufferRecord {
	var records []StreamingBufferRecord
	for _, t := range tables {
		if t.StreamingBuffer == nil {
			continue
		}
		records = append(records, StreamingBufferRecord{
			DatasetID: t.DatasetID,
			TableName: t.Name,
			Buffer:    *t.StreamingBuffer,
		})
	}
	return records
}
