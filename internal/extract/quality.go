package extract

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/quarry-labs/quarry/internal/warehouse"
)

// extractQuality profiles every non-view table with at least one row: null
// counts, distinct counts, and type-specific statistics, one profiling
// query per column. Views get a placeholder entry; profiling through a
// view would re-run its query.
func (e *Extractor) extractQuality(ctx context.Context, tables []warehouse.TableMeta) []TableQuality {
	var signals []TableQuality
	for _, t := range tables {
		if t.Type == "VIEW" {
			signals = append(signals, TableQuality{
				DatasetID: t.DatasetID,
				TableName: t.Name,
				TableType: t.Type,
				RowCount:  t.NumRows,
				Note:      "view: profile by querying through it",
			})
			continue
		}
		if t.NumRows == 0 {
			continue
		}

		quality := TableQuality{
			DatasetID: t.DatasetID,
			TableName: t.Name,
			TableType: t.Type,
			RowCount:  t.NumRows,
		}
		for _, col := range t.Schema {
			quality.Columns = append(quality.Columns, e.profileColumn(ctx, t, col))
		}
		signals = append(signals, quality)
	}
	return signals
}

func (e *Extractor) profileColumn(ctx context.Context, t warehouse.TableMeta, col warehouse.ColumnMeta) ColumnProfile {
	profile := ColumnProfile{Name: col.Name, Type: col.Type}

	rows, err := e.src.Query(ctx, profileQuery(e.project, t, col))
	if err != nil || len(rows) == 0 {
		if err != nil {
			profile.Error = err.Error()
			e.logger.Debug("column profile failed", "table", t.Name, "column", col.Name, "error", err)
		}
		return profile
	}
	row := rows[0]

	profile.TotalRows = asInt64(row["total_rows"])
	profile.NullCount = asInt64(row["null_count"])
	profile.DistinctCount = asInt64(row["distinct_count"])
	if profile.TotalRows > 0 {
		profile.NullPct = roundPct(profile.NullCount, profile.TotalRows)
		profile.UniquenessPct = roundPct(profile.DistinctCount, profile.TotalRows)
	}

	switch {
	case isNumericType(col.Type):
		profile.Min = asFloatPtr(row["min_val"])
		profile.Max = asFloatPtr(row["max_val"])
		profile.Mean = asFloatPtr(row["avg_val"])
	case col.Type == "STRING":
		profile.MinLength = asInt64Ptr(row["min_length"])
		profile.MaxLength = asInt64Ptr(row["max_length"])
	}
	return profile
}

// profileQuery builds the per-column profiling statement. Column names are
// backquoted; the schema comes from table metadata, not user input.
func profileQuery(project string, t warehouse.TableMeta, col warehouse.ColumnMeta) string {
	parts := []string{
		"COUNT(*) AS total_rows",
		fmt.Sprintf("COUNTIF(`%s` IS NULL) AS null_count", col.Name),
		fmt.Sprintf("COUNT(DISTINCT `%s`) AS distinct_count", col.Name),
	}
	switch {
	case isNumericType(col.Type):
		parts = append(parts,
			fmt.Sprintf("MIN(CAST(`%s` AS FLOAT64)) AS min_val", col.Name),
			fmt.Sprintf("MAX(CAST(`%s` AS FLOAT64)) AS max_val", col.Name),
			fmt.Sprintf("AVG(CAST(`%s` AS FLOAT64)) AS avg_val", col.Name),
		)
	case col.Type == "STRING":
		parts = append(parts,
			fmt.Sprintf("MIN(LENGTH(`%s`)) AS min_length", col.Name),
			fmt.Sprintf("MAX(LENGTH(`%s`)) AS max_length", col.Name),
		)
	}
	return fmt.Sprintf("SELECT %s FROM `%s.%s.%s`",
		strings.Join(parts, ", "), project, t.DatasetID, t.Name)
}

func isNumericType(t string) bool {
	switch t {
	case "INTEGER", "INT64", "FLOAT", "FLOAT64", "NUMERIC", "BIGNUMERIC":
		return true
	}
	return false
}

func roundPct(part, total int64) float64 {
	return math.Round(float64(part)/float64(total)*10000) / 100
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}

func asInt64Ptr(v any) *int64 {
	if v == nil {
		return nil
	}
	n := asInt64(v)
	return &n
}

func asFloatPtr(v any) *float64 {
	switch n := v.(type) {
	case float64:
		return &n
	case int64:
		f := float64(n)
		return &f
	case int:
		f := float64(n)
		return &f
	}
	return nil
}
