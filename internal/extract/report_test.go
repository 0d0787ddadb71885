package extract

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarry-labs/quarry/internal/warehouse"
)

func TestReport_WriteIncludesAllCategories(t *testing.T) {
	report := &Report{
		Extraction: Header{
			ProjectID:        "p",
			ExtractedAt:      time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
			DatasetsScanned:  []string{"raw"},
			ExtractorVersion: Version,
		},
	}

	path := filepath.Join(t.TempDir(), "metadata.json")
	require.NoError(t, report.Write(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))

	// Category keys are present even when empty, so report consumers never
	// need to branch on key existence.
	for _, key := range []string{
		"extraction_metadata", "datasets", "tables", "columns",
		"column_field_paths", "views", "routines", "routine_parameters",
		"scheduled_queries", "storage", "table_constraints",
		"key_column_usage", "table_options", "row_level_security",
		"snapshots", "partitions", "streaming_buffers", "lineage",
		"quality", "access", "jobs", "pii_classification",
		"search_indexes", "vector_indexes", "materialized_views",
		"bi_engine",
	} {
		assert.Contains(t, decoded, key)
	}
}

func TestReport_WriteRoundTrip(t *testing.T) {
	report := &Report{
		Extraction: Header{ProjectID: "p", ExtractorVersion: Version},
		Datasets:   []warehouse.DatasetMeta{{ProjectID: "p", DatasetID: "raw", Location: "us"}},
		Lineage: Lineage{
			TableEdges: []TableEdge{{Upstream: "a.t", Downstream: "b.v", Transform: "view reference"}},
		},
	}

	path := filepath.Join(t.TempDir(), "metadata.json")
	require.NoError(t, report.Write(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "p", decoded.Extraction.ProjectID)
	require.Len(t, decoded.Datasets, 1)
	assert.Equal(t, "raw", decoded.Datasets[0].DatasetID)
	require.Len(t, decoded.Lineage.TableEdges, 1)
	assert.Equal(t, "b.v", decoded.Lineage.TableEdges[0].Downstream)
}

func TestReport_Summary(t *testing.T) {
	report := &Report{
		Datasets: []warehouse.DatasetMeta{{DatasetID: "raw"}, {DatasetID: "staging"}},
		Tables:   []warehouse.TableMeta{{Name: "orders"}},
	}

	var out bytes.Buffer
	report.Summary(&out)

	assert.Contains(t, out.String(), "Datasets")
	assert.Contains(t, out.String(), "2")
	assert.Contains(t, out.String(), "Tables/Views")
}
