package extract

import (
	"fmt"
	"strings"

	"github.com/quarry-labs/quarry/internal/warehouse"
)

// deriveLineage builds lineage edges from view definitions. A view that
// mentions a known table's qualified name depends on it; that gives
// table-level edges without parsing SQL. Column edges are approximated by
// name: a view column that also exists on an upstream table is assumed to
// flow from it. No SQL is parsed.
func deriveLineage(tables []warehouse.TableMeta) Lineage {
	var lineage Lineage

	type tableRef struct {
		meta warehouse.TableMeta
		ref  string
	}
	known := make([]tableRef, 0, len(tables))
	for _, t := range tables {
		known = append(known, tableRef{meta: t, ref: fmt.Sprintf("%s.%s", t.DatasetID, t.Name)})
	}

	for _, view := range tables {
		if view.ViewQuery == "" {
			continue
		}
		downstream := fmt.Sprintf("%s.%s", view.DatasetID, view.Name)

		for _, upstream := range known {
			if upstream.ref == downstream {
				continue
			}
			if !strings.Contains(view.ViewQuery, upstream.ref) {
				continue
			}

			lineage.TableEdges = append(lineage.TableEdges, TableEdge{
				Upstream:   upstream.ref,
				Downstream: downstream,
				Transform:  "view reference",
			})
			lineage.ColumnEdges = append(lineage.ColumnEdges, matchColumns(upstream.meta, view)...)
		}
	}

	return lineage
}

func matchColumns(upstream, downstream warehouse.TableMeta) []ColumnEdge {
	upstreamCols := make(map[string]bool, len(upstream.Schema))
	for _, col := range upstream.Schema {
		upstreamCols[col.Name] = true
	}

	var edges []ColumnEdge
	for _, col := range downstream.Schema {
		if !upstreamCols[col.Name] {
			continue
		}
		edges = append(edges, ColumnEdge{
			Upstream:   fmt.Sprintf("%s.%s.%s", upstream.DatasetID, upstream.Name, col.Name),
			Downstream: fmt.Sprintf("%s.%s.%s", downstream.DatasetID, downstream.Name, col.Name),
			Transform:  "name match",
		})
	}
	return edges
}
