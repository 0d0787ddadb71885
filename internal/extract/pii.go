package extract

import (
	"strings"

	"github.com/quarry-labs/quarry/internal/warehouse"
)

// piiKeywords maps column-name fragments to a classification. Order
// matters: a column is classified by the first fragment it contains, so
// "ip_address" lands on Physical Address via the earlier "address" entry.
var piiKeywords = []struct {
	keyword        string
	classification string
}{
	{"email", "Email Address"},
	{"phone", "Phone Number"},
	{"date_of_birth", "Date of Birth"},
	{"address", "Physical Address"},
	{"postal_code", "Postal Code"},
	{"card_last_four", "Partial Card Number"},
	{"first_name", "Person Name"},
	{"last_name", "Person Name"},
	{"ssn", "Social Security Number"},
	{"ip_address", "IP Address"},
}

// classifyPII flags columns whose names suggest personal data. Input rows
// come from the columns category (INFORMATION_SCHEMA.COLUMNS), so the
// dataset is the table_schema field. Confidence is "high" on an exact
// keyword match and "medium" on a substring match.
func classifyPII(columns []warehouse.Row) []PIIColumn {
	var flagged []PIIColumn
	for _, row := range columns {
		name := rowString(row, "column_name")
		if name == "" {
			continue
		}
		lower := strings.ToLower(name)
		for _, kw := range piiKeywords {
			if !strings.Contains(lower, kw.keyword) {
				continue
			}
			confidence := "medium"
			if lower == kw.keyword {
				confidence = "high"
			}
			flagged = append(flagged, PIIColumn{
				DatasetID:      rowString(row, "table_schema"),
				TableName:      rowString(row, "table_name"),
				ColumnName:     name,
				Classification: kw.classification,
				Confidence:     confidence,
			})
			break
		}
	}
	return flagged
}

func rowString(row map[string]any, key string) string {
	if s, ok := row[key].(string); ok {
		return s
	}
	return ""
}
