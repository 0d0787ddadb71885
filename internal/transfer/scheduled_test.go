package transfer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTransferConfig(t *testing.T) {
	spec := Spec{
		DisplayName:        "Nightly Refresh",
		Query:              "SELECT 1",
		DestinationDataset: "reporting",
		DestinationTable:   "daily_counts",
		WriteDisposition:   "WRITE_TRUNCATE",
		Schedule:           "every day 02:00",
	}

	cfg, err := BuildTransferConfig(spec)

	require.NoError(t, err)
	assert.Equal(t, "scheduled_query", cfg.GetDataSourceId())
	assert.Equal(t, "Nightly Refresh", cfg.GetDisplayName())
	assert.Equal(t, "reporting", cfg.GetDestinationDatasetId())
	assert.Equal(t, "every day 02:00", cfg.GetSchedule())

	fields := cfg.GetParams().GetFields()
	assert.Equal(t, "SELECT 1", fields["query"].GetStringValue())
	assert.Equal(t, "daily_counts", fields["destination_table_name_template"].GetStringValue())
	assert.Equal(t, "WRITE_TRUNCATE", fields["write_disposition"].GetStringValue())
}

func TestDefaultSpec(t *testing.T) {
	spec := DefaultSpec("demo-project")

	assert.Contains(t, spec.Query, "`demo-project.analytics_ecommerce.customer_360`")
	assert.Equal(t, "customer_segment_daily", spec.DestinationTable)
	assert.NotEmpty(t, spec.Schedule)
}
