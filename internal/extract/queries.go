package extract

import "fmt"

// INFORMATION_SCHEMA queries, one per metadata category. Dataset-scoped
// views are addressed as `project.dataset.INFORMATION_SCHEMA.<view>`;
// project-wide ones go through the region qualifier.

func columnsQuery(project, dataset string) string {
	return fmt.Sprintf("SELECT table_schema, table_name, column_name, ordinal_position, is_nullable, data_type, is_partitioning_column, clustering_ordinal_position FROM `%s.%s.INFORMATION_SCHEMA.COLUMNS` ORDER BY table_name, ordinal_position", project, dataset)
}

func fieldPathsQuery(project, dataset string) string {
	return fmt.Sprintf("SELECT table_schema, table_name, column_name, field_path, data_type, description, collation_name FROM `%s.%s.INFORMATION_SCHEMA.COLUMN_FIELD_PATHS` ORDER BY table_name, field_path", project, dataset)
}

func viewsQuery(project, dataset string) string {
	return fmt.Sprintf("SELECT table_schema, table_name, view_definition, use_standard_sql FROM `%s.%s.INFORMATION_SCHEMA.VIEWS`", project, dataset)
}

func routinesQuery(project, dataset string) string {
	return fmt.Sprintf("SELECT routine_schema, routine_name, routine_type, routine_body, routine_definition, data_type, security_type, created, last_modified FROM `%s.%s.INFORMATION_SCHEMA.ROUTINES`", project, dataset)
}

func routineParametersQuery(project, dataset string) string {
	return fmt.Sprintf("SELECT specific_schema, specific_name, ordinal_position, parameter_mode, parameter_name, data_type, is_result FROM `%s.%s.INFORMATION_SCHEMA.PARAMETERS`", project, dataset)
}

func constraintsQuery(project, dataset string) string {
	return fmt.Sprintf("SELECT constraint_schema, constraint_name, table_name, constraint_type, is_deferrable, enforced FROM `%s.%s.INFORMATION_SCHEMA.TABLE_CONSTRAINTS`", project, dataset)
}

func keyColumnUsageQuery(project, dataset string) string {
	return fmt.Sprintf("SELECT constraint_schema, constraint_name, table_name, column_name, ordinal_position FROM `%s.%s.INFORMATION_SCHEMA.KEY_COLUMN_USAGE`", project, dataset)
}

func tableOptionsQuery(project, dataset string) string {
	return fmt.Sprintf("SELECT table_schema, table_name, option_name, option_type, option_value FROM `%s.%s.INFORMATION_SCHEMA.TABLE_OPTIONS`", project, dataset)
}

func rowAccessPoliciesQuery(project, dataset string) string {
	return fmt.Sprintf("SELECT table_schema, table_name, row_access_policy_name, filter_predicate, creation_time, last_modified_time FROM `%s.%s.INFORMATION_SCHEMA.ROW_ACCESS_POLICIES`", project, dataset)
}

func tableSnapshotsQuery(project, dataset string) string {
	return fmt.Sprintf("SELECT table_schema, table_name, base_table_catalog, base_table_schema, base_table_name, snapshot_time FROM `%s.%s.INFORMATION_SCHEMA.TABLE_SNAPSHOTS`", project, dataset)
}

func searchIndexesQuery(project, dataset string) string {
	return fmt.Sprintf("SELECT index_schema, table_name, index_name, index_creation_time, index_status, coverage_percentage, analyzer, index_columns FROM `%s.%s.INFORMATION_SCHEMA.SEARCH_INDEXES`", project, dataset)
}

func vectorIndexesQuery(project, dataset string) string {
	return fmt.Sprintf("SELECT index_schema, table_name, index_name, index_creation_time, index_status, coverage_percentage, index_columns, distance_type, tree_type, num_leaves FROM `%s.%s.INFORMATION_SCHEMA.VECTOR_INDEXES`", project, dataset)
}

func materializedViewsQuery(project, dataset string) string {
	return fmt.Sprintf("SELECT table_schema, table_name, last_refresh_time, refresh_watermark FROM `%s.%s.INFORMATION_SCHEMA.MATERIALIZED_VIEWS`", project, dataset)
}

func partitionsQuery(project, dataset string) string {
	return fmt.Sprintf("SELECT table_schema, table_name, partition_id, total_rows, total_logical_bytes, last_modified_time FROM `%s.%s.INFORMATION_SCHEMA.PARTITIONS` WHERE partition_id IS NOT NULL ORDER BY table_name, partition_id", project, dataset)
}

func storageQuery(project, region, dataset string) string {
	return fmt.Sprintf("SELECT table_schema, table_name, total_rows, total_logical_bytes, active_logical_bytes, long_term_logical_bytes, total_physical_bytes FROM `%s.region-%s.INFORMATION_SCHEMA.TABLE_STORAGE` WHERE table_schema = '%s'", project, region, dataset)
}

func biCapacitiesQuery(project, region string) string {
	return fmt.Sprintf("SELECT project_id, project_number, size, preferred_tables FROM `%s.region-%s.INFORMATION_SCHEMA.BI_CAPACITIES`", project, region)
}

func jobsQuery(project, region string) string {
	return fmt.Sprintf("SELECT job_id, user_email, job_type, statement_type, state, cache_hit, total_bytes_processed, total_slot_ms, start_time, end_time FROM `%s.region-%s.INFORMATION_SCHEMA.JOBS_BY_PROJECT` WHERE creation_time > TIMESTAMP_SUB(CURRENT_TIMESTAMP(), INTERVAL 7 DAY) ORDER BY creation_time DESC LIMIT 100", project, region)
}
