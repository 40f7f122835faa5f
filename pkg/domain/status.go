package domain

// MigrationStatus represents the outcome of converting a single file.
type MigrationStatus string

// Migration status values.
const (
	// MigrationStatusMigrated indicates no Cypress references remain in the output.
	MigrationStatusMigrated MigrationStatus = "migrated"
	// MigrationStatusPartial indicates the file was converted but Cypress references remain.
	// These need manual follow-up.
	MigrationStatusPartial MigrationStatus = "partial"
	// MigrationStatusFailed indicates the conversion aborted (e.g. unknown assertion).
	MigrationStatusFailed MigrationStatus = "failed"
	// MigrationStatusUnchanged indicates the file contained nothing to convert.
	MigrationStatusUnchanged MigrationStatus = "unchanged"
)
