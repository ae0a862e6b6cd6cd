package monitor

import "time"

// Config holds configuration for watching the addon save file.
type Config struct {
	// PollInterval is the wait between two modification checks.
	PollInterval time.Duration `mapstructure:"poll_interval" default:"5s"`
	// MissingBackoff is the wait after the file was not found.
	MissingBackoff time.Duration `mapstructure:"missing_backoff" default:"30s"`
	// TableName is the assignment holding the keystone table.
	TableName string `mapstructure:"table_name" default:"AstralKeys"`
	// BoundaryName is the assignment that follows it in the file.
	BoundaryName string `mapstructure:"boundary_name" default:"AstralCharacters"`
	// WriterID is stamped into source_id. Empty uses the host name.
	WriterID string `mapstructure:"writer_id" default:""`
}
