package dungeons

import "time"

// Config holds configuration for the dungeon name source.
type Config struct {
	// SourceURL is the Lua file listing the dungeons. Empty uses DefaultSourceURL.
	SourceURL string `mapstructure:"source_url" default:""`
	// TimeoutSeconds bounds one fetch.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"10"`
}

// Timeout returns TimeoutSeconds as a duration, 10s when unset.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
