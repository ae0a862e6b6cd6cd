package settings

// Config holds configuration for the saved settings file.
type Config struct {
	// Path is the settings file. Empty uses ~/astralkeys_config.json.
	Path string `mapstructure:"path" default:""`
}
