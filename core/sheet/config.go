package sheet

// Drivers accepted by Config.Driver.
const (
	DriverObject   = "object"
	DriverDatabase = "database"
)

// Config selects the backend of the shared key sheet.
type Config struct {
	// Driver is "object" (CSV in the bucket) or "database" (key_rows table).
	Driver string `mapstructure:"driver" default:"object"`
}
