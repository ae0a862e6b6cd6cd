package server

import "time"

// Config holds configuration for the HTTP control API.
type Config struct {
	// Host is the interface the control API binds to.
	Host string `mapstructure:"host" default:"127.0.0.1"`
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
	// Enabled turns the control API on for the start command.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// RateLimit is the number of requests per client per RateWindow. Zero disables it.
	RateLimit int64 `mapstructure:"rate_limit" default:"120"`
	// RateWindow is the period RateLimit applies to.
	RateWindow time.Duration `mapstructure:"rate_window" default:"1m"`
}

// Address returns host:port for the listener.
func (c Config) Address() string {
	return c.Host + ":" + c.Port
}
