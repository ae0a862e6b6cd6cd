// Package config provides configuration management for the keys monitor.
//
// It utilizes Viper for loading configuration from environment variables,
// an optional config.yaml and a .env file loaded through godotenv.
// Defaults come from the `default` struct tags of each section.
//
// # Configuration Structure
//
//   - Server: control API bind address, API key
//   - Storage: S3/MinIO credentials, bucket and sheet object
//   - Database: connection details for the table-backed sheet
//   - Store: which sheet backend to use (object or database)
//   - Monitor: poll interval, missing-file backoff, table names, writer id
//   - Dungeons: dungeon name source URL and timeout
//   - Settings: location of the saved settings file
//   - Log: logging level, format and history size
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Monitor.PollInterval)
package config
