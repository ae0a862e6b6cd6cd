// Package settings persists the small amount of state kept between runs:
// the path of the watched addon save file.
//
// The file is JSON ({"file_path": "..."}) and lives in the home directory
// by default. Reading never fails; a missing or corrupt file reads as empty.
package settings
