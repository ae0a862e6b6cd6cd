// Package server holds the configuration of the HTTP control API that
// replaces the monitor's desktop window: start/stop monitoring, view keys,
// refresh dungeon names and follow the log.
package server
