// Package monitor keeps the shared key sheet in sync with the addon file.
//
// # Components
//
//   - Watcher: polls the file's modification time (every 5s by default,
//     30s while the file is missing) and runs a pass when it moves forward.
//   - Monitor: validates and saves the selected file, runs the first pass
//     synchronously and owns the single background worker.
//   - Handler: HTTP endpoints to control the monitor and read its log.
//
// Passes run one at a time on the worker goroutine. A failing pass is
// logged and retried on the next file change; nothing stops the loop except
// Stop.
//
// # HTTP Endpoints
//
//   - GET /monitor/status
//   - POST /monitor/start {"file_path": "..."}
//   - POST /monitor/stop
//   - GET /monitor/logs?limit=100
//   - GET /monitor/logs/stream (server-sent events)
package monitor
