// Package keys turns the AstralKeys SavedVariables file into sheet rows.
//
// # Components
//
//   - Parser: isolates the AstralKeys table literal from the file text and
//     extracts one record per entry carrying unit, key_level and dungeon_id.
//     Parsing never fails; problems are logged and yield no records.
//   - Service: one sync pass (parse, load sheet, merge, write back).
//   - Handler: HTTP endpoints for the sheet.
//   - Loader: registers the feature with the application.
//
// # HTTP Endpoints
//
//   - GET /keys : rows of the shared sheet.
//   - POST /keys/sync?file_path=...&dry_run=true : run one pass.
package keys
