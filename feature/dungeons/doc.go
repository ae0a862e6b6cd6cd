// Package dungeons maps keystone dungeon ids to display names.
//
// The names come from the AstralKeys addon's Dungeons.lua, fetched over HTTP
// and scanned line by line for DUNGEON_TABLE[<id>] = L["<name>"]. A built-in
// table covers the case where the fetch fails or finds nothing, so Resolve
// always has something to work with. Unknown ids resolve to "Unknown (<id>)".
//
// # HTTP Endpoints
//
//   - GET /dungeons : current names and where they came from.
//   - POST /dungeons/refresh : fetch the list again.
package dungeons
