// Package middleware groups the fiber middleware used by the control API.
//
//   - auth: API key check (X-API-Key); disabled when no key is configured.
//   - rayid: tags each request with a ray id (X-Ray-ID) that handlers attach
//     to their log entries through logger.WithRayID.
//   - ratelimit: per-IP request budget with X-RateLimit-* headers; sync and
//     refresh requests reach the sheet and GitHub, so they are capped.
//
// All are registered globally in the start command; rayid must come first.
package middleware
