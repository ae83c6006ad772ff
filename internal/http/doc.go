// Package http exposes the onboarding services over gin.
//
// Routes mount under /api:
//   - POST /api/blocks/parse: parse editor markup into content blocks
//   - POST /api/import: import an export payload (?dry_run=true, ?replace=true)
//   - GET /api/resources/:id/content: ordered content blocks of a record
//
// Errors use the envelope {"error": {"message", "code", "issues"}}.
package http
