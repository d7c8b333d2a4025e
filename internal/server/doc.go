// Package server serves an athlete catalog source over HTTP.
//
// Routes:
//
//	GET /health
//	GET /metrics
//	GET /api/catalog
//	GET /api/profile/lookup?ref=<profile url or id, may be empty>
//	GET /api/profiles/search?q=<name fragment>
//	GET /api/profiles/{id}/comparison?mode=internal|external
//
// The /api group is rate limited per client IP. Errors use
// {"error":{"code":"...","message":"..."}}.
package server
