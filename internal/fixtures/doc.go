// Package fixtures serves the zeuz API contract from a deterministic
// in-memory catalog.
//
// It exists for local runs of the TUI without a backend (zeuz fixtures) and
// for end-to-end tests of the API client. Novel and notification IDs are
// UUIDs drawn from a seeded source, so a given seed always produces the same
// catalog. A catalog can also be saved to and loaded from JSON.
//
// Routes:
//
//	GET  /healthz
//	GET  /api/novels?filter=featured|trending|latest_updates|latest_added
//	GET  /api/novel/library?type=history      (token)
//	GET  /api/notifications                   (token)
//	POST /api/notifications/read              (token)
//
// Routes marked "token" require Authorization: Bearer <token> when the
// server is configured with one.
package fixtures
