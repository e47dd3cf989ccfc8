// Package zeuzapi provides an HTTP client for the zeuz reading platform API.
//
// # Overview
//
// The client covers the read-only calls the home screen needs: filtered
// novel lists, the reading history and the notification feed. It is split
// into two files:
//
//   - client.go: HTTP client, query encoding and error handling
//   - types.go: Data structures mirroring the API schema plus display helpers
//
// # Client Usage
//
//	client, err := zeuzapi.NewClient("https://api.zeuz.app", token)
//	if err != nil {
//		return err
//	}
//	home, err := client.FetchHome(ctx, "week")
//
// # API Endpoints
//
//   - GET /api/novels?filter=featured&limit=5
//   - GET /api/novels?filter=trending&timeRange=day|week|month
//   - GET /api/novels?filter=latest_updates&limit=24
//   - GET /api/novels?filter=latest_added
//   - GET /api/novel/library?type=history
//   - GET /api/notifications
//   - POST /api/notifications/read
//
// Novel lists arrive either as {"novels": [...]} or as a bare JSON array;
// both decode to []Novel.
//
// # Request Handling
//
// Every request carries Accept: application/json, a zeuz-tui User-Agent and,
// when a token is configured, Authorization: Bearer <token>. The underlying
// http.Client times out after 8 seconds.
//
// # Error Handling
//
// A 401 response wraps ErrUnauthorized so callers can use errors.Is. Other
// 4xx/5xx responses report the path and status code. Network and decode
// failures are wrapped with "execute request" and "decode response".
// FetchHome stops at the first failing list and names it in the error.
//
// # Status Values
//
// The API reports publication status in Arabic ("مكتملة" completed,
// "متوقفة" stopped) or English. ParseStatus normalizes both; anything else is
// ongoing. Each kind has the tag colour the other clients use.
package zeuzapi
