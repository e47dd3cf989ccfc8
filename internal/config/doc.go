// Package config loads zeuz's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/zeuz/config.toml
//  3. If the file doesn't exist, start from defaults
//  4. Fields that are missing or blank keep their defaults
//  5. A .env file in the working directory is loaded, then ZEUZ_API_URL,
//     ZEUZ_TOKEN and ZEUZ_LOG_LEVEL override the file
//
// # Default Values
//
//   - API: http://127.0.0.1:8080
//   - Web: https://zeuz.app (used for "open in browser")
//   - Log file: ~/.local/state/zeuz/zeuz.log
//   - Refresh: 60 seconds
//   - Hero carousel: 5500ms interval, 4000ms cooldown, 2 items minimum
//   - Rail carousel: 4500ms interval, 3000ms cooldown, 1 item minimum
//
// # TOML Format
//
//	api_url = "https://api.zeuz.app"
//	token = "…"
//	log_level = "debug"
//	refresh_seconds = 30
//
//	[hero]
//	interval_ms = 5500
//	cooldown_ms = 4000
//	min_items = 2
//
//	[rail]
//	interval_ms = 4500
//	cooldown_ms = 3000
//
// The hero and rail timings are separate settings. Nothing derives one from
// the other.
//
// # Error Handling
//
// Load returns errors for path expansion failures, unreadable files, TOML
// parse errors (wrapped as "parse config") and values that fail Validate.
// A missing file is not an error.
package config
