// Package logtail reads the tail of the zeuz log file for the diagnostics
// view.
//
// # Reading Log Files
//
// Read uses a ring buffer of size maxLines, so it scans the file once and
// holds O(maxLines) memory regardless of file size. Lines come back in
// chronological order. A non-positive maxLines returns the whole file, and a
// missing file is not an error (nothing has been logged yet).
//
//	lines, err := logtail.Read(cfg.LogFile, 400)
//
// # Parsing
//
// The TUI logs zerolog JSON. Parse turns one line into an Entry with the
// well-known keys (time, level, component, message) pulled out and every
// other key kept as a sorted Field. Entry.String renders the compact form
// shown in the diagnostics view:
//
//	21:01:05 INF [carousel] advanced carousel=hero index=3
//
// Non-JSON lines (a panic trace, say) keep their text in Raw and render
// unchanged. Styling is left to the UI, which colours by Entry.Level.
package logtail
