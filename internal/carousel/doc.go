// Package carousel implements the timed carousel controller behind the home
// screen's hero banner and trending rail.
//
// # Overview
//
// A Controller owns an ordered item list and a current index. While its
// surface is active it advances the index on a fixed cadence, asks the
// attached View to scroll to the new index, and updates the index without
// waiting for the scroll to finish. The view later reports where it came to
// rest through Settled, which reconciles any drift caused by manual swipes.
//
// # State Machine
//
//	         Activate                TouchStart
//	┌──────┐ ───────> ┌─────────┐ ──────────────> ┌────────────┐
//	│ Idle │          │ Running │                 │ Suppressed │
//	└──────┘ <─────── └─────────┘ <────────────── └────────────┘
//	   ^   Deactivate               cooldown after       │
//	   │                            TouchEnd             │
//	   └─────────────────────────────────────────────────┘
//	                       Deactivate
//
// Ticks in Idle or Suppressed are discarded. Deactivate cancels the advance
// timer and the cooldown timer together and clears suppression.
//
// # Timers
//
// Timers come from a Clock. SystemClock uses time.AfterFunc; the TUI supplies
// a clock that turns each timer into a Bubble Tea message so every callback
// runs on the program's update goroutine. Each timer carries a generation
// number, so a timer that fires after it was replaced or cancelled is a
// no-op even if Stop lost the race.
//
// # Scroll Failures
//
// A view that cannot scroll to an index yet (the target is outside its
// measured window) returns *IndexScrollError. The controller then requests
// an offset scroll of extent*index instead and relies on the next Settled
// call to restore the exact index. Failures never reach the caller.
//
// # Configuration
//
// Interval, cooldown and minimum item count are per instance. The hero uses
// 5500ms / 4000ms and needs two items; the rail uses 4500ms / 3000ms and
// needs one. They are deliberately not shared constants.
package carousel
