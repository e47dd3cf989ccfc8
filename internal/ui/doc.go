// Package ui implements the zeuz terminal interface on Bubble Tea.
//
// # Screens
//
// The home tab stacks five sections inside a scrolling viewport: the
// featured hero, the continue-reading card, the trending rail with its
// time-range tabs, the latest updates list and the new arrivals rail.
// Library and Profile are placeholders. A novel detail view, the
// notifications dropdown, the diagnostics view (D) and the help overlay (?)
// sit on top.
//
// # Carousels
//
// The hero and trending rail are each driven by a carousel.Controller. Two
// adapters connect the controllers to Bubble Tea:
//
//   - teaClock (scheduler.go) implements carousel.Clock. AfterFunc queues a
//     tea.Tick whose timerFiredMsg runs the callback inside Update; a stopped
//     timer's tick still arrives and is dropped.
//   - strip (strip.go) implements carousel.View for a row of equal-width
//     items laid out lazily. Index scrolls beyond the laid-out window fail
//     with *carousel.IndexScrollError, which makes the controller fall back
//     to an offset scroll; offset scrolls report where they came to rest
//     with a settleMsg.
//
// Model.Update re-evaluates home visibility after every message. The home
// screen counts as visible while the Home tab is shown without the detail or
// diagnostics views and the terminal has focus (tea.WithReportFocus). The
// rising edge activates both controllers and refetches the reader's history
// and notifications; the falling edge deactivates them.
//
// Mouse presses over a strip call TouchStart and releases call TouchEnd.
// Keyboard moves (h/l, [/]) are replayed as a touch, an offset scroll and a
// settle, so they pause auto-advance for the same cooldown a drag would.
//
// # Data
//
// The model polls the state.Store on a tick and only replaces carousel items
// when the snapshot version changes. Network work (trending range switches,
// marking notifications read, user refreshes) runs in commands through the
// Refresher interface, implemented by app.Poller.
package ui
