// Package app is the composition root for the zeuz TUI.
//
// Run loads the config file and user preferences, opens the log file,
// builds the API client and the shared state.Store, then starts the Poller
// and hands everything to the ui package. It blocks until the user quits or
// the context is cancelled.
//
// # Polling
//
// The Poller reloads the home feed every refresh_seconds. Consecutive
// failures double the wait up to ten minutes; a successful poll resets it.
// The UI can ask for an immediate poll (Refresh), reload just the trending
// list for a new time range (RefreshTrending), reload the signed-in user's
// history and notifications (RefreshUser) and clear the unread badge
// (MarkNotificationsRead).
//
// Poll failures are logged and recorded in the store; they never stop the
// loop. Only config, logging and client setup errors are returned from Run.
package app
