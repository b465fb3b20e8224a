// Package app is the composition root for the player.
//
// # Overview
//
// Setup loads the TOML config, opens the zerolog log file, and builds a
// presence.Synchronizer over the Lanyard client and the prefs-backed
// identifier store. The entry points then attach a panel:
//
//   - Run: the Bubble Tea TUI (internal/ui)
//   - Watch: JSON lines on stdout, intents from stdin (internal/stream)
//   - Configure: validate and save an ID without a panel
//   - Reset: clear the saved ID
//   - Status: a single fetch printed as text
//
// When notify is set in the config, panels are wrapped with the desktop
// notifier from internal/notify.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Setup()    │
//	└──────┬───────┘
//	       ├─────> config.Load()          Read config.toml
//	       ├─────> logging.New()          zerolog, session id
//	       ├─────> lanyard.NewClient()    HTTP client
//	       ├─────> prefs.NewStore()       discord_id + theme
//	       └─────> presence.New()         Synchronizer
//
//	Synchronizer ──Render(Signal)──> panel (TUI / stream / notify)
//	panel ──Dispatch(Intent)──> Synchronizer
//
// # Error Handling
//
// Setup fails on an unreadable config, an invalid log level, an unwritable
// log file or a bad API URL. Everything after that is reported to the panel
// and the log. Configure translates synchronizer errors into the same
// messages the TUI shows.
package app
