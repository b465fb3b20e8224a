// Package config loads the player's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/nowplaying/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// # Default Values
//
//   - API base URL: https://api.lanyard.rest
//   - Poll interval: 1s
//   - Prefs file: ~/.config/nowplaying/prefs.toml
//   - Log file: ~/.local/state/nowplaying/nowplaying.log
//   - Log level: info
//   - Notifications: off
//
// # TOML Format
//
//	api_url = "https://api.lanyard.rest"
//	poll_interval = "1s"
//	prefs_path = "~/.config/nowplaying/prefs.toml"
//	log_file = "~/.local/state/nowplaying/nowplaying.log"
//	log_level = "info"
//	log_format = "json"       # or "console"
//	notify = false
//
// All fields are optional. Tilde expansion is performed on path fields.
// poll_interval is a Go duration string and must be positive.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML parse errors and invalid durations. Missing config
// files are not an error.
package config
