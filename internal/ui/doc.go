// Package ui provides the terminal player panel.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. It never polls Lanyard itself: the
// presence.Synchronizer pushes render signals, which programPanel forwards
// into the event loop with Program.Send, and user actions go back as intents
// dispatched from commands so Update never blocks on the synchronizer.
//
// # Views
//
//   - Pending: spinner until the first signal arrives
//   - Config: Discord ID form; enter validates, empty input is rejected locally
//   - Player: song, artist, album and a playback bar that advances every
//     second from the track timestamps between polls
//   - Idle: "Not currently playing any music on Spotify."
//
// The header carries a badge for the current view (or OFFLINE after repeated
// poll failures), the identifier and the last poll time. The footer shows the
// latest status message, falling back to key hints.
//
// # Key Bindings
//
//   - o / a: open the track / an artist search in the browser
//   - y: copy the track link
//   - c: change the Discord ID
//   - p: fold the panel to a single line and back
//   - T: cycle theme (persisted through Options.SaveTheme)
//   - h / ?: help overlay
//   - e / ctrl+c: quit
package ui
