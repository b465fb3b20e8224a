// Package presence keeps a panel in sync with a user's Lanyard presence.
//
// # Overview
//
// The Synchronizer owns three things: the Discord identifier, a poll loop,
// and the view state the panel should be showing. Panels never read that
// state directly. They receive Signals through Panel.Render and send Intents
// back through Dispatch.
//
// # Signals and Intents
//
//	Synchronizer → panel        panel → Synchronizer
//	─────────────────────       ─────────────────────
//	Update{Track}               SetDiscordID{ID}
//	NotPlaying{}                ChangeDiscordID{}
//	ShowConfig{}                OpenLink{URL}
//	IDValidated{}
//	Error{Message}
//
// Both sets are sealed interfaces. wire.go maps them to the JSON
// {"type": ...} / {"command": ...} protocol used by external panels.
//
// # View States
//
//	Configuring ──valid id──▶ Playing ⇄ Idle
//	     ▲                       │       │
//	     └──── ChangeDiscordID ──┴───────┘
//
// Validation failures move the view to Error and leave the identifier and
// the poll loop alone. Poll failures only emit an Error signal; the view
// stays at the last Playing/Idle state and the snapshot counts the failure.
//
// # Polling
//
// StartPolling cancels the previous loop, polls once right away and then
// every interval (one second by default). Each loop carries a generation
// number. A result is rendered only if its generation is still current and
// the synchronizer has not been disposed, so a response that lands after
// ChangeDiscordID, a restart, or Dispose is dropped.
//
// # Concurrency
//
// Operations are serialized by a queue lock that covers state changes and
// the emission that follows them. Network calls run outside the lock.
// Panels must not call back into the Synchronizer from Render other than
// through Snapshot, which only takes a read lock.
package presence
