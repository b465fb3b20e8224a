// Package logtail reads the end of the player's log file and renders the
// zerolog JSON entries for a terminal. It backs `nowplaying logs`.
package logtail
