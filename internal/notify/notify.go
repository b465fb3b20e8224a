// Package notify raises a desktop notification when the playing track changes.
package notify

import (
	"sync"

	"github.com/gen2brain/beeep"
	"github.com/rs/zerolog"

	"github.com/five82/nowplaying/internal/presence"
)

// SendFunc delivers one notification.
type SendFunc func(title, message string) error

// Panel forwards every signal to the wrapped panel and notifies on a new
// track id. Notifications are delivered on their own goroutine so Render
// never waits on the desktop notification daemon.
type Panel struct {
	next presence.Panel
	send SendFunc
	log  zerolog.Logger

	mu   sync.Mutex
	last string

	pending sync.WaitGroup
}

// Wrap decorates next with desktop notifications sent through beeep.
func Wrap(next presence.Panel, logger zerolog.Logger) *Panel {
	return WrapFunc(next, func(title, message string) error {
		return beeep.Notify(title, message, "")
	}, logger)
}

// WrapFunc is Wrap with a custom delivery function.
func WrapFunc(next presence.Panel, send SendFunc, logger zerolog.Logger) *Panel {
	return &Panel{
		next: next,
		send: send,
		log:  logger.With().Str("component", "notify").Logger(),
	}
}

// Render implements presence.Panel.
func (p *Panel) Render(sig presence.Signal) {
	if p.next != nil {
		p.next.Render(sig)
	}

	update, ok := sig.(presence.Update)
	if !ok {
		return
	}
	track := update.Track

	p.mu.Lock()
	changed := track.TrackID != "" && track.TrackID != p.last
	if changed {
		p.last = track.TrackID
	}
	p.mu.Unlock()
	if !changed {
		return
	}

	title, message := track.Song, body(track.Artist, track.Album)
	p.pending.Add(1)
	go func() {
		defer p.pending.Done()
		if err := p.send(title, message); err != nil {
			p.log.Error().Msgf("failed to show notification: %v", err)
		}
	}()
}

// Wait blocks until notifications already handed off have been delivered.
func (p *Panel) Wait() {
	p.pending.Wait()
}

func body(artist, album string) string {
	switch {
	case artist == "":
		return album
	case album == "":
		return artist
	default:
		return artist + " — " + album
	}
}
