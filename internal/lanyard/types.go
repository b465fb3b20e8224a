package lanyard

import (
	"net/url"
	"time"
)

const (
	trackURLPrefix  = "https://open.spotify.com/track/"
	searchURLPrefix = "https://open.spotify.com/search/"
)

// Envelope mirrors the payload returned by GET /v1/users/{id}. Fields the
// player does not use are ignored during decoding.
type Envelope struct {
	Success bool     `json:"success"`
	Data    Presence `json:"data"`
}

// Presence is the subset of a Lanyard presence the player cares about.
type Presence struct {
	ListeningToSpotify bool   `json:"listening_to_spotify"`
	Spotify            *Track `json:"spotify"`
}

// NowPlaying returns the current track when Spotify is playing and a track
// payload is present.
func (p Presence) NowPlaying() (Track, bool) {
	if !p.ListeningToSpotify || p.Spotify == nil {
		return Track{}, false
	}
	return *p.Spotify, true
}

// Track describes the Spotify track a user is listening to.
type Track struct {
	Song        string     `json:"song"`
	Artist      string     `json:"artist"`
	Album       string     `json:"album"`
	AlbumArtURL string     `json:"album_art_url"`
	TrackID     string     `json:"track_id"`
	Timestamps  Timestamps `json:"timestamps"`
}

// Timestamps are absolute Unix epoch milliseconds.
type Timestamps struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// StartTime returns Start as a time.Time.
func (ts Timestamps) StartTime() time.Time {
	return time.UnixMilli(ts.Start)
}

// EndTime returns End as a time.Time.
func (ts Timestamps) EndTime() time.Time {
	return time.UnixMilli(ts.End)
}

// Duration is the track length. Malformed timestamps yield zero.
func (t Track) Duration() time.Duration {
	if t.Timestamps.End <= t.Timestamps.Start {
		return 0
	}
	return time.Duration(t.Timestamps.End-t.Timestamps.Start) * time.Millisecond
}

// Elapsed returns playback position at now, clamped to [0, Duration].
func (t Track) Elapsed(now time.Time) time.Duration {
	elapsed := now.Sub(t.Timestamps.StartTime())
	if elapsed < 0 {
		return 0
	}
	if d := t.Duration(); elapsed > d {
		return d
	}
	return elapsed
}

// Remaining returns how much of the track is left at now.
func (t Track) Remaining(now time.Time) time.Duration {
	return t.Duration() - t.Elapsed(now)
}

// Progress returns the played fraction in [0, 1].
func (t Track) Progress(now time.Time) float64 {
	d := t.Duration()
	if d <= 0 {
		return 0
	}
	return float64(t.Elapsed(now)) / float64(d)
}

// URL links to the track on open.spotify.com.
func (t Track) URL() string {
	if t.TrackID == "" {
		return ""
	}
	return trackURLPrefix + t.TrackID
}

// ArtistSearchURL links to a Spotify search for the track's artist.
func (t Track) ArtistSearchURL() string {
	if t.Artist == "" {
		return ""
	}
	return searchURLPrefix + url.PathEscape(t.Artist)
}
