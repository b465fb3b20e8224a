// Package lanyard provides an HTTP client for the Lanyard presence API.
//
// # Overview
//
// Lanyard mirrors a Discord user's presence over REST. The player only needs
// the Spotify part of it: whether the user is listening, and which track.
//
// # Architecture
//
//   - client.go: HTTP client and request handling
//   - types.go: Envelope, Presence and Track mirroring the API schema
//   - errors.go: TransportError
//
// # Client Usage
//
//	client, err := lanyard.NewClient("")
//	if err != nil {
//		return err
//	}
//	env, err := client.FetchPresence(ctx, "94490510688792576")
//	if err != nil {
//		// *lanyard.TransportError
//	}
//	if track, ok := env.Data.NowPlaying(); ok {
//		fmt.Println(track.Song, track.Remaining(time.Now()))
//	}
//
// # API Endpoints
//
//   - GET /v1/users/{id}: presence envelope for a Discord user
//
// The envelope is returned exactly as decoded. A well-formed response with
// success=false is not an error at this layer; the caller decides what an
// unknown user means.
//
// # Error Handling
//
// Every failure is a *TransportError:
//
//   - "execute request: dial tcp: connection refused"
//   - "api /v1/users/123 returned status 404"
//   - "decode response: unexpected EOF"
//
// # Request Handling
//
// One attempt per call. There is no retry, no backoff, no caching and no
// client-side timeout; the poll loop owns cadence and cancels through the
// context. No headers or credentials are sent.
//
// # Timestamps
//
// Track timestamps are absolute epoch milliseconds. Track exposes Duration,
// Elapsed, Remaining and Progress computed against a caller-supplied now so
// the UI can animate between polls.
//
// # Thread Safety
//
// The Client struct is safe for concurrent use.
package lanyard
