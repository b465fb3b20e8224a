package stream

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/nowplaying/internal/lanyard"
	"github.com/five82/nowplaying/internal/presence"
)

type recordingDispatcher struct {
	intents []presence.Intent
	err     error
}

func (r *recordingDispatcher) Dispatch(_ context.Context, in presence.Intent) error {
	r.intents = append(r.intents, in)
	return r.err
}

func TestPanel_WritesOneLinePerSignal(t *testing.T) {
	var buf bytes.Buffer
	p := NewPanel(&buf, zerolog.Nop())

	p.Render(presence.ShowConfig{})
	p.Render(presence.Update{Track: lanyard.Track{Song: "X", TrackID: "abc"}})
	p.Render(presence.Error{Message: "boom"})

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3 (%q)", len(lines), buf.String())
	}
	if lines[0] != `{"type":"showConfig"}` {
		t.Fatalf("line 0 = %q, want showConfig", lines[0])
	}
	sig, err := presence.DecodeSignal([]byte(lines[1]))
	if err != nil {
		t.Fatalf("DecodeSignal returned error: %v", err)
	}
	if u, ok := sig.(presence.Update); !ok || u.Track.TrackID != "abc" {
		t.Fatalf("line 1 decoded to %#v, want update abc", sig)
	}
	if lines[2] != `{"type":"error","message":"boom"}` {
		t.Fatalf("line 2 = %q, want error", lines[2])
	}
}

func TestServe_DispatchesAndSkipsMalformed(t *testing.T) {
	input := strings.Join([]string{
		`{"command":"setDiscordId","discordId":"123"}`,
		``,
		`garbage`,
		`{"command":"reboot"}`,
		`{"command":"openLink","url":"https://open.spotify.com/track/abc"}`,
		`{"command":"changeDiscordId"}`,
	}, "\n")

	d := &recordingDispatcher{err: errors.New("ignored")}
	if err := Serve(context.Background(), strings.NewReader(input), d, zerolog.Nop()); err != nil {
		t.Fatalf("Serve returned error: %v", err)
	}

	want := []presence.Intent{
		presence.SetDiscordID{ID: "123"},
		presence.OpenLink{URL: "https://open.spotify.com/track/abc"},
		presence.ChangeDiscordID{},
	}
	if len(d.intents) != len(want) {
		t.Fatalf("dispatched %d intents, want %d (%#v)", len(d.intents), len(want), d.intents)
	}
	for i := range want {
		if d.intents[i] != want[i] {
			t.Fatalf("intent %d = %#v, want %#v", i, d.intents[i], want[i])
		}
	}
}

func TestServe_StopsOnCancel(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, r, &recordingDispatcher{}, zerolog.Nop()) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Serve error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Serve did not return after cancel")
	}
}
