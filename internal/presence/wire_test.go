package presence

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestEncodeSignal(t *testing.T) {
	tests := []struct {
		name string
		sig  Signal
		want string
	}{
		{"not playing", NotPlaying{}, `{"type":"notPlaying"}`},
		{"show config", ShowConfig{}, `{"type":"showConfig"}`},
		{"validated", IDValidated{}, `{"type":"idValidated"}`},
		{"error", Error{Message: MessageFetchFailed}, `{"type":"error","message":"Failed to fetch Spotify data"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeSignal(tt.sig)
			if err != nil {
				t.Fatalf("EncodeSignal returned error: %v", err)
			}
			if string(got) != tt.want {
				t.Fatalf("EncodeSignal = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestEncodeSignal_UpdateCarriesTrack(t *testing.T) {
	data, err := EncodeSignal(Update{Track: testTrack})
	if err != nil {
		t.Fatalf("EncodeSignal returned error: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if raw["type"] != TypeUpdate {
		t.Fatalf("type = %v, want %q", raw["type"], TypeUpdate)
	}
	payload, ok := raw["data"].(map[string]any)
	if !ok {
		t.Fatalf("data = %#v, want object", raw["data"])
	}
	if payload["song"] != "X" || payload["track_id"] != testTrack.TrackID {
		t.Fatalf("data = %#v, want song X and track id", payload)
	}

	sig, err := DecodeSignal(data)
	if err != nil {
		t.Fatalf("DecodeSignal returned error: %v", err)
	}
	if sig != (Update{Track: testTrack}) {
		t.Fatalf("DecodeSignal = %#v, want Update with test track", sig)
	}
}

func TestDecodeSignal_Rejects(t *testing.T) {
	for _, in := range []string{`{"type":"update"}`, `{"type":"bogus"}`, `not json`} {
		if _, err := DecodeSignal([]byte(in)); err == nil {
			t.Fatalf("DecodeSignal(%s) returned nil error", in)
		}
	}
}

func TestDecodeIntent(t *testing.T) {
	tests := []struct {
		in   string
		want Intent
	}{
		{`{"command":"setDiscordId","discordId":"123"}`, SetDiscordID{ID: "123"}},
		{`{"command":"changeDiscordId"}`, ChangeDiscordID{}},
		{`{"command":"openLink","url":"https://open.spotify.com/track/abc"}`, OpenLink{URL: "https://open.spotify.com/track/abc"}},
	}
	for _, tt := range tests {
		got, err := DecodeIntent([]byte(tt.in))
		if err != nil {
			t.Fatalf("DecodeIntent(%s) returned error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("DecodeIntent(%s) = %#v, want %#v", tt.in, got, tt.want)
		}

		encoded, err := EncodeIntent(got)
		if err != nil {
			t.Fatalf("EncodeIntent(%#v) returned error: %v", got, err)
		}
		if string(encoded) != tt.in {
			t.Fatalf("EncodeIntent = %s, want %s", encoded, tt.in)
		}
	}
}

func TestDecodeIntent_UnknownCommand(t *testing.T) {
	_, err := DecodeIntent([]byte(`{"command":"shutdown"}`))
	if !errors.Is(err, ErrUnknownIntent) {
		t.Fatalf("DecodeIntent error = %v, want ErrUnknownIntent", err)
	}
	if _, err := DecodeIntent([]byte(`{`)); err == nil {
		t.Fatalf("DecodeIntent on malformed JSON returned nil error")
	}
}
