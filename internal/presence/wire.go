package presence

import (
	"encoding/json"
	"fmt"

	"github.com/five82/nowplaying/internal/lanyard"
)

// Render signal type names on the panel message protocol.
const (
	TypeUpdate      = "update"
	TypeNotPlaying  = "notPlaying"
	TypeShowConfig  = "showConfig"
	TypeIDValidated = "idValidated"
	TypeError       = "error"
)

// Intent command names on the panel message protocol.
const (
	CommandSetDiscordID    = "setDiscordId"
	CommandChangeDiscordID = "changeDiscordId"
	CommandOpenLink        = "openLink"
)

type signalWire struct {
	Type    string         `json:"type"`
	Data    *lanyard.Track `json:"data,omitempty"`
	Message string         `json:"message,omitempty"`
}

type intentWire struct {
	Command   string `json:"command"`
	DiscordID string `json:"discordId,omitempty"`
	URL       string `json:"url,omitempty"`
}

// EncodeSignal renders sig as a {"type": ...} JSON object.
func EncodeSignal(sig Signal) ([]byte, error) {
	var w signalWire
	switch s := sig.(type) {
	case Update:
		track := s.Track
		w = signalWire{Type: TypeUpdate, Data: &track}
	case NotPlaying:
		w = signalWire{Type: TypeNotPlaying}
	case ShowConfig:
		w = signalWire{Type: TypeShowConfig}
	case IDValidated:
		w = signalWire{Type: TypeIDValidated}
	case Error:
		w = signalWire{Type: TypeError, Message: s.Message}
	default:
		return nil, fmt.Errorf("encode signal: unsupported %T", sig)
	}
	return json.Marshal(w)
}

// DecodeSignal parses a {"type": ...} JSON object.
func DecodeSignal(data []byte) (Signal, error) {
	var w signalWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode signal: %w", err)
	}
	switch w.Type {
	case TypeUpdate:
		if w.Data == nil {
			return nil, fmt.Errorf("decode signal: update without data")
		}
		return Update{Track: *w.Data}, nil
	case TypeNotPlaying:
		return NotPlaying{}, nil
	case TypeShowConfig:
		return ShowConfig{}, nil
	case TypeIDValidated:
		return IDValidated{}, nil
	case TypeError:
		return Error{Message: w.Message}, nil
	default:
		return nil, fmt.Errorf("decode signal: unknown type %q", w.Type)
	}
}

// EncodeIntent renders in as a {"command": ...} JSON object.
func EncodeIntent(in Intent) ([]byte, error) {
	var w intentWire
	switch i := in.(type) {
	case SetDiscordID:
		w = intentWire{Command: CommandSetDiscordID, DiscordID: i.ID}
	case ChangeDiscordID:
		w = intentWire{Command: CommandChangeDiscordID}
	case OpenLink:
		w = intentWire{Command: CommandOpenLink, URL: i.URL}
	default:
		return nil, fmt.Errorf("encode intent: unsupported %T", in)
	}
	return json.Marshal(w)
}

// DecodeIntent parses a {"command": ...} JSON object.
func DecodeIntent(data []byte) (Intent, error) {
	var w intentWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode intent: %w", err)
	}
	switch w.Command {
	case CommandSetDiscordID:
		return SetDiscordID{ID: w.DiscordID}, nil
	case CommandChangeDiscordID:
		return ChangeDiscordID{}, nil
	case CommandOpenLink:
		return OpenLink{URL: w.URL}, nil
	default:
		return nil, fmt.Errorf("%w: command %q", ErrUnknownIntent, w.Command)
	}
}
