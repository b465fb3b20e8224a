package presence

import "github.com/five82/nowplaying/internal/lanyard"

// Signal is a render instruction pushed to a panel. The set is closed:
// Update, NotPlaying, ShowConfig, IDValidated and Error.
type Signal interface {
	isSignal()
}

// Update carries the track that is currently playing.
type Update struct {
	Track lanyard.Track
}

// NotPlaying tells the panel nothing is playing.
type NotPlaying struct{}

// ShowConfig asks the panel to show the identifier form.
type ShowConfig struct{}

// IDValidated confirms a submitted identifier was accepted.
type IDValidated struct{}

// Error carries a human-readable message for the panel to display.
type Error struct {
	Message string
}

func (Update) isSignal()      {}
func (NotPlaying) isSignal()  {}
func (ShowConfig) isSignal()  {}
func (IDValidated) isSignal() {}
func (Error) isSignal()       {}

// Intent is a user request sent from a panel. The set is closed:
// SetDiscordID, ChangeDiscordID and OpenLink.
type Intent interface {
	isIntent()
}

// SetDiscordID submits an identifier for validation.
type SetDiscordID struct {
	ID string
}

// ChangeDiscordID forgets the current identifier and returns to the form.
type ChangeDiscordID struct{}

// OpenLink opens URL in the user's browser.
type OpenLink struct {
	URL string
}

func (SetDiscordID) isIntent()    {}
func (ChangeDiscordID) isIntent() {}
func (OpenLink) isIntent()        {}

// Panel is a display surface that receives render signals.
//
// Render is called with the synchronizer's queue lock held. It must return
// promptly and must not call back into the Synchronizer, except Snapshot.
// Panels that need to react with an intent hand it to another goroutine.
type Panel interface {
	Render(Signal)
}

// ViewKind enumerates the panel modes.
type ViewKind int

const (
	ViewConfiguring ViewKind = iota
	ViewPlaying
	ViewIdle
	ViewError
)

func (k ViewKind) String() string {
	switch k {
	case ViewConfiguring:
		return "configuring"
	case ViewPlaying:
		return "playing"
	case ViewIdle:
		return "idle"
	case ViewError:
		return "error"
	default:
		return "unknown"
	}
}

// ViewState is the synchronizer's idea of what the panel shows. Track is set
// only for ViewPlaying and Message only for ViewError.
type ViewState struct {
	Kind    ViewKind
	Track   lanyard.Track
	Message string
}

func configuringView() ViewState { return ViewState{Kind: ViewConfiguring} }

func playingView(t lanyard.Track) ViewState { return ViewState{Kind: ViewPlaying, Track: t} }

func idleView() ViewState { return ViewState{Kind: ViewIdle} }

func errorView(msg string) ViewState { return ViewState{Kind: ViewError, Message: msg} }
