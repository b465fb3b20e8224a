package presence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/nowplaying/internal/lanyard"
)

const defaultPollInterval = time.Second

// IdentifierStore persists the user identifier across restarts.
type IdentifierStore interface {
	LoadIdentifier() (string, error)
	SaveIdentifier(id string) error
	ClearIdentifier() error
}

// LinkOpener opens a URL outside the program, usually in a browser.
type LinkOpener interface {
	OpenURL(url string) error
}

// LinkOpenerFunc adapts a function to LinkOpener.
type LinkOpenerFunc func(url string) error

// OpenURL calls f(url).
func (f LinkOpenerFunc) OpenURL(url string) error {
	return f(url)
}

// Options configure a Synchronizer.
type Options struct {
	Client   lanyard.PresenceFetcher
	Store    IdentifierStore
	Opener   LinkOpener      // nil disables OpenLink
	Interval time.Duration   // zero uses one second
	Logger   *zerolog.Logger // nil discards logs
}

// Synchronizer owns the identifier, the poll timer and the view state, and
// pushes render signals to the attached panel.
//
// State transitions and their signal emissions run one at a time under the
// queue lock. Network calls happen outside it; their results are applied
// only if the poll generation they started under is still current.
type Synchronizer struct {
	client   lanyard.PresenceFetcher
	store    IdentifierStore
	opener   LinkOpener
	interval time.Duration
	log      zerolog.Logger
	now      func() time.Time

	queue    sync.Mutex
	panel    Panel
	poll     context.CancelFunc
	gen      uint64
	disposed bool

	// mu guards snap for readers that must not wait on the queue, such as a
	// panel calling Snapshot while an emission to it is in flight.
	mu   sync.RWMutex
	snap Snapshot

	timers atomic.Int32
}

// New builds a Synchronizer. Client and Store are required.
func New(opts Options) (*Synchronizer, error) {
	if opts.Client == nil {
		return nil, fmt.Errorf("presence client is required")
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("identifier store is required")
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Synchronizer{
		client:   opts.Client,
		store:    opts.Store,
		opener:   opts.Opener,
		interval: interval,
		log:      logger.With().Str("component", "presence").Logger(),
		now:      time.Now,
		snap:     Snapshot{View: configuringView()},
	}, nil
}

// Dispatch routes a panel intent to the matching operation.
func (s *Synchronizer) Dispatch(ctx context.Context, intent Intent) error {
	switch in := intent.(type) {
	case SetDiscordID:
		return s.SetIdentifier(ctx, in.ID)
	case ChangeDiscordID:
		return s.ClearIdentifier()
	case OpenLink:
		return s.OpenLink(in.URL)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownIntent, intent)
	}
}

// SetIdentifier trims id and validates it against Lanyard. On success the
// identifier is persisted and polling (re)starts. On failure an Error signal
// is emitted and the previous identifier and polling state are left
// untouched.
func (s *Synchronizer) SetIdentifier(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		s.queue.Lock()
		defer s.queue.Unlock()
		s.failValidation(MessageEmptyIdentifier)
		return ErrEmptyIdentifier
	}

	s.queue.Lock()
	disposed := s.disposed
	s.queue.Unlock()
	if disposed {
		return ErrDisposed
	}

	env, err := s.client.FetchPresence(ctx, id)

	s.queue.Lock()
	defer s.queue.Unlock()
	if s.disposed {
		return ErrDisposed
	}
	if err != nil {
		s.log.Warn().Err(err).Str("discord_id", id).Msg("identifier validation request failed")
		s.failValidation(MessageValidateFailed)
		return fmt.Errorf("validate identifier: %w", err)
	}
	if !env.Success {
		s.log.Info().Str("discord_id", id).Msg("identifier not known to lanyard")
		s.failValidation(MessageUnknownUser)
		return ErrUnknownIdentifier
	}

	s.setIdentifier(id)
	if err := s.store.SaveIdentifier(id); err != nil {
		s.log.Error().Err(err).Msg("persist identifier")
	}
	s.log.Info().Str("discord_id", id).Msg("identifier validated")
	s.emit(IDValidated{})
	s.startPollingLocked()
	return nil
}

// StartPolling cancels any running poll loop, polls immediately and then at
// the configured interval until cancelled.
func (s *Synchronizer) StartPolling() {
	s.queue.Lock()
	defer s.queue.Unlock()
	s.startPollingLocked()
}

// PollOnce runs a single poll cycle against the current identifier.
func (s *Synchronizer) PollOnce(ctx context.Context) {
	s.queue.Lock()
	gen := s.gen
	s.queue.Unlock()
	s.pollCycle(ctx, gen)
}

// ClearIdentifier stops polling, forgets the identifier in memory and in the
// store, and asks the panel to show the configuration form. Calling it again
// leaves the same state.
func (s *Synchronizer) ClearIdentifier() error {
	s.queue.Lock()
	defer s.queue.Unlock()
	if s.disposed {
		return ErrDisposed
	}

	s.stopPollingLocked()
	s.gen++
	s.setIdentifier("")

	var storeErr error
	if err := s.store.ClearIdentifier(); err != nil {
		s.log.Error().Err(err).Msg("clear persisted identifier")
		storeErr = fmt.Errorf("clear identifier: %w", err)
	}
	s.setView(configuringView())
	s.emit(ShowConfig{})
	return storeErr
}

// OpenLink hands url, unmodified, to the configured LinkOpener.
func (s *Synchronizer) OpenLink(url string) error {
	if s.opener == nil {
		return fmt.Errorf("open link: no opener configured")
	}
	if err := s.opener.OpenURL(url); err != nil {
		s.log.Warn().Err(err).Str("url", url).Msg("open link failed")
		return fmt.Errorf("open link: %w", err)
	}
	return nil
}

// AttachPanel makes panel the render target, loads the persisted identifier
// and starts polling if there is one. Without an identifier the panel is
// sent to the configuration form.
func (s *Synchronizer) AttachPanel(panel Panel) error {
	s.queue.Lock()
	defer s.queue.Unlock()
	if s.disposed {
		return ErrDisposed
	}
	s.panel = panel

	id, err := s.store.LoadIdentifier()
	if err != nil {
		s.log.Warn().Err(err).Msg("load persisted identifier")
		id = s.snap.Identifier
	}
	if strings.TrimSpace(id) == "" {
		s.setView(configuringView())
		s.emit(ShowConfig{})
		return nil
	}

	s.setIdentifier(id)
	s.startPollingLocked()
	return nil
}

// DetachPanel drops the panel. Later signals are discarded until another
// panel is attached.
func (s *Synchronizer) DetachPanel() {
	s.queue.Lock()
	defer s.queue.Unlock()
	s.panel = nil
}

// Dispose stops polling and makes the synchronizer ignore any response that
// arrives afterwards. It is safe to call more than once.
func (s *Synchronizer) Dispose() {
	s.queue.Lock()
	defer s.queue.Unlock()
	if s.disposed {
		return
	}
	s.disposed = true
	s.stopPollingLocked()
	s.panel = nil
}

// Snapshot returns a copy of the current state.
func (s *Synchronizer) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.clone()
}

// failValidation must be called with the queue held.
func (s *Synchronizer) failValidation(msg string) {
	s.setView(errorView(msg))
	s.emit(Error{Message: msg})
}

func (s *Synchronizer) startPollingLocked() {
	s.stopPollingLocked()
	if s.disposed {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.gen++
	s.poll = cancel
	s.setPolling(true)
	s.timers.Add(1)
	go s.runPollLoop(ctx, s.gen)
}

func (s *Synchronizer) stopPollingLocked() {
	if s.poll == nil {
		return
	}
	s.poll()
	s.poll = nil
	s.gen++
	s.setPolling(false)
}

// current reports whether work started under gen may still be applied.
func (s *Synchronizer) current(gen uint64) bool {
	return !s.disposed && gen == s.gen
}

func (s *Synchronizer) pollCycle(ctx context.Context, gen uint64) {
	s.queue.Lock()
	id := s.snap.Identifier
	ready := s.current(gen) && s.panel != nil && id != ""
	s.queue.Unlock()
	if !ready {
		return
	}

	env, err := s.client.FetchPresence(ctx, id)

	s.queue.Lock()
	defer s.queue.Unlock()
	if !s.current(gen) {
		s.log.Debug().Uint64("gen", gen).Msg("discarding stale poll result")
		return
	}
	if s.panel == nil {
		return
	}

	now := s.now()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		s.recordPoll(now, err)
		s.log.Warn().Err(err).Msg("presence poll failed")
		s.emit(Error{Message: MessageFetchFailed})
		return
	}
	s.recordPoll(now, nil)

	if track, ok := env.Data.NowPlaying(); ok {
		s.setView(playingView(track))
		s.emit(Update{Track: track})
		return
	}
	s.setView(idleView())
	s.emit(NotPlaying{})
}

// emit must be called with the queue held.
func (s *Synchronizer) emit(sig Signal) {
	if s.panel == nil {
		return
	}
	s.log.Debug().Str("signal", fmt.Sprintf("%T", sig)).Msg("render")
	s.panel.Render(sig)
}

func (s *Synchronizer) setIdentifier(id string) {
	s.mu.Lock()
	s.snap.Identifier = id
	s.mu.Unlock()
}

func (s *Synchronizer) setView(v ViewState) {
	s.mu.Lock()
	s.snap.View = v
	s.mu.Unlock()
}

func (s *Synchronizer) setPolling(on bool) {
	s.mu.Lock()
	s.snap.Polling = on
	s.mu.Unlock()
}

func (s *Synchronizer) recordPoll(at time.Time, err error) {
	s.mu.Lock()
	s.snap.recordPoll(at, err)
	s.mu.Unlock()
}

func (s *Synchronizer) activeTimers() int {
	return int(s.timers.Load())
}
