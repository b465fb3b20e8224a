package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pkg/browser"
	"github.com/rs/zerolog"

	"github.com/five82/nowplaying/internal/config"
	"github.com/five82/nowplaying/internal/lanyard"
	"github.com/five82/nowplaying/internal/logging"
	"github.com/five82/nowplaying/internal/logtail"
	"github.com/five82/nowplaying/internal/notify"
	"github.com/five82/nowplaying/internal/prefs"
	"github.com/five82/nowplaying/internal/presence"
	"github.com/five82/nowplaying/internal/stream"
	"github.com/five82/nowplaying/internal/ui"
)

// Options configure the application.
type Options struct {
	ConfigPath string
	PrefsPath  string        // empty uses prefs_path from the config
	PollEvery  time.Duration // zero uses poll_interval from the config

	// LogWriter receives logs when the config sets no log file. Tests use it
	// to keep output off stderr.
	LogWriter io.Writer
}

// Runtime holds the wired components for one run.
type Runtime struct {
	Config config.Config
	Prefs  *prefs.Store
	Client lanyard.PresenceFetcher
	Sync   *presence.Synchronizer
	Log    zerolog.Logger

	logCloser io.Closer
}

// Setup loads configuration and builds the synchronizer with its store,
// client, link opener and logger.
func Setup(opts Options) (*Runtime, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.PrefsPath != "" {
		cfg.PrefsPath = opts.PrefsPath
	}
	if opts.PollEvery > 0 {
		cfg.PollInterval = opts.PollEvery
	}

	logCfg := logging.Config{
		Level:       cfg.LogLevel,
		File:        cfg.LogFile,
		Writer:      opts.LogWriter,
		PrettyPrint: cfg.LogFormat == "console",
	}
	if opts.LogWriter != nil {
		logCfg.File = ""
	}
	logger, closer, err := logging.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	client, err := lanyard.NewClient(cfg.APIURL)
	if err != nil {
		_ = closer.Close()
		return nil, fmt.Errorf("init lanyard client: %w", err)
	}

	rt, err := newRuntime(cfg, client, logger)
	if err != nil {
		_ = closer.Close()
		return nil, err
	}
	rt.logCloser = closer
	return rt, nil
}

func newRuntime(cfg config.Config, client lanyard.PresenceFetcher, logger zerolog.Logger) (*Runtime, error) {
	store := prefs.NewStore(cfg.PrefsPath)
	synchronizer, err := presence.New(presence.Options{
		Client:   client,
		Store:    store,
		Opener:   presence.LinkOpenerFunc(openBrowser),
		Interval: cfg.PollInterval,
		Logger:   &logger,
	})
	if err != nil {
		return nil, fmt.Errorf("init synchronizer: %w", err)
	}
	logger.Info().
		Str("api_url", cfg.APIURL).
		Dur("poll_interval", cfg.PollInterval).
		Str("prefs", cfg.PrefsPath).
		Msg("runtime ready")
	return &Runtime{
		Config: cfg,
		Prefs:  store,
		Client: client,
		Sync:   synchronizer,
		Log:    logger,
	}, nil
}

// Close disposes the synchronizer and releases the log file.
func (r *Runtime) Close() {
	r.Sync.Dispose()
	if r.logCloser != nil {
		_ = r.logCloser.Close()
	}
}

// decorate adds track-change notifications when enabled in the config.
func (r *Runtime) decorate(panel presence.Panel) presence.Panel {
	if !r.Config.Notify {
		return panel
	}
	return notify.Wrap(panel, r.Log)
}

func openBrowser(url string) error {
	// The browser launcher inherits our stdio; keep it off the TUI.
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return browser.OpenURL(url)
}

// Run boots the TUI player until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	rt, err := Setup(opts)
	if err != nil {
		return err
	}
	defer rt.Close()

	userPrefs, _ := rt.Prefs.Load()
	return ui.Run(ui.Options{
		Context:    ctx,
		Controller: rt.Sync,
		ThemeName:  userPrefs.Theme,
		SaveTheme:  rt.Prefs.SetTheme,
		Tick:       ui.DefaultUIInterval,
		Decorate:   rt.decorate,
	})
}

// Watch runs a headless panel: signals are written to out as JSON lines and
// intents are read from in. It returns when ctx is cancelled.
func Watch(ctx context.Context, opts Options, in io.Reader, out io.Writer) error {
	rt, err := Setup(opts)
	if err != nil {
		return err
	}
	defer rt.Close()
	return rt.watch(ctx, in, out)
}

func (r *Runtime) watch(ctx context.Context, in io.Reader, out io.Writer) error {
	if err := r.Sync.AttachPanel(r.decorate(stream.NewPanel(out, r.Log))); err != nil {
		return fmt.Errorf("attach panel: %w", err)
	}
	defer r.Sync.DetachPanel()

	err := stream.Serve(ctx, in, r.Sync, r.Log)
	if err == nil {
		// Input closed; keep rendering until cancelled.
		<-ctx.Done()
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Configure validates id and persists it on success. The returned error
// carries the message the player would show.
func Configure(ctx context.Context, opts Options, id string) error {
	rt, err := Setup(opts)
	if err != nil {
		return err
	}
	defer rt.Close()
	return rt.configure(ctx, id)
}

func (r *Runtime) configure(ctx context.Context, id string) error {
	err := r.Sync.SetIdentifier(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, presence.ErrEmptyIdentifier):
		return errors.New(presence.MessageEmptyIdentifier)
	case errors.Is(err, presence.ErrUnknownIdentifier):
		return errors.New(presence.MessageUnknownUser)
	default:
		return fmt.Errorf("%s: %w", presence.MessageValidateFailed, err)
	}
}

// Reset forgets the persisted identifier.
func Reset(opts Options) error {
	rt, err := Setup(opts)
	if err != nil {
		return err
	}
	defer rt.Close()
	return rt.Sync.ClearIdentifier()
}

// ErrNotConfigured is returned by Status when no identifier is saved.
var ErrNotConfigured = errors.New("no Discord ID configured; run `nowplaying configure`")

// Status fetches the presence once and prints it to out.
func Status(ctx context.Context, opts Options, out io.Writer) error {
	rt, err := Setup(opts)
	if err != nil {
		return err
	}
	defer rt.Close()
	return rt.status(ctx, out, time.Now())
}

func (r *Runtime) status(ctx context.Context, out io.Writer, now time.Time) error {
	id, err := r.Prefs.LoadIdentifier()
	if err != nil {
		return fmt.Errorf("load identifier: %w", err)
	}
	if id == "" {
		return ErrNotConfigured
	}

	env, err := r.Client.FetchPresence(ctx, id)
	if err != nil {
		r.Log.Warn().Err(err).Msg("status fetch failed")
		return fmt.Errorf("%s: %w", presence.MessageFetchFailed, err)
	}
	if !env.Success {
		return errors.New(presence.MessageUnknownUser)
	}

	track, ok := env.Data.NowPlaying()
	if !ok {
		_, err := fmt.Fprintln(out, "Not currently playing any music on Spotify.")
		return err
	}
	_, err = fmt.Fprint(out, formatTrack(track, now))
	return err
}

func formatTrack(t lanyard.Track, now time.Time) string {
	s := fmt.Sprintf("♫ %s\n  %s", t.Song, t.Artist)
	if t.Album != "" {
		s += " · " + t.Album
	}
	s += fmt.Sprintf("\n  %s / %s\n", clock(t.Elapsed(now)), clock(t.Duration()))
	if link := t.URL(); link != "" {
		s += "  " + link + "\n"
	}
	return s
}

func clock(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// Logs prints the last n entries of the configured log file to out.
func Logs(opts Options, n int, out io.Writer) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	lines, err := logtail.Read(cfg.LogFile, n)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		_, err := fmt.Fprintf(out, "no log entries in %s\n", cfg.LogFile)
		return err
	}
	return logtail.Write(out, lines, false)
}
