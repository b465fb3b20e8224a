// Package stream runs a headless panel over newline-delimited JSON. Render
// signals are written one object per line and intents are read the same way,
// so another process can drive the synchronizer over a pipe.
package stream

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/five82/nowplaying/internal/presence"
)

// Dispatcher receives decoded intents.
type Dispatcher interface {
	Dispatch(ctx context.Context, intent presence.Intent) error
}

// Panel writes each render signal as a JSON line.
type Panel struct {
	mu  sync.Mutex
	w   io.Writer
	log zerolog.Logger
}

// NewPanel returns a Panel writing to w.
func NewPanel(w io.Writer, logger zerolog.Logger) *Panel {
	return &Panel{w: w, log: logger.With().Str("component", "stream").Logger()}
}

// Render implements presence.Panel.
func (p *Panel) Render(sig presence.Signal) {
	data, err := presence.EncodeSignal(sig)
	if err != nil {
		p.log.Error().Err(err).Msg("encode signal")
		return
	}
	data = append(data, '\n')

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := p.w.Write(data); err != nil {
		p.log.Warn().Err(err).Msg("write signal")
	}
}

// Serve reads intent lines from r and dispatches them until r is exhausted
// or ctx is cancelled. Malformed lines are logged and skipped; dispatch
// errors are logged since the synchronizer already reported them as signals.
func Serve(ctx context.Context, r io.Reader, d Dispatcher, logger zerolog.Logger) error {
	log := logger.With().Str("component", "stream").Logger()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			intent, err := presence.DecodeIntent([]byte(line))
			if err != nil {
				log.Warn().Err(err).Str("line", line).Msg("skipping malformed intent")
				continue
			}
			if err := d.Dispatch(ctx, intent); err != nil {
				log.Info().Err(err).Msgf("intent %T failed", intent)
			}
		}
	}
}
