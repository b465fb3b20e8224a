package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/nowplaying/internal/presence"
)

// programPanel delivers render signals into the Bubble Tea event loop.
type programPanel struct {
	program *tea.Program
}

// Render implements presence.Panel. Send returns immediately once the
// program has exited.
func (p *programPanel) Render(sig presence.Signal) {
	if p.program == nil {
		return
	}
	p.program.Send(signalMsg{signal: sig})
}

// Run starts the Bubble Tea program, attaches it to the controller as the
// panel and blocks until the user quits or ctx is cancelled. The panel is
// detached before Run returns.
func Run(opts Options) error {
	if opts.Controller == nil {
		return errors.New("ui: controller is required")
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pp := &programPanel{}
	m := New(opts)
	m.panel = pp
	if opts.Decorate != nil {
		m.panel = opts.Decorate(pp)
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	pp.program = p

	_, err := p.Run()
	opts.Controller.DetachPanel()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
