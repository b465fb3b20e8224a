package presence

import (
	"context"
	"time"
)

// runPollLoop polls immediately and then on every tick until ctx is
// cancelled. Results are tagged with gen so a replaced loop cannot render.
func (s *Synchronizer) runPollLoop(ctx context.Context, gen uint64) {
	defer s.timers.Add(-1)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.pollCycle(ctx, gen)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
