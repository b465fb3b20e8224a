package presence

import "time"

// Snapshot represents the synchronizer state a panel may display.
type Snapshot struct {
	Identifier          string
	View                ViewState
	Polling             bool
	LastPoll            time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive poll failures
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// recordPoll updates poll bookkeeping. When err is non-nil the view is kept
// and the failure counted.
func (s *Snapshot) recordPoll(at time.Time, err error) {
	s.LastPoll = at
	if err != nil {
		s.LastError = err
		s.ConsecutiveFailures++
		return
	}
	s.LastError = nil
	s.ConsecutiveFailures = 0
}

// clone returns a copy safe to hand out. Every field is a value or an
// immutable error, so a plain copy suffices.
func (s Snapshot) clone() Snapshot {
	return s
}
