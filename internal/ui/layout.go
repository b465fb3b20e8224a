package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the header drops details.
	LayoutCompactWidth = 60

	// ProgressMaxWidth caps the playback bar width.
	ProgressMaxWidth = 60
)

// Timing constants.
const (
	// DefaultUIInterval is how often the playback position is redrawn.
	DefaultUIInterval = time.Second
)
