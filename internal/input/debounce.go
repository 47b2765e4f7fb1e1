package input

import "time"

// Debouncer filters raw level changes on one input into clean edges.
// A new level becomes stable only after it has been observed continuously
// for the configured interval; anything shorter is contact bounce and is
// discarded without an event.
type Debouncer struct {
	interval time.Duration
	state    DebounceState
}

// NewDebouncer creates a debouncer with the given interval. The initial
// stable level is HIGH (inactive under the pull-up convention), so a button
// held at startup yields exactly one Pressed edge once the interval elapses.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{
		interval: interval,
		state:    DebounceState{Stable: LevelHigh},
	}
}

// Observe takes a raw sample for this input and returns the edge, if any,
// promoted by it. At most one edge is emitted per stable transition.
func (d *Debouncer) Observe(raw Level, now time.Time) Edge {
	if raw == d.state.Stable {
		// Bounced back before the pending level could settle.
		d.state.Pending = ""
		return EdgeNone
	}

	if d.state.Pending != raw {
		d.state.Pending = raw
		d.state.PendingSince = now
		return EdgeNone
	}

	if now.Sub(d.state.PendingSince) < d.interval {
		return EdgeNone
	}

	d.state.Stable = raw
	d.state.Pending = ""
	if raw == LevelLow {
		return EdgePressed
	}
	return EdgeReleased
}

// Stable returns the current debounced level.
func (d *Debouncer) Stable() Level {
	return d.state.Stable
}
