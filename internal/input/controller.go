package input

import "time"

// Controller wires the per-input debouncers, the toggle resolver and the
// dispatcher into one sample-driven unit. The polling loop feeds it one
// Sample per tick and acts on the returned events.
type Controller struct {
	action      *Debouncer
	toggleRead  *Debouncer
	toggleClear *Debouncer
	dispatcher  *Dispatcher

	lastMode      ToggleMode
	eventCounts   EventCounts
	startTime     time.Time
	lastHeartbeat time.Time
}

// NewController creates a controller with the given debounce interval.
// The startTime is used for calculating uptime in heartbeat events.
func NewController(debounce time.Duration, startTime time.Time) *Controller {
	return &Controller{
		action:      NewDebouncer(debounce),
		toggleRead:  NewDebouncer(debounce),
		toggleClear: NewDebouncer(debounce),
		dispatcher:  NewDispatcher(PageMain),
		// Both toggle pins start at the assumed-inactive HIGH level.
		lastMode:      ModeUnknown,
		startTime:     startTime,
		lastHeartbeat: startTime,
	}
}

// Process takes a new pin sample and returns any events to act on.
// Released edges never dispatch anything; only a debounced Pressed edge on
// the Action input reaches the dispatcher. The toggle mode for dispatch is
// resolved from the raw levels of this very sample, not from the debounced
// state, since the switch can move between reads.
func (c *Controller) Process(s Sample) []Event {
	actionEdge := c.action.Observe(s.Action, s.Time)
	c.toggleRead.Observe(s.ToggleRead, s.Time)
	c.toggleClear.Observe(s.ToggleClear, s.Time)

	var events []Event

	// Track the debounced switch position for UI display.
	stableMode := ResolveMode(c.toggleRead.Stable(), c.toggleClear.Stable())
	if stableMode != c.lastMode {
		c.lastMode = stableMode
		events = append(events, Event{
			Timestamp:   s.Time,
			Command:     CommandModeChanged,
			Page:        c.dispatcher.Page(),
			Mode:        stableMode,
			WiringFault: WiringFault(c.toggleRead.Stable(), c.toggleClear.Stable()),
		})
	}

	if actionEdge == EdgePressed {
		mode := ResolveMode(s.ToggleRead, s.ToggleClear)
		fault := WiringFault(s.ToggleRead, s.ToggleClear)
		events = append(events, c.dispatcher.Press(mode, fault, s.Time))
	}

	// One sample is one physical fault condition, however many events carry
	// the flag.
	faulted := false
	for _, e := range events {
		switch e.Command {
		case CommandAdvancePage:
			c.eventCounts.PagesAdvanced++
		case CommandReadCodes:
			c.eventCounts.ReadRequests++
		case CommandClearCodes:
			c.eventCounts.ClearRequests++
		case CommandNoOp:
			c.eventCounts.NoOps++
		case CommandModeChanged:
			c.eventCounts.ModeChanges++
		}
		faulted = faulted || e.WiringFault
	}
	if faulted {
		c.eventCounts.WiringFaults++
	}

	return events
}

// CurrentPage returns the page the dispatcher is on.
func (c *Controller) CurrentPage() Page {
	return c.dispatcher.Page()
}

// SetPage forwards a page update from the UI collaborator.
func (c *Controller) SetPage(p Page) {
	c.dispatcher.SetPage(p)
}

// CurrentMode returns the debounced switch position.
func (c *Controller) CurrentMode() ToggleMode {
	return c.lastMode
}

// Counts returns a copy of the accumulated event counts.
func (c *Controller) Counts() EventCounts {
	return c.eventCounts
}

// CheckHeartbeat returns heartbeat data if the interval has elapsed since
// the last heartbeat (or startup). Returns nil if the interval has not
// elapsed or if interval is <= 0 (disabled).
func (c *Controller) CheckHeartbeat(now time.Time, interval time.Duration) *HeartbeatData {
	if interval <= 0 {
		return nil
	}
	if now.Sub(c.lastHeartbeat) < interval {
		return nil
	}

	c.lastHeartbeat = now
	return &HeartbeatData{
		Timestamp: now,
		Uptime:    now.Sub(c.startTime),
		Counts:    c.eventCounts,
	}
}
