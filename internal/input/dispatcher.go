package input

import "time"

// Dispatcher is the navigation state machine. It owns the current page index
// and decides, per confirmed Action press, between advancing the page and
// requesting a diagnostic action.
type Dispatcher struct {
	page Page
}

// NewDispatcher creates a dispatcher starting on the given page.
func NewDispatcher(start Page) *Dispatcher {
	return &Dispatcher{page: start}
}

// Page returns the current page index.
func (d *Dispatcher) Page() Page {
	return d.page
}

// SetPage accepts a page update from the UI collaborator. Out-of-range
// values wrap into the cycle.
func (d *Dispatcher) SetPage(p Page) {
	d.page = ((p % NumPages) + NumPages) % NumPages
}

// Press applies one confirmed Action press. Off the Diagnostics page the
// press advances the cycle regardless of toggle mode. On the Diagnostics
// page the resolved mode selects the diagnostic request; the page never
// changes on that branch. Each qualifying press yields exactly one event.
func (d *Dispatcher) Press(mode ToggleMode, fault bool, now time.Time) Event {
	if d.page != PageDiagnostics {
		d.page = d.page.Next()
		return Event{
			Timestamp: now,
			Command:   CommandAdvancePage,
			Page:      d.page,
			Mode:      mode,
		}
	}

	ev := Event{
		Timestamp:   now,
		Command:     CommandNoOp,
		Page:        d.page,
		Mode:        mode,
		WiringFault: fault,
	}
	switch mode {
	case ModeRead:
		ev.Command = CommandReadCodes
	case ModeClear:
		ev.Command = CommandClearCodes
	default:
		ev.Advisory = AdvisoryUnknownToggle
	}
	return ev
}
