//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealReader reads the dashboard inputs from actual hardware using the
// Linux GPIO character device.
type RealReader struct {
	chip        *gpiocdev.Chip
	action      *gpiocdev.Line
	toggleRead  *gpiocdev.Line
	toggleClear *gpiocdev.Line
}

// NewRealReader claims the three input pins on gpiochip0. Each line is
// requested as input with the internal pull-up enabled, matching the
// button/SPDT wiring (pressed or selected pulls the line to ground).
// Any claim failure releases what was already acquired; callers treat it
// as fatal to input handling.
func NewRealReader(pinAction, pinToggleRead, pinToggleClear int) (*RealReader, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	action, err := chip.RequestLine(pinAction, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request action pin %d: %w", pinAction, err)
	}

	toggleRead, err := chip.RequestLine(pinToggleRead, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		action.Close()
		chip.Close()
		return nil, fmt.Errorf("request toggle-read pin %d: %w", pinToggleRead, err)
	}

	toggleClear, err := chip.RequestLine(pinToggleClear, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		toggleRead.Close()
		action.Close()
		chip.Close()
		return nil, fmt.Errorf("request toggle-clear pin %d: %w", pinToggleClear, err)
	}

	return &RealReader{
		chip:        chip,
		action:      action,
		toggleRead:  toggleRead,
		toggleClear: toggleClear,
	}, nil
}

// Read returns the current state of all three inputs.
// Raw 0 means the line is pulled to ground, i.e. active.
func (r *RealReader) Read() (Sample, error) {
	actionRaw, err := r.action.Value()
	if err != nil {
		return Sample{}, fmt.Errorf("read action pin: %w", err)
	}

	readRaw, err := r.toggleRead.Value()
	if err != nil {
		return Sample{}, fmt.Errorf("read toggle-read pin: %w", err)
	}

	clearRaw, err := r.toggleClear.Value()
	if err != nil {
		return Sample{}, fmt.Errorf("read toggle-clear pin: %w", err)
	}

	return Sample{
		Action:      actionRaw == 0,
		ToggleRead:  readRaw == 0,
		ToggleClear: clearRaw == 0,
	}, nil
}

// Close releases the lines and the chip. Callers must stop the polling loop
// first; release is the reverse of acquisition.
// Each line is put back to the Pi boot default for BCM 17/27/22 (input with
// pull-down) before closing, so attached hardware sees the same pin state
// across a restart as it does during early boot.
func (r *RealReader) Close() error {
	var errs []error

	lines := []struct {
		name string
		line *gpiocdev.Line
	}{
		{"toggle-clear", r.toggleClear},
		{"toggle-read", r.toggleRead},
		{"action", r.action},
	}
	for _, l := range lines {
		if l.line == nil {
			continue
		}
		if err := l.line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure %s pin: %w", l.name, err))
		}
		if err := l.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s pin: %w", l.name, err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
