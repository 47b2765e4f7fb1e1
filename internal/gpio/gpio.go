// Package gpio provides GPIO input reading with hardware abstraction.
// The real implementation uses the Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

// Sample is one raw reading of the three dashboard inputs. A true value
// means the line is driven low (button pressed / toggle position selected
// under the pull-up, active-low wiring).
type Sample struct {
	Action      bool
	ToggleRead  bool
	ToggleClear bool
}

// Reader reads the three input states.
type Reader interface {
	// Read returns the instantaneous state of all three inputs.
	Read() (Sample, error)

	// Close releases GPIO resources.
	Close() error
}

// Default pin assignments (BCM numbering), per the wiring guide.
const (
	DefaultPinAction      = 17
	DefaultPinToggleRead  = 27
	DefaultPinToggleClear = 22
)
