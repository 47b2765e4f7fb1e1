package input

// ResolveMode combines the two toggle pin levels into the logical switch
// position. The pins are the two throws of one SPDT switch with a grounded
// common, so exactly one should be low at any time. Both high means the
// switch sits in an undefined/open position; both low means a wiring fault.
// Both degenerate cases resolve to UNKNOWN for dispatch purposes.
//
// Pure function, no hidden state. Callers query it fresh on demand since the
// switch can move between reads.
func ResolveMode(read, clear Level) ToggleMode {
	switch {
	case read == LevelLow && clear == LevelHigh:
		return ModeRead
	case clear == LevelLow && read == LevelHigh:
		return ModeClear
	}
	return ModeUnknown
}

// WiringFault reports the both-low condition: common terminal shorted or the
// switch miswired. Distinct from the open position for logging, identical
// for dispatch.
func WiringFault(read, clear Level) bool {
	return read == LevelLow && clear == LevelLow
}
