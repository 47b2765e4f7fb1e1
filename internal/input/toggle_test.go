package input

import "testing"

func TestResolveMode(t *testing.T) {
	tests := []struct {
		read  Level
		clear Level
		want  ToggleMode
	}{
		{LevelLow, LevelHigh, ModeRead},
		{LevelHigh, LevelLow, ModeClear},
		{LevelHigh, LevelHigh, ModeUnknown}, // open position
		{LevelLow, LevelLow, ModeUnknown},   // wiring fault
	}

	for _, tt := range tests {
		got := ResolveMode(tt.read, tt.clear)
		if got != tt.want {
			t.Errorf("ResolveMode(%s, %s) = %s, want %s", tt.read, tt.clear, got, tt.want)
		}
	}
}

func TestResolveModeIsPure(t *testing.T) {
	// Same inputs, same output, no matter how often or in what order.
	for i := 0; i < 100; i++ {
		if ResolveMode(LevelLow, LevelHigh) != ModeRead {
			t.Fatal("ResolveMode(LOW, HIGH) changed between calls")
		}
		if ResolveMode(LevelHigh, LevelLow) != ModeClear {
			t.Fatal("ResolveMode(HIGH, LOW) changed between calls")
		}
	}
}

func TestWiringFault(t *testing.T) {
	if !WiringFault(LevelLow, LevelLow) {
		t.Error("both low should be a wiring fault")
	}
	if WiringFault(LevelHigh, LevelHigh) {
		t.Error("open position is not a wiring fault")
	}
	if WiringFault(LevelLow, LevelHigh) || WiringFault(LevelHigh, LevelLow) {
		t.Error("valid positions are not wiring faults")
	}
}
