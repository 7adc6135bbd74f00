package playback

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const testInterval = time.Millisecond

// pump runs cmd and feeds the resulting message back into the driver n times.
func pump(t *testing.T, d *Driver, cmd tea.Cmd, n int) tea.Cmd {
	t.Helper()
	for i := 0; i < n; i++ {
		if cmd == nil {
			t.Fatalf("tick %d: no command scheduled", i+1)
		}
		cmd = d.Update(cmd())
	}
	return cmd
}

func TestDriver_WrapsAroundCount(t *testing.T) {
	d := NewDriver(5, testInterval)
	pump(t, d, d.Start(), 7)

	if d.Cursor() != 2 {
		t.Errorf("Cursor after 7 ticks over 5 frames = %d, want 2", d.Cursor())
	}
}

func TestDriver_CursorStaysInRange(t *testing.T) {
	for count := 1; count <= 4; count++ {
		d := NewDriver(count, testInterval)
		cmd := d.Start()
		for i := 0; i < 10; i++ {
			cmd = pump(t, d, cmd, 1)
			if d.Cursor() < 0 || d.Cursor() >= count {
				t.Fatalf("count %d tick %d: cursor %d out of range", count, i+1, d.Cursor())
			}
		}
	}
}

func TestDriver_EmptyListIsNoOp(t *testing.T) {
	d := NewDriver(0, testInterval)
	pump(t, d, d.Start(), 3)

	if d.Cursor() != 0 {
		t.Errorf("Cursor = %d, want 0", d.Cursor())
	}
	d.Step(-1)
	d.Step(4)
	if d.Cursor() != 0 {
		t.Errorf("Cursor after Step = %d, want 0", d.Cursor())
	}
}

func TestDriver_DoubleStartKeepsOneStream(t *testing.T) {
	d := NewDriver(10, testInterval)
	first := d.Start()
	second := d.Start()

	if next := d.Update(first()); next != nil {
		t.Error("Tick from replaced stream should not be rescheduled")
	}
	if d.Cursor() != 0 {
		t.Errorf("Stale tick moved cursor to %d", d.Cursor())
	}

	next := d.Update(second())
	if next == nil {
		t.Fatal("Live stream should reschedule")
	}
	if d.Cursor() != 1 {
		t.Errorf("Cursor = %d, want 1", d.Cursor())
	}
}

func TestDriver_StopDropsPendingTick(t *testing.T) {
	d := NewDriver(3, testInterval)
	cmd := d.Start()
	d.Stop()
	d.Stop()

	if d.Running() {
		t.Fatal("Driver should be stopped")
	}
	if next := d.Update(cmd()); next != nil {
		t.Error("Tick after Stop should not be rescheduled")
	}
	if d.Cursor() != 0 {
		t.Errorf("Cursor = %d, want 0", d.Cursor())
	}
}

func TestDriver_RestartAfterStop(t *testing.T) {
	d := NewDriver(3, testInterval)
	pump(t, d, d.Start(), 1)
	d.Stop()

	pump(t, d, d.Start(), 1)
	if d.Cursor() != 2 {
		t.Errorf("Cursor = %d, want 2", d.Cursor())
	}
}

func TestDriver_IgnoresOtherDrivers(t *testing.T) {
	a := NewDriver(3, testInterval)
	b := NewDriver(3, testInterval)
	if a.ID() == b.ID() {
		t.Fatal("Drivers should have distinct ids")
	}

	cmd := b.Start()
	a.Start()
	if next := a.Update(cmd()); next != nil {
		t.Error("Driver accepted a tick from another driver")
	}
	if a.Cursor() != 0 {
		t.Errorf("Cursor = %d, want 0", a.Cursor())
	}
}

func TestDriver_IgnoresOtherMessages(t *testing.T) {
	d := NewDriver(3, testInterval)
	d.Start()
	if cmd := d.Update(tea.KeyMsg{}); cmd != nil {
		t.Error("Expected nil command for non-tick message")
	}
}

func TestDriver_Step(t *testing.T) {
	tests := []struct {
		name  string
		start int
		delta int
		want  int
	}{
		{"forward", 0, 1, 1},
		{"wrap forward", 3, 1, 0},
		{"wrap backward", 0, -1, 3},
		{"large negative", 1, -9, 0},
		{"large positive", 2, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDriver(4, testInterval)
			d.Step(tt.start)
			d.Step(tt.delta)
			if d.Cursor() != tt.want {
				t.Errorf("Cursor = %d, want %d", d.Cursor(), tt.want)
			}
		})
	}
}

func TestDriver_SetFPS(t *testing.T) {
	d := NewDriver(3, 0)
	if d.Interval() != DefaultInterval {
		t.Errorf("Interval = %v, want %v", d.Interval(), DefaultInterval)
	}
	if d.FPS() != 6 {
		t.Errorf("FPS = %d, want 6", d.FPS())
	}

	if cmd := d.SetFPS(12); cmd != nil {
		t.Error("Stopped driver should not schedule on SetFPS")
	}
	if d.Interval() != time.Second/12 {
		t.Errorf("Interval = %v, want %v", d.Interval(), time.Second/12)
	}

	old := d.Start()
	if cmd := d.SetFPS(24); cmd == nil {
		t.Fatal("Running driver should restart on SetFPS")
	}
	if !d.Running() {
		t.Error("Driver should still be running")
	}
	if next := d.Update(old()); next != nil {
		t.Error("Tick scheduled before SetFPS should be stale")
	}

	d.SetFPS(0)
	if d.Interval() != DefaultInterval {
		t.Errorf("Interval = %v, want default", d.Interval())
	}
}

func TestDriver_Reset(t *testing.T) {
	d := NewDriver(5, testInterval)
	d.Step(3)
	d.Reset()
	if d.Cursor() != 0 {
		t.Errorf("Cursor = %d, want 0", d.Cursor())
	}
}

func TestState_String(t *testing.T) {
	if Stopped.String() != "stopped" || Running.String() != "running" {
		t.Errorf("Unexpected state names %q %q", Stopped, Running)
	}
}
