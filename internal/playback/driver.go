// Package playback advances a looping cursor over the loaded frames on a
// fixed interval and pairs it with the frame list in a Session.
package playback

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultInterval plays six frames per second.
const DefaultInterval = time.Second / 6

// State of a Driver.
type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// TickMsg is delivered by the command returned from Start and Update.
type TickMsg struct {
	Time time.Time
	ID   int

	gen int
}

// Driver moves a cursor through count frames, one step per tick.
//
// Each Start or Stop bumps a generation counter and a tick is honoured only if
// it carries the current generation, so at most one tick stream is ever live.
// All methods are meant to be called from the bubbletea update loop.
type Driver struct {
	id       int
	gen      int
	interval time.Duration
	state    State
	cursor   int
	count    int
}

// NewDriver returns a stopped driver over count frames. A non-positive
// interval falls back to DefaultInterval.
func NewDriver(count int, interval time.Duration) *Driver {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Driver{
		id:       nextID(),
		interval: interval,
		count:    max(count, 0),
	}
}

// ID identifies the driver in TickMsg.
func (d *Driver) ID() int { return d.id }

// State returns Running or Stopped.
func (d *Driver) State() State { return d.state }

// Running reports whether a tick stream is live.
func (d *Driver) Running() bool { return d.state == Running }

// Cursor is the index of the current frame.
func (d *Driver) Cursor() int { return d.cursor }

// Count is the number of frames the cursor cycles through.
func (d *Driver) Count() int { return d.count }

// Interval is the delay between two ticks.
func (d *Driver) Interval() time.Duration { return d.interval }

// Start stops any running stream and schedules a new one.
func (d *Driver) Start() tea.Cmd {
	d.Stop()
	d.state = Running
	d.gen++
	return d.tick()
}

// Stop cancels the running stream. Stopping a stopped driver does nothing.
func (d *Driver) Stop() {
	if d.state == Stopped {
		return
	}
	d.state = Stopped
	d.gen++
}

// Update handles a TickMsg for this driver: it advances the cursor and
// schedules the next tick. Anything else, including stale ticks, returns nil.
func (d *Driver) Update(msg tea.Msg) tea.Cmd {
	m, ok := msg.(TickMsg)
	if !ok || m.ID != d.id || m.gen != d.gen || d.state != Running {
		return nil
	}
	d.Advance()
	return d.tick()
}

// Advance moves the cursor one frame forward, wrapping at count.
func (d *Driver) Advance() {
	d.Step(1)
}

// Step moves the cursor by delta frames, wrapping in both directions.
func (d *Driver) Step(delta int) {
	if d.count == 0 {
		return
	}
	d.cursor = ((d.cursor+delta)%d.count + d.count) % d.count
}

// Reset moves the cursor back to the first frame.
func (d *Driver) Reset() {
	d.cursor = 0
}

// SetInterval changes the tick period. A running driver restarts so the new
// period applies to the next tick; the returned command must then be run.
func (d *Driver) SetInterval(interval time.Duration) tea.Cmd {
	if interval <= 0 {
		interval = DefaultInterval
	}
	d.interval = interval
	if d.state == Running {
		return d.Start()
	}
	return nil
}

// SetFPS is SetInterval expressed in frames per second.
func (d *Driver) SetFPS(fps int) tea.Cmd {
	if fps <= 0 {
		return d.SetInterval(DefaultInterval)
	}
	return d.SetInterval(time.Second / time.Duration(fps))
}

// FPS returns the rounded frame rate.
func (d *Driver) FPS() int {
	return int((time.Second + d.interval/2) / d.interval)
}

func (d *Driver) tick() tea.Cmd {
	id, gen := d.id, d.gen
	return tea.Tick(d.interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, ID: id, gen: gen}
	})
}
