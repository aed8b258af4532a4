// Package chrono measures wall-clock time between named checkpoints of a single run.
package chrono

import (
	"time"

	"github.com/benbjohnson/clock"
	"golang.org/x/xerrors"
)

// StartLap is the name of the synthetic lap every run begins with.
const StartLap = "start"

var ErrLapNotFound = xerrors.New("lap not found")

// Lap is one checkpoint: the time elapsed since the previous checkpoint and
// the moment it was taken.
type Lap struct {
	Name      string
	Duration  time.Duration
	Timestamp time.Time
}

// Timing is a lap stripped of its timestamp, the shape consumed by aggregators.
type Timing struct {
	Name     string
	Duration time.Duration
}

// Chronometer records sequential laps of one run. Create it with New or
// NewWithClock. It is owned by a single goroutine; concurrent Lap calls need
// external locking.
type Chronometer struct {
	clock clock.Clock
	laps  []Lap
	// name -> position in laps of the latest lap with that name
	index map[string]int
}

// New returns a started chronometer on the real clock.
func New() *Chronometer {
	return NewWithClock(clock.New())
}

func NewWithClock(c clock.Clock) *Chronometer {
	ch := &Chronometer{clock: c}
	ch.Start()
	return ch
}

// Start discards all laps and begins a new run at the current time.
func (c *Chronometer) Start() {
	c.laps = []Lap{{Name: StartLap, Timestamp: c.clock.Now()}}
	c.index = map[string]int{StartLap: 0}
}

// Lap records a checkpoint named name. Names may repeat; lookups return the
// latest one while Laps keeps all of them.
func (c *Chronometer) Lap(name string) {
	t := c.clock.Now()
	prev := c.laps[len(c.laps)-1]
	c.laps = append(c.laps, Lap{
		Name:      name,
		Duration:  t.Sub(prev.Timestamp),
		Timestamp: t,
	})
	c.index[name] = len(c.laps) - 1
}

// LapTime returns the duration of the latest lap recorded under name.
func (c *Chronometer) LapTime(name string) (time.Duration, error) {
	i, ok := c.index[name]
	if !ok {
		return 0, xerrors.Errorf("lap %q: %w", name, ErrLapNotFound)
	}
	return c.laps[i].Duration, nil
}

// LapTimes returns a fresh snapshot of every lap after the start one, in
// recording order.
func (c *Chronometer) LapTimes() []Timing {
	res := make([]Timing, 0, len(c.laps)-1)
	for _, l := range c.laps[1:] {
		res = append(res, Timing{Name: l.Name, Duration: l.Duration})
	}
	return res
}

// Laps returns a copy of all laps including the start one.
func (c *Chronometer) Laps() []Lap {
	res := make([]Lap, len(c.laps))
	copy(res, c.laps)
	return res
}

// TotalTime is the time between the start and the last lap.
func (c *Chronometer) TotalTime() time.Duration {
	return c.laps[len(c.laps)-1].Timestamp.Sub(c.laps[0].Timestamp)
}
