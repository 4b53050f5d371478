// Package timer implements the per-turn and post-defeat countdowns.
//
// A Countdown never sleeps or spawns goroutines of its own. Each one-second
// step is requested from a Scheduler, and the owner feeds the step back in
// through Fire while holding whatever lock guards its state. Steps that
// belong to a cancelled or replaced countdown carry an old generation number
// and are dropped.
package timer

import (
	"math"
	"time"
)

const (
	BaseTime        = 60
	MinTime         = 15
	Multiplier      = 0.8
	WarningAt       = 10
	ContinueSeconds = 10
)

// Interval is the length of one countdown step.
const Interval = time.Second

// TimeForLevel is the turn budget in seconds for level:
// max(MinTime, floor(BaseTime * Multiplier^(level-1))).
func TimeForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	t := int(math.Floor(BaseTime * math.Pow(Multiplier, float64(level-1))))
	return max(MinTime, t)
}

// InWarning reports whether the display should switch to its warning state.
func InWarning(remaining int) bool {
	return remaining <= WarningAt
}

// Stopper cancels a scheduled callback. *time.Timer implements it.
type Stopper interface {
	Stop() bool
}

// Scheduler runs f once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Stopper
}

// Clock schedules on the wall clock.
type Clock struct{}

func (Clock) AfterFunc(d time.Duration, f func()) Stopper {
	return time.AfterFunc(d, f)
}

// Countdown counts whole seconds down to zero. It is not safe for
// concurrent use.
type Countdown struct {
	sched Scheduler
	wake  func(gen uint64)

	remaining int
	budget    int
	gen       uint64
	running   bool
	pending   Stopper
}

// NewCountdown creates a stopped countdown. wake is invoked from the
// scheduler for every elapsed step and should call Fire with gen.
func NewCountdown(sched Scheduler, wake func(gen uint64)) *Countdown {
	return &Countdown{sched: sched, wake: wake}
}

// Start replaces any running countdown with a fresh one of seconds.
func (c *Countdown) Start(seconds int) {
	c.Stop()
	c.gen++
	c.remaining = seconds
	c.budget = seconds
	c.running = true
	c.arm()
}

// Stop cancels the countdown. Stopping a stopped countdown does nothing.
func (c *Countdown) Stop() {
	if !c.running {
		return
	}
	c.running = false
	c.gen++
	c.disarm()
}

// Fire applies one step for generation gen. ok is false when the step is
// stale and was ignored. When expired is true the countdown has stopped
// itself; it is not re-armed.
func (c *Countdown) Fire(gen uint64) (remaining int, expired, ok bool) {
	if !c.running || gen != c.gen {
		return c.remaining, false, false
	}
	c.pending = nil
	c.remaining--
	if c.remaining <= 0 {
		c.remaining = 0
		c.running = false
		c.gen++
		return 0, true, true
	}
	c.arm()
	return c.remaining, false, true
}

func (c *Countdown) arm() {
	gen := c.gen
	c.pending = c.sched.AfterFunc(Interval, func() { c.wake(gen) })
}

func (c *Countdown) disarm() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}

func (c *Countdown) Remaining() int { return c.remaining }
func (c *Countdown) Budget() int { return c.budget }
func (c *Countdown) Running() bool { return c.running }

// generation identifies the current run; steps for older runs are stale.
func (c *Countdown) generation() uint64 { return c.gen }

// Fraction is the share of the budget still remaining, in [0, 1].
func (c *Countdown) Fraction() float64 {
	if c.budget <= 0 {
		return 0
	}
	return float64(c.remaining) / float64(c.budget)
}

// Manager owns the turn countdown and the continue countdown.
type Manager struct {
	Turn     *Countdown
	Continue *Countdown
}

// NewManager wires both countdowns to sched. onTurn and onContinue receive
// the generation of each elapsed step.
func NewManager(sched Scheduler, onTurn, onContinue func(gen uint64)) *Manager {
	return &Manager{
		Turn:     NewCountdown(sched, onTurn),
		Continue: NewCountdown(sched, onContinue),
	}
}

// StartTurn starts the turn countdown with the budget for level and
// returns that budget.
func (m *Manager) StartTurn(level int) int {
	secs := TimeForLevel(level)
	m.Turn.Start(secs)
	return secs
}

// StartContinue starts the fixed post-defeat countdown.
func (m *Manager) StartContinue() {
	m.Continue.Start(ContinueSeconds)
}

// StopAll stops both countdowns.
func (m *Manager) StopAll() {
	m.Turn.Stop()
	m.Continue.Stop()
}
