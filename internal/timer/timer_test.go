package timer

import (
	"testing"
	"time"
)

func TestTimeForLevel(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{0, 60},
		{1, 60},
		{2, 48},
		{3, 38},
		{4, 30},
		{5, 24},
		{6, 19},
		{7, 15},
		{8, 15},
		{15, 15},
		{20, 15},
	}
	for _, tt := range tests {
		if got := TimeForLevel(tt.level); got != tt.want {
			t.Errorf("TimeForLevel(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestTimeForLevel_MonotonicAndBounded(t *testing.T) {
	prev := TimeForLevel(1)
	for level := 2; level <= 40; level++ {
		got := TimeForLevel(level)
		if got > prev {
			t.Errorf("TimeForLevel(%d) = %d increased from %d", level, got, prev)
		}
		if got < MinTime {
			t.Errorf("TimeForLevel(%d) = %d below minimum", level, got)
		}
		prev = got
	}
}

func TestInWarning(t *testing.T) {
	if InWarning(11) {
		t.Error("Expected 11 seconds not to warn")
	}
	if !InWarning(10) || !InWarning(0) {
		t.Error("Expected 10 seconds and below to warn")
	}
}

// stepper wires a countdown to a Manual scheduler and records what Fire
// reported.
type stepper struct {
	sched   *Manual
	c       *Countdown
	ticks   []int
	expired int
	stale   int
}

func newStepper() *stepper {
	s := &stepper{sched: &Manual{}}
	s.c = NewCountdown(s.sched, func(gen uint64) {
		rem, exp, ok := s.c.Fire(gen)
		if !ok {
			s.stale++
			return
		}
		s.ticks = append(s.ticks, rem)
		if exp {
			s.expired++
		}
	})
	return s
}

func TestCountdown_RunsToExpiry(t *testing.T) {
	s := newStepper()
	s.c.Start(3)

	if !s.c.Running() || s.c.Remaining() != 3 || s.c.Budget() != 3 {
		t.Fatalf("Unexpected state after Start: running=%v remaining=%d", s.c.Running(), s.c.Remaining())
	}

	s.sched.Advance(5)

	want := []int{2, 1, 0}
	if len(s.ticks) != len(want) {
		t.Fatalf("Expected ticks %v, got %v", want, s.ticks)
	}
	for i := range want {
		if s.ticks[i] != want[i] {
			t.Errorf("tick %d = %d, want %d", i, s.ticks[i], want[i])
		}
	}
	if s.expired != 1 {
		t.Errorf("Expected one expiry, got %d", s.expired)
	}
	if s.c.Running() {
		t.Error("Expected countdown to stop itself at zero")
	}
	if s.sched.Pending() != 0 {
		t.Errorf("Expected no re-arm after expiry, %d pending", s.sched.Pending())
	}
}

func TestCountdown_StartReplacesRunning(t *testing.T) {
	s := newStepper()
	s.c.Start(5)
	s.sched.Advance(2)
	s.c.Start(8)

	if s.sched.Pending() != 1 {
		t.Fatalf("Expected exactly one pending step after restart, got %d", s.sched.Pending())
	}
	s.sched.Step()
	if got := s.c.Remaining(); got != 7 {
		t.Errorf("Expected 7 remaining after restart and one step, got %d", got)
	}
	if s.c.Budget() != 8 {
		t.Errorf("Expected budget 8, got %d", s.c.Budget())
	}
}

func TestCountdown_StopIsIdempotent(t *testing.T) {
	s := newStepper()
	s.c.Start(4)
	s.c.Stop()
	gen := s.c.generation()
	rem := s.c.Remaining()

	s.c.Stop()

	if s.c.generation() != gen || s.c.Remaining() != rem || s.c.Running() {
		t.Error("Expected second Stop to have no effect")
	}
	if s.sched.Pending() != 0 {
		t.Errorf("Expected stop to cancel the pending step, %d pending", s.sched.Pending())
	}
}

func TestCountdown_StaleGenerationDropped(t *testing.T) {
	s := newStepper()
	s.c.Start(5)
	old := s.c.generation()
	s.c.Start(5)

	if _, _, ok := s.c.Fire(old); ok {
		t.Error("Expected step from a replaced run to be ignored")
	}
	if s.c.Remaining() != 5 {
		t.Errorf("Expected stale step not to decrement, remaining %d", s.c.Remaining())
	}
}

func TestCountdown_Fraction(t *testing.T) {
	s := newStepper()
	if s.c.Fraction() != 0 {
		t.Error("Expected zero fraction before start")
	}
	s.c.Start(4)
	s.sched.Step()
	if got := s.c.Fraction(); got != 0.75 {
		t.Errorf("Expected fraction 0.75, got %v", got)
	}
}

func TestManager(t *testing.T) {
	sched := &Manual{}
	var turnSteps, contSteps int
	var m *Manager
	m = NewManager(sched,
		func(gen uint64) {
			if _, _, ok := m.Turn.Fire(gen); ok {
				turnSteps++
			}
		},
		func(gen uint64) {
			if _, _, ok := m.Continue.Fire(gen); ok {
				contSteps++
			}
		},
	)

	if got := m.StartTurn(5); got != 24 {
		t.Errorf("Expected level 5 budget 24, got %d", got)
	}
	m.StartContinue()
	if m.Continue.Remaining() != ContinueSeconds {
		t.Errorf("Expected continue countdown of %d, got %d", ContinueSeconds, m.Continue.Remaining())
	}

	sched.Step()
	if turnSteps != 1 || contSteps != 1 {
		t.Errorf("Expected both countdowns to step independently, got turn=%d continue=%d", turnSteps, contSteps)
	}

	m.StopAll()
	m.StopAll()
	if m.Turn.Running() || m.Continue.Running() {
		t.Error("Expected StopAll to stop both countdowns")
	}
	if sched.Step() != 0 {
		t.Error("Expected no callbacks after StopAll")
	}
}

func TestClock_Fires(t *testing.T) {
	done := make(chan struct{})
	Clock{}.AfterFunc(time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Clock callback never fired")
	}
}
