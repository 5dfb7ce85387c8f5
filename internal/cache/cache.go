// Package cache schedules telemetry refreshes. Each class of data carries
// its own staleness budget; the scheduler only answers "is this due" and
// records when a refresh was attempted, it never stores the data itself.
package cache

import "time"

// Class identifies one independently scheduled kind of telemetry.
type Class int

const (
	ClassSwap Class = iota
	ClassTopology
	ClassDistributions
	ClassDevices
	ClassGPUProcesses

	classCount
)

// String returns the class name used in log lines and staleness footers.
func (c Class) String() string {
	switch c {
	case ClassSwap:
		return "swap"
	case ClassTopology:
		return "topology"
	case ClassDistributions:
		return "distributions"
	case ClassDevices:
		return "devices"
	case ClassGPUProcesses:
		return "gpu-processes"
	default:
		return "unknown"
	}
}

// Budgets holds the maximum tolerated age per class. A zero budget means
// the class is due on every check.
type Budgets map[Class]time.Duration

// DefaultBudgets returns the refresh cadence the dashboard ships with.
// Slow-moving data (topology) is polled rarely; fast-moving data (GPU
// process residency) on nearly every tick.
func DefaultBudgets() Budgets {
	return Budgets{
		ClassSwap:          0,
		ClassTopology:      30 * time.Second,
		ClassDistributions: 5 * time.Second,
		ClassDevices:       10 * time.Second,
		ClassGPUProcesses:  time.Second,
	}
}

// Scheduler tracks the last refresh attempt per class against its budget.
// It is not safe for concurrent use; the dashboard drives it from a single
// update loop.
type Scheduler struct {
	budgets Budgets
	last    [classCount]time.Time
	now     func() time.Time
}

// NewScheduler builds a scheduler over the given budgets. Classes absent
// from budgets behave as zero-budget: always due.
func NewScheduler(budgets Budgets) *Scheduler {
	return &Scheduler{budgets: budgets, now: time.Now}
}

// Due reports whether the class has never been refreshed or its last
// refresh attempt is at least one budget old.
func (s *Scheduler) Due(c Class) bool {
	last := s.last[c]
	if last.IsZero() {
		return true
	}
	return s.now().Sub(last) >= s.budgets[c]
}

// MarkRefreshed records a refresh attempt for the class. Callers invoke it
// whether the fetch succeeded or failed, so a persistently failing source
// is retried at the class cadence instead of every tick.
func (s *Scheduler) MarkRefreshed(c Class) {
	s.last[c] = s.now()
}

// Age returns how long ago the class was last refreshed, and false when it
// never has been.
func (s *Scheduler) Age(c Class) (time.Duration, bool) {
	last := s.last[c]
	if last.IsZero() {
		return 0, false
	}
	return s.now().Sub(last), true
}

// Budget returns the staleness budget configured for the class.
func (s *Scheduler) Budget(c Class) time.Duration {
	return s.budgets[c]
}
