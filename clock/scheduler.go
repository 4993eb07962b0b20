package clock

import "time"

// Scheduler is a polled periodic timer. Callers ask Due on every frame and
// tick the game when it returns true; nothing runs in the background.
type Scheduler struct {
	interval time.Duration
	next     time.Time
	running  bool
}

func NewScheduler(interval time.Duration) *Scheduler {
	return &Scheduler{interval: interval}
}

// Start arms the scheduler so the first step happens one interval after now
func (s *Scheduler) Start(now time.Time) {
	s.running = true
	s.next = now.Add(s.interval)
}

func (s *Scheduler) Stop() {
	s.running = false
}

func (s *Scheduler) Running() bool {
	return s.running
}

func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// SetInterval changes the period and re-arms from now, like clearing and
// restarting an interval timer. A stopped scheduler stays stopped.
func (s *Scheduler) SetInterval(d time.Duration, now time.Time) {
	s.interval = d
	if s.running {
		s.next = now.Add(d)
	}
}

// Due reports whether a step should run at now. It fires at most once per
// call and re-arms from now, so a stalled caller never gets a burst of steps.
func (s *Scheduler) Due(now time.Time) bool {
	if !s.running || now.Before(s.next) {
		return false
	}
	s.next = now.Add(s.interval)
	return true
}

// Remaining is the time left until the next step, zero when due or stopped
func (s *Scheduler) Remaining(now time.Time) time.Duration {
	if !s.running || !now.Before(s.next) {
		return 0
	}
	return s.next.Sub(now)
}
