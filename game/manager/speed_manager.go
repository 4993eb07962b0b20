package manager

import (
	"time"
)

// SpeedManager tracks the tick interval. Lower is faster.
type SpeedManager struct {
	base     time.Duration
	step     time.Duration
	min      time.Duration
	every    int
	interval time.Duration
}

func NewSpeedManager(base, step, min time.Duration, every int) *SpeedManager {
	return &SpeedManager{
		base:     base,
		step:     step,
		min:      min,
		every:    every,
		interval: base,
	}
}

func (sp *SpeedManager) Reset() {
	sp.interval = sp.base
}

func (sp *SpeedManager) Interval() time.Duration {
	return sp.interval
}

// OnScore speeds up when score is a positive multiple of the threshold.
// Returns true only if the interval actually changed.
func (sp *SpeedManager) OnScore(score int) bool {
	if score <= 0 || sp.every <= 0 || score%sp.every != 0 {
		return false
	}
	next := sp.interval - sp.step
	if next < sp.min {
		next = sp.min
	}
	if next == sp.interval {
		return false
	}
	sp.interval = next
	return true
}
