package components

import "time"

// Stopper cancels a pending timer. Stop reports whether the call
// prevented the timer from firing.
type Stopper interface {
	Stop() bool
}

// Clock arms one-shot timers.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Stopper
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Stopper {
	return time.AfterFunc(d, f)
}

// RealClock is backed by time.AfterFunc.
var RealClock Clock = realClock{}
