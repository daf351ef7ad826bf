package debounce

import "time"

// Timer is the cancellable handle returned by Clock.AfterFunc.
type Timer interface {
	Stop() bool
}

// Clock schedules delayed callbacks. Tests swap in a manual clock to advance
// time deterministically.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type runtimeClock struct{}

func (runtimeClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RuntimeClock returns the Clock backed by the Go runtime timers.
func RuntimeClock() Clock {
	return runtimeClock{}
}
