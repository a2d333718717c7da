package inspect

import "time"

// Timer is a pending callback.
type Timer interface {
	Stop() bool
}

// Scheduler starts delayed callbacks. Callbacks run on an arbitrary goroutine.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
