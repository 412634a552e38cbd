package sched

import "time"

type afterTask struct {
	delay   time.Duration
	elapsed time.Duration
	fn      func()
}

func (t *afterTask) Step(dt time.Duration) bool {
	t.elapsed += dt
	if t.elapsed < t.delay {
		return false
	}
	if t.fn != nil {
		t.fn()
	}
	return true
}

// After returns a task that runs fn once d has elapsed.
func After(d time.Duration, fn func()) Task {
	return &afterTask{delay: d, fn: fn}
}

// Until returns a task that polls cond every tick and runs fn the first
// time it holds.
func Until(cond func() bool, fn func()) Task {
	return Func(func(time.Duration) bool {
		if !cond() {
			return false
		}
		if fn != nil {
			fn()
		}
		return true
	})
}

type everyTask struct {
	period  time.Duration
	elapsed time.Duration
	fn      func() bool
}

func (t *everyTask) Step(dt time.Duration) bool {
	t.elapsed += dt
	for t.elapsed >= t.period {
		t.elapsed -= t.period
		if !t.fn() {
			return true
		}
	}
	return false
}

// Every returns a task that calls fn once per period until fn returns
// false. A non-positive period is treated as one nanosecond.
func Every(period time.Duration, fn func() bool) Task {
	if period <= 0 {
		period = time.Nanosecond
	}
	return &everyTask{period: period, fn: fn}
}

// Delay is an embeddable countdown for tasks that wait between phases.
type Delay struct {
	remaining time.Duration
}

// Start arms the delay.
func (d *Delay) Start(dur time.Duration) {
	d.remaining = dur
}

// Waiting consumes dt and reports whether time is still left.
// Leftover time beyond zero is discarded.
func (d *Delay) Waiting(dt time.Duration) bool {
	if d.remaining <= 0 {
		return false
	}
	d.remaining -= dt
	return d.remaining > 0
}

// Active reports whether the delay is still counting down.
func (d *Delay) Active() bool {
	return d.remaining > 0
}
