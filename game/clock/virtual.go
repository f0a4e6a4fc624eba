package clock

import "time"

type virtualTimer struct {
	id       int
	interval time.Duration
	next     time.Time
	fn       func()
	stopped  bool
}

// VirtualScheduler is a manual clock for tests and headless runs. Time only
// moves through Advance, which fires due callbacks synchronously.
type VirtualScheduler struct {
	now    time.Time
	seq    int
	timers []*virtualTimer
}

func NewVirtualScheduler(start time.Time) *VirtualScheduler {
	return &VirtualScheduler{now: start}
}

func (v *VirtualScheduler) Now() time.Time {
	return v.now
}

func (v *VirtualScheduler) Every(interval time.Duration, fn func()) func() {
	v.seq++
	t := &virtualTimer{
		id:       v.seq,
		interval: interval,
		next:     v.now.Add(interval),
		fn:       fn,
	}
	v.timers = append(v.timers, t)
	return func() {
		t.stopped = true
	}
}

// Advance moves the clock forward by d, firing every callback that falls due
// in chronological order. Callbacks may stop timers or schedule new ones.
func (v *VirtualScheduler) Advance(d time.Duration) {
	target := v.now.Add(d)
	for {
		due := v.nextDue(target)
		if due == nil {
			break
		}
		v.now = due.next
		due.next = due.next.Add(due.interval)
		due.fn()
	}
	v.now = target
	v.compact()
}

// Pending returns the number of live periodic callbacks.
func (v *VirtualScheduler) Pending() int {
	n := 0
	for _, t := range v.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

func (v *VirtualScheduler) nextDue(target time.Time) *virtualTimer {
	var best *virtualTimer
	for _, t := range v.timers {
		if t.stopped || t.next.After(target) {
			continue
		}
		if best == nil || t.next.Before(best.next) || (t.next.Equal(best.next) && t.id < best.id) {
			best = t
		}
	}
	return best
}

func (v *VirtualScheduler) compact() {
	live := v.timers[:0]
	for _, t := range v.timers {
		if !t.stopped {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(v.timers); i++ {
		v.timers[i] = nil
	}
	v.timers = live
}
