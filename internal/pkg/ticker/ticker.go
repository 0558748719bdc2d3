package ticker

import (
	"sync"
	"time"
)

// TickFunc receives the elapsed delta since the previous tick and the tick
// ordinal since the driver last started.
type TickFunc func(delta time.Duration, ordinal uint64)

// Driver emits elapsed-time deltas at a fixed cadence from a single shared
// goroutine. time.Now carries a monotonic reading on every supported
// platform, so deltas do not drift when the wall clock is adjusted; a
// negative delta is clamped to zero and the tick skipped.
//
// Exactly one goroutine runs per driver no matter how often Sync is called.
type Driver struct {
	mu       sync.Mutex
	interval time.Duration
	tick     TickFunc
	stop     chan struct{}
	done     chan struct{}
}

const DefaultInterval = 200 * time.Millisecond

func New(interval time.Duration, tick TickFunc) *Driver {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Driver{interval: interval, tick: tick}
}

// Sync starts or stops the emitting goroutine to match the desired state.
// Callers invoke it after every operation that can change whether the
// session is actively running.
func (d *Driver) Sync(active bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if active {
		d.startLocked()
	} else {
		d.stopLocked()
	}
}

// Stop cancels future emissions. A tick already in flight may still apply;
// its delta is bounded by the cadence so this is harmless.
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
}

// Running reports whether the emitting goroutine is active.
func (d *Driver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stop != nil
}

func (d *Driver) startLocked() {
	if d.stop != nil {
		return
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	d.stop = stop
	d.done = done

	go func() {
		defer close(done)
		t := time.NewTicker(d.interval)
		defer t.Stop()
		// lastTick resets on every start so a stale reading from a
		// previous run can never produce an oversized first delta.
		lastTick := time.Now()
		var ordinal uint64
		for {
			select {
			case <-stop:
				return
			case now := <-t.C:
				delta := now.Sub(lastTick)
				lastTick = now
				if delta <= 0 {
					continue
				}
				ordinal++
				d.tick(delta, ordinal)
			}
		}
	}()
}

func (d *Driver) stopLocked() {
	if d.stop == nil {
		return
	}
	close(d.stop)
	<-d.done
	d.stop = nil
	d.done = nil
}
