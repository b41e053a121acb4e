package trace

import (
	"fmt"
	"sync"
	"time"
)

// Heartbeat ticks while a calc command runs with --trace-heartbeat set. In a
// long `calc eval -f` batch, heartbeats with no expr span ending between them
// mean a worker is stuck on one line.
type Heartbeat struct {
	tracer Tracer
	every  time.Duration
	start  time.Time

	quit chan struct{}
	done chan struct{}
	once sync.Once
}

// StartHeartbeat returns nil when tracing is off or every is not positive;
// Stop on a nil Heartbeat is a no-op.
func StartHeartbeat(tracer Tracer, every time.Duration) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || every <= 0 {
		return nil
	}
	h := &Heartbeat{
		tracer: tracer,
		every:  every,
		start:  time.Now(),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go h.loop()
	return h
}

func (h *Heartbeat) loop() {
	defer close(h.done)

	ticker := time.NewTicker(h.every)
	defer ticker.Stop()

	for beat := uint64(1); ; beat++ {
		select {
		case now := <-ticker.C:
			h.tracer.Emit(&Event{
				Time:   now,
				Seq:    NextSeq(),
				Kind:   KindHeartbeat,
				Scope:  ScopeDriver,
				GID:    getGoroutineID(),
				Name:   "heartbeat",
				Detail: fmt.Sprintf("#%d +%s", beat, now.Sub(h.start).Round(time.Millisecond)),
			})
		case <-h.quit:
			return
		}
	}
}

// Stop ends the ticker and waits for the last event to be emitted. Safe to
// call more than once.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.quit) })
	<-h.done
}
