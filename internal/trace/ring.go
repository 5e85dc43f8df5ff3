package trace

import (
	"io"
	"sync"
)

// RingTracer keeps the last events in memory for a dump at exit.
type RingTracer struct {
	mu    sync.Mutex
	buf   []Event
	next  int
	n     int
	level Level
}

// NewRing keeps up to size events; size <= 0 means 4096.
func NewRing(size int, level Level) *RingTracer {
	if size <= 0 {
		size = 4096
	}
	return &RingTracer{buf: make([]Event, size), level: level}
}

func (t *RingTracer) Emit(ev *Event) {
	if ev == nil || !t.level.Records(ev) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	stamp(ev)
	t.buf[t.next] = *ev
	t.next = (t.next + 1) % len(t.buf)
	if t.n < len(t.buf) {
		t.n++
	}
}

// Events returns the kept events, oldest first.
func (t *RingTracer) Events() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, 0, t.n)
	start := (t.next - t.n + len(t.buf)) % len(t.buf)
	for i := range t.n {
		out = append(out, t.buf[(start+i)%len(t.buf)])
	}
	return out
}

// Dump writes the kept events to w.
func (t *RingTracer) Dump(w io.Writer, f Format) error {
	for _, ev := range t.Events() {
		if _, err := w.Write(Encode(&ev, f)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Level() Level { return t.level }

func (t *RingTracer) Close() error { return nil }
