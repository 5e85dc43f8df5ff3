package trace

import (
	"io"
	"os"
	"sync"
)

// StreamTracer writes each event as it arrives. Write errors are dropped;
// tracing never fails a run.
type StreamTracer struct {
	mu     sync.Mutex
	w      io.Writer
	level  Level
	format Format
}

// NewStream writes events of up to level to w.
func NewStream(w io.Writer, level Level, f Format) *StreamTracer {
	if f == 0 {
		f = FormatText
	}
	return &StreamTracer{w: w, level: level, format: f}
}

func (t *StreamTracer) Emit(ev *Event) {
	if ev == nil || !t.level.Records(ev) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	stamp(ev)
	_, _ = t.w.Write(Encode(ev, t.format))
}

func (t *StreamTracer) Level() Level { return t.level }

// Close closes the writer unless it is a standard stream.
func (t *StreamTracer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.w == os.Stderr || t.w == os.Stdout {
		return nil
	}
	if c, ok := t.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
