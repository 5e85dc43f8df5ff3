package trace

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

var spanIDs atomic.Uint64

// Span is an open unit of work: a run, one file or the engine pass over
// it. A nil or disabled span accepts every call and records nothing.
type Span struct {
	t      Tracer
	id     uint64
	parent uint64
	scope  Scope
	name   string
	start  time.Time

	mu    sync.Mutex
	attrs Attrs
	ended bool
}

// Start opens a span under the one already on ctx and returns a context
// carrying it. Scopes finer than the tracer level get a disabled span.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	t := FromContext(ctx)
	if Level(scope) > t.Level() {
		return ctx, nil
	}
	s := &Span{
		t:     t,
		id:    spanIDs.Add(1),
		scope: scope,
		name:  name,
		start: time.Now(),
	}
	if p := SpanFrom(ctx); p != nil {
		s.parent = p.id
	}
	if scope == ScopeFile {
		inflight.begin(name)
	}
	t.Emit(&Event{Time: s.start, Kind: KindBegin, Scope: scope, Span: s.id, Parent: s.parent, Name: name})
	return context.WithValue(ctx, spanKey{}, s), s
}

// ID returns the span id, 0 for a disabled span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Set merges a into the attributes reported when the span ends.
func (s *Span) Set(a Attrs) *Span {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	s.attrs.merge(a)
	s.mu.Unlock()
	return s
}

// Note records an instant event inside the span.
func (s *Span) Note(name, detail string) {
	if s == nil {
		return
	}
	s.t.Emit(&Event{Time: time.Now(), Kind: KindNote, Scope: s.scope, Span: s.id, Parent: s.parent, Name: name, Detail: detail})
}

// End closes the span. err, when set, lands in the attributes. Only the
// first call emits.
func (s *Span) End(err error) time.Duration {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		return 0
	}
	s.ended = true
	if err != nil {
		s.attrs.Err = err.Error()
	}
	attrs := s.attrs
	s.mu.Unlock()

	if s.scope == ScopeFile {
		inflight.end()
	}
	now := time.Now()
	elapsed := now.Sub(s.start)
	s.t.Emit(&Event{
		Time:    now,
		Kind:    KindEnd,
		Scope:   s.scope,
		Span:    s.id,
		Parent:  s.parent,
		Name:    s.name,
		Elapsed: elapsed,
		Attrs:   attrs,
	})
	return elapsed
}
