package trace

import "time"

// Kind is the type of a trace event.
type Kind uint8

const (
	KindBegin     Kind = iota + 1 // span opened
	KindEnd                       // span closed
	KindNote                      // instant event inside a span
	KindHeartbeat                 // liveness tick
)

func (k Kind) String() string {
	switch k {
	case KindBegin:
		return "begin"
	case KindEnd:
		return "end"
	case KindNote:
		return "note"
	case KindHeartbeat:
		return "heartbeat"
	}
	return "unknown"
}

// Scope is the granularity of an event. A run holds files, a file holds
// the engine pass over its bytes.
type Scope uint8

const (
	ScopeRun Scope = iota + 1
	ScopeFile
	ScopePass
)

func (s Scope) String() string {
	switch s {
	case ScopeRun:
		return "run"
	case ScopeFile:
		return "file"
	case ScopePass:
		return "pass"
	}
	return "unknown"
}

// Attrs are the formatter facts carried by an event. Zero fields are not
// printed.
type Attrs struct {
	Grammar  string // language the file was formatted as
	Files    int    // files found by a run
	Lines    int    // output lines of a pass
	Checksum int64  // output checksum minus input checksum
	Changed  bool
	Cached   bool
	Err      string
}

// merge copies the non-zero fields of b over a.
func (a *Attrs) merge(b Attrs) {
	if b.Grammar != "" {
		a.Grammar = b.Grammar
	}
	if b.Files != 0 {
		a.Files = b.Files
	}
	if b.Lines != 0 {
		a.Lines = b.Lines
	}
	if b.Checksum != 0 {
		a.Checksum = b.Checksum
	}
	a.Changed = a.Changed || b.Changed
	a.Cached = a.Cached || b.Cached
	if b.Err != "" {
		a.Err = b.Err
	}
}

// Event is one trace record.
type Event struct {
	Time    time.Time
	Seq     uint64 // assigned by the sink
	Kind    Kind
	Scope   Scope
	Span    uint64
	Parent  uint64
	Name    string // "fmt", a file path, "rewrite" or a note code
	Detail  string
	Elapsed time.Duration // set on KindEnd
	Attrs   Attrs
}
