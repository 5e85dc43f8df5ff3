package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"
)

// Level is the finest scope a tracer records.
type Level uint8

const (
	LevelOff Level = iota
	LevelRun
	LevelFile
	LevelPass
)

var levelNames = [...]string{"off", "run", "file", "pass"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel reads a level name.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level %q (expected off|run|file|pass)", s)
}

// Records reports whether ev passes the level. Heartbeats pass any
// enabled level.
func (l Level) Records(ev *Event) bool {
	if l == LevelOff {
		return false
	}
	return ev.Kind == KindHeartbeat || Level(ev.Scope) <= l
}

// Tracer receives trace events. Emit must be safe for concurrent use.
type Tracer interface {
	Emit(ev *Event)
	Level() Level
	Close() error
}

type nop struct{}

func (nop) Emit(*Event)  {}
func (nop) Level() Level { return LevelOff }
func (nop) Close() error { return nil }

// Nop records nothing.
var Nop Tracer = nop{}

var seq atomic.Uint64

// stamp gives ev the next global sequence number.
func stamp(ev *Event) { ev.Seq = seq.Add(1) }

// Mode selects where events go.
type Mode uint8

const (
	ModeStream Mode = iota + 1 // written as they happen
	ModeRing                   // last events kept, dumped on exit
	ModeBoth
)

// ParseMode reads a storage mode name.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "stream":
		return ModeStream, nil
	case "ring":
		return ModeRing, nil
	case "both":
		return ModeBoth, nil
	}
	return ModeRing, fmt.Errorf("invalid trace mode %q (expected stream|ring|both)", s)
}

// Config describes the tracer built by New.
type Config struct {
	Level    Level
	Mode     Mode
	Path     string    // "" or "-" is stderr
	Output   io.Writer // overrides Path
	RingSize int
}

// New builds the tracer for cfg. With ModeBoth the stream and the ring
// both receive every event.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	switch cfg.Mode {
	case ModeRing:
		return NewRing(cfg.RingSize, cfg.Level), nil
	case ModeStream, ModeBoth:
	default:
		return nil, fmt.Errorf("unknown trace mode %d", cfg.Mode)
	}
	w := cfg.Output
	if w == nil {
		var err error
		if w, err = openPath(cfg.Path); err != nil {
			return nil, err
		}
	}
	stream := NewStream(w, cfg.Level, FormatFor(cfg.Path))
	if cfg.Mode == ModeStream {
		return stream, nil
	}
	return tee{stream, NewRing(cfg.RingSize, cfg.Level)}, nil
}

func openPath(path string) (io.Writer, error) {
	if path == "" || path == "-" {
		return os.Stderr, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("open trace output: %w", err)
	}
	return f, nil
}

// tee fans events out to several tracers.
type tee []Tracer

func (t tee) Emit(ev *Event) {
	for _, sub := range t {
		cp := *ev
		sub.Emit(&cp)
	}
}

func (t tee) Level() Level {
	var l Level
	for _, sub := range t {
		l = max(l, sub.Level())
	}
	return l
}

func (t tee) Close() error {
	var first error
	for _, sub := range t {
		if err := sub.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
