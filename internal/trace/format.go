package trace

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Format is the encoding of written events.
type Format uint8

const (
	FormatText   Format = iota + 1 // one readable line per event
	FormatNDJSON                   // one JSON object per line
)

// ParseFormat reads a format name. "" and "auto" give 0, which FormatFor
// resolves from the output path.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return 0, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	}
	return 0, fmt.Errorf("invalid trace format %q (expected auto|text|ndjson)", s)
}

// FormatFor picks the format for an output path: NDJSON for .ndjson and
// .jsonl files, text otherwise.
func FormatFor(path string) Format {
	if strings.HasSuffix(path, ".ndjson") || strings.HasSuffix(path, ".jsonl") {
		return FormatNDJSON
	}
	return FormatText
}

// Encode renders ev with a trailing newline.
func Encode(ev *Event, f Format) []byte {
	if f == FormatNDJSON {
		return encodeJSON(ev)
	}
	return encodeText(ev)
}

type jsonEvent struct {
	Time     string `json:"time"`
	Seq      uint64 `json:"seq"`
	Kind     string `json:"kind"`
	Scope    string `json:"scope"`
	Span     uint64 `json:"span,omitempty"`
	Parent   uint64 `json:"parent,omitempty"`
	Name     string `json:"name"`
	Detail   string `json:"detail,omitempty"`
	Micros   int64  `json:"elapsed_us,omitempty"`
	Grammar  string `json:"grammar,omitempty"`
	Files    int    `json:"files,omitempty"`
	Lines    int    `json:"lines,omitempty"`
	Checksum int64  `json:"checksum_diff,omitempty"`
	Changed  bool   `json:"changed,omitempty"`
	Cached   bool   `json:"cached,omitempty"`
	Err      string `json:"error,omitempty"`
}

func encodeJSON(ev *Event) []byte {
	data, _ := json.Marshal(jsonEvent{
		Time:     ev.Time.Format(time.RFC3339Nano),
		Seq:      ev.Seq,
		Kind:     ev.Kind.String(),
		Scope:    ev.Scope.String(),
		Span:     ev.Span,
		Parent:   ev.Parent,
		Name:     ev.Name,
		Detail:   ev.Detail,
		Micros:   ev.Elapsed.Microseconds(),
		Grammar:  ev.Attrs.Grammar,
		Files:    ev.Attrs.Files,
		Lines:    ev.Attrs.Lines,
		Checksum: ev.Attrs.Checksum,
		Changed:  ev.Attrs.Changed,
		Cached:   ev.Attrs.Cached,
		Err:      ev.Attrs.Err,
	})
	return append(data, '\n')
}

var marks = map[Kind]string{KindBegin: "→", KindEnd: "←", KindNote: "•", KindHeartbeat: "♡"}

// encodeText writes "[seq] <pad>mark name (detail) elapsed {attrs}", the
// pad growing with the scope.
func encodeText(ev *Event) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "[%6d] ", ev.Seq)
	if ev.Scope > ScopeRun {
		b.WriteString(strings.Repeat("  ", int(ev.Scope-ScopeRun)))
	}
	b.WriteString(marks[ev.Kind])
	b.WriteByte(' ')
	b.WriteString(ev.Name)
	if ev.Detail != "" {
		b.WriteString(" (" + ev.Detail + ")")
	}
	if ev.Kind == KindEnd {
		b.WriteString(" " + ev.Elapsed.Round(time.Microsecond).String())
	}
	if attrs := textAttrs(ev.Attrs); attrs != "" {
		b.WriteString(" {" + attrs + "}")
	}
	b.WriteByte('\n')
	return []byte(b.String())
}

func textAttrs(a Attrs) string {
	var parts []string
	if a.Grammar != "" {
		parts = append(parts, "grammar="+a.Grammar)
	}
	if a.Files != 0 {
		parts = append(parts, "files="+strconv.Itoa(a.Files))
	}
	if a.Lines != 0 {
		parts = append(parts, "lines="+strconv.Itoa(a.Lines))
	}
	if a.Checksum != 0 {
		parts = append(parts, "checksum_diff="+strconv.FormatInt(a.Checksum, 10))
	}
	if a.Changed {
		parts = append(parts, "changed")
	}
	if a.Cached {
		parts = append(parts, "cached")
	}
	if a.Err != "" {
		parts = append(parts, "error="+strconv.Quote(a.Err))
	}
	return strings.Join(parts, " ")
}
