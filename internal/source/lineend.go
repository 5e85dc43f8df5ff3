package source

import (
	"fmt"
	"strings"
)

// LineEnd selects how logical lines are joined when serialising.
type LineEnd uint8

const (
	// LineEndDefault keeps whatever the input used most.
	LineEndDefault LineEnd = iota
	LineEndWindows
	LineEndLinux
	LineEndMacOld
)

func (e LineEnd) String() string {
	switch e {
	case LineEndWindows:
		return "windows"
	case LineEndLinux:
		return "linux"
	case LineEndMacOld:
		return "macold"
	default:
		return "default"
	}
}

// Sequence returns the byte sequence; LineEndDefault maps to "\n".
func (e LineEnd) Sequence() string {
	switch e {
	case LineEndWindows:
		return "\r\n"
	case LineEndMacOld:
		return "\r"
	default:
		return "\n"
	}
}

// ParseLineEnd accepts windows|crlf, linux|lf, macold|cr and default.
func ParseLineEnd(s string) (LineEnd, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return LineEndDefault, nil
	case "windows", "crlf":
		return LineEndWindows, nil
	case "linux", "lf":
		return LineEndLinux, nil
	case "macold", "cr":
		return LineEndMacOld, nil
	}
	return LineEndDefault, fmt.Errorf("invalid line end %q (expected default|windows|linux|macold)", s)
}

// DetectLineEnd returns the most frequent ending; ties favour linux.
// Text without any line ending reports LineEndLinux.
func DetectLineEnd(text string) LineEnd {
	var crlf, lf, cr int
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lf++
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				crlf++
				i++
			} else {
				cr++
			}
		}
	}
	switch {
	case crlf > lf && crlf >= cr:
		return LineEndWindows
	case cr > lf && cr > crlf:
		return LineEndMacOld
	default:
		return LineEndLinux
	}
}

// Resolve turns LineEndDefault into the detected ending.
func (e LineEnd) Resolve(detected LineEnd) LineEnd {
	if e != LineEndDefault {
		return e
	}
	if detected == LineEndDefault {
		return LineEndLinux
	}
	return detected
}
