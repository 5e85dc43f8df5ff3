package style

import (
	"fmt"
	"strings"
)

// BraceMode is the base brace placement policy.
type BraceMode uint8

const (
	BraceNone BraceMode = iota
	BraceAttach
	BraceBreak
	BraceLinux
	BraceRunIn
)

var braceModeNames = []string{"none", "attach", "break", "linux", "run-in"}

func (m BraceMode) String() string { return nameOf(braceModeNames, int(m)) }

// Preset is a named style.
type Preset uint8

const (
	PresetNone Preset = iota
	PresetAllman
	PresetJava
	PresetKR
	PresetStroustrup
	PresetWhitesmith
	PresetVTK
	PresetRatliff
	PresetGNU
	PresetLinux
	PresetHorstmann
	Preset1TBS
	PresetGoogle
	PresetMozilla
	PresetWebKit
	PresetPico
	PresetLisp
)

var presetNames = []string{
	"none", "allman", "java", "kr", "stroustrup", "whitesmith", "vtk", "ratliff",
	"gnu", "linux", "horstmann", "1tbs", "google", "mozilla", "webkit", "pico", "lisp",
}

var presetAliases = map[string]Preset{
	"bsd":        PresetAllman,
	"break":      PresetAllman,
	"attach":     PresetJava,
	"k&r":        PresetKR,
	"k/r":        PresetKR,
	"banner":     PresetRatliff,
	"knf":        PresetLinux,
	"run-in":     PresetHorstmann,
	"otbs":       Preset1TBS,
	"lisp-style": PresetLisp,
	"python":     PresetLisp,
}

func (p Preset) String() string { return nameOf(presetNames, int(p)) }

// IndentKind selects the indentation characters.
type IndentKind uint8

const (
	IndentSpaces IndentKind = iota
	// IndentTab uses tabs for indent levels and spaces for alignment.
	IndentTab
	// IndentForceTab uses tabs wherever the column allows.
	IndentForceTab
)

var indentKindNames = []string{"spaces", "tab", "force-tab"}

func (k IndentKind) String() string { return nameOf(indentKindNames, int(k)) }

// MinConditional is the minimal extra indent of a multi-line header condition.
type MinConditional uint8

const (
	MinCondZero MinConditional = iota
	MinCondOne
	MinCondTwo
	MinCondOneHalf
)

var minCondNames = []string{"zero", "one", "two", "onehalf"}

func (m MinConditional) String() string { return nameOf(minCondNames, int(m)) }

// Columns converts the setting to columns for an indent length.
func (m MinConditional) Columns(indentLength int) int {
	switch m {
	case MinCondOne:
		return indentLength
	case MinCondTwo:
		return indentLength * 2
	case MinCondOneHalf:
		return indentLength + indentLength/2
	}
	return 0
}

// Align is a pointer or reference placement.
type Align uint8

const (
	AlignNone Align = iota
	AlignType
	AlignMiddle
	AlignName
	// AlignSameAsPointer is valid for references only.
	AlignSameAsPointer
)

var alignNames = []string{"none", "type", "middle", "name", "pointer"}

func (a Align) String() string { return nameOf(alignNames, int(a)) }

// NegationPad places a space around the negation operator.
type NegationPad uint8

const (
	NegationNoChange NegationPad = iota
	NegationAfter
	NegationBefore
)

var negationNames = []string{"none", "after", "before"}

func (n NegationPad) String() string { return nameOf(negationNames, int(n)) }

// IncludePad controls the space between #include and its operand.
type IncludePad uint8

const (
	IncludeNoChange IncludePad = iota
	IncludeNone
	IncludeAfter
)

var includeNames = []string{"keep", "none", "after"}

func (p IncludePad) String() string { return nameOf(includeNames, int(p)) }

// ColonPad pads Objective-C method colons.
type ColonPad uint8

const (
	ColonNoChange ColonPad = iota
	ColonNone
	ColonAll
	ColonAfter
	ColonBefore
)

var colonNames = []string{"keep", "none", "all", "after", "before"}

func (c ColonPad) String() string { return nameOf(colonNames, int(c)) }

// BreakBlocks inserts empty lines around header blocks.
type BreakBlocks uint8

const (
	BreakBlocksOff BreakBlocks = iota
	BreakBlocksOn
	// BreakBlocksAll also separates closing header blocks (else, catch).
	BreakBlocksAll
)

var breakBlocksNames = []string{"off", "on", "all"}

func (b BreakBlocks) String() string { return nameOf(breakBlocksNames, int(b)) }

func nameOf(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return "unknown"
	}
	return names[i]
}

func parseName(kind string, names []string, s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range names {
		if n == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("invalid %s %q (expected %s)", kind, s, strings.Join(names, "|"))
}

// ParsePreset resolves a style name or alias.
func ParsePreset(s string) (Preset, error) {
	if p, ok := presetAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return p, nil
	}
	i, err := parseName("style", presetNames, s)
	return Preset(i), err
}

// PresetNames lists the canonical style names.
func PresetNames() []string { return append([]string(nil), presetNames...) }

// MarshalText renders enum settings by name in dumped configurations.
func (m BraceMode) MarshalText() ([]byte, error)      { return []byte(m.String()), nil }
func (p Preset) MarshalText() ([]byte, error)         { return []byte(p.String()), nil }
func (k IndentKind) MarshalText() ([]byte, error)     { return []byte(k.String()), nil }
func (m MinConditional) MarshalText() ([]byte, error) { return []byte(m.String()), nil }
func (a Align) MarshalText() ([]byte, error)          { return []byte(a.String()), nil }
func (n NegationPad) MarshalText() ([]byte, error)    { return []byte(n.String()), nil }
func (p IncludePad) MarshalText() ([]byte, error)     { return []byte(p.String()), nil }
func (c ColonPad) MarshalText() ([]byte, error)       { return []byte(c.String()), nil }
func (b BreakBlocks) MarshalText() ([]byte, error)    { return []byte(b.String()), nil }
