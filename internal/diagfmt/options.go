package diagfmt

import (
	"path/filepath"
	"strings"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	PathMode  PathMode
	BaseDir   string // для PathModeRelative; пусто - рабочий каталог
	ShowNotes bool
	// MinSeverity hides less important diagnostics.
	MinSeverity uint8
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	PathMode     PathMode
	BaseDir      string
	Max          int // обрезка вывода, не Bag
	IncludeNotes bool
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InvocationArgs []string
}

// FormatPath renders path according to mode. Auto keeps paths below base
// relative and everything else absolute.
func FormatPath(path string, mode PathMode, base string) string {
	if path == "" {
		return path
	}
	switch mode {
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if base == "" {
		if base, err = filepath.Abs("."); err != nil {
			return path
		}
	} else if base, err = filepath.Abs(base); err != nil {
		return path
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil {
		return abs
	}
	if mode == PathModeAuto && strings.HasPrefix(rel, "..") {
		return abs
	}
	return rel
}
