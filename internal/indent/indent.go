// Package indent decides the leading whitespace of every line. It never
// touches line content: Next returns an Indent (or asks to keep the line
// verbatim) and advances the carried nesting state.
package indent

import (
	"strings"

	"brace/internal/style"
)

// Indent is a line's leading whitespace: Units indent levels plus Spaces
// alignment columns on top of them.
type Indent struct {
	Units  int
	Spaces int
}

// Columns is the width of in for the given indent length.
func (in Indent) Columns(indentLength int) int {
	return in.Units*indentLength + in.Spaces
}

func (in Indent) add(units int) Indent {
	in.Units += units
	if in.Units < 0 {
		in.Units = 0
	}
	return in
}

// shift moves in by delta columns, borrowing from Units when Spaces would go
// negative.
func (in Indent) shift(delta, indentLength int) Indent {
	in.Spaces += delta
	for in.Spaces < 0 && in.Units > 0 {
		in.Units--
		in.Spaces += indentLength
	}
	if in.Spaces < 0 {
		in.Spaces = 0
	}
	return in
}

func (in Indent) wider(other Indent, indentLength int) Indent {
	if other.Columns(indentLength) > in.Columns(indentLength) {
		return other
	}
	return in
}

// Render returns the whitespace for in. Tab mode writes Units as tabs and
// the alignment as spaces; force-tab is rendered as spaces here and turned
// into tabs by the enhancer.
func Render(in Indent, opts *style.Options) string {
	if in.Units < 0 {
		in.Units = 0
	}
	if in.Spaces < 0 {
		in.Spaces = 0
	}
	if opts.IndentKind == style.IndentTab {
		return strings.Repeat("\t", in.Units) + strings.Repeat(" ", in.Spaces)
	}
	return strings.Repeat(" ", in.Columns(opts.IndentLength))
}
