// Package enhance applies the corrections that need the finished,
// indented line: unindenting braced case sections, indenting macro and
// embedded-SQL blocks, force-tab indentation and tab expansion.
package enhance

import (
	"strings"

	"brace/internal/lexbase"
	"brace/internal/resource"
	"brace/internal/style"
)

// LineContext tells the enhancer what the indenter did with a line.
type LineContext struct {
	// Verbatim lines were emitted unchanged and are not touched here.
	Verbatim bool
	// Directive lines belong to a preprocessor directive.
	Directive bool
}

type switchFrame struct {
	depth    int  // brace depth of the switch body
	label    bool // a case label waits for its first statement
	caseOpen int  // brace depth of the open braced case section, 0 if none
}

// Enhancer is the post pass. One per stream.
type Enhancer struct {
	opts   *style.Options
	macros []resource.MacroPair

	depth         int
	switches      []switchFrame
	pendingSwitch bool
	inComment     bool

	macroDepth int
	inSQL      bool
}

// New returns an enhancer. macros are the grammar's indentable macro pairs;
// opts.IndentableMacros are added to them.
func New(opts *style.Options, macros []resource.MacroPair) *Enhancer {
	all := append([]resource.MacroPair(nil), macros...)
	for _, m := range opts.IndentableMacros {
		all = append(all, resource.MacroPair{Begin: m[0], End: m[1]})
	}
	return &Enhancer{opts: opts, macros: all}
}

// Enhance returns the corrected line.
func (e *Enhancer) Enhance(line string, ctx LineContext) string {
	if ctx.Verbatim {
		return line
	}
	if ctx.Directive {
		return e.retab(line, 0)
	}
	trimmed := strings.TrimLeft(line, " \t")
	delta := 0

	if !e.inComment {
		if e.isMacro(trimmed, false) && e.macroDepth > 0 {
			e.macroDepth--
		}
		if e.inSQL && isDeclareSection(trimmed, "END") {
			e.inSQL = false
		}
	}
	delta += e.macroDepth
	if e.inSQL {
		delta++
	}
	if !e.inComment {
		if e.isMacro(trimmed, true) {
			e.macroDepth++
		}
		if isDeclareSection(trimmed, "BEGIN") {
			e.inSQL = true
		}
	}

	active := e.openCases()
	opened := e.scan(trimmed)
	if !e.opts.IndentCases {
		delta -= active
		if opened {
			delta--
		}
	}
	return e.retab(line, delta)
}

func (e *Enhancer) openCases() int {
	n := 0
	for _, f := range e.switches {
		if f.caseOpen != 0 {
			n++
		}
	}
	return n
}

// scan tracks braces, switches and case labels on the code part of line.
// It reports whether a braced case section opened with the line's first
// character.
func (e *Enhancer) scan(line string) bool {
	opened := false
	for i := 0; i < len(line); i++ {
		ch := line[i]
		if e.inComment {
			if end := strings.Index(line[i:], "*/"); end >= 0 {
				e.inComment = false
				i += end + 1
				continue
			}
			return opened
		}
		switch {
		case ch == '/' && strings.HasPrefix(line[i:], "//"):
			return opened
		case ch == '/' && strings.HasPrefix(line[i:], "/*"):
			e.inComment = true
			i++
		case ch == '"' || ch == '\'' && !lexbase.IsDigitSeparator(line, i):
			end, _ := lexbase.QuoteEnd(line, i)
			i = end - 1
		case lexbase.IsCharPotentialHeader(line, i):
			w := lexbase.CurrentWord(line, i)
			e.word(line, i, w)
			i += len(w) - 1
		case ch == '{':
			e.depth++
			top := e.top()
			switch {
			case e.pendingSwitch:
				e.switches = append(e.switches, switchFrame{depth: e.depth})
				e.pendingSwitch = false
			case top != nil && top.label && e.depth == top.depth+1:
				top.caseOpen, top.label = e.depth, false
				opened = opened || i == 0
			}
		case ch == '}':
			if top := e.top(); top != nil {
				if top.caseOpen == e.depth {
					top.caseOpen = 0
				}
				if top.depth == e.depth {
					e.switches = e.switches[:len(e.switches)-1]
				}
			}
			if e.depth > 0 {
				e.depth--
			}
		case ch == ';':
			if top := e.top(); top != nil && e.depth == top.depth {
				top.label = false
			}
		}
	}
	return opened
}

func (e *Enhancer) word(line string, i int, w string) {
	switch w {
	case "switch":
		e.pendingSwitch = true
	case "case", "default":
		top := e.top()
		if top == nil || e.depth != top.depth {
			return
		}
		if w == "default" && lexbase.PeekNextChar(line, i+len(w)-1) != ':' {
			return
		}
		top.label = true
	}
}

func (e *Enhancer) top() *switchFrame {
	if len(e.switches) == 0 {
		return nil
	}
	return &e.switches[len(e.switches)-1]
}

func (e *Enhancer) isMacro(trimmed string, begin bool) bool {
	for _, m := range e.macros {
		name := m.End
		if begin {
			name = m.Begin
		}
		if lexbase.FindKeyword(trimmed, 0, name) {
			return true
		}
	}
	return false
}

// isDeclareSection matches "EXEC SQL BEGIN|END DECLARE SECTION".
func isDeclareSection(trimmed, which string) bool {
	f := strings.Fields(strings.TrimSuffix(trimmed, ";"))
	want := []string{"EXEC", "SQL", which, "DECLARE", "SECTION"}
	if len(f) < len(want) {
		return false
	}
	for i, w := range want {
		if !strings.EqualFold(f[i], w) {
			return false
		}
	}
	return true
}

// retab moves line by delta indent units and rewrites its leading
// whitespace for force-tab and convert-tabs.
func (e *Enhancer) retab(line string, delta int) string {
	o := e.opts
	text := strings.TrimLeft(line, " \t")
	lead := line[:len(line)-len(text)]
	if o.ConvertTabs {
		text = expandTabs(text, lexbase.LeadingColumns(lead, o.TabLength), o.TabLength)
	}
	if delta == 0 && o.IndentKind != style.IndentForceTab {
		return lead + text
	}
	if text == "" && !o.EmptyLineFill {
		return ""
	}
	if o.IndentKind == style.IndentTab {
		tabs := len(lead) - len(strings.TrimLeft(lead, "\t"))
		rest := lead[tabs:]
		tabs += delta
		if tabs < 0 {
			// borrow the missing units from the alignment spaces
			rest = trimSpaces(rest, -tabs*o.IndentLength)
			tabs = 0
		}
		return strings.Repeat("\t", tabs) + rest + text
	}
	cols := lexbase.LeadingColumns(lead, o.TabLength) + delta*o.IndentLength
	if cols < 0 {
		cols = 0
	}
	if o.IndentKind == style.IndentForceTab {
		return strings.Repeat("\t", cols/o.TabLength) + strings.Repeat(" ", cols%o.TabLength) + text
	}
	return strings.Repeat(" ", cols) + text
}

func trimSpaces(s string, n int) string {
	for n > 0 && strings.HasPrefix(s, " ") {
		s = s[1:]
		n--
	}
	return s
}

// expandTabs replaces tabs outside quotes with spaces up to the next tab
// stop. col is the column where text starts.
func expandTabs(text string, col, tabLength int) string {
	if !strings.Contains(text, "\t") {
		return text
	}
	var b strings.Builder
	var quote byte
	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case quote != 0:
			if ch == '\\' && i+1 < len(text) {
				b.WriteByte(ch)
				i++
				ch = text[i]
				col++
			} else if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'' && !lexbase.IsDigitSeparator(text, i):
			quote = ch
		case ch == '\t':
			n := tabLength - col%tabLength
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteByte(ch)
		col++
	}
	return b.String()
}
