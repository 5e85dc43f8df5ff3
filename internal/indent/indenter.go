package indent

import (
	"strings"

	"brace/internal/grammar"
	"brace/internal/lexbase"
	"brace/internal/resource"
	"brace/internal/style"
	"brace/internal/token"
)

// Indenter computes indentation line by line. It is not safe for concurrent
// use; run one per stream.
type Indenter struct {
	g       grammar.Grammar
	opts    *style.Options
	res     *resource.Set
	headers []token.Kind
	ops     []token.Kind

	s   state
	lex lexical

	pp           []ppFrame
	ppDepth      int
	guardPending bool
	codeSeen     bool

	prevIndent Indent
	forceCont  bool
	directive  bool

	// per-line scan context
	lineIndent Indent
	lineStart  bool
	leadCols   int
}

// New returns an Indenter for grammar g. opts must already be reconciled.
func New(g grammar.Grammar, opts *style.Options) *Indenter {
	res := resource.For(g)
	return &Indenter{
		g:       g,
		opts:    opts,
		res:     res,
		headers: res.List(resource.Headers),
		ops:     res.List(resource.Operators),
	}
}

// Grammar returns the grammar the indenter was built for.
func (in *Indenter) Grammar() grammar.Grammar { return in.g }

// MarkContinuation makes the next line continue the current statement. The
// rewriter calls it for the remainder of a split line.
func (in *Indenter) MarkContinuation() { in.forceCont = true }

// Depth is the number of open brace scopes.
func (in *Indenter) Depth() int {
	n := 0
	for _, sc := range in.s.scopes {
		if sc.kind.isBrace() {
			n++
		}
	}
	return n
}

// Directive reports whether the last line was a preprocessor directive or
// one of its continuation lines.
func (in *Indenter) Directive() bool { return in.directive }

// Unterminated names a construct still open at this point, or "".
func (in *Indenter) Unterminated() string {
	switch {
	case in.lex.comment:
		return "block comment"
	case in.lex.raw != "":
		return "raw string"
	case in.lex.quote == '`':
		return "template literal"
	case in.lex.quote != 0:
		return "verbatim string"
	case in.lex.preproc:
		return "preprocessor directive"
	case len(in.pp) > 0:
		return "#if block"
	}
	return ""
}

// Beautify returns line with its indentation replaced.
func (in *Indenter) Beautify(line string) string {
	ind, ok := in.Next(line)
	if !ok {
		return line
	}
	text := strings.Trim(line, " \t")
	if text == "" && !in.opts.EmptyLineFill {
		return ""
	}
	return Render(ind, in.opts) + text
}

// Next returns the indent for line and advances the state. ok is false when
// the line must be emitted unchanged (string bodies, directive continuations,
// *INDENT-OFF* regions).
func (in *Indenter) Next(line string) (Indent, bool) {
	wasOff := in.lex.off
	ind, ok := in.process(line)
	switch {
	case strings.Contains(line, "*INDENT-OFF*"):
		in.lex.off = true
		return ind, false
	case wasOff:
		if strings.Contains(line, "*INDENT-ON*") {
			in.lex.off = false
		}
		return ind, false
	}
	return ind, ok
}

func (in *Indenter) process(line string) (Indent, bool) {
	force := in.forceCont
	in.forceCont = false
	in.directive = in.lex.preproc
	text := strings.TrimRight(line, " \t")

	if in.lex.inLiteral() {
		if end, closed := in.continueLiteral(text); closed {
			in.lineIndent, in.lineStart, in.leadCols = Indent{}, false, 0
			in.scan(text, end)
		}
		return Indent{}, false
	}
	if in.lex.preproc {
		return in.preprocContinuation(text)
	}

	trimmed := strings.TrimLeft(text, " \t")
	in.leadCols = lexbase.LeadingColumns(text, in.opts.TabLength)

	if in.lex.comment {
		if trimmed == "" {
			return Indent{}, true
		}
		ind := in.lex.commentBase.shift(in.leadCols-in.lex.commentCol, in.opts.IndentLength)
		if end := strings.Index(trimmed, "*/"); end >= 0 {
			in.lex.comment = false
			in.lineIndent, in.lineStart = ind, true
			in.scan(trimmed, end+2)
		}
		return ind, true
	}

	if trimmed == "" {
		if in.opts.EmptyLineFill {
			return in.prevIndent, true
		}
		return Indent{}, true
	}
	if trimmed[0] == '#' && in.g.HasPreprocessor() {
		in.directive = true
		return in.preprocessor(trimmed)
	}
	if !in.opts.IndentCol1Comments && (strings.HasPrefix(text, "//") || strings.HasPrefix(text, "/*")) {
		in.lineIndent, in.lineStart = Indent{}, true
		in.scan(trimmed, 0)
		return Indent{}, true
	}

	ind, start := in.leading(trimmed, force)
	in.lineIndent, in.lineStart = ind, start == 0
	in.scan(trimmed, start)
	in.prevIndent = ind
	return ind, true
}

// continueLiteral looks for the end of a string carried from the previous
// line and returns the index after it.
func (in *Indenter) continueLiteral(text string) (int, bool) {
	if in.lex.raw != "" {
		k := strings.Index(text, in.lex.raw)
		if k < 0 {
			return 0, false
		}
		end := k + len(in.lex.raw)
		in.lex.raw = ""
		return end, true
	}
	var end int
	var closed bool
	if in.lex.verbatim {
		end, closed = lexbase.VerbatimEnd(text, 0)
	} else {
		end, closed = lexbase.QuoteEnd(string(in.lex.quote)+text, 0)
		end--
	}
	if closed {
		in.lex.quote, in.lex.verbatim = 0, false
	}
	return end, closed
}

// leading handles what the first token of a line does to its own indent
// and returns the indent plus the index where the scan continues.
func (in *Indenter) leading(line string, force bool) (Indent, int) {
	s := &in.s
	switch line[0] {
	case '}':
		return in.closeBrace(), 1
	case '{':
		if s.inParens() {
			ind := in.lineBase(line, force)
			in.openBrace(&ind)
			return ind, 1
		}
		sc := in.openBrace(nil)
		return sc.open, 1
	}
	word := lexbase.CurrentWord(line, 0)
	if word == "" || s.inParens() {
		return in.lineBase(line, force), 0
	}
	if !s.st.open && in.isCaseLabel(line, 0, word) {
		in.popCase()
		ind := in.base()
		return ind, in.caseLabel(line, 0, word)
	}
	if end, ok := in.accessModifier(line, word); ok {
		ind := s.top().body.add(-1)
		if in.opts.IndentModifiers {
			ind.Spaces += in.opts.IndentLength / 2
		}
		s.st = stmt{prev: tokColon}
		return ind, end
	}
	if end, ok := in.gotoLabel(line, word); ok {
		ind := Indent{}
		if in.opts.IndentLabels {
			ind = in.base().add(-1)
		}
		s.st = stmt{prev: tokColon}
		return ind, end
	}
	if word == "else" {
		in.matchElse()
	}
	return in.lineBase(line, force), 0
}

func (in *Indenter) lineBase(line string, force bool) Indent {
	s := &in.s
	if s.inParens() {
		p := &s.parens[len(s.parens)-1]
		if p.bare && (line[0] == ')' || line[0] == ']' || line[0] == '>' && p.ch == '<') {
			return p.base
		}
		if ind, ok := in.selectorAlign(line, p); ok {
			return ind
		}
		return p.align
	}
	if !s.st.open {
		return in.base()
	}
	if ind, ok := in.selectorAlign(line, nil); ok {
		return ind
	}
	if force || s.st.cont || startsWithOperator(line) {
		return in.continuation()
	}
	return in.base()
}

func (in *Indenter) continuation() Indent {
	st := &in.s.st
	if st.hasAlign && st.align.Columns(in.opts.IndentLength) <= in.opts.MaxContinuationIndent {
		return st.align
	}
	return st.indent.add(in.opts.ContinuationIndent)
}

// base is the indent of a fresh statement in the current scope.
func (in *Indenter) base() Indent {
	if t := in.s.top(); t != nil {
		return t.body
	}
	if in.opts.IndentPreprocBlock {
		return Indent{Units: in.ppDepth}
	}
	return Indent{}
}

func startsWithOperator(line string) bool {
	switch line[0] {
	case '.', '+', '-', '*', '%', '&', '|', '^', '<', '>', '=', '?', ':', ',':
		return true
	case '/':
		return !strings.HasPrefix(line, "//") && !strings.HasPrefix(line, "/*")
	}
	return false
}

// selectorAlign lines up an Objective-C selector part ("name:") with the
// first colon of the message or method declaration.
func (in *Indenter) selectorAlign(line string, p *paren) (Indent, bool) {
	if !in.g.IsObjCStyle() {
		return Indent{}, false
	}
	w := lexbase.CurrentWord(line, 0)
	if w == "" {
		return Indent{}, false
	}
	j := len(w)
	for j < len(line) && lexbase.IsWhite(line[j]) {
		j++
	}
	if j >= len(line) || line[j] != ':' || strings.HasPrefix(line[j:], "::") {
		return Indent{}, false
	}
	var col Indent
	var ok bool
	switch {
	case p != nil && p.ch == '[':
		col, ok = p.colon, p.hasCol
	case p == nil && in.s.st.objcMethod:
		col, ok = in.s.st.colon, in.s.st.hasColon
		if !ok || !in.opts.AlignMethodColon {
			return in.continuation(), true
		}
	}
	if !ok || !in.opts.AlignMethodColon {
		return Indent{}, false
	}
	return col.shift(-j, in.opts.IndentLength), true
}
