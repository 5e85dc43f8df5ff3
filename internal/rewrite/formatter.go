// Package rewrite is the full formatting engine. It reads lines from a
// source iterator, rewrites their content (brace placement, padding,
// splitting, empty-line policies) and hands each finished line to the
// indenter and the enhancer.
package rewrite

import (
	"fmt"
	"strings"

	"brace/internal/enhance"
	"brace/internal/grammar"
	"brace/internal/indent"
	"brace/internal/lexbase"
	"brace/internal/resource"
	"brace/internal/source"
	"brace/internal/style"
	"brace/internal/token"
)

// Note records a rewrite that was skipped, with the input line it concerns.
type Note struct {
	Line int
	Msg  string
}

func (n Note) String() string { return fmt.Sprintf("line %d: %s", n.Line, n.Msg) }

type outLine struct {
	text string
	cont bool // remainder of a split line
}

type ppSnapshot struct {
	braces []braceEntry
	ctx    stmtCtx
}

type ppFrame struct {
	waiting *ppSnapshot // state when the #if was entered
	active  *ppSnapshot // state at the end of the first branch
}

// Formatter is the stream formatter. It is not safe for concurrent use.
type Formatter struct {
	src  source.Iterator
	g    grammar.Grammar
	opts *style.Options
	res  *resource.Set
	ops  []token.Kind

	ind *indent.Indenter
	enh *enhance.Enhancer

	indentOnly bool

	queue []outLine
	notes []Note

	lineNo       int
	sumIn        int64
	sumOut       int64
	deletedEmpty bool
	emptyRun     int

	lex     lexState
	ctx     stmtCtx
	braces  []braceEntry
	pp      []ppFrame
	lastSig tok

	headerEnded bool // the last code line ended with a brace header

	// break-blocks
	pendingBlank bool
	lastOut      lineKind
	lastOwner    token.Kind // header owning the last closing brace emitted
}

type lineKind uint8

const (
	lineNone lineKind = iota
	lineBlank
	lineCode
	lineOpen   // ends with an opening brace
	lineHeader // ends with a header still waiting for its body
	lineComment
	lineDirective
)

// New returns a Formatter reading src. opts must already be reconciled.
func New(src source.Iterator, g grammar.Grammar, opts *style.Options) *Formatter {
	res := resource.For(g)
	return &Formatter{
		src:  src,
		g:    g,
		opts: opts,
		res:  res,
		ops:  res.List(resource.Operators),
		ind:  indent.New(g, opts),
		enh:  enhance.New(opts, res.Macros()),
	}
}

// IndentOnly returns a Formatter that only re-indents: line content is
// never rewritten.
func IndentOnly(src source.Iterator, g grammar.Grammar, opts *style.Options) *Formatter {
	f := New(src, g, opts)
	f.indentOnly = true
	return f
}

// HasMoreLines reports whether NextLine has another line to give.
func (f *Formatter) HasMoreLines() bool {
	f.fill()
	return len(f.queue) > 0
}

// IsLineReady reports whether a finished line is buffered, so NextLine
// will not need to read more input.
func (f *Formatter) IsLineReady() bool { return len(f.queue) > 0 }

// NextLine returns the next formatted line without its line ending. It
// returns "" once the stream is exhausted.
func (f *Formatter) NextLine() string {
	f.fill()
	if len(f.queue) == 0 {
		return ""
	}
	p := f.queue[0]
	f.queue = f.queue[1:]
	return f.finish(p)
}

// ChecksumIn is the content checksum of everything read so far.
func (f *Formatter) ChecksumIn() int64 { return f.sumIn }

// ChecksumOut is the content checksum of everything returned so far.
func (f *Formatter) ChecksumOut() int64 { return f.sumOut }

// ChecksumDiff is ChecksumOut minus ChecksumIn. It is zero after the whole
// stream went through, unless a content-changing option is set.
func (f *Formatter) ChecksumDiff() int64 { return f.sumOut - f.sumIn }

// Notes returns the skipped edits.
func (f *Formatter) Notes() []Note { return f.notes }

// Unterminated names a construct left open at end of input, or "".
func (f *Formatter) Unterminated() string { return f.ind.Unterminated() }

// Lines is the number of input lines consumed.
func (f *Formatter) Lines() int { return f.lineNo }

func (f *Formatter) note(line int, format string, args ...any) {
	f.notes = append(f.notes, Note{Line: line, Msg: fmt.Sprintf(format, args...)})
}

func (f *Formatter) fill() {
	for len(f.queue) == 0 && f.src.HasMoreLines() {
		f.processLine()
	}
}

func (f *Formatter) enqueue(p outLine) { f.queue = append(f.queue, p) }

func (f *Formatter) read() string {
	line := f.src.NextLine(f.deletedEmpty)
	f.deletedEmpty = false
	f.lineNo++
	f.sumIn += lexbase.Sum(line)
	return line
}

// finish indents and enhances one line.
func (f *Formatter) finish(p outLine) string {
	if p.cont {
		f.ind.MarkContinuation()
	}
	out := p.text
	ind, ok := f.ind.Next(p.text)
	if ok {
		trimmed := strings.Trim(p.text, " \t")
		switch {
		case trimmed != "":
			out = indent.Render(ind, f.opts) + trimmed
		case f.opts.EmptyLineFill:
			out = indent.Render(ind, f.opts)
		default:
			out = ""
		}
	}
	out = f.enh.Enhance(out, enhance.LineContext{Verbatim: !ok, Directive: f.ind.Directive()})
	f.sumOut += lexbase.Sum(out)
	return out
}

// processLine reads one input line and queues its output lines.
func (f *Formatter) processLine() {
	raw := f.read()
	if f.indentOnly {
		f.enqueue(outLine{text: raw})
		return
	}
	trimmed := strings.Trim(raw, " \t")
	switch {
	case f.lex.off:
		if strings.Contains(raw, "*INDENT-ON*") {
			f.lex.off = false
		}
		f.verbatim(raw)
	case f.lex.inLiteral():
		f.continueLiteral(raw)
	case f.lex.comment:
		f.continueComment(raw)
	case f.lex.preproc:
		f.lex.preproc = strings.HasSuffix(trimmed, "\\")
		f.trackComments(raw)
		f.verbatim(raw)
		f.lastOut = lineDirective
	case trimmed == "":
		f.emptyLine(raw)
	case f.g.HasPreprocessor() && trimmed[0] == '#':
		f.directive(raw, trimmed)
	default:
		f.code(raw, trimmed)
	}
}

func (f *Formatter) verbatim(raw string) {
	f.emptyRun = 0
	f.enqueue(outLine{text: raw})
}

// continueLiteral handles a line that starts inside a multi-line string.
func (f *Formatter) continueLiteral(raw string) {
	end := -1
	switch {
	case f.lex.raw != "":
		if k := strings.Index(raw, f.lex.raw); k >= 0 {
			end = k + len(f.lex.raw)
		}
	case f.lex.verbatim:
		if k, closed := lexbase.VerbatimEnd(raw, 0); closed {
			end = k
		}
	default:
		end = quoteClose(raw, f.lex.quote)
	}
	f.verbatim(raw)
	if end < 0 {
		return
	}
	f.lex.raw, f.lex.quote, f.lex.verbatim = "", 0, false
	f.track(f.tokenize(raw[end:], f.lastSig))
}

// continueComment handles a line that starts inside a block comment.
func (f *Formatter) continueComment(raw string) {
	text := raw
	end := strings.Index(raw, "*/")
	if f.opts.StripCommentPrefix {
		text = stripPrefix(raw)
	}
	f.emptyRun = 0
	f.enqueue(outLine{text: text})
	f.lastOut = lineComment
	if end < 0 {
		return
	}
	f.lex.comment = false
	f.track(f.tokenize(raw[end+2:], f.lastSig))
}

// stripPrefix replaces the leading '*' of a comment line with a space.
func stripPrefix(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(trimmed, "*") || strings.HasPrefix(trimmed, "*/") {
		return line
	}
	lead := line[:len(line)-len(trimmed)]
	rest := strings.TrimLeft(trimmed[1:], " \t")
	if rest == "" {
		return ""
	}
	return lead + "  " + rest
}

// track updates the structural state from tokens that are not rewritten.
func (f *Formatter) track(toks []tok) {
	f.walk(toks)
	if t, i := lastSig(toks); i >= 0 {
		f.lastSig = t
	}
}

// trackComments follows block comments opened on a line that is otherwise
// kept as is.
func (f *Formatter) trackComments(line string) {
	f.tokenize(line, f.lastSig)
}

func (f *Formatter) closeBrace(e braceEntry) {
	if e.fc.Array || e.outer.depth > 0 {
		f.ctx = e.outer
		return
	}
	f.ctx = stmtCtx{}
}
