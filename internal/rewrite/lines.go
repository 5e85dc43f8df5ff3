package rewrite

import (
	"strings"

	"brace/internal/style"
	"brace/internal/token"
)

// quoteClose finds the end of a string continued from a previous line,
// or -1 when it stays open.
func quoteClose(line string, q byte) int {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case q:
			return i + 1
		}
	}
	return -1
}

// emptyLine applies delete-empty-lines and the squeeze limit.
func (f *Formatter) emptyLine(raw string) {
	o := f.opts
	if o.DeleteEmptyLines && f.inFunction() {
		f.deletedEmpty = true
		return
	}
	f.emptyRun++
	if o.SqueezeLines > 0 && f.emptyRun > o.SqueezeLines {
		f.deletedEmpty = true
		return
	}
	f.pendingBlank = false
	f.lastOut = lineBlank
	f.enqueue(outLine{text: raw})
}

// blank inserts an empty line of our own.
func (f *Formatter) blank() {
	f.enqueue(outLine{})
	f.lastOut = lineBlank
	f.emptyRun = 1
}

func directiveName(trimmed string) string {
	s := strings.TrimLeft(trimmed[1:], " \t")
	end := 0
	for end < len(s) && (s[end] >= 'a' && s[end] <= 'z' || s[end] == '_') {
		end++
	}
	return s[:end]
}

func (f *Formatter) snapshot() *ppSnapshot {
	return &ppSnapshot{braces: append([]braceEntry(nil), f.braces...), ctx: f.ctx}
}

func (f *Formatter) restore(s *ppSnapshot) {
	f.braces = append([]braceEntry(nil), s.braces...)
	f.ctx = s.ctx
}

// directive keeps the brace stack consistent across #if branches: every
// branch starts from the state before the #if and the first branch wins
// after #endif.
func (f *Formatter) directive(raw, trimmed string) {
	f.emptyRun = 0
	f.lex.preproc = strings.HasSuffix(trimmed, "\\")
	name := directiveName(trimmed)
	switch name {
	case "if", "ifdef", "ifndef":
		f.pp = append(f.pp, ppFrame{waiting: f.snapshot()})
	case "else", "elif", "elifdef", "elifndef":
		if n := len(f.pp); n > 0 {
			fr := &f.pp[n-1]
			if fr.active == nil {
				fr.active = f.snapshot()
			}
			f.restore(fr.waiting)
		}
	case "endif":
		if n := len(f.pp); n > 0 {
			if fr := f.pp[n-1]; fr.active != nil {
				f.restore(fr.active)
			}
			f.pp = f.pp[:n-1]
		}
	}
	text := raw
	if name == "include" || name == "import" || name == "include_next" {
		text = f.padInclude(raw, name)
	}
	f.trackComments(raw)
	f.enqueue(outLine{text: text})
	f.lastOut = lineDirective
}

// padInclude sets the space between #include and its file name.
func (f *Formatter) padInclude(raw, name string) string {
	if f.opts.PadInclude == style.IncludeNoChange {
		return raw
	}
	i := strings.Index(raw, name)
	if i < 0 {
		return raw
	}
	head := raw[:i+len(name)]
	rest := strings.TrimLeft(raw[i+len(name):], " \t")
	if rest == "" || rest[0] != '<' && rest[0] != '"' {
		return raw
	}
	if f.opts.PadInclude == style.IncludeAfter {
		return head + " " + rest
	}
	return head + rest
}

// code rewrites one line of code and queues the resulting lines.
func (f *Formatter) code(raw, trimmed string) {
	f.emptyRun = 0
	lead := raw[:len(raw)-len(strings.TrimLeft(raw, " \t"))]
	if strings.Contains(trimmed, "*INDENT-OFF*") {
		f.lex.off = true
		f.track(f.tokenize(trimmed, f.lastSig))
		f.verbatim(raw)
		return
	}
	stmtStart := !f.ctx.open
	prev := f.lastSig
	toks := f.tokenize(trimmed, prev)
	if onlyComments(toks) {
		f.flushBlank(tok{})
		f.enqueue(outLine{text: raw})
		f.lastOut = lineComment
		return
	}
	f.annotate(toks, prev, stmtStart)
	toks = f.edit(toks)
	f.annotate(toks, prev, stmtStart)
	nopad := strings.Contains(trimmed, "*NOPAD*")
	for k, seg := range f.layout(toks) {
		for j, piece := range f.split(seg, nopad) {
			if k == 0 && j == 0 {
				piece = lead + piece
			}
			f.emit(outLine{text: piece, cont: j > 0}, seg)
		}
	}
	f.lastSig, _ = lastSig(toks)
	_, end, ok := f.headerSpan(toks)
	_, li := lastSig(toks)
	f.headerEnded = ok && end == li
}

// emit queues one output line and keeps the break-blocks bookkeeping.
func (f *Formatter) emit(p outLine, seg []tok) {
	first, _ := nextSig(seg, -1)
	if !p.cont {
		f.breakBlocks(first)
	}
	f.enqueue(p)
	last, _ := lastSig(seg)
	switch {
	case last.kind == tLBrace && !last.kept:
		f.lastOut = lineOpen
	case last.endsHeader:
		f.lastOut = lineHeader
	default:
		f.lastOut = lineCode
	}
	if last.kind == tRBrace {
		f.lastOwner = last.op
		if last.closes && f.opts.BreakBlocks != style.BreakBlocksOff {
			f.pendingBlank = true
		}
	} else {
		f.lastOwner = token.None
	}
}

func (f *Formatter) canBlank() bool {
	switch f.lastOut {
	case lineNone, lineBlank, lineOpen, lineHeader, lineComment:
		return false
	}
	return true
}

func closingWord(t tok) bool {
	switch t.op {
	case token.Else, token.Catch, token.Finally, token.AtCatch, token.AtFinally:
		return t.kind == tWord
	}
	return false
}

// flushBlank emits the empty line owed after a header block, unless the
// next line continues that block.
func (f *Formatter) flushBlank(first tok) bool {
	if !f.pendingBlank {
		return false
	}
	f.pendingBlank = false
	if !f.canBlank() || first.kind == tRBrace {
		return false
	}
	if closingWord(first) && f.opts.BreakBlocks != style.BreakBlocksAll {
		return false
	}
	f.blank()
	return true
}

// breakBlocks separates header blocks from the surrounding code.
func (f *Formatter) breakBlocks(first tok) {
	if f.opts.BreakBlocks == style.BreakBlocksOff || f.flushBlank(first) {
		return
	}
	if first.kind != tWord || !blockHeaders[first.op] || closingWord(first) || !f.canBlank() {
		return
	}
	if first.op == token.While && f.lastOwner == token.Do {
		return
	}
	f.blank()
}
