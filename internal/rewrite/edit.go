package rewrite

import (
	"strings"

	"brace/internal/resource"
	"brace/internal/source"
	"brace/internal/style"
	"brace/internal/token"
)

// braceHeaders are the headers whose single statement may gain or lose
// braces.
var braceHeaders = map[token.Kind]bool{
	token.If: true, token.Else: true, token.For: true, token.While: true,
	token.Foreach: true, token.QForeach: true,
}

// edit applies the rewrites that reach into the following lines: adding
// and removing braces, attaching an opening brace or a closing header and
// running a statement in after a brace. Lines it consumes are read from
// the source here.
func (f *Formatter) edit(toks []tok) []tok {
	if f.opts.RemoveBraces {
		toks = f.removeBraces(toks)
	}
	if f.opts.AddBraces || f.opts.AddOneLineBraces {
		toks = f.addBraces(toks)
	}
	toks = f.joinBrace(toks)
	toks = f.joinClosing(toks)
	return f.joinRunIn(toks)
}

// headerSpan finds the header a line starts with, looking past a leading
// '}' and the else of an else-if. end indexes the token completing it.
func (f *Formatter) headerSpan(toks []tok) (k token.Kind, end int, ok bool) {
	i := 0
	if len(toks) > 0 && toks[0].kind == tRBrace {
		i = 1
	}
	if i >= len(toks) || toks[i].kind != tWord {
		return token.None, 0, false
	}
	if toks[i].op == token.Else {
		if i+1 >= len(toks) || !toks[i+1].isWord("if") {
			return token.Else, i, true
		}
		i++
	}
	t := toks[i]
	if !braceHeaders[t.op] || i+1 >= len(toks) || toks[i+1].kind != tOpen || toks[i+1].text != "(" {
		return token.None, 0, false
	}
	depth := 0
	for j := i + 1; j < len(toks); j++ {
		switch toks[j].kind {
		case tOpen:
			depth++
		case tClose:
			depth--
			if depth == 0 {
				return t.op, j, true
			}
		}
	}
	return token.None, 0, false
}

// simpleStmt reports a single statement that can stand in a braceless body:
// no braces, no nested header, exactly one ';' and it comes last.
func (f *Formatter) simpleStmt(toks []tok) bool {
	first, fi := nextSig(toks, -1)
	if fi < 0 || first.kind == tSemi {
		return false
	}
	if first.kind == tWord && (f.res.Has(resource.Headers, first.op) || first.op == token.Case || first.op == token.Default) {
		return false
	}
	if n, _ := nextSig(toks, fi); first.kind == tWord && n.isOp(token.Colon) {
		return false
	}
	depth, semis := 0, 0
	for _, t := range toks {
		switch t.kind {
		case tLBrace, tRBrace:
			return false
		case tOpen:
			depth++
		case tClose:
			depth--
		case tSemi:
			if depth == 0 {
				semis++
			}
		}
	}
	last, _ := lastSig(toks)
	return semis == 1 && last.kind == tSemi
}

// peekLines looks at up to n following lines without consuming them.
func (f *Formatter) peekLines(n int) []string {
	ps := source.NewPeekStream(f.src)
	defer ps.Release()
	var lines []string
	for len(lines) < n && ps.HasMoreLines() {
		lines = append(lines, ps.PeekNextLine())
	}
	return lines
}

// peekTokens tokenizes a following line on a scratch lexical state. It
// fails when the line would leave a comment or literal open, or is not
// plain code.
func (f *Formatter) peekTokens(line string) ([]tok, bool) {
	trimmed := strings.Trim(line, " \t")
	if trimmed == "" || trimmed[0] == '#' && f.g.HasPreprocessor() ||
		strings.Contains(trimmed, "*INDENT-") || strings.Contains(trimmed, "*NOPAD*") {
		return nil, false
	}
	saved := f.lex
	toks := f.tokenize(trimmed, f.lastSig)
	clean := f.lex == saved
	f.lex = saved
	if !clean || onlyComments(toks) {
		return nil, false
	}
	f.annotate(toks, f.lastSig, false)
	return toks, true
}

func (f *Formatter) isDirective(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return f.g.HasPreprocessor() && strings.HasPrefix(trimmed, "#")
}

// addBraces encloses the single statement of a braceless header.
func (f *Formatter) addBraces(toks []tok) []tok {
	_, end, ok := f.headerSpan(toks)
	if !ok {
		return toks
	}
	_, li := lastSig(toks)
	open := tok{kind: tLBrace, text: "{", added: true}
	closing := tok{kind: tRBrace, text: "}", added: true}
	if li > end {
		body := toks[end+1 : li+1]
		if !f.simpleStmt(body) {
			return toks
		}
		open.kept = f.opts.AddOneLineBraces
		out := make([]tok, 0, len(toks)+2)
		out = append(out, toks[:end+1]...)
		out = append(out, open)
		out = append(out, body...)
		out = append(out, closing)
		return append(out, toks[li+1:]...)
	}

	lines := f.peekLines(1)
	if len(lines) == 0 {
		return toks
	}
	if f.isDirective(lines[0]) {
		f.note(f.lineNo, "braces not added: a preprocessor directive follows the header")
		return toks
	}
	next, ok := f.peekTokens(lines[0])
	if !ok || !f.simpleStmt(next) {
		return toks
	}
	f.read()
	next[0].lead = true
	closing.lead = true
	out := make([]tok, 0, len(toks)+len(next)+2)
	out = append(out, toks[:li+1]...)
	out = append(out, open)
	out = append(out, toks[li+1:]...)
	out = append(out, next...)
	return append(out, closing)
}

// removeBraces drops the braces around a single statement body.
func (f *Formatter) removeBraces(toks []tok) []tok {
	first, fi := nextSig(toks, -1)
	_, li := lastSig(toks)
	if first.kind == tLBrace && fi == li && len(toks) == 1 {
		if !f.headerEnded {
			return toks
		}
		if stmt, rest, ok := f.bracedBody(); ok {
			return append(stmt, rest...)
		}
		return toks
	}

	_, end, ok := f.headerSpan(toks)
	if !ok {
		return toks
	}
	b, bi := nextSig(toks, end)
	if b.kind != tLBrace {
		return toks
	}
	if m := matchBrace(toks, bi); m >= 0 {
		body := toks[bi+1 : m]
		if !f.simpleStmt(body) {
			return toks
		}
		if n, _ := nextSig(toks, m); n.kind == tSemi || n.kind == tComma || n.kind == tClose {
			return toks
		}
		out := make([]tok, 0, len(toks))
		out = append(out, toks[:bi]...)
		out = append(out, body...)
		return append(out, toks[m+1:]...)
	}
	if bi != li {
		return toks
	}
	stmt, rest, ok := f.bracedBody()
	if !ok {
		return toks
	}
	out := make([]tok, 0, len(toks)+len(stmt)+len(rest))
	out = append(out, toks[:bi]...)
	out = append(out, toks[bi+1:]...)
	out = append(out, stmt...)
	return append(out, rest...)
}

// bracedBody checks that the next two lines are one statement and the
// closing brace, and consumes them. rest is what followed the brace.
func (f *Formatter) bracedBody() (stmt, rest []tok, ok bool) {
	lines := f.peekLines(2)
	if len(lines) < 2 {
		return nil, nil, false
	}
	if f.isDirective(lines[0]) || f.isDirective(lines[1]) {
		f.note(f.lineNo, "braces not removed: a preprocessor directive splits the body")
		return nil, nil, false
	}
	stmt, ok = f.peekTokens(lines[0])
	if !ok || !f.simpleStmt(stmt) {
		return nil, nil, false
	}
	closing, ok := f.peekTokens(lines[1])
	if !ok || closing[0].kind != tRBrace {
		return nil, nil, false
	}
	rest = closing[1:]
	if n, _ := nextSig(rest, -1); n.kind == tSemi || n.kind == tComma || n.kind == tClose || n.kind == tRBrace {
		return nil, nil, false
	}
	f.read()
	f.read()
	stmt[0].lead = true
	if len(rest) > 0 {
		rest[0].lead = true
		rest[0].ws = ""
	}
	return stmt, rest, true
}

// joinBrace pulls an opening brace up from the next line when it is to be
// attached.
func (f *Formatter) joinBrace(toks []tok) []tok {
	last, li := lastSig(toks)
	if li < 0 || f.opts.BraceMode == style.BraceNone || f.lex != (lexState{}) {
		return toks
	}
	switch last.kind {
	case tSemi, tLBrace, tRBrace, tComma:
		return toks
	}
	lines := f.peekLines(1)
	if len(lines) == 0 || !strings.HasPrefix(strings.TrimLeft(lines[0], " \t"), "{") {
		return toks
	}
	next, ok := f.peekTokens(lines[0])
	if !ok || li < len(toks)-1 && len(next) > 1 {
		return toks
	}
	virtual := append(append([]tok(nil), toks...), next[0])
	if fc, _ := f.simulate(virtual); fc.Array || f.placement(fc) != placeAttach {
		return toks
	}
	f.read()
	next[0].joined = true
	out := make([]tok, 0, len(toks)+len(next))
	out = append(out, toks[:li+1]...)
	out = append(out, next[0])
	out = append(out, toks[li+1:]...)
	return append(out, next[1:]...)
}

// joinClosing pulls else, catch, finally or the while of a do loop up
// behind the closing brace that ends the line.
func (f *Formatter) joinClosing(toks []tok) []tok {
	last, li := lastSig(toks)
	if last.kind != tRBrace || li != len(toks)-1 || f.opts.BraceMode == style.BraceNone || f.lex != (lexState{}) {
		return toks
	}
	_, popped := f.simulate(toks)
	if popped.fc.Array {
		return toks
	}
	lines := f.peekLines(1)
	if len(lines) == 0 {
		return toks
	}
	next, ok := f.peekTokens(lines[0])
	if !ok || !closingHeader(next[0], popped.header) || f.breakClosing(next[0].op, popped.header) {
		return toks
	}
	f.read()
	next[0].joined = true
	return append(toks, next...)
}

// joinRunIn puts the first statement of a block on the brace line.
func (f *Formatter) joinRunIn(toks []tok) []tok {
	last, li := lastSig(toks)
	if f.opts.BraceMode != style.BraceRunIn || last.kind != tLBrace || li != len(toks)-1 || f.lex != (lexState{}) {
		return toks
	}
	if fc, _ := f.simulate(toks); fc.Array || f.placement(fc) != placeRunIn {
		return toks
	}
	lines := f.peekLines(1)
	if len(lines) == 0 {
		return toks
	}
	next, ok := f.peekTokens(lines[0])
	if !ok {
		return toks
	}
	first, fi := nextSig(next, -1)
	if first.kind == tWord && (first.op == token.Case || first.op == token.Default) || fi != 0 {
		return toks
	}
	if n, _ := nextSig(next, fi); first.kind == tWord && n.isOp(token.Colon) {
		return toks
	}
	for _, t := range next {
		if t.kind == tLBrace || t.kind == tRBrace {
			return toks
		}
	}
	f.read()
	next[0].joined = true
	return append(toks, next...)
}

// walk moves the structural state over toks and returns the facets of
// the last opening brace and the entry of the last closing one.
func (f *Formatter) walk(toks []tok) (last BraceFacets, popped braceEntry) {
	for i, t := range toks {
		switch t.kind {
		case tLBrace:
			last = f.classify(toks, i)
			f.pushBrace(braceEntry{fc: last, header: f.ctx.afterHeader, outer: f.ctx})
			f.ctx = stmtCtx{}
		case tRBrace:
			popped = f.popBrace()
			f.closeBrace(popped)
		default:
			if t.significant() {
				f.advance(t)
			}
		}
	}
	return last, popped
}

// simulate is walk on a scratch copy of the state.
func (f *Formatter) simulate(toks []tok) (BraceFacets, braceEntry) {
	ctx, braces := f.ctx, f.braces
	f.braces = append([]braceEntry(nil), braces...)
	defer func() { f.ctx, f.braces = ctx, braces }()
	return f.walk(toks)
}
