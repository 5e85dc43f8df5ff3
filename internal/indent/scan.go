package indent

import (
	"strings"

	"brace/internal/lexbase"
	"brace/internal/resource"
	"brace/internal/style"
	"brace/internal/token"
)

// scan walks line from i and updates the nesting state.
func (in *Indenter) scan(line string, i int) {
	for i < len(line) {
		ch := line[i]
		if lexbase.IsWhite(ch) {
			i++
			continue
		}
		if ch == '/' && i+1 < len(line) {
			if line[i+1] == '/' {
				break
			}
			if line[i+1] == '*' {
				end := strings.Index(line[i+2:], "*/")
				if end < 0 {
					in.lex.comment = true
					in.lex.commentBase = in.lineIndent
					in.lex.commentCol = in.leadCols
					break
				}
				i += end + 4
				continue
			}
		}
		switch {
		case ch == '"' || ch == '\'' || ch == '`':
			i = in.quote(line, i)
		case ch == '@' && in.g.IsSharpStyle() && (strings.HasPrefix(line[i:], `@"`) || strings.HasPrefix(line[i:], `@$"`)):
			i = in.verbatim(line, i)
		case ch == '/' && in.g.IsJSStyle() && in.regexAllowed():
			in.token(tokString, token.None, "")
			i, _ = lexbase.RegexEnd(line, i)
		case lexbase.IsDigit(ch):
			in.token(tokNumber, token.None, "")
			i = lexbase.NumberEnd(line, i)
		case lexbase.IsCharPotentialHeader(line, i):
			i = in.word(line, i)
		case ch == '{':
			in.openBrace(nil)
			i++
		case ch == '}':
			in.closeBrace()
			i++
		case ch == '(' || ch == '[':
			in.openParen(line, i)
			i++
		case ch == ')' || ch == ']':
			in.closeParen(ch)
			i++
		case ch == ';':
			in.semicolon()
			i++
		case ch == ',':
			in.comma()
			i++
		default:
			i = in.operator(line, i)
		}
		in.lineStart = false
	}
	in.endLine()
}

// token records a token of class c in the current statement, starting the
// statement when it is the first one.
func (in *Indenter) token(c tokClass, k token.Kind, w string) {
	s := &in.s
	st := &s.st
	if !st.open {
		st.open = true
		st.firstLine = true
		if in.lineStart {
			st.indent = in.lineIndent
		} else {
			st.indent = in.base()
		}
		st.objcMethod = in.g.IsObjCStyle() && in.lineStart && c == tokOp &&
			(k == token.Minus || k == token.Plus) && !s.inParens()
	}
	st.prev, st.prevKind, st.prevWord = c, k, w
	st.cont = false
	s.lastClosed = s.lastClosed[:0]
	in.codeSeen = true
	in.guardPending = false
}

func (in *Indenter) endLine() {
	st := &in.s.st
	st.firstLine = false
	if !st.open {
		return
	}
	switch st.prev {
	case tokOp:
		st.cont = st.prevKind != token.Inc && st.prevKind != token.Dec
	case tokAssign, tokQuestion, tokColon, tokComma:
		st.cont = true
	}
}

func (in *Indenter) quote(line string, i int) int {
	in.token(tokString, token.None, "")
	end, closed := lexbase.QuoteEnd(line, i)
	if !closed && line[i] == '`' {
		in.lex.quote = '`'
	}
	return end
}

func (in *Indenter) verbatim(line string, i int) int {
	in.token(tokString, token.None, "")
	j := i + 1
	if line[j] == '$' {
		j++
	}
	end, closed := lexbase.VerbatimEnd(line, j+1)
	if !closed {
		in.lex.quote, in.lex.verbatim = '"', true
	}
	return end
}

var regexWords = map[string]bool{
	"return": true, "typeof": true, "case": true, "in": true, "of": true,
	"delete": true, "void": true, "throw": true, "new": true, "yield": true,
}

// regexAllowed tells a JS regex literal from a division.
func (in *Indenter) regexAllowed() bool {
	st := &in.s.st
	if !st.open {
		return true
	}
	switch st.prev {
	case tokWord:
		return regexWords[st.prevWord]
	case tokNumber, tokString, tokClose:
		return false
	}
	return true
}

func (in *Indenter) word(line string, i int) int {
	s := &in.s
	w := lexbase.CurrentWord(line, i)
	if w == "" {
		in.token(tokOp, token.None, line[i:i+1])
		return i + 1
	}
	end := i + len(w)

	if in.g.IsCStyle() && w[len(w)-1] == 'R' {
		if closing, body := lexbase.RawString(line, i, end-1); closing != "" {
			in.token(tokString, token.None, "")
			if k := strings.Index(line[body:], closing); k >= 0 {
				return body + k + len(closing)
			}
			in.lex.raw = closing
			return len(line)
		}
	}

	statementStart := !s.st.open && !s.inParens()
	if statementStart {
		if k := lexbase.FindHeader(line, i, in.headers); k != token.None {
			in.header(k)
			return end
		}
		if in.isCaseLabel(line, i, w) {
			in.popCase()
			return in.caseLabel(line, i, w)
		}
	}

	kind, _ := token.Lookup(w)
	in.token(tokWord, kind, w)
	st := &s.st
	plain := st.angle == 0 && !s.inParens()
	switch {
	case w == "template" && statementStart && in.g.IsCStyle():
		st.template = true
	case kind == token.New:
		st.isNew = true
	case kind == token.Enum && plain:
		st.hasDef, st.def, st.defKw = true, scopeArray, token.Enum
	case in.res.Has(resource.PreDefinitionHeaders, kind) && plain:
		if st.hasDef && st.defKw == token.Enum {
			break // enum class
		}
		def := scopeClass
		switch kind {
		case token.Namespace:
			def = scopeNamespace
		case token.Function:
			def = scopeBlock
		}
		st.hasDef, st.def, st.defKw = true, def, kind
	case kind == token.Extern && plain && in.g.IsCStyle() && lexbase.PeekNextChar(line, end-1) == '"':
		st.hasDef, st.def, st.defKw = true, scopeExtern, token.Extern
	}
	return end
}

// header starts a control header. Non-paren headers open their probationary
// scope at once; the others wait for the condition paren to close.
func (in *Indenter) header(k token.Kind) {
	s := &in.s
	if k == token.Else {
		in.matchElse()
	}
	var base Indent
	elseIf := false
	if t := s.top(); k == token.If && t != nil && t.kind == scopeHeader && t.header == token.Else &&
		s.st.prevKind == token.Else && !in.lineStart {
		base, elseIf = t.open, true
		s.scopes = s.scopes[:len(s.scopes)-1]
	}
	in.token(tokWord, k, k.Text())
	if !elseIf {
		base = s.st.indent
	}
	if in.res.Has(resource.NonParenHeaders, k) {
		in.pushHeader(k, base)
		return
	}
	s.st.header, s.st.headerBase = k, base
}

func (in *Indenter) pushHeader(k token.Kind, base Indent) {
	s := &in.s
	s.scopes = append(s.scopes, scope{
		kind:   scopeHeader,
		header: k,
		open:   base,
		body:   base.add(1),
		parens: len(s.parens),
	})
	s.st = stmt{prev: tokWord, prevKind: k}
}

// matchElse reopens the header scopes that enclosed the if an else belongs
// to.
func (in *Indenter) matchElse() {
	s := &in.s
	closed := s.lastClosed
	m := -1
	for j, sc := range closed {
		if sc.header == token.If {
			m = j
			break
		}
	}
	for j := len(closed) - 1; j > m && m >= 0; j-- {
		s.scopes = append(s.scopes, closed[j])
	}
	s.lastClosed = s.lastClosed[:0]
}

func (in *Indenter) isCaseLabel(line string, i int, w string) bool {
	if w != "case" && w != "default" {
		return false
	}
	var t *scope
	for j := len(in.s.scopes) - 1; j >= 0; j-- {
		if in.s.scopes[j].kind != scopeHeader {
			t = &in.s.scopes[j]
			break
		}
	}
	if t == nil || t.kind != scopeSwitch && t.kind != scopeCase {
		return false
	}
	return findLabelColon(line, i+len(w)) >= 0
}

// popCase drops the previous case section before a new label.
func (in *Indenter) popCase() {
	s := &in.s
	for len(s.scopes) > 0 && s.top().kind == scopeHeader {
		s.scopes = s.scopes[:len(s.scopes)-1]
	}
	if t := s.top(); t != nil && t.kind == scopeCase {
		s.scopes = s.scopes[:len(s.scopes)-1]
	}
}

func (in *Indenter) caseLabel(line string, i int, w string) int {
	s := &in.s
	label := in.base()
	colon := findLabelColon(line, i+len(w))
	s.scopes = append(s.scopes, scope{
		kind:   scopeCase,
		open:   label,
		body:   label.add(1),
		parens: len(s.parens),
	})
	s.st = stmt{prev: tokColon}
	s.lastClosed = s.lastClosed[:0]
	in.codeSeen = true
	return colon + 1
}

// findLabelColon returns the colon ending a case label that starts at j,
// skipping scope operators, ternaries and parens.
func findLabelColon(line string, j int) int {
	depth, q := 0, 0
	for ; j < len(line); j++ {
		switch line[j] {
		case '"', '\'':
			end, _ := lexbase.QuoteEnd(line, j)
			j = end - 1
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case '?':
			q++
		case ':':
			if j+1 < len(line) && line[j+1] == ':' {
				j++
				continue
			}
			if depth > 0 {
				continue
			}
			if q > 0 {
				q--
				continue
			}
			return j
		case '/':
			if j+1 < len(line) && (line[j+1] == '/' || line[j+1] == '*') {
				return -1
			}
		}
	}
	return -1
}

var accessWords = map[string]bool{
	"public": true, "private": true, "protected": true,
	"signals": true, "slots": true, "Q_SIGNALS": true, "Q_SLOTS": true,
}

func (in *Indenter) accessModifier(line, w string) (int, bool) {
	if !in.g.IsCStyle() || !accessWords[w] {
		return 0, false
	}
	if t := in.s.top(); t == nil || t.kind != scopeClass {
		return 0, false
	}
	j := skipWhite(line, len(w))
	if next := lexbase.CurrentWord(line, j); next == "slots" || next == "Q_SLOTS" {
		j = skipWhite(line, j+len(next))
	}
	if j < len(line) && line[j] == ':' && !strings.HasPrefix(line[j:], "::") {
		return j + 1, true
	}
	return 0, false
}

func (in *Indenter) gotoLabel(line, w string) (int, bool) {
	s := &in.s
	if s.st.open || w == "case" || w == "default" || accessWords[w] || w[0] == '@' {
		return 0, false
	}
	if t := s.top(); t == nil || t.kind != scopeBlock && t.kind != scopeCase {
		return 0, false
	}
	j := skipWhite(line, len(w))
	if j >= len(line) || line[j] != ':' || strings.HasPrefix(line[j:], "::") {
		return 0, false
	}
	return j + 1, true
}

func skipWhite(line string, j int) int {
	for j < len(line) && lexbase.IsWhite(line[j]) {
		j++
	}
	return j
}

func (in *Indenter) openParen(line string, i int) {
	s := &in.s
	st := &s.st
	ch := line[i]
	isHeader := ch == '(' && st.header != token.None && st.headerDeep == 0 && !s.inParens()
	// "struct tm *localtime(" declares a function, not a struct
	if ch == '(' && st.hasDef && !s.inParens() && st.angle == 0 &&
		(st.defKw == token.Struct || st.defKw == token.Union || st.defKw == token.Class) {
		st.hasDef = false
	}
	in.token(tokOpen, token.None, string(ch))
	p := in.newParen(line, i)
	if isHeader {
		p.header = true
		p.align = p.align.wider(in.minCond(in.lineIndent), in.opts.IndentLength)
		st.headerDeep = len(s.parens) + 1
	}
	s.parens = append(s.parens, p)
}

func (in *Indenter) newParen(line string, i int) paren {
	p := paren{ch: line[i], base: in.lineIndent}
	j := skipWhite(line, i+1)
	rest := line[j:]
	p.bare = rest == "" || strings.HasPrefix(rest, "//") || strings.HasPrefix(rest, "/*")
	switch {
	case p.bare || in.opts.IndentAfterParens:
		p.align = in.lineIndent.add(in.opts.ContinuationIndent)
	default:
		p.align = in.lineIndent.shift(j, in.opts.IndentLength)
		if p.align.Columns(in.opts.IndentLength) > in.opts.MaxContinuationIndent {
			p.align = in.lineIndent.add(in.opts.ContinuationIndent)
		}
	}
	return p
}

func (in *Indenter) minCond(base Indent) Indent {
	switch in.opts.MinConditional {
	case style.MinCondOne:
		return base.add(1)
	case style.MinCondTwo:
		return base.add(2)
	case style.MinCondOneHalf:
		r := base.add(1)
		r.Spaces += in.opts.IndentLength / 2
		return r
	}
	return base
}

func (in *Indenter) closeParen(ch byte) {
	s := &in.s
	if s.inParens() {
		s.parens = s.parens[:len(s.parens)-1]
	}
	in.token(tokClose, token.None, string(ch))
	st := &s.st
	if st.header != token.None && st.headerDeep > 0 && len(s.parens) == st.headerDeep-1 {
		in.pushHeader(st.header, st.headerBase)
		s.st.prev = tokClose
	}
}

func (in *Indenter) semicolon() {
	if in.s.inParens() {
		in.token(tokSemi, token.None, ";")
		return
	}
	in.endStatement(nil)
}

func (in *Indenter) comma() {
	s := &in.s
	if t := s.top(); t != nil && t.kind == scopeArray && !s.inParens() {
		s.st = stmt{prev: tokComma}
		s.lastClosed = s.lastClosed[:0]
		return
	}
	in.token(tokComma, token.None, ",")
}

func (in *Indenter) operator(line string, i int) int {
	s := &in.s
	st := &s.st
	k := lexbase.FindOperator(line, i, in.ops)
	if k == token.None {
		in.token(tokOp, token.None, line[i:i+1])
		return i + 1
	}
	n := len(k.Text())
	switch {
	case st.template && k == token.Lt:
		in.token(tokOpen, k, "<")
		s.parens = append(s.parens, in.newParen(line, i))
		s.parens[len(s.parens)-1].ch = '<'
		st.angle++
		return i + 1
	case st.angle > 0 && (k == token.Gt || k == token.Shr):
		for c := n; c > 0 && st.angle > 0; c-- {
			if s.inParens() {
				s.parens = s.parens[:len(s.parens)-1]
			}
			st.angle--
		}
		in.token(tokClose, k, ">")
		if st.angle == 0 {
			st.template = false
		}
		return i + n
	case k == token.Question:
		st.ternary++
		in.token(tokQuestion, k, "?")
		return i + 1
	case k == token.Colon:
		if st.ternary > 0 {
			st.ternary--
		}
		in.colon(i)
		return i + 1
	}
	class := tokOp
	if in.res.Has(resource.AssignmentOperators, k) {
		class = tokAssign
	}
	in.token(class, k, k.Text())
	if class == tokAssign && !s.inParens() && !st.assigned {
		st.assigned = true
		j := skipWhite(line, i+n)
		if rest := line[j:]; st.firstLine && rest != "" && !strings.HasPrefix(rest, "//") && !strings.HasPrefix(rest, "/*") {
			st.align, st.hasAlign = in.lineIndent.shift(j, in.opts.IndentLength), true
		}
	}
	return i + n
}

func (in *Indenter) colon(i int) {
	s := &in.s
	in.token(tokColon, token.Colon, ":")
	if !in.g.IsObjCStyle() {
		return
	}
	col := in.lineIndent.shift(i, in.opts.IndentLength)
	if s.inParens() {
		if p := &s.parens[len(s.parens)-1]; p.ch == '[' && !p.hasCol {
			p.colon, p.hasCol = col, true
		}
		return
	}
	if st := &s.st; st.objcMethod && !st.hasColon {
		st.colon, st.hasColon = col, true
	}
}
