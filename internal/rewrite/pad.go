package rewrite

import (
	"strings"
	"unicode"

	"brace/internal/resource"
	"brace/internal/style"
	"brace/internal/token"
)

var unaryWords = map[string]bool{
	"return": true, "case": true, "throw": true, "new": true, "delete": true,
	"co_return": true, "co_yield": true, "yield": true, "typeof": true, "in": true,
	"of": true, "else": true, "do": true, "await": true, "sizeof": true, "not": true,
}

var typeWords = map[string]bool{
	"void": true, "char": true, "short": true, "int": true, "long": true, "float": true,
	"double": true, "signed": true, "unsigned": true, "bool": true, "auto": true,
	"wchar_t": true, "char8_t": true, "char16_t": true, "char32_t": true, "size_t": true,
	"string": true, "object": true, "byte": true, "sbyte": true, "decimal": true,
	"uint": true, "ulong": true, "ushort": true, "id": true, "instancetype": true,
	"const": true, "volatile": true,
}

var qualifierWords = map[string]bool{
	"const": true, "volatile": true, "static": true, "extern": true, "inline": true,
	"virtual": true, "mutable": true, "register": true, "struct": true, "class": true,
	"union": true, "enum": true, "typename": true, "constexpr": true, "explicit": true,
	"friend": true, "typedef": true, "restrict": true, "__restrict": true, "unsafe": true,
}

func isTypeName(w string) bool {
	if typeWords[w] || strings.HasSuffix(w, "_t") {
		return true
	}
	r := rune(w[0])
	return unicode.IsUpper(r)
}

// annotate decides the spacing role of every token on a line. prev is the
// last significant token before the line and stmtStart whether a new
// statement begins with it.
func (f *Formatter) annotate(toks []tok, prev tok, stmtStart bool) {
	f.markAngles(toks)
	var parens []role
	ternary := 0
	method := f.g.IsObjCStyle() && stmtStart && len(toks) > 1 &&
		(toks[0].isOp(token.Minus) || toks[0].isOp(token.Plus)) && toks[1].kind == tOpen
	if method {
		toks[0].role = roleMethodPrefix
	}
	prevIdx := -1
	for i := range toks {
		t := &toks[i]
		switch t.kind {
		case tOpen:
			r := roleNone
			switch {
			case t.text == "(" && method && (prevIdx == 0 || prev.role == roleSelector):
				r = roleReturnType
				if prevIdx != 0 {
					r = roleParamType
				}
			case t.text == "(" && prev.kind == tWord && prev.op != token.None && f.res.Has(resource.Headers, prev.op):
				t.role = roleHeaderParen
			case t.text == "(" && (prev.kind == tWord && (prev.op == token.None || f.res.Has(resource.CastOperators, prev.op)) ||
				prev.kind == tClose || prev.role == roleAngle):
				t.role = roleCallParen
			case t.text == "[" && (prev.kind == tWord || prev.kind == tClose || prev.kind == tString):
				t.role = roleIndex
				r = roleIndex
			case t.text == "[" && f.g.IsObjCStyle():
				r = roleSelector
			}
			parens = append(parens, r)
		case tClose:
			r := roleNone
			if n := len(parens); n > 0 {
				r = parens[n-1]
				parens = parens[:n-1]
			}
			switch r {
			case roleIndex, roleReturnType, roleParamType:
				t.role = r
			}
		case tSemi:
			if len(parens) > 0 {
				t.role = roleForSemi
			}
		case tOp:
			if t.role == roleAngle || t.role == roleMethodPrefix {
				break
			}
			t.role = f.opRole(toks, i, prev, prevIdx, &ternary, parens, method, stmtStart)
		}
		if t.significant() {
			prev, prevIdx = *t, i
		}
	}
}

func (f *Formatter) opRole(toks []tok, i int, prev tok, prevIdx int, ternary *int, parens []role, method, stmtStart bool) role {
	t := toks[i]
	if prev.isWord("operator") {
		return roleNone
	}
	switch t.op {
	case token.Scope, token.Dot, token.Arrow, token.ArrowStar, token.DotStar, token.Ellipsis, token.NullCond, token.None:
		return roleNone
	case token.Not, token.Tilde, token.Inc, token.Dec:
		return roleUnary
	case token.Question:
		if colonFollows(toks, i) {
			*ternary++
			return roleBinary
		}
		return roleNone
	case token.Colon:
		switch {
		case *ternary > 0:
			*ternary--
			return roleBinary
		case prev.kind == tWord && (method || len(parens) > 0 && parens[len(parens)-1] == roleSelector):
			return roleSelector
		}
		return roleNone
	case token.Plus, token.Minus:
		if unaryContext(prev) {
			return roleUnary
		}
		return roleBinary
	case token.Star, token.Amp, token.AndAnd, token.Caret:
		if unaryContext(prev) || prev.isWord("function") {
			return roleUnary
		}
		if t.op != token.Caret && f.isDeclarator(toks, i, prev, prevIdx, stmtStart) {
			return rolePointer
		}
		return roleBinary
	case token.Lt, token.Gt, token.Shr:
		return roleBinary
	}
	if f.res.Has(resource.AssignmentOperators, t.op) || f.res.Has(resource.NonAssignmentOperators, t.op) {
		return roleBinary
	}
	switch t.op {
	case token.Slash, token.Percent, token.Pipe:
		return roleBinary
	}
	return roleNone
}

func colonFollows(toks []tok, i int) bool {
	for j := i + 1; j < len(toks); j++ {
		if toks[j].isOp(token.Colon) {
			return true
		}
		if toks[j].kind == tSemi {
			return false
		}
	}
	return false
}

func unaryContext(prev tok) bool {
	switch prev.kind {
	case tNone, tOpen, tComma, tSemi, tLBrace, tRBrace:
		return true
	case tOp:
		return prev.role != roleAngle || prev.op == token.Lt
	case tWord:
		return unaryWords[prev.text]
	}
	return false
}

// isDeclarator reports a '*' or '&' that belongs to a declaration rather
// than a multiplication or bitwise and.
func (f *Formatter) isDeclarator(toks []tok, i int, prev tok, prevIdx int, stmtStart bool) bool {
	if !f.g.IsCStyle() && !f.g.IsSharpStyle() {
		return false
	}
	next, _ := nextSig(toks, i)
	switch {
	case next.kind == tWord, next.kind == tClose, next.kind == tComma:
	case next.kind == tOp && (next.op == token.Star || next.op == token.Amp || next.op == token.AndAnd ||
		next.op == token.Ellipsis || next.role == roleAngle):
	default:
		return false
	}
	switch {
	case prev.role == rolePointer:
		return true
	case prev.kind == tOp && prev.role == roleAngle:
		return true
	case prev.kind != tWord:
		return false
	case typeWords[prev.text]:
		return true
	}
	start := prevIdx
	for start >= 2 && toks[start-1].isOp(token.Scope) && toks[start-2].kind == tWord {
		start -= 2
	}
	before, _ := prevSig(toks, start)
	switch before.kind {
	case tNone:
		return stmtStart
	case tSemi, tLBrace, tRBrace:
		return true
	case tOpen, tComma:
		return isTypeName(prev.text) || start < prevIdx
	case tWord:
		return qualifierWords[before.text]
	case tOp:
		return before.role == roleAngle && before.op == token.Lt
	}
	return false
}

// markAngles finds template argument lists so their angles are not padded
// as comparisons.
func (f *Formatter) markAngles(toks []tok) {
	if f.g.IsJSStyle() {
		return
	}
	for i := range toks {
		if !toks[i].isOp(token.Lt) || toks[i].role == roleAngle {
			continue
		}
		p, _ := prevSig(toks, i)
		if p.kind != tWord || p.op != token.None && p.op != token.Template {
			continue
		}
		if j, ok := angleClose(toks, i, p.op == token.Template); ok {
			toks[i].role = roleAngle
			toks[j].role = roleAngle
		}
	}
}

func angleClose(toks []tok, i int, tmpl bool) (int, bool) {
	depth := 1
	for j := i + 1; j < len(toks); j++ {
		t := toks[j]
		switch t.kind {
		case tWord, tNumber, tComma, tOpen, tClose:
			continue
		case tOp:
		default:
			return 0, false
		}
		switch t.op {
		case token.Lt:
			depth++
		case token.Gt:
			depth--
		case token.Shr:
			depth -= 2
		case token.Ushr:
			depth -= 3
		case token.Scope, token.Star, token.Amp, token.Dot, token.Ellipsis, token.Question:
		case token.AndAnd:
			if n, _ := nextSig(toks, j); !(n.isOp(token.Gt) || n.kind == tComma || n.isOp(token.Ellipsis)) {
				return 0, false
			}
		case token.Assign:
			if !tmpl {
				return 0, false
			}
		default:
			return 0, false
		}
		if depth <= 0 {
			return j, true
		}
	}
	return 0, false
}

// render joins a segment into text, applying the padding options.
func (f *Formatter) render(seg []tok, nopad bool) string {
	var b strings.Builder
	for i, t := range seg {
		if i > 0 {
			b.WriteString(f.gap(seg[i-1], t, nopad))
		}
		b.WriteString(t.text)
	}
	return b.String()
}

func (f *Formatter) pointerAlign(t tok) style.Align {
	if t.op == token.Star || f.g.IsSharpStyle() {
		return f.opts.AlignPointer
	}
	return f.opts.AlignReference
}

// gap is the whitespace between two adjacent tokens of a segment.
func (f *Formatter) gap(a, b tok, nopad bool) string {
	o := f.opts
	ws := b.ws
	if nopad {
		return ws
	}
	switch {
	case b.kind == tComment || b.kind == tLineComment || a.kind == tComment:
		if ws == "" && (b.joined || b.added) {
			return " "
		}
		return ws
	case a.runIn && a.kind == tLBrace:
		return strings.Repeat(" ", max(o.IndentLength-1, 1))
	case b.added || a.added:
		return " "
	case b.joined:
		return " "
	case a.kept && a.kind == tLBrace, b.kept && b.kind == tRBrace:
		return ws
	case b.kind == tLBrace && b.block:
		if a.kind == tOpen {
			return ws
		}
		return " "
	}

	if g, ok := f.opGap(a, b, ws); ok {
		return g
	}
	if g, ok := f.parenGap(a, b, ws); ok {
		return g
	}
	return ws
}

func (f *Formatter) opGap(a, b tok, ws string) (string, bool) {
	o := f.opts
	switch {
	case a.kind == tComma:
		if (o.PadComma || o.PadOper) && b.kind != tClose {
			return " ", true
		}
		return ws, true
	case a.role == roleForSemi:
		if o.PadOper && b.kind != tSemi && b.kind != tClose {
			return " ", true
		}
		return ws, true
	case b.kind == tComma || b.kind == tSemi:
		return ws, true
	}

	// declarators
	if b.role == rolePointer {
		switch f.pointerAlign(b) {
		case style.AlignType:
			return "", true
		case style.AlignMiddle, style.AlignName:
			if a.role == rolePointer {
				return "", true
			}
			return " ", true
		}
		return ws, true
	}
	if a.role == rolePointer {
		if b.role == rolePointer || b.kind == tClose || b.kind == tComma || b.role == roleAngle {
			return "", true
		}
		switch f.pointerAlign(a) {
		case style.AlignType, style.AlignMiddle:
			return " ", true
		case style.AlignName:
			return "", true
		}
		return ws, true
	}

	if a.role == roleAngle || b.role == roleAngle {
		if o.CloseTemplates && a.role == roleAngle && b.role == roleAngle && a.op != token.Lt && b.op != token.Lt {
			return "", true
		}
		return ws, true
	}

	if a.role == roleSelector || b.role == roleSelector {
		before := b.role == roleSelector
		switch o.PadMethodColon {
		case style.ColonNone:
			return "", true
		case style.ColonAll:
			return " ", true
		case style.ColonAfter:
			if before {
				return "", true
			}
			return " ", true
		case style.ColonBefore:
			if before {
				return " ", true
			}
			return "", true
		}
		return ws, true
	}
	switch a.role {
	case roleMethodPrefix:
		return padUnpad(o.PadMethodPrefix, o.UnpadMethodPrefix, ws), true
	case roleReturnType:
		return padUnpad(o.PadReturnType, o.UnpadReturnType, ws), true
	case roleParamType:
		return padUnpad(o.PadParamType, o.UnpadParamType, ws), true
	}

	if b.isOp(token.Not) && o.PadNegation == style.NegationBefore && a.kind != tOpen && a.role != roleUnary {
		return " ", true
	}
	if a.isOp(token.Not) {
		switch o.PadNegation {
		case style.NegationAfter:
			return " ", true
		case style.NegationBefore:
			return "", true
		}
		return ws, true
	}
	if a.role == roleUnary {
		return ws, true
	}
	if (a.role == roleBinary || b.role == roleBinary) && o.PadOper {
		return " ", true
	}
	return "", false
}

func padUnpad(pad, unpad bool, ws string) string {
	switch {
	case pad:
		return " "
	case unpad:
		return ""
	}
	return ws
}

func (f *Formatter) parenGap(a, b tok, ws string) (string, bool) {
	o := f.opts
	switch {
	case b.kind == tOpen && b.text == "(":
		switch {
		case b.role == roleHeaderParen:
			if o.PadHeader || o.PadParenOut {
				return " ", true
			}
			if o.UnpadParen {
				return "", true
			}
		case a.kind == tOpen && a.text == "(":
			return padUnpad(o.PadParenIn, o.UnpadParen, ws), true
		case b.role == roleCallParen:
			switch {
			case o.PadParenOut, o.PadFirstParenOut:
				return " ", true
			case o.UnpadParen:
				return "", true
			}
		case o.PadParenOut && a.kind != tNone:
			return " ", true
		}
		return ws, true
	case b.kind == tClose && b.text == ")":
		if a.kind == tOpen && a.text == "(" {
			if o.PadParenIn && o.PadEmptyParen {
				return " ", true
			}
			if o.UnpadParen || o.PadParenIn {
				return "", true
			}
			return ws, true
		}
		return padUnpad(o.PadParenIn, o.UnpadParen, ws), true
	case a.kind == tOpen && a.text == "(":
		return padUnpad(o.PadParenIn, o.UnpadParen, ws), true
	case a.kind == tClose && a.text == ")":
		if o.PadParenOut && afterParenPads(b) {
			return " ", true
		}
		return ws, true
	}

	switch {
	case b.role == roleIndex && b.kind == tOpen:
		return padUnpad(o.PadBracketsOut, o.UnpadBrackets, ws), true
	case a.role == roleIndex && a.kind == tOpen:
		if b.kind == tClose {
			if o.PadBracketsIn || o.UnpadBrackets {
				return "", true
			}
			return ws, true
		}
		return padUnpad(o.PadBracketsIn, o.UnpadBrackets, ws), true
	case b.role == roleIndex && b.kind == tClose:
		return padUnpad(o.PadBracketsIn, o.UnpadBrackets, ws), true
	case a.role == roleIndex && a.kind == tClose:
		if o.PadBracketsOut && afterParenPads(b) {
			return " ", true
		}
		return ws, true
	}
	return "", false
}

// afterParenPads reports tokens that may be separated from a closing paren.
func afterParenPads(b tok) bool {
	switch b.kind {
	case tClose, tSemi, tComma, tOpen:
		return false
	case tOp:
		switch b.op {
		case token.Dot, token.Arrow, token.Inc, token.Dec, token.NullCond, token.Scope:
			return false
		}
	}
	return true
}
