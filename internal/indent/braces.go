package indent

import (
	"brace/internal/token"
)

// openBrace pushes the scope for a '{'. at, when set, is the indent the
// brace line already got from an enclosing paren.
func (in *Indenter) openBrace(at *Indent) scope {
	s := &in.s
	kind, kw := in.classifyBrace()
	var base Indent
	fromHeader := false
	switch t := s.top(); {
	case at != nil:
		base = *at
	case t != nil && t.kind == scopeHeader && !s.st.open && len(s.parens) == t.parens:
		base, kw, fromHeader = t.open, t.header, true
		kind = scopeBlock
		if kw == token.Switch {
			kind = scopeSwitch
		}
		s.scopes = s.scopes[:len(s.scopes)-1]
	case s.st.open:
		base = s.st.indent
	default:
		base = in.base()
	}
	open, body := in.braceIndents(kind, kw, base, fromHeader)
	sc := scope{kind: kind, header: kw, open: open, body: body, parens: len(s.parens), outer: s.st}
	s.scopes = append(s.scopes, sc)
	s.st = stmt{prev: tokLBrace}
	s.lastClosed = s.lastClosed[:0]
	in.codeSeen = true
	in.guardPending = false
	return sc
}

func (in *Indenter) classifyBrace() (scopeKind, token.Kind) {
	s := &in.s
	st := &s.st
	if !st.open {
		if t := s.top(); t != nil && t.kind == scopeArray {
			return scopeArray, token.None
		}
		return scopeBlock, token.None
	}
	if st.hasDef && !st.assigned {
		// class A : B<T> { ends on '>', which is not an operator here
		switch st.prev {
		case tokAssign, tokOpen, tokComma, tokQuestion, tokColon, tokLBrace:
		default:
			return st.def, st.defKw
		}
	}
	switch st.prev {
	case tokAssign, tokOpen, tokComma, tokQuestion, tokColon, tokLBrace:
		return scopeArray, token.None
	case tokOp:
		return scopeBlock, token.None
	}
	if st.hasDef {
		return st.def, st.defKw
	}
	switch {
	case st.prev == tokWord && (st.prevWord == "return" || st.prevWord == "yield"):
		return scopeArray, token.None
	case st.prev == tokWord && in.g.IsJSStyle() && st.prevWord == "default":
		return scopeArray, token.None
	case st.isNew && st.prev == tokClose && st.prevWord == "]":
		return scopeArray, token.None
	case st.prev == tokWord && (st.assigned || s.inParens()):
		return scopeArray, token.None
	}
	return scopeBlock, token.None
}

func (in *Indenter) braceIndents(kind scopeKind, kw token.Kind, base Indent, fromHeader bool) (Indent, Indent) {
	o := in.opts
	units := 1
	switch kind {
	case scopeClass:
		if o.IndentClasses && in.g.IsCStyle() && (kw == token.Class || kw == token.Struct) {
			units = 2
		}
	case scopeNamespace:
		units = b2i(o.IndentNamespaces)
	case scopeExtern:
		units = 0
	case scopeSwitch:
		units = b2i(o.IndentSwitches)
	}
	open := base
	switch {
	case o.IndentBlocks && fromHeader && kind == scopeBlock:
		open = base.add(1)
	case o.IndentBraces && (kind == scopeBlock || kind == scopeClass || kind == scopeSwitch) &&
		(!o.IndentBracesNested || in.inBlock()):
		open = base.add(1)
		if units > 0 {
			units--
		}
	}
	return open, open.add(units)
}

func (in *Indenter) inBlock() bool {
	for _, sc := range in.s.scopes {
		if sc.kind == scopeBlock {
			return true
		}
	}
	return false
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// closeBrace pops the innermost brace scope and returns the indent of its
// closing brace. Stray closers clamp at the top level.
func (in *Indenter) closeBrace() Indent {
	s := &in.s
	for len(s.scopes) > 0 && !s.top().kind.isBrace() {
		s.scopes = s.scopes[:len(s.scopes)-1]
	}
	in.codeSeen = true
	in.guardPending = false
	if len(s.scopes) == 0 {
		s.parens = s.parens[:0]
		s.st = stmt{prev: tokRBrace}
		s.lastClosed = s.lastClosed[:0]
		return in.base()
	}
	sc := *s.top()
	s.scopes = s.scopes[:len(s.scopes)-1]
	if len(s.parens) > sc.parens {
		s.parens = s.parens[:sc.parens]
	}
	s.st = sc.outer
	s.st.prev, s.st.prevKind, s.st.prevWord = tokRBrace, token.None, "}"
	s.st.cont = false
	if sc.kind != scopeArray && !s.inParens() && !s.st.assigned {
		in.endStatement(&sc)
	} else {
		s.lastClosed = s.lastClosed[:0]
	}
	return sc.open
}

// endStatement resets the statement and drops the header scopes it
// completed. The dropped scopes stay in lastClosed for a following else.
func (in *Indenter) endStatement(closed *scope) {
	s := &in.s
	s.lastClosed = s.lastClosed[:0]
	if closed != nil {
		s.lastClosed = append(s.lastClosed, *closed)
	}
	for len(s.scopes) > 0 {
		t := s.top()
		if t.kind != scopeHeader || t.parens != len(s.parens) {
			break
		}
		s.lastClosed = append(s.lastClosed, *t)
		s.scopes = s.scopes[:len(s.scopes)-1]
	}
	s.st = stmt{prev: tokSemi}
}
