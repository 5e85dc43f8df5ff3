package rewrite

import (
	"strings"

	"brace/internal/resource"
	"brace/internal/style"
	"brace/internal/token"
)

// BraceFacets describes an opening brace. Several facets may hold at once:
// a class brace is also a definition, an enum brace is a definition too.
type BraceFacets struct {
	Namespace  bool
	Class      bool
	Struct     bool
	Interface  bool
	Definition bool // function, type or namespace body
	Command    bool // block of statements
	Array      bool // initializer or object literal
	Enum       bool
	Init       bool // initializer on the right of an assignment
	Extern     bool // extern "C" block
	Empty      bool // {} with nothing inside
	SingleLine bool // closed on the same line
	Broken     bool // was first on its input line
}

func (fc BraceFacets) String() string {
	var names []string
	add := func(on bool, name string) {
		if on {
			names = append(names, name)
		}
	}
	add(fc.Namespace, "namespace")
	add(fc.Class, "class")
	add(fc.Struct, "struct")
	add(fc.Interface, "interface")
	add(fc.Definition, "definition")
	add(fc.Command, "command")
	add(fc.Array, "array")
	add(fc.Enum, "enum")
	add(fc.Init, "init")
	add(fc.Extern, "extern")
	add(fc.Empty, "empty")
	add(fc.SingleLine, "single-line")
	add(fc.Broken, "broken")
	return strings.Join(names, "|")
}

// typeBody reports a class-like body: members, not statements.
func (fc BraceFacets) typeBody() bool {
	return fc.Namespace || fc.Class || fc.Struct || fc.Interface || fc.Extern
}

// function reports a function body.
func (fc BraceFacets) function() bool {
	return fc.Definition && !fc.typeBody() && !fc.Enum
}

type braceEntry struct {
	fc      BraceFacets
	header  token.Kind // header owning a command block
	outer   stmtCtx    // statement around an initializer
	dropped bool       // removed by remove-braces
}

// stmtCtx follows the statement being read, across lines.
type stmtCtx struct {
	open        bool
	first       tok
	prev        tok
	defKw       token.Kind
	header      token.Kind // header the statement starts with
	headerDone  bool
	afterHeader token.Kind // set once a header is complete, until the body starts
	assign      bool
	isNew       bool
	depth       int
	ternary     int
}

// advance feeds one significant token to the statement context. It reports
// whether the token completed a header (closing paren or else/do/try).
func (f *Formatter) advance(t tok) bool {
	c := &f.ctx
	if !c.open {
		*c = stmtCtx{open: true, first: t}
		if t.kind == tWord && t.op != token.None && f.res.Has(resource.Headers, t.op) {
			c.header = t.op
			if f.res.Has(resource.NonParenHeaders, t.op) {
				f.ctx = stmtCtx{afterHeader: t.op}
				return true
			}
		}
	}
	switch t.kind {
	case tOpen:
		if c.depth == 0 && t.text == "(" && c.defKw != token.None && c.defKw != token.Function && f.g.IsCStyle() {
			// struct tm *localtime(...)
			c.defKw = token.None
		}
		c.depth++
	case tClose:
		if c.depth > 0 {
			c.depth--
		}
		if c.depth == 0 && c.header != token.None && !c.headerDone && t.text == ")" {
			f.ctx = stmtCtx{afterHeader: c.header}
			return true
		}
	case tSemi:
		if c.depth == 0 {
			f.ctx = stmtCtx{}
			return false
		}
	case tWord:
		switch {
		case t.op == token.New:
			c.isNew = true
		case c.depth == 0 && f.res.Has(resource.PreDefinitionHeaders, t.op) && t.op != token.None:
			if c.defKw == token.None || c.defKw == token.Enum {
				c.defKw = t.op
			}
			if c.defKw == token.Class && c.prev.op == token.Enum {
				c.defKw = token.Enum
			}
		case t.op == token.Enum && c.depth == 0:
			c.defKw = token.Enum
		case t.op == token.Function && f.g.IsJSStyle():
			c.defKw = token.Function
		}
	case tString:
		if c.prev.kind == tWord && c.prev.op == token.Extern && c.depth == 0 {
			c.defKw = token.Extern
		}
	case tOp:
		switch {
		case t.op == token.Question:
			c.ternary++
		case t.op == token.Colon && c.ternary > 0:
			c.ternary--
		case t.op == token.Colon && c.depth == 0 && f.labelEnds(c):
			f.ctx = stmtCtx{}
			return false
		case c.depth == 0 && f.res.Has(resource.AssignmentOperators, t.op):
			c.assign = true
		}
	}
	c.prev = t
	return false
}

// labelEnds reports a colon closing a case label, an access label or a
// goto label.
func (f *Formatter) labelEnds(c *stmtCtx) bool {
	switch c.first.op {
	case token.Case, token.Default, token.Public, token.Private, token.Protected, token.Signals, token.Slots:
		return true
	}
	if c.first.kind == tWord && c.prev.kind == tWord && c.first.text == c.prev.text && !f.g.IsJSStyle() {
		return c.first.op == token.None
	}
	return c.prev.op == token.Slots || c.prev.op == token.Signals
}

func (f *Formatter) topBrace() *braceEntry {
	if len(f.braces) == 0 {
		return nil
	}
	return &f.braces[len(f.braces)-1]
}

func (f *Formatter) pushBrace(e braceEntry) { f.braces = append(f.braces, e) }

func (f *Formatter) popBrace() braceEntry {
	if len(f.braces) == 0 {
		return braceEntry{}
	}
	e := f.braces[len(f.braces)-1]
	f.braces = f.braces[:len(f.braces)-1]
	return e
}

// inFunction reports whether the current position is inside statements.
func (f *Formatter) inFunction() bool {
	for _, e := range f.braces {
		if e.fc.Command || e.fc.function() {
			return true
		}
	}
	return false
}

func (f *Formatter) inClass() bool {
	top := f.topBrace()
	return top != nil && (top.fc.Class || top.fc.Struct || top.fc.Interface)
}

var arrayWords = map[string]bool{"return": true, "yield": true, "co_return": true, "co_yield": true, "throw": true}

// classify decides the facets of the brace at toks[i] from the statement
// read so far and the rest of the line.
func (f *Formatter) classify(toks []tok, i int) BraceFacets {
	c := &f.ctx
	var fc BraceFacets
	top := f.topBrace()
	p := c.prev
	switch {
	case !c.open && c.afterHeader != token.None:
		fc.Command = true
	case !c.open:
		fc.Command = top == nil || !top.fc.Array
		fc.Array = !fc.Command
	case p.isOp(token.Lambda):
		fc.Command = true
	case p.kind == tOp && f.res.Has(resource.AssignmentOperators, p.op):
		fc.Array, fc.Init = true, true
	case p.kind == tOpen, p.kind == tComma, p.isOp(token.Question),
		p.isOp(token.Colon) && (f.g.IsJSStyle() || c.ternary > 0):
		fc.Array = true
	case p.kind == tWord && arrayWords[p.text]:
		fc.Array = true
	case c.defKw != token.None:
		switch c.defKw {
		case token.Namespace, token.Module:
			fc.Namespace = true
		case token.Class, token.Record, token.AtInterface, token.AtImplementation, token.AtProtocol:
			fc.Class = true
		case token.Struct, token.Union:
			fc.Struct = true
		case token.Interface:
			fc.Interface = true
		case token.Enum:
			fc.Enum = true
		case token.Extern:
			fc.Extern = true
		case token.Function:
			if c.assign || c.depth > 0 || f.inFunction() {
				fc.Command = true
				break
			}
		}
		fc.Definition = !fc.Extern && !fc.Command
	case c.depth > 0:
		fc.Array = p.kind == tWord || p.kind == tOp && p.role == roleAngle
		fc.Command = !fc.Array
	case c.assign && (p.kind == tWord || p.kind == tClose && p.text == "]"):
		fc.Array, fc.Init = true, true
	case c.isNew:
		fc.Array = p.kind == tWord || p.kind == tClose && p.text == "]" || p.kind == tOp && p.role == roleAngle
		fc.Command = !fc.Array
	case c.assign || f.inFunction():
		fc.Command = true
	case p.kind == tClose || p.kind == tWord || p.kind == tOp && p.role == roleAngle:
		fc.Definition = true
	default:
		fc.Command = true
	}
	m := matchBrace(toks, i)
	if m >= 0 && c.open && !fc.typeBody() && !fc.Enum && (p.kind == tWord || p.kind == tOp && p.role == roleAngle) {
		// Foo x{1}; is an initializer, not a body
		if n, _ := nextSig(toks, m); n.kind == tSemi || n.kind == tComma || n.kind == tClose {
			fc = BraceFacets{Array: true}
		}
	}
	if n, _ := nextSig(toks, i); n.kind == tRBrace {
		fc.Empty = true
	}
	fc.SingleLine = m >= 0
	fc.Broken = toks[i].ws == "" && i == 0 && !toks[i].joined
	return fc
}

// matchBrace finds the brace closing toks[i] on the same line, or -1.
func matchBrace(toks []tok, i int) int {
	depth := 0
	for j := i; j < len(toks); j++ {
		switch toks[j].kind {
		case tLBrace:
			depth++
		case tRBrace:
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

type placement uint8

const (
	placeKeep placement = iota
	placeAttach
	placeBreak
	placeRunIn
)

// placement decides where an opening brace goes.
func (f *Formatter) placement(fc BraceFacets) placement {
	o := f.opts
	if fc.Array && !fc.Enum {
		return placeKeep
	}
	switch o.BraceMode {
	case style.BraceNone:
		return placeKeep
	case style.BraceAttach:
		return placeAttach
	}
	switch {
	case fc.Namespace && o.AttachNamespaces,
		(fc.Class || fc.Struct || fc.Interface) && o.AttachClasses,
		fc.Extern && o.AttachExternC,
		fc.function() && o.AttachInlines && f.inClass():
		return placeAttach
	}
	switch o.BraceMode {
	case style.BraceLinux:
		if fc.Definition || fc.typeBody() {
			return placeBreak
		}
		return placeAttach
	case style.BraceRunIn:
		if fc.typeBody() {
			return placeBreak
		}
		return placeRunIn
	}
	return placeBreak
}

// breakClosing reports whether a closing header goes on its own line
// after '}'.
func (f *Formatter) breakClosing(header token.Kind, owner token.Kind) bool {
	o := f.opts
	if o.BraceMode == style.BraceNone {
		return false
	}
	if header == token.While {
		if owner != token.Do {
			return true
		}
		if o.AttachClosingWhile {
			return false
		}
	}
	return o.BreakClosingBraces || o.BraceMode == style.BraceBreak || o.BraceMode == style.BraceRunIn
}

// closingHeader reports else, catch and finally, plus while after a do body.
func closingHeader(t tok, owner token.Kind) bool {
	if t.kind != tWord {
		return false
	}
	switch t.op {
	case token.Else, token.Catch, token.Finally, token.AtCatch, token.AtFinally:
		return true
	case token.While:
		return owner == token.Do
	}
	return false
}
