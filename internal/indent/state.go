package indent

import "brace/internal/token"

type scopeKind uint8

const (
	scopeBlock scopeKind = iota
	scopeClass
	scopeNamespace
	scopeSwitch
	scopeExtern
	scopeArray
	// scopeHeader is the probationary indent after a header without a brace.
	scopeHeader
	// scopeCase holds the statements after a case label.
	scopeCase
)

func (k scopeKind) isBrace() bool { return k <= scopeArray }

type scope struct {
	kind   scopeKind
	header token.Kind // header or definition keyword that opened the scope
	open   Indent     // indent of the closing brace
	body   Indent     // indent of the content
	parens int        // len(parens) when the scope opened
	outer  stmt       // enclosing statement, restored at the closing brace
}

type paren struct {
	ch     byte
	align  Indent // continuation lines inside the paren
	base   Indent // indent of the line holding the open paren
	bare   bool   // nothing followed the paren on its line
	header bool   // condition of a header
	colon  Indent // first ObjC selector colon inside a bracket
	hasCol bool
}

type tokClass uint8

const (
	tokNone tokClass = iota
	tokWord
	tokNumber
	tokString
	tokOp
	tokAssign
	tokOpen
	tokClose
	tokComma
	tokSemi
	tokLBrace
	tokRBrace
	tokColon
	tokQuestion
)

// stmt is the state of the statement being scanned.
type stmt struct {
	open      bool
	indent    Indent // where the statement started
	firstLine bool
	prev      tokClass
	prevKind  token.Kind
	prevWord  string
	cont      bool // the last token asks for a continuation line

	align    Indent // after a top-level assignment
	hasAlign bool
	assigned bool

	def    scopeKind
	defKw  token.Kind
	hasDef bool
	isNew  bool

	template bool
	angle    int
	ternary  int

	header     token.Kind // header waiting for its condition paren
	headerBase Indent
	headerDeep int // len(parens) once the condition paren is open

	objcMethod bool
	colon      Indent
	hasColon   bool
}

// state is everything an #if/#else snapshot restores.
type state struct {
	scopes     []scope
	parens     []paren
	st         stmt
	lastClosed []scope // scopes closed by the last statement end, innermost first
}

func (s *state) clone() state {
	return state{
		scopes:     append([]scope(nil), s.scopes...),
		parens:     append([]paren(nil), s.parens...),
		st:         s.st,
		lastClosed: append([]scope(nil), s.lastClosed...),
	}
}

func (s *state) top() *scope {
	if len(s.scopes) == 0 {
		return nil
	}
	return &s.scopes[len(s.scopes)-1]
}

func (s *state) parenBase() int {
	if t := s.top(); t != nil {
		return t.parens
	}
	return 0
}

func (s *state) inParens() bool { return len(s.parens) > s.parenBase() }

// lexical is the text context carried across lines. It is not part of the
// snapshots: comments and strings span #if branches as plain text.
type lexical struct {
	quote    byte   // '`' or '"' (verbatim) still open
	verbatim bool   // C# @"..." semantics for quote
	raw      string // closing sequence of an open C++ raw string

	comment     bool
	commentBase Indent
	commentCol  int

	preproc    bool // directive continued with a backslash
	define     bool
	defineBase Indent
	off        bool // inside *INDENT-OFF*
}

func (l *lexical) inLiteral() bool { return l.quote != 0 || l.raw != "" }

type ppFrame struct {
	waiting   state  // state at #if, restored for every #else/#elif branch
	active    *state // state at the end of the first branch
	guard     bool   // include guard, not an indented block
	guardName string
}
