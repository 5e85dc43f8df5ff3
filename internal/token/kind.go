package token

// Kind is an interned keyword or operator identifier.
type Kind uint16

const (
	// None marks "no match".
	None Kind = iota

	// control headers
	If
	Else
	For
	While
	Do
	Switch
	Case
	Default
	Try
	Catch
	Finally
	Foreach
	Lock
	Using
	Synchronized
	Fixed
	Unsafe
	With
	Get
	Set
	Add
	Remove
	Return
	Throw
	Break
	Continue
	Goto

	// definitions
	Class
	Struct
	Union
	Interface
	Namespace
	Enum
	Extern
	Template
	Typename
	Module
	Record
	Function
	Where

	// modifiers and pre-command words
	Public
	Private
	Protected
	Internal
	Static
	Const
	Volatile
	Noexcept
	Override
	Final
	Sealed
	Throws
	Signals
	Slots
	Operator
	New
	Delete
	Sizeof
	Typedef

	// C++ casts
	ConstCast
	DynamicCast
	ReinterpretCast
	StaticCast

	// Qt and friends
	QForeach
	QForever
	Forever

	// Objective-C
	AtInterface
	AtImplementation
	AtProtocol
	AtEnd
	AtTry
	AtCatch
	AtFinally
	AtSynchronized
	AtAutoreleasepool

	// GSC
	Thread
	Wait
	Waittill
	Endon

	// operators
	Assign
	PlusAssign
	MinusAssign
	StarAssign
	SlashAssign
	PercentAssign
	AmpAssign
	PipeAssign
	CaretAssign
	ShlAssign
	ShrAssign
	UshrAssign
	PowAssign
	NullAssign
	AndAssign
	OrAssign
	Eq
	Ne
	StrictEq
	StrictNe
	Lt
	Gt
	Le
	Ge
	Spaceship
	Plus
	Minus
	Star
	Slash
	Percent
	Amp
	Pipe
	Caret
	Tilde
	Not
	AndAnd
	OrOr
	Shl
	Shr
	Ushr
	Inc
	Dec
	Arrow
	ArrowStar
	DotStar
	Dot
	Ellipsis
	Scope
	Question
	Colon
	Lambda
	NullCoalesce
	NullCond
	Pow

	numKinds
)

var texts = [numKinds]string{
	If:           "if",
	Else:         "else",
	For:          "for",
	While:        "while",
	Do:           "do",
	Switch:       "switch",
	Case:         "case",
	Default:      "default",
	Try:          "try",
	Catch:        "catch",
	Finally:      "finally",
	Foreach:      "foreach",
	Lock:         "lock",
	Using:        "using",
	Synchronized: "synchronized",
	Fixed:        "fixed",
	Unsafe:       "unsafe",
	With:         "with",
	Get:          "get",
	Set:          "set",
	Add:          "add",
	Remove:       "remove",
	Return:       "return",
	Throw:        "throw",
	Break:        "break",
	Continue:     "continue",
	Goto:         "goto",

	Class:     "class",
	Struct:    "struct",
	Union:     "union",
	Interface: "interface",
	Namespace: "namespace",
	Enum:      "enum",
	Extern:    "extern",
	Template:  "template",
	Typename:  "typename",
	Module:    "module",
	Record:    "record",
	Function:  "function",
	Where:     "where",

	Public:    "public",
	Private:   "private",
	Protected: "protected",
	Internal:  "internal",
	Static:    "static",
	Const:     "const",
	Volatile:  "volatile",
	Noexcept:  "noexcept",
	Override:  "override",
	Final:     "final",
	Sealed:    "sealed",
	Throws:    "throws",
	Signals:   "signals",
	Slots:     "slots",
	Operator:  "operator",
	New:       "new",
	Delete:    "delete",
	Sizeof:    "sizeof",
	Typedef:   "typedef",

	ConstCast:       "const_cast",
	DynamicCast:     "dynamic_cast",
	ReinterpretCast: "reinterpret_cast",
	StaticCast:      "static_cast",

	QForeach: "Q_FOREACH",
	QForever: "Q_FOREVER",
	Forever:  "forever",

	AtInterface:       "@interface",
	AtImplementation:  "@implementation",
	AtProtocol:        "@protocol",
	AtEnd:             "@end",
	AtTry:             "@try",
	AtCatch:           "@catch",
	AtFinally:         "@finally",
	AtSynchronized:    "@synchronized",
	AtAutoreleasepool: "@autoreleasepool",

	Thread:   "thread",
	Wait:     "wait",
	Waittill: "waittill",
	Endon:    "endon",

	Assign:        "=",
	PlusAssign:    "+=",
	MinusAssign:   "-=",
	StarAssign:    "*=",
	SlashAssign:   "/=",
	PercentAssign: "%=",
	AmpAssign:     "&=",
	PipeAssign:    "|=",
	CaretAssign:   "^=",
	ShlAssign:     "<<=",
	ShrAssign:     ">>=",
	UshrAssign:    ">>>=",
	PowAssign:     "**=",
	NullAssign:    "??=",
	AndAssign:     "&&=",
	OrAssign:      "||=",
	Eq:            "==",
	Ne:            "!=",
	StrictEq:      "===",
	StrictNe:      "!==",
	Lt:            "<",
	Gt:            ">",
	Le:            "<=",
	Ge:            ">=",
	Spaceship:     "<=>",
	Plus:          "+",
	Minus:         "-",
	Star:          "*",
	Slash:         "/",
	Percent:       "%",
	Amp:           "&",
	Pipe:          "|",
	Caret:         "^",
	Tilde:         "~",
	Not:           "!",
	AndAnd:        "&&",
	OrOr:          "||",
	Shl:           "<<",
	Shr:           ">>",
	Ushr:          ">>>",
	Inc:           "++",
	Dec:           "--",
	Arrow:         "->",
	ArrowStar:     "->*",
	DotStar:       ".*",
	Dot:           ".",
	Ellipsis:      "...",
	Scope:         "::",
	Question:      "?",
	Colon:         ":",
	Lambda:        "=>",
	NullCoalesce:  "??",
	NullCond:      "?.",
	Pow:           "**",
}

var lookup = func() map[string]Kind {
	m := make(map[string]Kind, numKinds)
	for k := Kind(1); k < numKinds; k++ {
		m[texts[k]] = k
	}
	return m
}()

// Text returns the spelling of k, or "" for None and out-of-range values.
func (k Kind) Text() string {
	if k >= numKinds {
		return ""
	}
	return texts[k]
}

func (k Kind) String() string {
	if k == None {
		return "<none>"
	}
	if s := k.Text(); s != "" {
		return s
	}
	return "<invalid>"
}

// Lookup returns the interned Kind for an exact spelling.
func Lookup(text string) (Kind, bool) {
	k, ok := lookup[text]
	return k, ok
}

// IsWord reports whether k is spelled like an identifier.
func (k Kind) IsWord() bool {
	return k > None && k < Assign
}

// IsOperator reports whether k is an operator spelling.
func (k Kind) IsOperator() bool {
	return k >= Assign && k < numKinds
}

// Count is the number of interned kinds, None included.
func Count() int { return int(numKinds) }
