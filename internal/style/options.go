// Package style holds the formatting configuration: every toggle, the named
// presets and the reconciliation of contradictory settings.
package style

// Options is the full formatting configuration. Build it with New, change it
// through Set (which records the order of conflicting settings) and call
// Reconcile once before handing it to an engine.
type Options struct {
	Preset    Preset
	BraceMode BraceMode

	IndentKind            IndentKind
	IndentLength          int
	TabLength             int
	ContinuationIndent    int
	MaxContinuationIndent int
	MinConditional        MinConditional

	IndentClasses      bool
	IndentModifiers    bool
	IndentSwitches     bool
	IndentCases        bool
	IndentNamespaces   bool
	IndentLabels       bool
	IndentAfterParens  bool
	IndentPreprocBlock bool
	IndentPreprocDef   bool
	IndentPreprocCond  bool
	IndentCol1Comments bool
	IndentBraces       bool
	IndentBlocks       bool
	// IndentBracesNested limits IndentBraces to blocks nested in a function.
	IndentBracesNested bool
	EmptyLineFill      bool

	AttachNamespaces      bool
	AttachClasses         bool
	AttachInlines         bool
	AttachExternC         bool
	AttachClosingWhile    bool
	BreakClosingBraces    bool
	BreakElseIfs          bool
	BreakOneLineHeaders   bool
	KeepOneLineBlocks     bool
	KeepOneLineStatements bool
	AddBraces             bool
	AddOneLineBraces      bool
	RemoveBraces          bool

	PadOper          bool
	PadComma         bool
	PadParenOut      bool
	PadParenIn       bool
	PadFirstParenOut bool
	PadHeader        bool
	UnpadParen       bool
	PadEmptyParen    bool
	PadBracketsOut   bool
	PadBracketsIn    bool
	UnpadBrackets    bool
	PadNegation      NegationPad
	PadInclude       IncludePad
	AlignPointer     Align
	AlignReference   Align

	BreakBlocks        BreakBlocks
	DeleteEmptyLines   bool
	SqueezeLines       int
	ConvertTabs        bool
	CloseTemplates     bool
	StripCommentPrefix bool
	MaxCodeLength      int
	BreakAfterLogical  bool

	PadMethodColon    ColonPad
	PadMethodPrefix   bool
	UnpadMethodPrefix bool
	PadReturnType     bool
	UnpadReturnType   bool
	PadParamType      bool
	UnpadParamType    bool
	AlignMethodColon  bool

	// IndentableMacros are extra begin/end macro pairs.
	IndentableMacros [][2]string
	// LineEnd is the raw line-ending choice; the driver resolves it.
	LineEnd string

	// explicit remembers which keys were set, in order.
	explicit []string
	seen     map[string]int
}

// Defaults used when nothing is configured.
const (
	DefaultIndentLength          = 4
	DefaultContinuationIndent    = 1
	DefaultMaxContinuationIndent = 40
	DefaultMaxCodeLength         = 0
)

// New returns the default configuration.
func New() *Options {
	return &Options{
		IndentLength:          DefaultIndentLength,
		TabLength:             0,
		ContinuationIndent:    DefaultContinuationIndent,
		MaxContinuationIndent: DefaultMaxContinuationIndent,
		MinConditional:        MinCondTwo,
		AlignReference:        AlignSameAsPointer,
		seen:                  make(map[string]int),
	}
}

// Clone returns an independent copy.
func (o *Options) Clone() *Options {
	c := *o
	c.IndentableMacros = append([][2]string(nil), o.IndentableMacros...)
	c.explicit = append([]string(nil), o.explicit...)
	c.seen = make(map[string]int, len(o.seen))
	for k, v := range o.seen {
		c.seen[k] = v
	}
	return &c
}

// IsSet reports whether key was set explicitly.
func (o *Options) IsSet(key string) bool {
	_, ok := o.seen[key]
	return ok
}

// order returns the position of the last Set of key, -1 if never set.
func (o *Options) order(key string) int {
	if i, ok := o.seen[key]; ok {
		return i
	}
	return -1
}

// Explicit lists the keys set so far, in order.
func (o *Options) Explicit() []string { return append([]string(nil), o.explicit...) }

// ChangesContent reports options that legitimately alter the non-whitespace
// content of a file.
func (o *Options) ChangesContent() bool {
	return o.AddBraces || o.AddOneLineBraces || o.RemoveBraces || o.StripCommentPrefix
}

// IndentString is one indent unit in the configured characters.
func (o *Options) IndentString() string {
	if o.IndentKind == IndentSpaces {
		return spaces(o.IndentLength)
	}
	return "\t"
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
