package style

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type setter func(o *Options, v string) error

func boolSetter(field func(o *Options) *bool) setter {
	return func(o *Options, v string) error {
		b, err := ParseBool(v)
		if err != nil {
			return err
		}
		*field(o) = b
		return nil
	}
}

func intSetter(field func(o *Options) *int) setter {
	return func(o *Options, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("expected integer, got %q", v)
		}
		*field(o) = n
		return nil
	}
}

func enumSetter[T ~uint8](names []string, field func(o *Options) *T) setter {
	return func(o *Options, v string) error {
		i, err := parseName("value", names, v)
		if err != nil {
			return err
		}
		*field(o) = T(i)
		return nil
	}
}

var setters = map[string]setter{
	"style": func(o *Options, v string) error {
		p, err := ParsePreset(v)
		if err != nil {
			return err
		}
		o.Preset = p
		return nil
	},
	"brace-mode": enumSetter(braceModeNames, func(o *Options) *BraceMode { return &o.BraceMode }),
	"indent":     enumSetter(indentKindNames, func(o *Options) *IndentKind { return &o.IndentKind }),

	"indent-length":           intSetter(func(o *Options) *int { return &o.IndentLength }),
	"tab-length":              intSetter(func(o *Options) *int { return &o.TabLength }),
	"continuation-indent":     intSetter(func(o *Options) *int { return &o.ContinuationIndent }),
	"max-continuation-indent": intSetter(func(o *Options) *int { return &o.MaxContinuationIndent }),
	"min-conditional-indent":  enumSetter(minCondNames, func(o *Options) *MinConditional { return &o.MinConditional }),

	"indent-classes":       boolSetter(func(o *Options) *bool { return &o.IndentClasses }),
	"indent-modifiers":     boolSetter(func(o *Options) *bool { return &o.IndentModifiers }),
	"indent-switches":      boolSetter(func(o *Options) *bool { return &o.IndentSwitches }),
	"indent-cases":         boolSetter(func(o *Options) *bool { return &o.IndentCases }),
	"indent-namespaces":    boolSetter(func(o *Options) *bool { return &o.IndentNamespaces }),
	"indent-labels":        boolSetter(func(o *Options) *bool { return &o.IndentLabels }),
	"indent-after-parens":  boolSetter(func(o *Options) *bool { return &o.IndentAfterParens }),
	"indent-preproc-block": boolSetter(func(o *Options) *bool { return &o.IndentPreprocBlock }),
	"indent-preproc-define": boolSetter(func(o *Options) *bool { return &o.IndentPreprocDef }),
	"indent-preproc-cond":  boolSetter(func(o *Options) *bool { return &o.IndentPreprocCond }),
	"indent-col1-comments": boolSetter(func(o *Options) *bool { return &o.IndentCol1Comments }),
	"indent-braces":        boolSetter(func(o *Options) *bool { return &o.IndentBraces }),
	"indent-blocks":        boolSetter(func(o *Options) *bool { return &o.IndentBlocks }),
	"empty-line-fill":      boolSetter(func(o *Options) *bool { return &o.EmptyLineFill }),

	"attach-namespaces":        boolSetter(func(o *Options) *bool { return &o.AttachNamespaces }),
	"attach-classes":           boolSetter(func(o *Options) *bool { return &o.AttachClasses }),
	"attach-inlines":           boolSetter(func(o *Options) *bool { return &o.AttachInlines }),
	"attach-extern-c":          boolSetter(func(o *Options) *bool { return &o.AttachExternC }),
	"attach-closing-while":     boolSetter(func(o *Options) *bool { return &o.AttachClosingWhile }),
	"break-closing-braces":     boolSetter(func(o *Options) *bool { return &o.BreakClosingBraces }),
	"break-elseifs":            boolSetter(func(o *Options) *bool { return &o.BreakElseIfs }),
	"break-one-line-headers":   boolSetter(func(o *Options) *bool { return &o.BreakOneLineHeaders }),
	"keep-one-line-blocks":     boolSetter(func(o *Options) *bool { return &o.KeepOneLineBlocks }),
	"keep-one-line-statements": boolSetter(func(o *Options) *bool { return &o.KeepOneLineStatements }),
	"add-braces":               boolSetter(func(o *Options) *bool { return &o.AddBraces }),
	"add-one-line-braces":      boolSetter(func(o *Options) *bool { return &o.AddOneLineBraces }),
	"remove-braces":            boolSetter(func(o *Options) *bool { return &o.RemoveBraces }),

	"pad-oper":            boolSetter(func(o *Options) *bool { return &o.PadOper }),
	"pad-comma":           boolSetter(func(o *Options) *bool { return &o.PadComma }),
	"pad-paren-out":       boolSetter(func(o *Options) *bool { return &o.PadParenOut }),
	"pad-paren-in":        boolSetter(func(o *Options) *bool { return &o.PadParenIn }),
	"pad-first-paren-out": boolSetter(func(o *Options) *bool { return &o.PadFirstParenOut }),
	"pad-header":          boolSetter(func(o *Options) *bool { return &o.PadHeader }),
	"unpad-paren":         boolSetter(func(o *Options) *bool { return &o.UnpadParen }),
	"pad-empty-paren":     boolSetter(func(o *Options) *bool { return &o.PadEmptyParen }),
	"pad-brackets-out":    boolSetter(func(o *Options) *bool { return &o.PadBracketsOut }),
	"pad-brackets-in":     boolSetter(func(o *Options) *bool { return &o.PadBracketsIn }),
	"unpad-brackets":      boolSetter(func(o *Options) *bool { return &o.UnpadBrackets }),
	"pad-negation":        enumSetter(negationNames, func(o *Options) *NegationPad { return &o.PadNegation }),
	"pad-include":         enumSetter(includeNames, func(o *Options) *IncludePad { return &o.PadInclude }),
	"align-pointer": enumSetter(alignNames[:AlignSameAsPointer], func(o *Options) *Align {
		return &o.AlignPointer
	}),
	"align-reference": enumSetter(alignNames, func(o *Options) *Align { return &o.AlignReference }),

	"break-blocks":         enumSetter(breakBlocksNames, func(o *Options) *BreakBlocks { return &o.BreakBlocks }),
	"delete-empty-lines":   boolSetter(func(o *Options) *bool { return &o.DeleteEmptyLines }),
	"squeeze-lines":        intSetter(func(o *Options) *int { return &o.SqueezeLines }),
	"convert-tabs":         boolSetter(func(o *Options) *bool { return &o.ConvertTabs }),
	"close-templates":      boolSetter(func(o *Options) *bool { return &o.CloseTemplates }),
	"strip-comment-prefix": boolSetter(func(o *Options) *bool { return &o.StripCommentPrefix }),
	"max-code-length":      intSetter(func(o *Options) *int { return &o.MaxCodeLength }),
	"break-after-logical":  boolSetter(func(o *Options) *bool { return &o.BreakAfterLogical }),

	"pad-method-colon":    enumSetter(colonNames, func(o *Options) *ColonPad { return &o.PadMethodColon }),
	"pad-method-prefix":   boolSetter(func(o *Options) *bool { return &o.PadMethodPrefix }),
	"unpad-method-prefix": boolSetter(func(o *Options) *bool { return &o.UnpadMethodPrefix }),
	"pad-return-type":     boolSetter(func(o *Options) *bool { return &o.PadReturnType }),
	"unpad-return-type":   boolSetter(func(o *Options) *bool { return &o.UnpadReturnType }),
	"pad-param-type":      boolSetter(func(o *Options) *bool { return &o.PadParamType }),
	"unpad-param-type":    boolSetter(func(o *Options) *bool { return &o.UnpadParamType }),
	"align-method-colon":  boolSetter(func(o *Options) *bool { return &o.AlignMethodColon }),

	"indentable-macros": func(o *Options, v string) error {
		pairs, err := ParseMacroPairs(v)
		if err != nil {
			return err
		}
		o.IndentableMacros = append(o.IndentableMacros, pairs...)
		return nil
	},
	"lineend": func(o *Options, v string) error {
		v = strings.ToLower(strings.TrimSpace(v))
		switch v {
		case "", "default", "windows", "linux", "macold":
			o.LineEnd = v
			return nil
		}
		return fmt.Errorf("invalid line end %q (expected default|windows|linux|macold)", v)
	},
}

// Keys lists every recognized option key, sorted.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set applies one key/value pair and records its position so that Reconcile
// can let the later of two conflicting settings win. Keys are
// case-insensitive and accept '_' in place of '-'.
func (o *Options) Set(key, value string) error {
	key = NormalizeKey(key)
	fn, ok := setters[key]
	if !ok {
		return fmt.Errorf("unknown option %q", key)
	}
	if err := fn(o, value); err != nil {
		return fmt.Errorf("option %s: %w", key, err)
	}
	if o.seen == nil {
		o.seen = make(map[string]int)
	}
	o.seen[key] = len(o.explicit)
	o.explicit = append(o.explicit, key)
	return nil
}

// NormalizeKey maps a raw key to its canonical spelling.
func NormalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "_", "-")
}

// ParseBool accepts an empty value as true so that bare flags work.
func ParseBool(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "true", "on", "yes", "1":
		return true, nil
	case "false", "off", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected boolean, got %q", v)
}

// ParseMacroPairs parses "BEGIN:END,BEGIN2:END2".
func ParseMacroPairs(v string) ([][2]string, error) {
	var out [][2]string
	for _, item := range strings.Split(v, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		begin, end, ok := strings.Cut(item, ":")
		begin, end = strings.TrimSpace(begin), strings.TrimSpace(end)
		if !ok || begin == "" || end == "" {
			return nil, fmt.Errorf("macro pair %q must be BEGIN:END", item)
		}
		out = append(out, [2]string{begin, end})
	}
	return out, nil
}

// IsBool reports whether key is a toggle, so that a bare CLI flag means true.
func IsBool(key string) bool {
	fn, ok := setters[NormalizeKey(key)]
	if !ok {
		return false
	}
	return fn(New(), "") == nil && fn(New(), "on") == nil && fn(New(), "off") == nil
}
