package style

// presetDefaults lists what each named style turns on. Explicit settings of
// the same keys win over the preset.
var presetDefaults = map[Preset]map[string]string{
	PresetAllman:     {"brace-mode": "break"},
	PresetJava:       {"brace-mode": "attach"},
	PresetKR:         {"brace-mode": "linux"},
	PresetStroustrup: {"brace-mode": "linux", "attach-namespaces": "", "attach-classes": "", "break-closing-braces": ""},
	PresetWhitesmith: {"brace-mode": "break", "indent-braces": "", "indent-switches": ""},
	PresetVTK:        {"brace-mode": "break", "indent-braces": "", "indent-switches": ""},
	PresetRatliff:    {"brace-mode": "attach", "indent-braces": ""},
	PresetGNU:        {"brace-mode": "break", "indent-blocks": ""},
	PresetLinux:      {"brace-mode": "linux"},
	PresetHorstmann:  {"brace-mode": "run-in", "indent-switches": ""},
	Preset1TBS:       {"brace-mode": "linux", "add-braces": ""},
	PresetGoogle:     {"brace-mode": "attach", "indent-modifiers": ""},
	PresetMozilla:    {"brace-mode": "linux"},
	PresetWebKit:     {"brace-mode": "linux", "attach-namespaces": ""},
	PresetPico:       {"brace-mode": "run-in", "keep-one-line-blocks": ""},
	PresetLisp:       {"brace-mode": "attach", "keep-one-line-statements": ""},
}

// exclusive pairs: when both are set the one set later wins.
var exclusive = [][2]string{
	{"add-braces", "remove-braces"},
	{"add-one-line-braces", "remove-braces"},
	{"pad-paren-in", "unpad-paren"},
	{"pad-method-prefix", "unpad-method-prefix"},
	{"pad-return-type", "unpad-return-type"},
	{"pad-param-type", "unpad-param-type"},
	{"pad-brackets-in", "unpad-brackets"},
}

// Reconcile resolves contradictory and dependent settings. It is safe to
// call more than once; it never fails.
func (o *Options) Reconcile() {
	// пресет заполняет только то, что не задано явно
	if defs, ok := presetDefaults[o.Preset]; ok {
		for k, v := range defs {
			if o.IsSet(k) {
				continue
			}
			_ = setters[k](o, v)
		}
		if o.Preset == PresetVTK && !o.IsSet("indent-braces") {
			o.IndentBracesNested = true
		}
	}

	for _, pair := range exclusive {
		a, b := o.order(pair[0]), o.order(pair[1])
		if a < 0 || b < 0 {
			continue
		}
		loser := pair[0]
		if a > b {
			loser = pair[1]
		}
		o.clear(loser)
	}
	if o.RemoveBraces && (o.AddBraces || o.AddOneLineBraces) {
		// both came from defaults, not from explicit keys
		o.RemoveBraces = false
	}
	if o.PadParenIn && o.UnpadParen {
		o.UnpadParen = false
	}

	if o.IndentClasses && o.IndentModifiers {
		o.IndentModifiers = false
	}
	if o.IndentBraces && o.IndentBlocks {
		o.IndentBraces = false
	}
	if o.AddOneLineBraces {
		o.KeepOneLineBlocks = true
	}
	if o.BraceMode == BraceRunIn && o.IndentBraces {
		o.IndentBraces = false
	}

	if o.AlignReference == AlignSameAsPointer {
		o.AlignReference = o.AlignPointer
	}

	o.IndentLength = clamp(o.IndentLength, 2, 20)
	if o.TabLength <= 0 {
		o.TabLength = o.IndentLength
	}
	o.ContinuationIndent = clamp(o.ContinuationIndent, 0, 4)
	o.MaxContinuationIndent = clamp(o.MaxContinuationIndent, 40, 120)
	if o.MaxCodeLength != 0 {
		o.MaxCodeLength = clamp(o.MaxCodeLength, 50, 200)
	}
	if o.SqueezeLines < 0 {
		o.SqueezeLines = 0
	}
}

func (o *Options) clear(key string) {
	switch key {
	case "add-braces":
		o.AddBraces = false
	case "add-one-line-braces":
		o.AddOneLineBraces = false
	case "remove-braces":
		o.RemoveBraces = false
	case "pad-paren-in":
		o.PadParenIn = false
	case "unpad-paren":
		o.UnpadParen = false
	case "pad-method-prefix":
		o.PadMethodPrefix = false
	case "unpad-method-prefix":
		o.UnpadMethodPrefix = false
	case "pad-return-type":
		o.PadReturnType = false
	case "unpad-return-type":
		o.UnpadReturnType = false
	case "pad-param-type":
		o.PadParamType = false
	case "unpad-param-type":
		o.UnpadParamType = false
	case "pad-brackets-in":
		o.PadBracketsIn = false
	case "unpad-brackets":
		o.UnpadBrackets = false
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
