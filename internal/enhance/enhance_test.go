package enhance

import (
	"strings"
	"testing"

	"brace/internal/resource"
	"brace/internal/style"
)

func run(e *Enhancer, src string) string {
	lines := strings.Split(src, "\n")
	for i, l := range lines {
		lines[i] = e.Enhance(l, LineContext{})
	}
	return strings.Join(lines, "\n")
}

func TestEnhance(t *testing.T) {
	const switchSrc = "switch (x)\n{\ncase 1:\n    {\n        foo();\n    }\ncase 2: {\n        bar();\n    }\ndefault:\n    baz();\n}"
	tests := []struct {
		name   string
		set    func(o *style.Options)
		macros []resource.MacroPair
		in     string
		want   string
	}{
		{
			name: "braced case sections",
			in:   switchSrc,
			want: "switch (x)\n{\ncase 1:\n{\n    foo();\n}\ncase 2: {\n    bar();\n}\ndefault:\n    baz();\n}",
		},
		{
			name: "indent cases keeps them",
			set:  func(o *style.Options) { o.IndentCases = true },
			in:   switchSrc,
			want: switchSrc,
		},
		{
			name: "nested switch",
			in:   "switch (a) {\ncase 1: {\n        switch (b) {\n        case 2: {\n                x();\n            }\n        }\n    }\n}",
			want: "switch (a) {\ncase 1: {\n    switch (b) {\n    case 2: {\n        x();\n    }\n    }\n}\n}",
		},
		{
			name: "braces in strings and comments",
			in:   "switch (a) {\ncase 1: {\n        s = \"}\"; // }\n    }\n}",
			want: "switch (a) {\ncase 1: {\n    s = \"}\"; // }\n}\n}",
		},
		{
			name:   "macro block",
			macros: []resource.MacroPair{{Begin: "BEGIN_EVENT_TABLE", End: "END_EVENT_TABLE"}},
			in:     "BEGIN_EVENT_TABLE(F, B)\nEVT_MENU(1, F::On)\nEND_EVENT_TABLE()",
			want:   "BEGIN_EVENT_TABLE(F, B)\n    EVT_MENU(1, F::On)\nEND_EVENT_TABLE()",
		},
		{
			name: "option macros",
			set:  func(o *style.Options) { o.IndentableMacros = [][2]string{{"BEGIN_MAP", "END_MAP"}} },
			in:   "BEGIN_MAP\nENTRY(1)\nEND_MAP",
			want: "BEGIN_MAP\n    ENTRY(1)\nEND_MAP",
		},
		{
			name: "sql declare section",
			in:   "EXEC SQL BEGIN DECLARE SECTION;\nint id;\nEXEC SQL END DECLARE SECTION;",
			want: "EXEC SQL BEGIN DECLARE SECTION;\n    int id;\nEXEC SQL END DECLARE SECTION;",
		},
		{
			name: "force tab",
			set:  func(o *style.Options) { o.IndentKind = style.IndentForceTab },
			in:   "        x;\n      y;\nz;",
			want: "\t\tx;\n\t  y;\nz;",
		},
		{
			name: "tab mode unindent",
			set:  func(o *style.Options) { o.IndentKind = style.IndentTab },
			in:   "switch (a) {\ncase 1:\n\t{\n\t\tx();\n\t}\n}",
			want: "switch (a) {\ncase 1:\n{\n\tx();\n}\n}",
		},
		{
			name: "convert tabs",
			set:  func(o *style.Options) { o.ConvertTabs = true },
			in:   "    a\t= 1;\n    s = \"a\tb\";",
			want: "    a   = 1;\n    s = \"a\tb\";",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := style.New()
			if tt.set != nil {
				tt.set(o)
			}
			o.Reconcile()
			got := run(New(o, tt.macros), tt.in)
			if got != tt.want {
				t.Fatalf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestVerbatimAndDirectiveLines(t *testing.T) {
	o := style.New()
	o.IndentKind = style.IndentForceTab
	o.Reconcile()
	e := New(o, nil)
	if got := e.Enhance("    raw {", LineContext{Verbatim: true}); got != "    raw {" {
		t.Fatalf("verbatim changed: %q", got)
	}
	if got := e.Enhance("    #define X", LineContext{Directive: true}); got != "\t#define X" {
		t.Fatalf("directive: %q", got)
	}
	if e.depth != 0 {
		t.Fatalf("verbatim brace was counted")
	}
}
