package indent

import (
	"strings"
	"testing"

	"brace/internal/grammar"
	"brace/internal/style"
)

func beautify(g grammar.Grammar, opts *style.Options, src string) string {
	in := New(g, opts)
	lines := strings.Split(src, "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, in.Beautify(l))
	}
	return strings.Join(out, "\n")
}

func opts(set func(o *style.Options)) *style.Options {
	o := style.New()
	if set != nil {
		set(o)
	}
	o.Reconcile()
	return o
}

func TestBeautify(t *testing.T) {
	tests := []struct {
		name string
		g    grammar.Grammar
		set  func(o *style.Options)
		in   string
		want string
	}{
		{
			name: "allman block",
			g:    grammar.C,
			in:   "if (x)\n{\nfoo();\n}",
			want: "if (x)\n{\n    foo();\n}",
		},
		{
			name: "else if chain",
			g:    grammar.Java,
			in:   "void f() {\nif (a) {\nx();\n} else if (b) {\ny();\n} else {\nz();\n}\n}",
			want: "void f() {\n    if (a) {\n        x();\n    } else if (b) {\n        y();\n    } else {\n        z();\n    }\n}",
		},
		{
			name: "dangling else",
			g:    grammar.C,
			in:   "if (a)\nif (b)\nx();\nelse\ny();\nelse\nz();\nw();",
			want: "if (a)\n    if (b)\n        x();\n    else\n        y();\nelse\n    z();\nw();",
		},
		{
			name: "if on the line after else nests",
			g:    grammar.C,
			in:   "if (a) {\nx();\n} else\nif (b) {\ny();\n}\nz();",
			want: "if (a) {\n    x();\n} else\n    if (b) {\n        y();\n    }\nz();",
		},
		{
			name: "switch labels",
			g:    grammar.C,
			in:   "switch (x)\n{\ncase 1:\nfoo();\nbreak;\ndefault:\nbar();\n}",
			want: "switch (x)\n{\ncase 1:\n    foo();\n    break;\ndefault:\n    bar();\n}",
		},
		{
			name: "indented switch",
			g:    grammar.C,
			set:  func(o *style.Options) { o.IndentSwitches = true },
			in:   "switch (x) {\ncase A::B:\nfoo();\n}",
			want: "switch (x) {\n    case A::B:\n        foo();\n}",
		},
		{
			name: "access modifiers",
			g:    grammar.C,
			in:   "class A\n{\npublic:\nA();\nprivate slots:\nvoid s();\n};",
			want: "class A\n{\npublic:\n    A();\nprivate slots:\n    void s();\n};",
		},
		{
			name: "class with template base",
			g:    grammar.C,
			in:   "class A : public B<T> {\npublic:\nint v;\nint w;\n};\nstruct S : std::vector<int>\n{\nint n;\n};",
			want: "class A : public B<T> {\npublic:\n    int v;\n    int w;\n};\nstruct S : std::vector<int>\n{\n    int n;\n};",
		},
		{
			name: "indented modifiers",
			g:    grammar.C,
			set:  func(o *style.Options) { o.IndentModifiers = true },
			in:   "class A {\npublic:\nint x;\n};",
			want: "class A {\n  public:\n    int x;\n};",
		},
		{
			name: "indented classes",
			g:    grammar.C,
			set:  func(o *style.Options) { o.IndentClasses = true },
			in:   "struct A {\npublic:\nint x;\n};",
			want: "struct A {\n    public:\n        int x;\n};",
		},
		{
			name: "namespaces",
			g:    grammar.C,
			in:   "namespace n {\nint x;\n}",
			want: "namespace n {\nint x;\n}",
		},
		{
			name: "indented namespaces",
			g:    grammar.CSharp,
			set:  func(o *style.Options) { o.IndentNamespaces = true },
			in:   "namespace N\n{\nclass C\n{\n}\n}",
			want: "namespace N\n{\n    class C\n    {\n    }\n}",
		},
		{
			name: "extern C",
			g:    grammar.C,
			in:   "extern \"C\" {\nvoid f();\n}",
			want: "extern \"C\" {\nvoid f();\n}",
		},
		{
			name: "paren alignment",
			g:    grammar.C,
			in:   "foo(a,\nb);\nbar(\nc\n);",
			want: "foo(a,\n    b);\nbar(\n    c\n);",
		},
		{
			name: "header condition",
			g:    grammar.C,
			in:   "if (a &&\nb)\nc();",
			want: "if (a &&\n        b)\n    c();",
		},
		{
			name: "assignment continuation",
			g:    grammar.C,
			in:   "int x = a +\nb;\ny();",
			want: "int x = a +\n        b;\ny();",
		},
		{
			name: "operator led continuation",
			g:    grammar.Java,
			in:   "void f() {\nreturn builder\n.a()\n.b();\n}",
			want: "void f() {\n    return builder\n        .a()\n        .b();\n}",
		},
		{
			name: "object literal",
			g:    grammar.JS,
			in:   "var o = {\na: 1,\nb: {\nc: 2\n}\n};",
			want: "var o = {\n    a: 1,\n    b: {\n        c: 2\n    }\n};",
		},
		{
			name: "array initializer",
			g:    grammar.C,
			in:   "int a[] =\n{\n1, 2,\n3\n};",
			want: "int a[] =\n{\n    1, 2,\n    3\n};",
		},
		{
			name: "callback block",
			g:    grammar.JS,
			in:   "foo(function () {\nbar();\n});\nbaz();",
			want: "foo(function () {\n    bar();\n});\nbaz();",
		},
		{
			name: "goto label",
			g:    grammar.C,
			in:   "void f()\n{\nagain:\nx();\n}",
			want: "void f()\n{\nagain:\n    x();\n}",
		},
		{
			name: "indented label",
			g:    grammar.C,
			set:  func(o *style.Options) { o.IndentLabels = true },
			in:   "void f()\n{\nif (x) {\nagain:\ny();\n}\n}",
			want: "void f()\n{\n    if (x) {\n    again:\n        y();\n    }\n}",
		},
		{
			name: "preprocessor branches",
			g:    grammar.C,
			in:   "void f()\n{\n#ifdef A\nif (a) {\n#else\nif (b) {\n#endif\nx();\n}\n}",
			want: "void f()\n{\n#ifdef A\n    if (a) {\n#else\n    if (b) {\n#endif\n        x();\n    }\n}",
		},
		{
			name: "preprocessor block with guard",
			g:    grammar.C,
			set:  func(o *style.Options) { o.IndentPreprocBlock = true },
			in:   "#ifndef FOO_H\n#define FOO_H\n#ifdef X\nint a;\n#endif\n#endif",
			want: "#ifndef FOO_H\n#define FOO_H\n#ifdef X\n    int a;\n#endif\n#endif",
		},
		{
			name: "define continuation",
			g:    grammar.C,
			set:  func(o *style.Options) { o.IndentPreprocDef = true },
			in:   "#define M(x) \\\ndo { x; } \\\nwhile (0)\nint y;",
			want: "#define M(x) \\\n    do { x; } \\\n    while (0)\nint y;",
		},
		{
			name: "define kept verbatim",
			g:    grammar.C,
			in:   "#define M(x) \\\n  do { x; } while (0)\nint y;",
			want: "#define M(x) \\\n  do { x; } while (0)\nint y;",
		},
		{
			name: "block comment keeps relative columns",
			g:    grammar.C,
			in:   "void f()\n{\n  /* a\n     b */\nx();\n}",
			want: "void f()\n{\n    /* a\n       b */\n    x();\n}",
		},
		{
			name: "column one comment",
			g:    grammar.C,
			in:   "void f()\n{\n// note\nx();\n}",
			want: "void f()\n{\n// note\n    x();\n}",
		},
		{
			name: "raw string verbatim",
			g:    grammar.C,
			in:   "auto s = R\"(\n  keep\n)\";\nx;",
			want: "auto s = R\"(\n  keep\n)\";\nx;",
		},
		{
			name: "template literal verbatim",
			g:    grammar.JS,
			in:   "f(`a\n   b`);\ng();",
			want: "f(`a\n   b`);\ng();",
		},
		{
			name: "verbatim string",
			g:    grammar.CSharp,
			in:   "var s = @\"a\n  \"\"b\"\"\";\nf();",
			want: "var s = @\"a\n  \"\"b\"\"\";\nf();",
		},
		{
			name: "indent off region",
			g:    grammar.C,
			in:   "void f()\n{\n// *INDENT-OFF*\n  x( );\n// *INDENT-ON*\ny();\n}",
			want: "void f()\n{\n// *INDENT-OFF*\n  x( );\n// *INDENT-ON*\n    y();\n}",
		},
		{
			name: "tabs",
			g:    grammar.C,
			set:  func(o *style.Options) { o.IndentKind = style.IndentTab },
			in:   "void f()\n{\nfoo(a,\nb);\n}",
			want: "void f()\n{\n\tfoo(a,\n\t    b);\n}",
		},
		{
			name: "empty line fill",
			g:    grammar.C,
			set:  func(o *style.Options) { o.EmptyLineFill = true },
			in:   "void f()\n{\nx();\n\ny();\n}",
			want: "void f()\n{\n    x();\n    \n    y();\n}",
		},
		{
			name: "whitesmith braces",
			g:    grammar.C,
			set:  func(o *style.Options) { o.IndentBraces = true },
			in:   "if (x)\n{\nfoo();\n}",
			want: "if (x)\n    {\n    foo();\n    }",
		},
		{
			name: "gnu blocks",
			g:    grammar.C,
			set:  func(o *style.Options) { o.IndentBlocks = true; o.IndentLength = 2 },
			in:   "void f()\n{\nif (x)\n{\nfoo();\n}\n}",
			want: "void f()\n{\n  if (x)\n    {\n      foo();\n    }\n}",
		},
		{
			name: "objc selector colons",
			g:    grammar.ObjC,
			set:  func(o *style.Options) { o.AlignMethodColon = true },
			in:   "[obj performSelector:@selector(x)\nwithObject:nil];",
			want: "[obj performSelector:@selector(x)\n          withObject:nil];",
		},
		{
			name: "stray closer clamps",
			g:    grammar.C,
			in:   "}\nx();",
			want: "}\nx();",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := opts(tt.set)
			got := beautify(tt.g, o, tt.in)
			if got != tt.want {
				t.Fatalf("got:\n%s\nwant:\n%s", got, tt.want)
			}
			if again := beautify(tt.g, o, got); again != got {
				t.Fatalf("not idempotent:\n%s", again)
			}
		})
	}
}

func TestMarkContinuation(t *testing.T) {
	in := New(grammar.C, opts(nil))
	if got := in.Beautify("return a,"); got != "return a," {
		t.Fatalf("first line: %q", got)
	}
	in.MarkContinuation()
	if got := in.Beautify("b;"); got != "    b;" {
		t.Fatalf("continued line: %q", got)
	}
	if got := in.Beautify("c;"); got != "c;" {
		t.Fatalf("after statement: %q", got)
	}
}

func TestDepthAndUnterminated(t *testing.T) {
	tests := []struct {
		name  string
		g     grammar.Grammar
		lines []string
		depth int
		open  string
	}{
		{name: "balanced", g: grammar.C, lines: []string{"void f() {", "}"}, depth: 0},
		{name: "open blocks", g: grammar.C, lines: []string{"void f() {", "if (x) {"}, depth: 2},
		{name: "comment", g: grammar.C, lines: []string{"/* open"}, open: "block comment"},
		{name: "raw", g: grammar.C, lines: []string{`s = R"x(`}, open: "raw string"},
		{name: "template", g: grammar.JS, lines: []string{"s = `a"}, open: "template literal"},
		{name: "directive", g: grammar.C, lines: []string{"#if A"}, open: "#if block"},
		{name: "continued directive", g: grammar.C, lines: []string{"#define X \\"}, open: "preprocessor directive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := New(tt.g, opts(nil))
			for _, l := range tt.lines {
				in.Next(l)
			}
			if in.Depth() != tt.depth {
				t.Errorf("depth = %d, want %d", in.Depth(), tt.depth)
			}
			if got := in.Unterminated(); got != tt.open {
				t.Errorf("unterminated = %q, want %q", got, tt.open)
			}
		})
	}
}

func TestRender(t *testing.T) {
	o := opts(nil)
	if got := Render(Indent{Units: 2, Spaces: 3}, o); got != strings.Repeat(" ", 11) {
		t.Fatalf("spaces: %q", got)
	}
	o.IndentKind = style.IndentTab
	if got := Render(Indent{Units: 2, Spaces: 3}, o); got != "\t\t   " {
		t.Fatalf("tabs: %q", got)
	}
	if got := Render(Indent{Units: -1}, o); got != "" {
		t.Fatalf("negative: %q", got)
	}
}
