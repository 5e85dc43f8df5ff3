package rewrite

import (
	"strings"
	"testing"

	"brace/internal/grammar"
	"brace/internal/source"
	"brace/internal/style"
)

func format(g grammar.Grammar, o *style.Options, src string) (string, *Formatter) {
	f := New(source.NewBufferIterator(src), g, o)
	var out []string
	for f.HasMoreLines() {
		out = append(out, f.NextLine())
	}
	return strings.Join(out, "\n"), f
}

func opts(set func(o *style.Options)) *style.Options {
	o := style.New()
	if set != nil {
		set(o)
	}
	o.Reconcile()
	return o
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		g    grammar.Grammar
		set  func(o *style.Options)
		in   string
		want string
	}{
		{
			name: "allman one-line block",
			g:    grammar.C,
			set: func(o *style.Options) {
				o.BraceMode = style.BraceBreak
				o.PadHeader = true
			},
			in:   "if(x){foo();}",
			want: "if (x)\n{\n    foo();\n}",
		},
		{
			name: "attach brace from next line",
			g:    grammar.C,
			set:  func(o *style.Options) { o.BraceMode = style.BraceAttach },
			in:   "void f()\n{\nfoo();\n}",
			want: "void f() {\n    foo();\n}",
		},
		{
			name: "linux breaks definitions only",
			g:    grammar.C,
			set:  func(o *style.Options) { o.BraceMode = style.BraceLinux },
			in:   "void f() {\nif (x) {\nfoo();\n}\n}",
			want: "void f()\n{\n    if (x) {\n        foo();\n    }\n}",
		},
		{
			name: "one-line block kept",
			g:    grammar.C,
			set: func(o *style.Options) {
				o.BraceMode = style.BraceBreak
				o.KeepOneLineBlocks = true
			},
			in:   "if (x) { foo(); }",
			want: "if (x) { foo(); }",
		},
		{
			name: "statements split",
			g:    grammar.C,
			in:   "a = 1; b = 2;",
			want: "a = 1;\nb = 2;",
		},
		{
			name: "statements kept",
			g:    grammar.C,
			set:  func(o *style.Options) { o.KeepOneLineStatements = true },
			in:   "a = 1; b = 2;",
			want: "a = 1; b = 2;",
		},
		{
			name: "pad operators",
			g:    grammar.C,
			set:  func(o *style.Options) { o.PadOper = true },
			in:   "x=a+b*c;\nf(a,b);",
			want: "x = a + b * c;\nf(a, b);",
		},
		{
			name: "unary operators stay tight",
			g:    grammar.C,
			set:  func(o *style.Options) { o.PadOper = true },
			in:   "x=-a+!b;",
			want: "x = -a + !b;",
		},
		{
			name: "pointer to name",
			g:    grammar.C,
			set:  func(o *style.Options) { o.AlignPointer = style.AlignName },
			in:   "char* p;\nint * q;",
			want: "char *p;\nint *q;",
		},
		{
			name: "reference follows pointer to type",
			g:    grammar.C,
			set:  func(o *style.Options) { o.AlignPointer = style.AlignType },
			in:   "void f(Foo & x);",
			want: "void f(Foo& x);",
		},
		{
			name: "template angles",
			g:    grammar.C,
			set: func(o *style.Options) {
				o.PadOper = true
				o.CloseTemplates = true
			},
			in:   "std::vector<std::vector<int> > v;\nbool b = x<y;",
			want: "std::vector<std::vector<int>> v;\nbool b = x < y;",
		},
		{
			name: "unpad paren",
			g:    grammar.C,
			set:  func(o *style.Options) { o.UnpadParen = true },
			in:   "foo ( a, b );",
			want: "foo(a, b);",
		},
		{
			name: "pad paren out",
			g:    grammar.C,
			set:  func(o *style.Options) { o.PadParenOut = true },
			in:   "f(x)+g(y);",
			want: "f (x) +g (y);",
		},
		{
			name: "break one-line headers",
			g:    grammar.C,
			set:  func(o *style.Options) { o.BreakOneLineHeaders = true },
			in:   "if (x) foo();",
			want: "if (x)\n    foo();",
		},
		{
			name: "break closing braces",
			g:    grammar.Java,
			set: func(o *style.Options) {
				o.BraceMode = style.BraceAttach
				o.BreakClosingBraces = true
			},
			in:   "if (a) {\nx();\n} else {\ny();\n}",
			want: "if (a) {\n    x();\n}\nelse {\n    y();\n}",
		},
		{
			name: "attach closing header",
			g:    grammar.Java,
			set:  func(o *style.Options) { o.BraceMode = style.BraceAttach },
			in:   "if (a) {\nx();\n}\nelse {\ny();\n}",
			want: "if (a) {\n    x();\n} else {\n    y();\n}",
		},
		{
			name: "break else if",
			g:    grammar.C,
			set: func(o *style.Options) {
				o.BraceMode = style.BraceAttach
				o.BreakElseIfs = true
			},
			in:   "if (a) {\nx();\n} else if (b) {\ny();\n}",
			want: "if (a) {\n    x();\n} else\n    if (b) {\n        y();\n    }",
		},
		{
			name: "class with template base",
			g:    grammar.C,
			set:  func(o *style.Options) { o.BraceMode = style.BraceAttach },
			in:   "class A : public B<T>\n{\npublic:\nint v;\nint w;\n};",
			want: "class A : public B<T> {\npublic:\n    int v;\n    int w;\n};",
		},
		{
			name: "one-line enum",
			g:    grammar.C,
			in:   "enum E { A, B };\nint x;",
			want: "enum E { A, B };\nint x;",
		},
		{
			name: "one-line enum under break",
			g:    grammar.C,
			set:  func(o *style.Options) { o.BraceMode = style.BraceBreak },
			in:   "enum class E : int { A, B };",
			want: "enum class E : int { A, B };",
		},
		{
			name: "run-in",
			g:    grammar.C,
			set:  func(o *style.Options) { o.BraceMode = style.BraceRunIn },
			in:   "void f()\n{\nfoo();\nbar();\n}",
			want: "void f()\n{   foo();\n    bar();\n}",
		},
		{
			name: "add braces",
			g:    grammar.C,
			set:  func(o *style.Options) { o.AddBraces = true },
			in:   "if (x)\nfoo();",
			want: "if (x) {\n    foo();\n}",
		},
		{
			name: "add braces same line",
			g:    grammar.C,
			set:  func(o *style.Options) { o.AddBraces = true },
			in:   "if (x) foo();",
			want: "if (x) {\n    foo();\n}",
		},
		{
			name: "add one-line braces",
			g:    grammar.C,
			set:  func(o *style.Options) { o.AddOneLineBraces = true },
			in:   "if (x) foo();",
			want: "if (x) { foo(); }",
		},
		{
			name: "remove braces",
			g:    grammar.C,
			set:  func(o *style.Options) { o.RemoveBraces = true },
			in:   "if (x) {\nfoo();\n}\nbar();",
			want: "if (x)\n    foo();\nbar();",
		},
		{
			name: "remove broken braces",
			g:    grammar.C,
			set:  func(o *style.Options) { o.RemoveBraces = true },
			in:   "if (x)\n{\nfoo();\n}",
			want: "if (x)\n    foo();",
		},
		{
			name: "break blocks",
			g:    grammar.C,
			set:  func(o *style.Options) { o.BreakBlocks = style.BreakBlocksOn },
			in:   "a();\nif (x) {\nb();\n}\nc();",
			want: "a();\n\nif (x) {\n    b();\n}\n\nc();",
		},
		{
			name: "delete empty lines inside functions",
			g:    grammar.C,
			set:  func(o *style.Options) { o.DeleteEmptyLines = true },
			in:   "void f() {\na();\n\nb();\n}\n\nint x;",
			want: "void f() {\n    a();\n    b();\n}\n\nint x;",
		},
		{
			name: "squeeze empty lines",
			g:    grammar.C,
			set:  func(o *style.Options) { o.SqueezeLines = 1 },
			in:   "a();\n\n\n\nb();",
			want: "a();\n\nb();",
		},
		{
			name: "pad include",
			g:    grammar.C,
			set:  func(o *style.Options) { o.PadInclude = style.IncludeAfter },
			in:   "#include<stdio.h>",
			want: "#include <stdio.h>",
		},
		{
			name: "objc method colons",
			g:    grammar.ObjC,
			set:  func(o *style.Options) { o.PadMethodColon = style.ColonNone },
			in:   "- (void)setX : (int)x;",
			want: "- (void)setX:(int)x;",
		},
		{
			name: "objc param type padded",
			g:    grammar.ObjC,
			set:  func(o *style.Options) { o.PadParamType = true },
			in:   "- (void)setX:(int)x;",
			want: "- (void)setX:(int) x;",
		},
		{
			name: "nopad line left alone",
			g:    grammar.C,
			set:  func(o *style.Options) { o.PadOper = true },
			in:   "x=a+b; // *NOPAD*",
			want: "x=a+b; // *NOPAD*",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := format(tt.g, opts(tt.set), tt.in)
			if got != tt.want {
				t.Fatalf("got:\n%s\nwant:\n%s", got, tt.want)
			}
			again, _ := format(tt.g, opts(tt.set), got)
			if again != got {
				t.Fatalf("not idempotent:\n%s\nsecond pass:\n%s", got, again)
			}
		})
	}
}

func TestSplitLongLine(t *testing.T) {
	a := strings.Repeat("a", 32)
	b := strings.Repeat("b", 160)
	in := `return "` + a + `", "` + b + `";`
	o := opts(func(o *style.Options) { o.MaxCodeLength = 80 })

	got, f := format(grammar.C, o, in)
	want := `return "` + a + `",` + "\n" + `    "` + b + `";`
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
	if f.ChecksumDiff() != 0 {
		t.Fatalf("checksum diff %d", f.ChecksumDiff())
	}
	again, _ := format(grammar.C, o, got)
	if again != got {
		t.Fatalf("not idempotent:\n%s", again)
	}
}

func TestSplitAtCallArguments(t *testing.T) {
	a, b, c := strings.Repeat("a", 35), strings.Repeat("b", 35), strings.Repeat("c", 35)
	in := "call(" + a + ", " + b + ", " + c + ");"
	o := opts(func(o *style.Options) { o.MaxCodeLength = 80 })

	got, f := format(grammar.C, o, in)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 lines, got:\n%s", got)
	}
	// запятая внутри вызова тоже место разрыва, берётся последняя влезающая
	if lines[0] != "call("+a+", "+b+"," {
		t.Fatalf("first line %q", lines[0])
	}
	if strings.TrimSpace(lines[1]) != c+");" {
		t.Fatalf("second line %q", lines[1])
	}
	if f.ChecksumDiff() != 0 {
		t.Fatalf("checksum diff %d", f.ChecksumDiff())
	}
}

func TestSplitPrefersLogicalOperators(t *testing.T) {
	cond := "if (" + strings.Repeat("a", 30) + " && " + strings.Repeat("b", 30) + " && " + strings.Repeat("c", 30) + ")"
	o := opts(func(o *style.Options) { o.MaxCodeLength = 80 })
	got, _ := format(grammar.C, o, cond)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 lines, got:\n%s", got)
	}
	if !strings.HasPrefix(strings.TrimSpace(lines[1]), "&& ccc") {
		t.Fatalf("split before the last &&, got:\n%s", got)
	}

	o = opts(func(o *style.Options) {
		o.MaxCodeLength = 80
		o.BreakAfterLogical = true
	})
	got, _ = format(grammar.C, o, cond)
	lines = strings.Split(got, "\n")
	if !strings.HasSuffix(lines[0], "&&") {
		t.Fatalf("logical operator should end the first line, got:\n%s", got)
	}
}

func TestChecksums(t *testing.T) {
	inputs := []string{
		"int main(int argc,char**argv){if(argc>1){return 1;}else{return 0;}}",
		"#ifdef A\nif (a) {\n#else\nif (b) {\n#endif\nx();\n}",
		"/* open\n * comment */ int x;\nconst char *s = R\"(raw\n  text)\";",
		"switch(x){case 1:{a();break;}default:b();}",
		"class A : public B {\npublic:\nA() : x(0) {}\nint x;\n};",
	}
	for _, set := range []func(o *style.Options){
		nil,
		func(o *style.Options) { o.Preset = style.PresetAllman },
		func(o *style.Options) { o.Preset = style.PresetJava; o.PadOper = true; o.PadHeader = true },
		func(o *style.Options) { o.Preset = style.PresetHorstmann },
		func(o *style.Options) { o.Preset = style.PresetLinux; o.MaxCodeLength = 50 },
	} {
		for _, in := range inputs {
			_, f := format(grammar.C, opts(set), in)
			if f.ChecksumDiff() != 0 {
				t.Errorf("checksum diff %d for %q", f.ChecksumDiff(), in)
			}
			if f.ChecksumIn() == 0 {
				t.Errorf("empty input checksum for %q", in)
			}
		}
	}
}

func TestContentChangingChecksums(t *testing.T) {
	_, f := format(grammar.C, opts(func(o *style.Options) { o.AddBraces = true }), "if (x)\nfoo();")
	if got := f.ChecksumDiff(); got != '{'+'}' {
		t.Fatalf("add-braces diff %d", got)
	}
	_, f = format(grammar.C, opts(func(o *style.Options) { o.RemoveBraces = true }), "if (x) {\nfoo();\n}")
	if got := f.ChecksumDiff(); got != -('{' + '}') {
		t.Fatalf("remove-braces diff %d", got)
	}
	got, f := format(grammar.C, opts(func(o *style.Options) { o.StripCommentPrefix = true }), "/*\n * hello\n */")
	if want := "/*\n   hello\n */"; got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
	if f.ChecksumDiff() != -'*' {
		t.Fatalf("strip-comment-prefix diff %d", f.ChecksumDiff())
	}
}

func TestBraceEditSkippedAcrossDirective(t *testing.T) {
	in := "if (x) {\n#ifdef A\nfoo();\n#endif\n}"
	got, f := format(grammar.C, opts(func(o *style.Options) { o.RemoveBraces = true }), in)
	if first := strings.Split(got, "\n")[0]; first != "if (x) {" {
		t.Fatalf("braces removed across a directive:\n%s", got)
	}
	notes := f.Notes()
	if len(notes) != 1 || notes[0].Line != 1 {
		t.Fatalf("notes %v", notes)
	}
	if f.ChecksumDiff() != 0 {
		t.Fatalf("checksum diff %d", f.ChecksumDiff())
	}
}

func TestLineReady(t *testing.T) {
	o := opts(func(o *style.Options) { o.BraceMode = style.BraceBreak })
	f := New(source.NewBufferIterator("if(x){foo();}"), grammar.C, o)
	if f.IsLineReady() {
		t.Fatal("nothing read yet")
	}
	if got := f.NextLine(); got != "if(x)" {
		t.Fatalf("first line %q", got)
	}
	if !f.IsLineReady() {
		t.Fatal("the rest of the split line should be buffered")
	}
	n := 1
	for f.HasMoreLines() {
		f.NextLine()
		n++
	}
	if n != 4 {
		t.Fatalf("%d lines", n)
	}
	if f.NextLine() != "" || f.Lines() != 1 {
		t.Fatalf("exhausted stream, lines %d", f.Lines())
	}
}

func TestIndentOnly(t *testing.T) {
	o := opts(func(o *style.Options) { o.BraceMode = style.BraceBreak; o.PadOper = true })
	f := IndentOnly(source.NewBufferIterator("void f(){\nx=1;\n}"), grammar.C, o)
	var out []string
	for f.HasMoreLines() {
		out = append(out, f.NextLine())
	}
	if got, want := strings.Join(out, "\n"), "void f(){\n    x=1;\n}"; got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestUnterminated(t *testing.T) {
	_, f := format(grammar.C, opts(nil), "int x; /* never closed\nstill comment")
	if f.Unterminated() != "block comment" {
		t.Fatalf("got %q", f.Unterminated())
	}
}

func TestBraceFacets(t *testing.T) {
	tests := []struct {
		g    grammar.Grammar
		line string
		want string
	}{
		{grammar.C, "namespace a {", "namespace|definition"},
		{grammar.C, "class A {", "class|definition"},
		{grammar.C, "struct S {", "struct|definition"},
		{grammar.C, "enum E {", "definition|enum"},
		{grammar.C, `extern "C" {`, "extern"},
		{grammar.C, "void f() {", "definition"},
		{grammar.C, "int a[] = {", "array|init"},
		{grammar.C, "if (x) {", "command"},
		{grammar.C, "void f() {}", "definition|empty|single-line"},
		{grammar.Java, "interface I {", "interface|definition"},
		{grammar.JS, "x = function() {", "command"},
		{grammar.JS, "f(function() {", "command"},
		{grammar.JS, "return {", "array"},
	}
	for _, tt := range tests {
		f := New(source.NewBufferIterator(""), tt.g, opts(nil))
		toks := f.tokenize(tt.line, tok{})
		f.annotate(toks, tok{}, true)
		var got BraceFacets
		for i, tk := range toks {
			if tk.kind == tLBrace {
				got = f.classify(toks, i)
				break
			}
			if tk.significant() {
				f.advance(tk)
			}
		}
		if got.String() != tt.want {
			t.Errorf("%s: got %s, want %s", tt.line, got, tt.want)
		}
	}
}
