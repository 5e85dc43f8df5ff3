package grammar

import "testing"

func TestFamilyPredicatesAreExclusive(t *testing.T) {
	for _, g := range All {
		n := 0
		for _, p := range []bool{g.IsCStyle(), g.IsJavaStyle(), g.IsSharpStyle(), g.IsJSStyle()} {
			if p {
				n++
			}
		}
		if n != 1 {
			t.Fatalf("%s: %d family predicates true, want exactly 1", g, n)
		}
	}
}

func TestDialectRefinements(t *testing.T) {
	if !ObjC.IsCStyle() || !ObjC.IsObjCStyle() {
		t.Fatalf("objc must be C family and objc dialect")
	}
	if !GSC.IsCStyle() || !GSC.IsGSCStyle() {
		t.Fatalf("gsc must be C family and gsc dialect")
	}
	if C.IsObjCStyle() || C.IsGSCStyle() {
		t.Fatalf("plain C must not report a dialect")
	}
}

func TestFromPath(t *testing.T) {
	cases := map[string]Grammar{
		"a/b/main.cpp":  C,
		"x.H":           C,
		"Foo.java":      Java,
		"Prog.cs":       CSharp,
		"app.mjs":       JS,
		"View.m":        ObjC,
		"maps/zm.gsc":   GSC,
	}
	for path, want := range cases {
		got, ok := FromPath(path)
		if !ok || got != want {
			t.Fatalf("FromPath(%q) = %v,%v; want %v", path, got, ok, want)
		}
	}
	if _, ok := FromPath("README.md"); ok {
		t.Fatalf("markdown must not map to a grammar")
	}
}

func TestParse(t *testing.T) {
	g, err := Parse("C#")
	if err != nil || g != CSharp {
		t.Fatalf("Parse(C#) = %v, %v", g, err)
	}
	if _, err := Parse("cobol"); err == nil {
		t.Fatalf("expected error for unknown language")
	}
}
