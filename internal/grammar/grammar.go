// Package grammar identifies the source grammars the formatter understands
// and the family predicates the engines branch on.
package grammar

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Grammar selects the keyword tables and the grammar-specific rules.
type Grammar uint8

const (
	// Unknown is the zero value; it is never a valid engine grammar.
	Unknown Grammar = iota
	// C covers C and C++.
	C
	// Java is the Java grammar.
	Java
	// CSharp is the C# grammar.
	CSharp
	// JS covers JavaScript and TypeScript sources.
	JS
	// ObjC is Objective-C; it belongs to the C family.
	ObjC
	// GSC is the game-script dialect; it belongs to the C family.
	GSC

	// Max is the highest valid grammar value.
	Max = GSC
)

// All lists every valid grammar in declaration order.
var All = []Grammar{C, Java, CSharp, JS, ObjC, GSC}

func (g Grammar) String() string {
	switch g {
	case C:
		return "c"
	case Java:
		return "java"
	case CSharp:
		return "cs"
	case JS:
		return "js"
	case ObjC:
		return "objc"
	case GSC:
		return "gsc"
	default:
		return "unknown"
	}
}

// IsCStyle reports membership in the C family (C, C++, Objective-C, GSC).
func (g Grammar) IsCStyle() bool { return g == C || g == ObjC || g == GSC }

// IsJavaStyle reports the Java family.
func (g Grammar) IsJavaStyle() bool { return g == Java }

// IsSharpStyle reports the C# family.
func (g Grammar) IsSharpStyle() bool { return g == CSharp }

// IsJSStyle reports the JavaScript family.
func (g Grammar) IsJSStyle() bool { return g == JS }

// IsObjCStyle refines the C family to Objective-C.
func (g Grammar) IsObjCStyle() bool { return g == ObjC }

// IsGSCStyle refines the C family to the game-script dialect.
func (g Grammar) IsGSCStyle() bool { return g == GSC }

// HasPreprocessor reports whether '#' at line start introduces a directive.
func (g Grammar) HasPreprocessor() bool { return g.IsCStyle() || g.IsSharpStyle() }

// Parse converts a user supplied name to a Grammar.
func Parse(s string) (Grammar, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c", "c++", "cpp", "cxx":
		return C, nil
	case "java":
		return Java, nil
	case "cs", "c#", "csharp", "sharp":
		return CSharp, nil
	case "js", "javascript", "ts", "typescript":
		return JS, nil
	case "objc", "objective-c", "m":
		return ObjC, nil
	case "gsc", "csc":
		return GSC, nil
	default:
		return Unknown, fmt.Errorf("unknown language %q (expected c|java|cs|js|objc|gsc)", s)
	}
}

var extensions = map[string]Grammar{
	".c":    C,
	".h":    C,
	".cc":   C,
	".cpp":  C,
	".cxx":  C,
	".c++":  C,
	".hh":   C,
	".hpp":  C,
	".hxx":  C,
	".h++":  C,
	".inl":  C,
	".ino":  C,
	".java": Java,
	".cs":   CSharp,
	".js":   JS,
	".mjs":  JS,
	".cjs":  JS,
	".jsx":  JS,
	".ts":   JS,
	".m":    ObjC,
	".mm":   ObjC,
	".gsc":  GSC,
	".csc":  GSC,
}

// FromPath picks the grammar from a file extension.
func FromPath(path string) (Grammar, bool) {
	g, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return g, ok
}

// Extensions returns the recognised file extensions.
func Extensions() []string {
	out := make([]string, 0, len(extensions))
	for ext := range extensions {
		out = append(out, ext)
	}
	return out
}
