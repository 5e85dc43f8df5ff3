package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"brace/internal/grammar"
)

const maxSeedBytes = 64 << 10 // 64 KiB, ограничение для корпуса

var languageSeeds = []string{
	"int main()\n{\nreturn 0;\n}\n",
	"void f(){if(x)y();else{z();}}\n",
	"switch (c) {\ncase 1:\nbreak;\ndefault:\n;\n}\n",
	"#ifdef A\nint a;\n#else\nint b;\n#endif\n",
	"namespace n { class A : public B { public: A(); }; }\n",
	"extern \"C\" {\nint f(void);\n}\n",
	"class A {\n    void f() {\n        int[] a = {1, 2};\n    }\n}\n",
	"function f(){\nreturn x => { return 1; };\n}\n",
	"@interface A : NSObject\n- (void)foo:(int)a bar:(int)b;\n@end\n",
	"s = \"unterminated\n/* open comment\n",
	"R\"(raw\n{ string\n)\";\nchar c = '{';\n",
	"if (a &&\nb ||\nc)\n{\n}\n",
	"x = a ? b :\nc;\n",
	"\t\tint x;   // trailing\r\n\r\n\r\n}\r\n",
	"",
}

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
}

// addTestdataSeeds adds every source file under the repository testdata.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		if _, ok := grammar.FromPath(path); !ok {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return src
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
