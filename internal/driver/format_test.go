package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brace/internal/diag"
	"brace/internal/driver"
	"brace/internal/grammar"
	"brace/internal/source"
	"brace/internal/style"
	"brace/internal/trace"
)

func reconciled(set func(o *style.Options)) *style.Options {
	o := style.New()
	if set != nil {
		set(o)
	}
	o.Reconcile()
	return o
}

func formatString(t *testing.T, g grammar.Grammar, o *style.Options, in string) (string, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(32)
	out, _, err := driver.FormatBytes(context.Background(), "in", []byte(in), g, o, false, bag)
	require.NoError(t, err)
	return string(out), bag
}

func codes(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func TestFormatBytesKeepsLineEnds(t *testing.T) {
	o := reconciled(nil)

	out, bag := formatString(t, grammar.C, o, "int main()\r\n{\r\nreturn 0;\r\n}\r\n")
	assert.Equal(t, "int main()\r\n{\r\n    return 0;\r\n}\r\n", out)
	assert.Zero(t, bag.Len())

	out, _ = formatString(t, grammar.C, o, "int main()\n{\nreturn 0;\n}")
	assert.Equal(t, "int main()\n{\n    return 0;\n}", out)
}

func TestFormatBytesForcedLineEnd(t *testing.T) {
	o := reconciled(func(o *style.Options) { o.LineEnd = "windows" })
	out, _ := formatString(t, grammar.Java, o, "class A {\nint x;\n}\n")
	assert.Equal(t, "class A {\r\n    int x;\r\n}\r\n", out)
}

func TestFormatBytesRoundTripsUTF16(t *testing.T) {
	in, err := source.Encode("void f()\n{\nx();\n}\n", source.UTF16LE)
	require.NoError(t, err)

	bag := diag.NewBag(8)
	out, lines, err := driver.FormatBytes(context.Background(), "f.c", in, grammar.C, reconciled(nil), false, bag)
	require.NoError(t, err)
	assert.Equal(t, 4, lines)

	enc := source.DetectEncoding(out)
	assert.Equal(t, source.UTF16LE, enc)
	text, _, err := source.Decode(out)
	require.NoError(t, err)
	assert.Equal(t, "void f()\n{\n    x();\n}\n", text)
}

func TestFormatBytesDiagnostics(t *testing.T) {
	_, bag := formatString(t, grammar.C, reconciled(nil), "int x; /* open\nstill\n")
	require.Equal(t, []diag.Code{diag.CodeUnterminated}, codes(bag))
	assert.Equal(t, diag.SevWarning, bag.Items()[0].Severity)

	o := reconciled(func(o *style.Options) { o.RemoveBraces = true })
	_, bag = formatString(t, grammar.C, o, "if (x) {\n#ifdef A\nfoo();\n#endif\n}\n")
	require.Equal(t, []diag.Code{diag.CodeBraceEditSkipped}, codes(bag))
	assert.Equal(t, 1, bag.Items()[0].Primary.Line)
	assert.False(t, bag.HasErrors())
}

func TestFormatBytesAllowsContentChangingOptions(t *testing.T) {
	o := reconciled(func(o *style.Options) { o.AddBraces = true })
	out, bag := formatString(t, grammar.C, o, "if (x)\nfoo();\n")
	assert.Equal(t, "if (x) {\n    foo();\n}\n", out)
	assert.False(t, bag.HasErrors())
}

func TestFormatBytesIndentOnly(t *testing.T) {
	o := reconciled(func(o *style.Options) { o.PadOper = true })
	bag := diag.NewBag(8)
	out, _, err := driver.FormatBytes(context.Background(), "a.c", []byte("void f(){\nx=1;\n}\n"), grammar.C, o, true, bag)
	require.NoError(t, err)
	assert.Equal(t, "void f(){\n    x=1;\n}\n", string(out))
}

func TestFormatBytesUnknownGrammar(t *testing.T) {
	bag := diag.NewBag(8)
	_, _, err := driver.FormatBytes(context.Background(), "a.txt", []byte("x"), grammar.Unknown, reconciled(nil), false, bag)
	require.Error(t, err)
	assert.Equal(t, []diag.Code{diag.CodeUnknownGrammar}, codes(bag))
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return dir
}

func TestCollectFiles(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.c":          "",
		"b/B.java":     "",
		"b/notes.txt":  "",
		"vendor/x.cpp": "",
		"gen/y_gen.cs": "",
	})
	files, err := driver.CollectFiles(context.Background(), []string{dir}, grammar.Unknown, []string{"vendor", "*_gen.cs"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.c"), filepath.Join(dir, "b", "B.java")}, files)

	// a file named directly is taken when the language is forced
	files, err = driver.CollectFiles(context.Background(), []string{filepath.Join(dir, "b", "notes.txt")}, grammar.C, nil)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestFormatPathsWritesCheckAndCache(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"main.c": "int main()\n{\nreturn 0;\n}\n",
		"ok.c":   "int x;\n",
	})
	cache, err := driver.OpenDiskCacheAt(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	results, err := driver.FormatPaths(ctx, []string{dir}, driver.FormatOptions{Check: true, Options: reconciled(nil), Cache: cache})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].Changed)
	assert.False(t, results[1].Changed)
	data, err := os.ReadFile(filepath.Join(dir, "main.c"))
	require.NoError(t, err)
	assert.Equal(t, "int main()\n{\nreturn 0;\n}\n", string(data), "check must not write")

	events := make(chan driver.Event, 16)
	results, err = driver.FormatPaths(ctx, []string{dir}, driver.FormatOptions{Options: reconciled(nil), Cache: cache, Jobs: 2, Events: events})
	require.NoError(t, err)
	assert.True(t, results[0].Changed)
	assert.True(t, results[1].Cached, "ok.c was stored as formatted by the check run")
	var final []driver.Stage
	for ev := range events {
		if ev.Stage.Final() {
			final = append(final, ev.Stage)
		}
	}
	assert.ElementsMatch(t, []driver.Stage{driver.StageChanged, driver.StageCached}, final)

	data, err = os.ReadFile(filepath.Join(dir, "main.c"))
	require.NoError(t, err)
	assert.Equal(t, "int main()\n{\n    return 0;\n}\n", string(data))

	results, err = driver.FormatPaths(ctx, []string{dir}, driver.FormatOptions{Options: reconciled(nil), Cache: cache})
	require.NoError(t, err)
	assert.True(t, results[0].Cached)
	assert.False(t, results[0].Changed)

	// another configuration misses the cache
	results, err = driver.FormatPaths(ctx, []string{dir}, driver.FormatOptions{Check: true, Options: reconciled(func(o *style.Options) { o.IndentLength = 2 }), Cache: cache})
	require.NoError(t, err)
	assert.False(t, results[0].Cached)
	assert.True(t, results[0].Changed)
}

func TestFormatPathsStdout(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.js": "function f(){\nreturn 1;\n}\n"})
	results, err := driver.FormatPaths(context.Background(), []string{dir}, driver.FormatOptions{Stdout: true, Options: reconciled(nil)})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "function f() {\n    return 1;\n}\n", string(results[0].Formatted))
	assert.True(t, results[0].Changed)
}

func TestFormatPathsTracesFiles(t *testing.T) {
	dir := writeTree(t, map[string]string{"main.c": "int main()\n{\nreturn 0;\n}\n"})
	ring := trace.NewRing(64, trace.LevelPass)
	ctx := trace.WithTracer(context.Background(), ring)

	_, err := driver.FormatPaths(ctx, []string{dir}, driver.FormatOptions{Check: true, Options: reconciled(nil)})
	require.NoError(t, err)

	ends := map[trace.Scope]trace.Event{}
	spans := map[trace.Scope]uint64{}
	for _, ev := range ring.Events() {
		if ev.Kind == trace.KindEnd {
			ends[ev.Scope] = ev
			spans[ev.Scope] = ev.Span
		}
	}
	require.Len(t, ends, 3)
	assert.Equal(t, 1, ends[trace.ScopeRun].Attrs.Files)
	file := ends[trace.ScopeFile]
	assert.Equal(t, filepath.Join(dir, "main.c"), file.Name)
	assert.Equal(t, "c", file.Attrs.Grammar)
	assert.Equal(t, 4, file.Attrs.Lines)
	assert.True(t, file.Attrs.Changed)
	assert.Equal(t, spans[trace.ScopeRun], file.Parent)
	pass := ends[trace.ScopePass]
	assert.Equal(t, "rewrite", pass.Name)
	assert.Equal(t, spans[trace.ScopeFile], pass.Parent)
	assert.Zero(t, pass.Attrs.Checksum)
}

func TestFormatPathsNoFiles(t *testing.T) {
	dir := writeTree(t, map[string]string{"readme.md": "x"})
	_, err := driver.FormatPaths(context.Background(), []string{dir}, driver.FormatOptions{})
	require.Error(t, err)
}

func TestOptionsFingerprint(t *testing.T) {
	a, err := driver.OptionsFingerprint(reconciled(nil))
	require.NoError(t, err)
	b, err := driver.OptionsFingerprint(reconciled(nil))
	require.NoError(t, err)
	c, err := driver.OptionsFingerprint(reconciled(func(o *style.Options) { o.PadOper = true }))
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestDiskCacheDropAll(t *testing.T) {
	cache, err := driver.OpenDiskCacheAt(filepath.Join(t.TempDir(), "c"))
	require.NoError(t, err)
	var key driver.Digest
	key[0] = 7
	require.NoError(t, cache.Put(key, &driver.DiskPayload{Schema: 1, Path: "a.c"}))

	var got driver.DiskPayload
	ok, err := cache.Get(key, &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a.c", got.Path)

	require.NoError(t, cache.DropAll())
	ok, err = cache.Get(key, &got)
	require.NoError(t, err)
	assert.False(t, ok)
}
