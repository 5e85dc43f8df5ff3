package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"brace/internal/diag"
	"brace/internal/grammar"
	"brace/internal/observ"
	"brace/internal/rewrite"
	"brace/internal/source"
	"brace/internal/style"
	"brace/internal/trace"
)

// FormatOptions configures code formatting.
type FormatOptions struct {
	Check          bool
	Stdout         bool
	IndentOnly     bool
	MaxDiagnostics int
	// Options must already be reconciled.
	Options *style.Options
	// Lang forces one grammar for every file; Unknown picks it by extension.
	Lang grammar.Grammar
	// Exclude holds glob patterns matched against the base name and the
	// slash-separated path.
	Exclude []string
	Jobs    int
	Cache   *DiskCache
	Timer   *observ.Timer
	// Events, when set, receives per-file progress. The driver closes it.
	Events chan<- Event
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path      string
	Grammar   grammar.Grammar
	Changed   bool
	Cached    bool
	Err       error
	Formatted []byte
	Bag       *diag.Bag
	Lines     int
}

// FormatPaths formats provided files or directories (recursively collecting
// files with a known extension). When opts.Check is true, files are not
// modified; Changed indicates whether formatting would update the file
// contents. When opts.Stdout is true, formatted content is returned in the
// results without touching files on disk.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if opts.Events != nil {
		defer close(opts.Events)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Options == nil {
		opts.Options = style.New()
		opts.Options.Reconcile()
	}

	ctx, span := trace.Start(ctx, trace.ScopeRun, "fmt")
	defer span.End(nil)

	idx := opts.Timer.Begin("discover")
	files, err := CollectFiles(ctx, paths, opts.Lang, opts.Exclude)
	if err != nil {
		opts.Timer.End(idx, "")
		return nil, err
	}
	opts.Timer.End(idx, fmt.Sprintf("%d files", len(files)))
	if len(files) == 0 {
		return nil, errors.New("format: no source files found")
	}
	span.Set(trace.Attrs{Files: len(files)})

	idx = opts.Timer.Begin("format")
	results, err := formatFiles(ctx, files, opts)
	opts.Timer.End(idx, "")
	return results, err
}

func (opts *FormatOptions) grammarFor(path string) grammar.Grammar {
	if opts.Lang != grammar.Unknown {
		return opts.Lang
	}
	g, _ := grammar.FromPath(path)
	return g
}

// formatFile formats one path and, unless checking or printing, writes the
// result back.
func formatFile(ctx context.Context, path string, opts *FormatOptions, fingerprint Digest) FormatResult {
	g := opts.grammarFor(path)
	result := FormatResult{Path: path, Grammar: g, Bag: diag.NewBag(maxDiagnostics(opts.MaxDiagnostics))}

	ctx, span := trace.Start(ctx, trace.ScopeFile, path)
	defer func() {
		span.Set(trace.Attrs{Grammar: g.String(), Lines: result.Lines, Changed: result.Changed, Cached: result.Cached}).End(result.Err)
	}()

	start := time.Now()
	data, err := os.ReadFile(path)
	opts.Timer.Add("read", time.Since(start))
	if err != nil {
		result.Err = err
		result.Bag.Add(diag.NewError(diag.CodeIO, diag.Location{Path: path}, err.Error()))
		return result
	}

	key := cacheKey(data, g, opts.IndentOnly, fingerprint)
	if opts.Cache != nil && !opts.Stdout {
		var payload DiskPayload
		if ok, cerr := opts.Cache.Get(key, &payload); cerr == nil && ok && payload.Schema == diskCacheSchemaVersion {
			result.Cached = true
			result.Lines = int(payload.Lines)
			return result
		}
	}

	start = time.Now()
	formatted, lines, err := FormatBytes(ctx, path, data, g, opts.Options, opts.IndentOnly, result.Bag)
	opts.Timer.Add("engine", time.Since(start))
	result.Lines = lines
	if err != nil {
		result.Err = err
		return result
	}
	changed := !bytes.Equal(data, formatted)

	switch {
	case opts.Check:
		result.Changed = changed
	case opts.Stdout:
		result.Formatted = formatted
		result.Changed = changed
	case changed:
		mode := os.FileMode(0o644)
		if info, statErr := os.Stat(path); statErr == nil {
			mode = info.Mode()
		}
		start = time.Now()
		if err := os.WriteFile(path, formatted, mode.Perm()); err != nil {
			result.Err = err
			result.Bag.Add(diag.NewError(diag.CodeIO, diag.Location{Path: path}, err.Error()))
			return result
		}
		opts.Timer.Add("write", time.Since(start))
		result.Changed = true
	}

	// only a file that is now in its formatted shape is remembered
	if opts.Cache != nil && !result.Bag.HasErrors() && (!changed || !opts.Check && !opts.Stdout) {
		stored := key
		if changed {
			stored = cacheKey(formatted, g, opts.IndentOnly, fingerprint)
		}
		if err := opts.Cache.Put(stored, newPayload(path, g, lines)); err != nil {
			span.Note("cache", err.Error())
		}
	}
	return result
}

func maxDiagnostics(n int) int {
	if n <= 0 {
		return 256
	}
	return n
}

// FormatBytes runs the formatter over one file's bytes. The encoding and the
// byte order mark survive; line endings follow opts.LineEnd. When the output
// would change content that no option allows to change, the input is
// returned unchanged and bag receives a CodeChecksumMismatch error.
func FormatBytes(ctx context.Context, path string, data []byte, g grammar.Grammar, opts *style.Options, indentOnly bool, bag *diag.Bag) (out []byte, lines int, err error) {
	pass := "rewrite"
	if indentOnly {
		pass = "indent"
	}
	_, span := trace.Start(ctx, trace.ScopePass, pass)
	defer func() { span.End(err) }()

	// одна и та же заметка может прийти от обоих проходов движка
	rep := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	loc := diag.Location{Path: path}
	if g == grammar.Unknown {
		rep.Report(diag.NewError(diag.CodeUnknownGrammar, loc, "cannot tell the language from the file name"))
		return nil, 0, fmt.Errorf("%s: unknown language", path)
	}
	text, enc, err := source.Decode(data)
	if err != nil {
		rep.Report(diag.NewError(diag.CodeEncoding, loc, err.Error()))
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}

	it := source.NewBufferIterator(text)
	want, err := source.ParseLineEnd(opts.LineEnd)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}
	eol := want.Resolve(it.LineEnd()).Sequence()

	var f *rewrite.Formatter
	if indentOnly {
		f = rewrite.IndentOnly(it, g, opts)
	} else {
		f = rewrite.New(it, g, opts)
	}

	var b strings.Builder
	b.Grow(len(text) + len(text)/8)
	n := 0
	for f.HasMoreLines() {
		line := f.NextLine()
		if n > 0 {
			b.WriteString(eol)
		}
		n++
		b.WriteString(line)
		if opts.MaxCodeLength > 0 && runewidth.StringWidth(strings.TrimLeft(line, " \t")) > opts.MaxCodeLength {
			rep.Report(diag.New(diag.SevInfo, diag.CodeLineTooLong, diag.Location{Path: path, Line: n},
				fmt.Sprintf("line is still longer than %d columns", opts.MaxCodeLength)))
		}
	}
	if it.TrailingNewline() && n > 0 {
		b.WriteString(eol)
	}
	span.Set(trace.Attrs{Lines: f.Lines(), Checksum: f.ChecksumDiff()})

	for _, note := range f.Notes() {
		span.Note("brace-edit-skipped", fmt.Sprintf("line %d: %s", note.Line, note.Msg))
		rep.Report(diag.New(diag.SevInfo, diag.CodeBraceEditSkipped, diag.Location{Path: path, Line: note.Line}, note.Msg))
	}
	if what := f.Unterminated(); what != "" {
		rep.Report(diag.New(diag.SevWarning, diag.CodeUnterminated, loc, what+" is still open at end of file"))
	}
	if diff := f.ChecksumDiff(); diff != 0 && (indentOnly || !opts.ChangesContent()) {
		span.Note("checksum-mismatch", "output left unchanged")
		rep.Report(diag.NewError(diag.CodeChecksumMismatch, loc,
			fmt.Sprintf("formatting would change the file content (checksum diff %d); file left untouched", diff)))
		return data, f.Lines(), nil
	}

	out, err = source.Encode(b.String(), enc)
	if err != nil {
		rep.Report(diag.NewError(diag.CodeEncoding, loc, err.Error()))
		return nil, f.Lines(), fmt.Errorf("%s: %w", path, err)
	}
	return out, f.Lines(), nil
}

// CollectFiles expands paths into the sorted list of files to format.
// Directories are walked recursively; only files with a known extension are
// picked from them, while files named directly are taken as long as a
// grammar can be chosen for them.
func CollectFiles(ctx context.Context, paths []string, lang grammar.Grammar, exclude []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				if Excluded(path, exclude) {
					if d.IsDir() {
						return filepath.SkipDir
					}
					return nil
				}
				if d.IsDir() {
					return nil
				}
				if _, ok := grammar.FromPath(path); ok {
					addFile(path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			continue
		}

		if Excluded(p, exclude) {
			continue
		}
		if _, ok := grammar.FromPath(p); ok || lang != grammar.Unknown {
			addFile(p)
		}
	}

	sort.Strings(files)
	return files, nil
}

// Excluded reports whether path matches one of the exclude patterns: a glob
// over the base name or the whole path, or a directory name inside the path.
func Excluded(path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	slashed := filepath.ToSlash(path)
	base := filepath.Base(path)
	for _, pat := range patterns {
		if ok, _ := filepath.Match(pat, base); ok {
			return true
		}
		if ok, _ := filepath.Match(pat, slashed); ok {
			return true
		}
		if strings.Contains(slashed, "/"+strings.Trim(pat, "/")+"/") {
			return true
		}
	}
	return false
}
