package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"brace/internal/diag"
	"brace/internal/diagfmt"
	"brace/internal/driver"
	"brace/internal/grammar"
	"brace/internal/observ"
	"brace/internal/version"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Format source files",
	Long: `Format source files in place. Directories are walked recursively and every
file with a known extension is formatted. Style options come from the nearest
.brace.toml / .brace.yaml and from the command line, the command line last.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFmt,
}

// fmtSettings collects style flags in command-line order.
var fmtSettings []setting

func init() {
	f := fmtCmd.Flags()
	f.Bool("check", false, "check if files are properly formatted")
	f.String("format", "text", "output format (text|json|sarif)")
	f.Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	f.Bool("indent-only", false, "only re-indent, never rewrite line content")
	f.Int("jobs", 0, "files formatted in parallel (0 = GOMAXPROCS)")
	f.String("ui", "auto", "progress view (auto|on|off)")
	f.Bool("watch", false, "keep running and reformat files when they change")
	f.Bool("no-cache", false, "do not use or update the formatted-file cache")
	f.StringSlice("exclude", nil, "glob patterns of files or directories to skip")
	f.String("lang", "", "language for every file (c|java|cs|js|objc|gsc); default by extension")
	f.String("options", "", "option file to use instead of the discovered one")
	f.Bool("no-options", false, "ignore option files")
	addStyleFlags(f, &fmtSettings)
}

// fmtRun is everything one fmt invocation needs after flag parsing.
type fmtRun struct {
	cmd        *cobra.Command
	paths      []string
	check      bool
	stdout     bool
	format     string
	quiet      bool
	timings    bool
	ui         uiMode
	watch      bool
	opts       driver.FormatOptions
	timer      *observ.Timer
	diagColor  bool
	configPath string

	// collect receives the results of every pass, used by watch.
	collect func([]driver.FormatResult)
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	run, err := newFmtRun(cmd, args)
	if err != nil {
		return err
	}
	if err := run.once(); err != nil && !run.watch {
		return err
	} else if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
	}
	if run.watch {
		return run.watchLoop()
	}
	return nil
}

func newFmtRun(cmd *cobra.Command, args []string) (*fmtRun, error) {
	flags := cmd.Flags()
	run := &fmtRun{cmd: cmd, paths: args}
	var err error
	get := func(name string, dst *bool) {
		if err == nil {
			*dst, err = flags.GetBool(name)
		}
	}
	get("check", &run.check)
	get("stdout", &run.stdout)
	get("watch", &run.watch)
	var indentOnly, noCache bool
	get("indent-only", &indentOnly)
	get("no-cache", &noCache)
	if err != nil {
		return nil, err
	}

	if run.format, err = flags.GetString("format"); err != nil {
		return nil, err
	}
	run.format = strings.ToLower(run.format)
	switch run.format {
	case "text", "json", "sarif":
	default:
		return nil, fmt.Errorf("fmt: unsupported output format %q", run.format)
	}
	if run.stdout && run.check {
		return nil, fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if run.stdout && run.format != "text" {
		return nil, fmt.Errorf("fmt: --stdout is only supported with text output")
	}
	if run.watch && (run.stdout || run.check) {
		return nil, fmt.Errorf("fmt: --watch rewrites files and cannot be combined with --stdout or --check")
	}

	uiFlag, err := flags.GetString("ui")
	if err != nil {
		return nil, err
	}
	if run.ui, err = readUIMode(uiFlag); err != nil {
		return nil, err
	}

	root := cmd.Root().PersistentFlags()
	if run.quiet, err = root.GetBool("quiet"); err != nil {
		return nil, err
	}
	if run.timings, err = root.GetBool("timings"); err != nil {
		return nil, err
	}
	maxDiagnostics, err := root.GetInt("max-diagnostics")
	if err != nil {
		return nil, err
	}

	lang := grammar.Unknown
	langFlag, err := flags.GetString("lang")
	if err != nil {
		return nil, err
	}
	if langFlag != "" {
		if lang, err = grammar.Parse(langFlag); err != nil {
			return nil, fmt.Errorf("fmt: %w", err)
		}
	}
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return nil, err
	}
	exclude, err := flags.GetStringSlice("exclude")
	if err != nil {
		return nil, err
	}

	loaded, err := loadStyle(cmd, fmtSettings)
	if err != nil {
		return nil, fmt.Errorf("fmt: %w", err)
	}
	run.configPath = loaded.optionsFile

	var cache *driver.DiskCache
	if !noCache {
		// без кэша тоже можно работать
		if cache, err = driver.OpenDiskCache("brace"); err != nil {
			cache = nil
		}
	}

	run.timer = observ.NewTimer()
	run.opts = driver.FormatOptions{
		Check:          run.check,
		Stdout:         run.stdout,
		IndentOnly:     indentOnly,
		MaxDiagnostics: maxDiagnostics,
		Options:        loaded.opts,
		Lang:           lang,
		Exclude:        append(exclude, loaded.exclude...),
		Jobs:           jobs,
		Cache:          cache,
		Timer:          run.timer,
	}
	run.diagColor = useColor(cmd, os.Stderr)
	return run, nil
}

// once formats the configured paths one time and reports the results.
func (r *fmtRun) once() error {
	return r.formatAndReport(r.paths, r.ui)
}

func (r *fmtRun) formatAndReport(paths []string, mode uiMode) error {
	ctx := r.cmd.Context()
	var (
		results []driver.FormatResult
		err     error
	)
	if r.format == "text" && !r.stdout && !r.quiet && shouldUseTUI(mode) {
		results, err = runFmtWithUI(ctx, "brace fmt", paths, r.opts)
	} else {
		results, err = driver.FormatPaths(ctx, paths, r.opts)
	}
	if err != nil {
		return err
	}
	if r.collect != nil {
		r.collect(results)
	}

	out := r.cmd.OutOrStdout()
	errOut := r.cmd.ErrOrStderr()
	var hasErrors, hasChanges bool
	for _, res := range results {
		if res.Err != nil || res.Bag.HasErrors() {
			hasErrors = true
		}
		if res.Changed {
			hasChanges = true
		}
	}

	switch r.format {
	case "text":
		if r.stdout {
			renderFmtStdout(out, errOut, results)
		} else {
			renderFmtText(out, results, r.check, r.quiet)
		}
		renderFmtDiagnostics(errOut, results, r.quiet, r.diagColor)
	case "json":
		if err := renderFmtJSON(out, results, r.check); err != nil {
			return err
		}
	case "sarif":
		if err := diagfmt.Sarif(out, mergeBags(results), diagfmt.SarifRunMeta{
			ToolName:       "brace",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args[1:],
		}); err != nil {
			return err
		}
	}

	if r.timings {
		fmt.Fprint(errOut, r.timer.Summary())
	}
	if hasErrors {
		return fmt.Errorf("fmt: failed to format some files")
	}
	if r.check && hasChanges {
		return fmt.Errorf("fmt: formatting changes required")
	}
	return nil
}

func renderFmtStdout(out, errOut io.Writer, results []driver.FormatResult) {
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(errOut, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		_, _ = out.Write(res.Formatted)
	}
}

func renderFmtText(out io.Writer, results []driver.FormatResult, check, quiet bool) {
	changed := color.New(color.FgYellow)
	failed := color.New(color.FgRed, color.Bold)
	var nChanged, nCached, nFailed int
	for _, res := range results {
		switch {
		case res.Err != nil:
			nFailed++
			fmt.Fprintf(out, "%s %s: %v\n", failed.Sprint("error"), res.Path, res.Err)
			continue
		case res.Cached:
			nCached++
		}
		if !res.Changed {
			continue
		}
		nChanged++
		if quiet {
			continue
		}
		if check {
			fmt.Fprintln(out, res.Path)
		} else {
			fmt.Fprintf(out, "%s %s\n", changed.Sprint("reformatted"), res.Path)
		}
	}
	if quiet {
		return
	}
	verb := "reformatted"
	if check {
		verb = "need formatting"
	}
	fmt.Fprintf(out, "%d files, %d %s, %d cached, %d failed\n", len(results), nChanged, verb, nCached, nFailed)
}

func renderFmtDiagnostics(w io.Writer, results []driver.FormatResult, quiet, useColor bool) {
	bag := mergeBags(results)
	if bag.Len() == 0 {
		return
	}
	bag.Sort()
	minSev := diag.SevInfo
	if quiet {
		minSev = diag.SevWarning
	}
	diagfmt.Pretty(w, bag, diagfmt.PrettyOpts{
		Color:       useColor,
		PathMode:    diagfmt.PathModeAuto,
		ShowNotes:   true,
		MinSeverity: uint8(minSev),
	})
}

func mergeBags(results []driver.FormatResult) *diag.Bag {
	bag := diag.NewBag(0)
	for _, res := range results {
		if res.Bag != nil {
			bag.Merge(res.Bag)
		}
	}
	return bag
}

func renderFmtJSON(out io.Writer, results []driver.FormatResult, check bool) error {
	type jsonResult struct {
		Path        string                   `json:"path"`
		Language    string                   `json:"language"`
		Changed     bool                     `json:"changed"`
		Cached      bool                     `json:"cached,omitempty"`
		Lines       int                      `json:"lines"`
		Error       string                   `json:"error,omitempty"`
		CheckRun    bool                     `json:"check"`
		Diagnostics []diagfmt.DiagnosticJSON `json:"diagnostics,omitempty"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{
			Path:     res.Path,
			Language: res.Grammar.String(),
			Changed:  res.Changed,
			Cached:   res.Cached,
			Lines:    res.Lines,
			CheckRun: check,
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		if res.Bag != nil && res.Bag.Len() > 0 {
			jr.Diagnostics = diagfmt.BuildDiagnosticsOutput(res.Bag.Items(), diagfmt.JSONOpts{IncludeNotes: true}).Diagnostics
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
