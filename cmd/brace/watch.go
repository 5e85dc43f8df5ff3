package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"

	"brace/internal/driver"
	"brace/internal/grammar"
)

const watchDebounce = 200 * time.Millisecond

// watchLoop reformats files as they change until the command context ends.
func (r *fmtRun) watchLoop() error {
	ctx := r.cmd.Context()
	errOut := r.cmd.ErrOrStderr()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	named := make(map[string]bool)
	var roots []string
	for _, p := range r.paths {
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("watch: %w", err)
		}
		if !info.IsDir() {
			named[filepath.Clean(p)] = true
			if err := watcher.Add(filepath.Dir(p)); err != nil {
				return fmt.Errorf("watch: %w", err)
			}
			continue
		}
		if err := r.watchTree(watcher, p); err != nil {
			return fmt.Errorf("watch: %w", err)
		}
		roots = append(roots, filepath.Clean(p))
	}
	if r.configPath != "" {
		fmt.Fprintf(errOut, "watch: using options from %s\n", r.configPath)
	}
	fmt.Fprintf(errOut, "watch: %s\n", color.CyanString("waiting for changes (ctrl+c to stop)"))

	// mtime of files written by the last pass, their events are ours
	written := make(map[string]time.Time)
	pending := make(map[string]struct{})
	timer := time.NewTimer(watchDebounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(errOut, "watch: %v\n", err)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			path := filepath.Clean(event.Name)
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(path); err == nil && info.IsDir() && !driver.Excluded(path, r.opts.Exclude) {
					if err := r.watchTree(watcher, path); err != nil {
						fmt.Fprintf(errOut, "watch: %v\n", err)
					}
					continue
				}
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !r.wantsFile(path, named, roots) {
				continue
			}
			if mt, ok := written[path]; ok {
				if info, err := os.Stat(path); err == nil && info.ModTime().Equal(mt) {
					continue
				}
			}
			pending[path] = struct{}{}
			timer.Reset(watchDebounce)
		case <-timer.C:
			batch := make([]string, 0, len(pending))
			for p := range pending {
				if _, err := os.Stat(p); err == nil {
					batch = append(batch, p)
				}
			}
			clear(pending)
			if len(batch) == 0 {
				continue
			}
			sort.Strings(batch)
			results, err := r.formatBatch(batch)
			if err != nil {
				fmt.Fprintln(errOut, err)
			}
			for _, res := range results {
				if !res.Changed {
					continue
				}
				if info, err := os.Stat(res.Path); err == nil {
					written[res.Path] = info.ModTime()
				}
			}
		}
	}
}

func (r *fmtRun) formatBatch(files []string) ([]driver.FormatResult, error) {
	var results []driver.FormatResult
	prev := r.collect
	r.collect = func(res []driver.FormatResult) { results = res }
	defer func() { r.collect = prev }()
	err := r.formatAndReport(files, uiOff)
	return results, err
}

// watchTree adds root and every directory below it that is not excluded.
func (r *fmtRun) watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && driver.Excluded(path, r.opts.Exclude) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func (r *fmtRun) wantsFile(path string, named map[string]bool, roots []string) bool {
	if named[path] {
		return true
	}
	if driver.Excluded(path, r.opts.Exclude) {
		return false
	}
	if _, ok := grammar.FromPath(path); !ok {
		return false
	}
	for _, root := range roots {
		if rel, err := filepath.Rel(root, path); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
