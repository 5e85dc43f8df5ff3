package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"brace/internal/driver"
	"brace/internal/ui"
)

// uiMode selects the interactive progress view of fmt.
type uiMode uint8

const (
	uiAuto uiMode = iota
	uiOn
	uiOff
)

func readUIMode(value string) (uiMode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return uiAuto, nil
	case "on":
		return uiOn, nil
	case "off":
		return uiOff, nil
	}
	return uiAuto, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// shouldUseTUI: auto shows the view only on a terminal.
func shouldUseTUI(mode uiMode) bool {
	if mode == uiAuto {
		return isTerminal(os.Stdout)
	}
	return mode == uiOn
}

type fmtOutcome struct {
	results []driver.FormatResult
	err     error
}

// runFmtWithUI formats paths in the background while a Bubble Tea program
// renders per-file progress from the driver events.
func runFmtWithUI(ctx context.Context, title string, paths []string, opts driver.FormatOptions) ([]driver.FormatResult, error) {
	files, err := driver.CollectFiles(ctx, paths, opts.Lang, opts.Exclude)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("format: no source files found")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan fmtOutcome, 1)
	go func() {
		// драйвер сам закрывает канал событий
		withEvents := opts
		withEvents.Events = events
		res, err := driver.FormatPaths(ctx, files, withEvents)
		outcomeCh <- fmtOutcome{results: res, err: err}
	}()

	program := tea.NewProgram(ui.NewProgressModel(title, files, events), tea.WithOutput(os.Stdout), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// программа могла выйти по ctrl+c раньше драйвера
	cancel()
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
