package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// formatFiles formats every file on a bounded errgroup. Results keep the
// order of files; a failing file never stops the others, only cancellation
// does.
func formatFiles(ctx context.Context, files []string, opts FormatOptions) ([]FormatResult, error) {
	fingerprint, err := OptionsFingerprint(opts.Options)
	if err != nil {
		// без отпечатка кэш небезопасен
		opts.Cache = nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]FormatResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			opts.emit(Event{Path: path, Stage: StageFormat})
			results[i] = formatFile(gctx, path, &opts, fingerprint)
			opts.emit(resultEvent(&results[i]))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func (opts *FormatOptions) emit(ev Event) {
	if opts.Events == nil {
		return
	}
	opts.Events <- ev
}
