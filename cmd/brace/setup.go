package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"brace/internal/prof"
	"brace/internal/trace"
)

// observeFlags holds the persistent tracing and profiling flags.
type observeFlags struct {
	traceOut  string
	level     string
	mode      string
	ringSize  int
	heartbeat time.Duration

	cpuProfile   string
	memProfile   string
	runtimeTrace string
}

func readObserveFlags(cmd *cobra.Command) (observeFlags, error) {
	pf := cmd.Root().PersistentFlags()
	var (
		f    observeFlags
		errs []error
	)
	str := func(name string, dst *string) {
		v, err := pf.GetString(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to get %s flag: %w", name, err))
		}
		*dst = v
	}
	str("trace", &f.traceOut)
	str("trace-level", &f.level)
	str("trace-mode", &f.mode)
	str("cpu-profile", &f.cpuProfile)
	str("mem-profile", &f.memProfile)
	str("runtime-trace", &f.runtimeTrace)

	var err error
	if f.ringSize, err = pf.GetInt("trace-ring-size"); err != nil {
		errs = append(errs, err)
	}
	if f.heartbeat, err = pf.GetDuration("trace-heartbeat"); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return f, errs[0]
	}
	return f, nil
}

// setupTracing attaches a tracer to the command context. With --trace set
// and no level given, file level is assumed. A ring tracer is dumped to the
// trace output when the run ends.
func setupTracing(cmd *cobra.Command) (func(), error) {
	flags, err := readObserveFlags(cmd)
	if err != nil {
		return nil, err
	}
	level, err := trace.ParseLevel(flags.level)
	if err != nil {
		return nil, err
	}
	if level == trace.LevelOff {
		if flags.traceOut == "" {
			cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
			return func() {}, nil
		}
		level = trace.LevelFile
	}
	mode, err := trace.ParseMode(flags.mode)
	if err != nil {
		return nil, err
	}

	tracer, err := trace.New(trace.Config{
		Level:    level,
		Mode:     mode,
		Path:     flags.traceOut,
		RingSize: flags.ringSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)
	cmd.Root().SetContext(ctx)
	stopBeat := trace.StartHeartbeat(ctx, tracer, flags.heartbeat)

	return func() {
		stopBeat()
		if ring, ok := tracer.(*trace.RingTracer); ok {
			if err := dumpRing(ring, flags.traceOut); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "trace: dump error: %v\n", err)
			}
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}, nil
}

func dumpRing(ring *trace.RingTracer, path string) error {
	if path == "" || path == "-" {
		return ring.Dump(os.Stderr, trace.FormatText)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := ring.Dump(f, trace.FormatFor(path)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// setupProfiling enables the profilers named by the persistent flags. The
// returned cleanup is safe to call more than once.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	flags, err := readObserveFlags(cmd)
	if err != nil {
		return nil, err
	}
	session, err := prof.Start(flags.cpuProfile, flags.runtimeTrace, flags.memProfile)
	if err != nil {
		return nil, fmt.Errorf("failed to start profiling: %w", err)
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "profile: %v\n", err)
		}
	}, nil
}
