package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"brace/internal/config"
	"brace/internal/style"
)

// setting is one style option given on the command line.
type setting struct {
	key   string
	value string
}

// styleFlag records style settings in command-line order, so that the later
// of two conflicting flags wins after reconciliation.
type styleFlag struct {
	key    string
	isBool bool
	value  string
	sink   *[]setting
}

func (f *styleFlag) String() string { return f.value }

func (f *styleFlag) Set(v string) error {
	f.value = v
	*f.sink = append(*f.sink, setting{key: f.key, value: v})
	return nil
}

func (f *styleFlag) Type() string {
	if f.isBool {
		return "bool"
	}
	return "string"
}

// addStyleFlags registers one flag per style option key.
func addStyleFlags(fs *pflag.FlagSet, sink *[]setting) {
	for _, key := range style.Keys() {
		v := &styleFlag{key: key, isBool: style.IsBool(key), sink: sink}
		flag := fs.VarPF(v, key, "", "style option "+key)
		if v.isBool {
			flag.NoOptDefVal = "true"
		}
	}
}

// loadedStyle is the effective configuration of one run.
type loadedStyle struct {
	opts        *style.Options
	optionsFile string
	exclude     []string
}

// loadStyle applies the option file (given with --options or discovered from
// the working directory) and then the command-line settings, and reconciles.
func loadStyle(cmd *cobra.Command, cli []setting) (loadedStyle, error) {
	res := loadedStyle{opts: style.New()}

	path, err := cmd.Flags().GetString("options")
	if err != nil {
		return res, err
	}
	noOptions, err := cmd.Flags().GetBool("no-options")
	if err != nil {
		return res, err
	}
	if path == "" && !noOptions {
		cwd, err := os.Getwd()
		if err != nil {
			return res, err
		}
		found, ok, err := config.Find(cwd)
		if err != nil {
			return res, err
		}
		if ok {
			path = found
		}
	}
	if path != "" {
		file, err := config.Load(path)
		if err != nil {
			return res, err
		}
		if err := file.Apply(res.opts); err != nil {
			return res, err
		}
		res.optionsFile = path
		res.exclude = file.Exclude
	}

	for _, s := range cli {
		if err := res.opts.Set(s.key, s.value); err != nil {
			return res, fmt.Errorf("--%s: %w", s.key, err)
		}
	}
	res.opts.Reconcile()
	return res, nil
}
