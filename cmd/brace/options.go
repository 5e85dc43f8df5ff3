package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"brace/internal/style"
)

var optionsSettings []setting

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List style options, or show the resolved configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		resolved, err := cmd.Flags().GetBool("resolved")
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if resolved {
			loaded, err := loadStyle(cmd, optionsSettings)
			if err != nil {
				return err
			}
			if loaded.optionsFile != "" {
				fmt.Fprintf(out, "# from %s\n", loaded.optionsFile)
			}
			return toml.NewEncoder(out).Encode(loaded.opts)
		}

		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, key := range style.Keys() {
			kind := "value"
			if style.IsBool(key) {
				kind = "bool"
			}
			fmt.Fprintf(tw, "%s\t%s\n", key, kind)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(out, "\npresets: %s\n", strings.Join(style.PresetNames(), ", "))
		return nil
	},
}

func init() {
	f := optionsCmd.Flags()
	f.Bool("resolved", false, "print the configuration fmt would use here")
	f.String("options", "", "option file to use instead of the discovered one")
	f.Bool("no-options", false, "ignore option files")
	addStyleFlags(f, &optionsSettings)
}
