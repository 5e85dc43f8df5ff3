package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"brace/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the formatted-file cache",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cache, err := driver.OpenDiskCache("brace")
		if err != nil {
			return fmt.Errorf("clean: %w", err)
		}
		if err := cache.DropAll(); err != nil {
			return fmt.Errorf("clean: %w", err)
		}
		quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "removed cache %s\n", cache.Dir())
		}
		return nil
	},
}
