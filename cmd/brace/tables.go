package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"brace/internal/grammar"
	"brace/internal/resource"
)

var tablesCmd = &cobra.Command{
	Use:   "tables [category...]",
	Short: "Print the keyword and operator tables of a language",
	Long: `Print the keyword and operator tables the formatter uses for a language,
one spelling per line. Without arguments every table is printed; "macros"
lists the indentable begin/end macro pairs.`,
	RunE: runTables,
}

func init() {
	tablesCmd.Flags().String("lang", "c", "language (c|java|cs|js|objc|gsc)")
}

func runTables(cmd *cobra.Command, args []string) error {
	langFlag, err := cmd.Flags().GetString("lang")
	if err != nil {
		return err
	}
	g, err := grammar.Parse(langFlag)
	if err != nil {
		return err
	}
	set := resource.For(g)

	var cats []resource.Category
	showMacros := len(args) == 0
	for _, arg := range args {
		if strings.EqualFold(arg, "macros") {
			showMacros = true
			continue
		}
		c, err := resource.ParseCategory(strings.ToLower(arg))
		if err != nil {
			return err
		}
		cats = append(cats, c)
	}
	if len(args) == 0 {
		cats = resource.Categories()
	}

	out := cmd.OutOrStdout()
	titled := len(cats)+boolToInt(showMacros) > 1
	for i, c := range cats {
		if titled {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "# %s (%s)\n", c, g)
		}
		if err := set.Dump(out, c); err != nil {
			return err
		}
	}
	if showMacros {
		if titled {
			if len(cats) > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "# macros (%s)\n", g)
		}
		for _, m := range set.Macros() {
			fmt.Fprintf(out, "%s %s\n", m.Begin, m.End)
		}
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
