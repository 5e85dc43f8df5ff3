package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"brace/internal/diag"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>: <sev> <CODE>: <Message>
// затем Notes с отступом. Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, opts PrettyOpts) {
	if bag == nil {
		return
	}
	paint := func(c *color.Color, s string) string {
		if !opts.Color {
			return s
		}
		c.EnableColor()
		return c.Sprint(s)
	}
	pathColor := color.New(color.Bold)
	codeColor := color.New(color.FgHiBlack)

	for _, d := range bag.Items() {
		if uint8(d.Severity) < opts.MinSeverity {
			continue
		}
		loc := FormatPath(d.Primary.Path, opts.PathMode, opts.BaseDir)
		if d.Primary.Line > 0 {
			loc = fmt.Sprintf("%s:%d", loc, d.Primary.Line)
		}
		sev := paint(severityColor(d.Severity), d.Severity.String())
		fmt.Fprintf(w, "%s: %s %s: %s\n", paint(pathColor, loc), sev, paint(codeColor, d.Code.ID()), d.Message)
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			if n.Loc.Path != "" {
				nloc := FormatPath(n.Loc.Path, opts.PathMode, opts.BaseDir)
				if n.Loc.Line > 0 {
					nloc = fmt.Sprintf("%s:%d", nloc, n.Loc.Line)
				}
				fmt.Fprintf(w, "    note: %s: %s\n", nloc, n.Msg)
				continue
			}
			fmt.Fprintf(w, "    note: %s\n", n.Msg)
		}
	}
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}
