package fuzztests

import (
	"context"
	"testing"

	"brace/internal/diag"
	"brace/internal/driver"
	"brace/internal/grammar"
	"brace/internal/style"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func fuzzOptions(set func(o *style.Options)) *style.Options {
	o := style.New()
	if set != nil {
		set(o)
	}
	o.Reconcile()
	return o
}

var fuzzConfigs = []*style.Options{
	fuzzOptions(nil),
	fuzzOptions(func(o *style.Options) {
		_ = o.Set("style", "allman")
		_ = o.Set("pad-oper", "on")
		_ = o.Set("break-blocks", "all")
		_ = o.Set("max-code-length", "40")
	}),
	fuzzOptions(func(o *style.Options) {
		_ = o.Set("style", "kr")
		_ = o.Set("add-braces", "on")
		_ = o.Set("indent", "tab")
		_ = o.Set("delete-empty-lines", "on")
	}),
}

func FuzzFormatBytes(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(_ *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		}
		ctx := context.Background()
		for _, g := range grammar.All {
			for _, opts := range fuzzConfigs {
				bag := diag.NewBag(64)
				_, _, _ = driver.FormatBytes(ctx, "fuzz", input, g, opts, false, bag)
			}
		}
	})
}

// Indent-only runs never touch line content, so the checksum guard must
// never fire.
func FuzzIndentOnly(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		}
		for _, g := range grammar.All {
			bag := diag.NewBag(64)
			if _, _, err := driver.FormatBytes(context.Background(), "fuzz", input, g, fuzzConfigs[0], true, bag); err != nil {
				continue
			}
			for _, d := range bag.Items() {
				if d.Code == diag.CodeChecksumMismatch {
					t.Fatalf("%s: indent-only changed content", g)
				}
			}
		}
	})
}
