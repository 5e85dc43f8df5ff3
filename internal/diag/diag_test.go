package diag

import (
	"testing"
)

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(10)
	b.Add(New(SevWarning, CodeUnterminated, Location{Path: "b.c", Line: 3}, "open comment"))
	b.Add(NewError(CodeChecksumMismatch, Location{Path: "a.c"}, "checksum"))
	b.Add(New(SevInfo, CodeBraceEditSkipped, Location{Path: "a.c", Line: 7}, "preprocessor"))
	b.Add(New(SevInfo, CodeBraceEditSkipped, Location{Path: "a.c", Line: 7}, "preprocessor"))

	b.Dedup()
	b.Sort()
	if b.Len() != 3 {
		t.Fatalf("expected 3 diagnostics, got %d", b.Len())
	}
	want := []string{
		"error FMT1003 a.c checksum",
		"info FMT1001 a.c:7 preprocessor",
		"warning FMT1002 b.c:3 open comment",
	}
	for i, d := range b.Items() {
		if got := d.Short(); got != want[i] {
			t.Fatalf("item %d: want %q, got %q", i, want[i], got)
		}
	}
	if !b.HasErrors() {
		t.Fatalf("expected HasErrors")
	}
}

func TestBagLimit(t *testing.T) {
	b := NewBag(1)
	if !b.Add(NewError(CodeIO, Location{Path: "x"}, "one")) {
		t.Fatalf("first add must succeed")
	}
	if b.Add(NewError(CodeIO, Location{Path: "x"}, "two")) {
		t.Fatalf("second add must hit the limit")
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(4)
	r := NewDedupReporter(BagReporter{Bag: bag})
	d := New(SevWarning, CodeEncoding, Location{Path: "x.cs"}, "bad\nbytes")
	r.Report(d)
	r.Report(d)
	if bag.Len() != 1 {
		t.Fatalf("expected 1, got %d", bag.Len())
	}
	if got := bag.Items()[0].Short(); got != "warning IO4002 x.cs bad bytes" {
		t.Fatalf("unexpected short form %q", got)
	}
}

func TestCodeIDs(t *testing.T) {
	cases := map[Code]string{
		CodeChecksumMismatch: "FMT1003",
		CodeIO:               "IO4001",
		CodeOptionsFile:      "CFG5001",
		Code(9999):           "E0000",
	}
	for c, want := range cases {
		if got := c.ID(); got != want {
			t.Fatalf("%d: want %s, got %s", c, want, got)
		}
	}
	if Code(9999).Title() != "Unknown error" {
		t.Fatalf("unknown code title")
	}
}
