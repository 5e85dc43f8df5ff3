package ui

import (
	"strings"
	"testing"

	"brace/internal/driver"
)

func TestProgressCountsFinalStages(t *testing.T) {
	files := []string{"a.c", "b.c", "c.c"}
	m := NewProgressModel("fmt", files, nil).(*progressModel)

	m.applyEvent(driver.Event{Path: "a.c", Stage: driver.StageFormat})
	m.applyEvent(driver.Event{Path: "a.c", Stage: driver.StageChanged})
	m.applyEvent(driver.Event{Path: "b.c", Stage: driver.StageFailed})
	m.applyEvent(driver.Event{Path: "b.c", Stage: driver.StageDone}) // ignored, already final
	m.applyEvent(driver.Event{Path: "zzz.c", Stage: driver.StageDone})

	if m.finished != 2 || m.changed != 1 || m.failed != 1 {
		t.Fatalf("finished=%d changed=%d failed=%d", m.finished, m.changed, m.failed)
	}
	view := m.View()
	for _, want := range []string{"2/3, 1 changed, 1 failed", "changed", "error", "queued"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("internal/driver/format.go", 10); got != "interna..." {
		t.Fatalf("got %q", got)
	}
	if got := truncate("a.c", 10); got != "a.c" {
		t.Fatalf("got %q", got)
	}
	// двойная ширина: 3 иероглифа + "..." = 9 колонок
	if got := truncate("日本語のファイル.go", 10); got != "日本語..." {
		t.Fatalf("got %q", got)
	}
	if got := truncate("abcdef", 3); got != "abc" {
		t.Fatalf("got %q", got)
	}
}
