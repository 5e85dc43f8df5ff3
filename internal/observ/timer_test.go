package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerAccumulatesConcurrently(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("discover")
	tm.End(idx, "3 files")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Add("format", time.Millisecond)
		}()
	}
	wg.Wait()

	rep := tm.Report()
	if len(rep.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(rep.Phases))
	}
	format := rep.Phases[1]
	if format.Name != "format" || format.Count != 8 || format.DurationMS != 8 {
		t.Fatalf("unexpected format phase %+v", format)
	}
	if rep.TotalMS != rep.Phases[0].DurationMS {
		t.Fatalf("accumulated phases must not count towards total")
	}
	sum := tm.Summary()
	if !strings.Contains(sum, "// 3 files") || !strings.Contains(sum, "x8") {
		t.Fatalf("unexpected summary:\n%s", sum)
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.End(tm.Begin("x"), "")
	tm.Add("y", time.Second)
	if len(tm.Report().Phases) != 0 {
		t.Fatalf("nil timer must report nothing")
	}
}
