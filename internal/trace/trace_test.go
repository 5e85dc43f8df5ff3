package trace

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestStreamKeepsScopesUpToLevel(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithTracer(context.Background(), NewStream(&buf, LevelFile, FormatText))

	ctx, run := Start(ctx, ScopeRun, "fmt")
	fctx, file := Start(ctx, ScopeFile, "a.c")
	_, pass := Start(fctx, ScopePass, "rewrite")
	if pass != nil {
		t.Fatalf("pass span must be disabled at file level")
	}
	pass.Set(Attrs{Lines: 3}).Note("ignored", "")
	pass.End(nil)
	file.Set(Attrs{Grammar: "c", Lines: 12, Changed: true}).End(nil)
	run.Set(Attrs{Files: 1}).End(nil)

	out := buf.String()
	for _, want := range []string{"→ fmt", "  → a.c", "{grammar=c lines=12 changed}", "{files=1}"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "rewrite") || strings.Contains(out, "ignored") {
		t.Fatalf("pass scope leaked:\n%s", out)
	}
}

func TestSpanParentAndEndOnce(t *testing.T) {
	ring := NewRing(16, LevelPass)
	ctx := WithTracer(context.Background(), ring)
	ctx, file := Start(ctx, ScopeFile, "a.c")
	_, pass := Start(ctx, ScopePass, "rewrite")
	pass.Note("checksum", "diff 2")
	pass.Set(Attrs{Checksum: 2})
	pass.End(errors.New("boom"))
	pass.End(nil)
	file.End(nil)

	evs := ring.Events()
	if len(evs) != 5 {
		t.Fatalf("want 5 events, got %d: %+v", len(evs), evs)
	}
	for _, ev := range evs[1:4] {
		if ev.Parent != file.ID() {
			t.Fatalf("event %q has parent %d, want %d", ev.Name, ev.Parent, file.ID())
		}
	}
	end := evs[3]
	if end.Kind != KindEnd || end.Attrs.Checksum != 2 || end.Attrs.Err != "boom" {
		t.Fatalf("unexpected end event %+v", end)
	}
	if evs[4].Seq <= evs[0].Seq {
		t.Fatalf("sequence must grow")
	}
}

func TestRingKeepsLastEvents(t *testing.T) {
	ring := NewRing(2, LevelPass)
	for _, name := range []string{"a", "b", "c"} {
		ring.Emit(&Event{Kind: KindNote, Scope: ScopePass, Name: name})
	}
	evs := ring.Events()
	if len(evs) != 2 || evs[0].Name != "b" || evs[1].Name != "c" {
		t.Fatalf("unexpected events %+v", evs)
	}
	var buf bytes.Buffer
	if err := ring.Dump(&buf, FormatNDJSON); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 2 || !strings.Contains(buf.String(), `"scope":"pass"`) {
		t.Fatalf("unexpected dump %q", buf.String())
	}
}

func TestNDJSONCarriesAttrs(t *testing.T) {
	ev := &Event{Kind: KindEnd, Scope: ScopeFile, Name: "a.c", Attrs: Attrs{Grammar: "java", Lines: 7, Checksum: -1}}
	got := string(Encode(ev, FormatNDJSON))
	for _, want := range []string{`"grammar":"java"`, `"lines":7`, `"checksum_diff":-1`} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %s in %s", want, got)
		}
	}
	if strings.Contains(got, "changed") {
		t.Fatalf("zero attrs must be omitted: %s", got)
	}
}

func TestBothModeFansOut(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelRun, Mode: ModeBoth, Output: &buf, RingSize: 4})
	if err != nil {
		t.Fatal(err)
	}
	ctx := WithTracer(context.Background(), tr)
	_, run := Start(ctx, ScopeRun, "fmt")
	run.End(nil)
	if strings.Count(buf.String(), "\n") != 2 {
		t.Fatalf("stream got %q", buf.String())
	}
	if tr.Level() != LevelRun {
		t.Fatalf("level %v", tr.Level())
	}
	ring := tr.(tee)[1].(*RingTracer)
	if len(ring.Events()) != 2 {
		t.Fatalf("ring got %d events", len(ring.Events()))
	}
}

func TestHeartbeatNamesOpenFile(t *testing.T) {
	ring := NewRing(64, LevelFile)
	ctx := WithTracer(context.Background(), ring)
	_, file := Start(ctx, ScopeFile, "slow.cpp")
	stop := StartHeartbeat(ctx, ring, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if n := countKind(ring.Events(), KindHeartbeat); n > 0 {
			break
		}
		time.Sleep(time.Millisecond)
	}
	stop()
	stop()
	file.End(nil)

	var beat *Event
	for _, ev := range ring.Events() {
		if ev.Kind == KindHeartbeat {
			beat = &ev
			break
		}
	}
	if beat == nil || !strings.Contains(beat.Detail, "last slow.cpp") {
		t.Fatalf("heartbeat missing or without file: %+v", beat)
	}
}

func countKind(evs []Event, k Kind) int {
	n := 0
	for _, ev := range evs {
		if ev.Kind == k {
			n++
		}
	}
	return n
}

func TestNopAndParsers(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr != Nop {
		t.Fatalf("off level must give Nop: %v %v", tr, err)
	}
	if _, s := Start(context.Background(), ScopeRun, "fmt"); s != nil {
		t.Fatalf("no tracer, no span")
	}
	if l, err := ParseLevel("FILE"); err != nil || l != LevelFile {
		t.Fatalf("ParseLevel: %v %v", l, err)
	}
	if _, err := ParseLevel("phase"); err == nil {
		t.Fatalf("expected error")
	}
	if m, err := ParseMode("both"); err != nil || m != ModeBoth {
		t.Fatalf("ParseMode: %v %v", m, err)
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Fatalf("ParseFormat: %v %v", f, err)
	}
	if FormatFor("out.jsonl") != FormatNDJSON || FormatFor("-") != FormatText {
		t.Fatalf("FormatFor")
	}
}
