package trace

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// inflight follows the file spans that are open, so a heartbeat can name
// the file a stuck run is sitting on.
var inflight files

type files struct {
	mu   sync.Mutex
	open int
	last string
}

func (f *files) begin(path string) {
	f.mu.Lock()
	f.open++
	f.last = path
	f.mu.Unlock()
}

func (f *files) end() {
	f.mu.Lock()
	f.open--
	f.mu.Unlock()
}

func (f *files) snapshot() (int, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open, f.last
}

// StartHeartbeat emits a heartbeat every interval until ctx is done or the
// returned stop is called. Each beat tells how many files are open and
// which one started last. stop waits for the loop to exit.
func StartHeartbeat(ctx context.Context, t Tracer, every time.Duration) (stop func()) {
	if t == nil || t.Level() == LevelOff || every <= 0 {
		return func() {}
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		tick := time.NewTicker(every)
		defer tick.Stop()
		for n := 1; ; n++ {
			select {
			case <-ctx.Done():
				return
			case now := <-tick.C:
				open, last := inflight.snapshot()
				detail := fmt.Sprintf("#%d, %d files open", n, open)
				if open > 0 {
					detail += ", last " + last
				}
				t.Emit(&Event{Time: now, Kind: KindHeartbeat, Scope: ScopeRun, Name: "heartbeat", Detail: detail})
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}
