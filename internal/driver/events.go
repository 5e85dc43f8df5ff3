package driver

// Stage is the progress of one file through FormatPaths.
type Stage int

const (
	StageQueued Stage = iota
	StageFormat
	StageDone
	StageChanged
	StageCached
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageFormat:
		return "formatting"
	case StageDone:
		return "unchanged"
	case StageChanged:
		return "changed"
	case StageCached:
		return "cached"
	case StageFailed:
		return "error"
	default:
		return "queued"
	}
}

// Final reports whether the file is finished.
func (s Stage) Final() bool { return s >= StageDone }

// Event describes a file changing stage.
type Event struct {
	Path  string
	Stage Stage
	Err   error
}

func resultEvent(r *FormatResult) Event {
	ev := Event{Path: r.Path, Stage: StageDone, Err: r.Err}
	switch {
	case r.Err != nil || r.Bag.HasErrors():
		ev.Stage = StageFailed
	case r.Cached:
		ev.Stage = StageCached
	case r.Changed:
		ev.Stage = StageChanged
	}
	return ev
}
