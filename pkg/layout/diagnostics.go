package layout

import (
	"sync"

	"github.com/charmbracelet/log"
)

// EventKind classifies a diagnostic event.
type EventKind string

const (
	// DegenerateRootSet: root selection found no root, so the first target
	// became the sole root.
	DegenerateRootSet EventKind = "degenerate_root_set"

	// OrphanedLevelAssignment: a target was unreachable from every root and
	// was placed at depth 1.
	OrphanedLevelAssignment EventKind = "orphaned_level_assignment"

	// ExcludedParentRoot: a target became a root because its parent exists
	// in the graph but is not a target.
	ExcludedParentRoot EventKind = "excluded_parent_root"

	// DanglingParent: a target became a root because its parent is not in
	// the graph at all.
	DanglingParent EventKind = "dangling_parent"
)

// Event is one structured diagnostic emitted during a layout call.
type Event struct {
	Kind   EventKind `json:"kind"`
	Unit   string    `json:"unit"`
	Depth  int       `json:"depth,omitempty"`
	Detail string    `json:"detail,omitempty"`
}

// Diagnostics receives events about recoverable anomalies. Implementations
// must not influence the layout; the engine ignores what they do.
type Diagnostics interface {
	Report(Event)
}

// NopDiagnostics discards every event.
type NopDiagnostics struct{}

func (NopDiagnostics) Report(Event) {}

// Recorder collects events in order. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Report(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Count returns how many events of kind k were recorded.
func (r *Recorder) Count(k EventKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// LogDiagnostics reports fallbacks as warnings and root decisions as debug
// messages on logger. A nil logger yields [NopDiagnostics].
func LogDiagnostics(logger *log.Logger) Diagnostics {
	if logger == nil {
		return NopDiagnostics{}
	}
	return logDiagnostics{logger: logger}
}

type logDiagnostics struct {
	logger *log.Logger
}

func (d logDiagnostics) Report(e Event) {
	kv := []any{"kind", string(e.Kind), "unit", e.Unit}
	if e.Depth > 0 {
		kv = append(kv, "depth", e.Depth)
	}
	if e.Detail != "" {
		kv = append(kv, "detail", e.Detail)
	}
	switch e.Kind {
	case DegenerateRootSet, OrphanedLevelAssignment:
		d.logger.Warn("layout fallback", kv...)
	default:
		d.logger.Debug("layout root", kv...)
	}
}

// Tee forwards every event to each non-nil sink in order.
func Tee(sinks ...Diagnostics) Diagnostics {
	var out tee
	for _, d := range sinks {
		if d != nil {
			out = append(out, d)
		}
	}
	return out
}

type tee []Diagnostics

func (t tee) Report(e Event) {
	for _, d := range t {
		d.Report(e)
	}
}

func report(diag Diagnostics, kind EventKind, unit string, depth int, detail string) {
	diag.Report(Event{Kind: kind, Unit: unit, Depth: depth, Detail: detail})
}
