package projects

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/reusee/stagecoach/actors"
	"github.com/reusee/stagecoach/logs"
	"github.com/reusee/stagecoach/threads"
)

type Kind uint8

const (
	UserScriptError Kind = iota
	InvalidBudget
	PopBase
	NoActiveThread
	UnknownInstance
)

func (k Kind) String() string {
	switch k {
	case InvalidBudget:
		return "invalid-budget"
	case PopBase:
		return "pop-base"
	case NoActiveThread:
		return "no-active-thread"
	case UnknownInstance:
		return "unknown-instance"
	}
	return "user-script-error"
}

// KindOf classifies a failure by the sentinel errors in its chain.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, threads.ErrInvalidBudget):
		return InvalidBudget
	case errors.Is(err, threads.ErrPopBase):
		return PopBase
	case errors.Is(err, threads.ErrNoActiveThread):
		return NoActiveThread
	case errors.Is(err, actors.ErrUnknownInstance):
		return UnknownInstance
	}
	return UserScriptError
}

// Report describes one failure, either of a Thread or of a build.
type Report struct {
	Origin    threads.Origin
	Kind      Kind
	Frame     uint64
	Thread    uint64
	Instance  actors.ID
	Class     string
	Handler   string
	Locations []string
	Err       error
}

func (r Report) String() string {
	if r.Origin == threads.OriginBuild {
		return fmt.Sprintf("build error (%s): %v", r.Kind, r.Err)
	}
	return fmt.Sprintf("thread %d %s.%s on #%d (%s): %v",
		r.Thread, r.Class, r.Handler, r.Instance, r.Kind, r.Err)
}

func (r Report) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("origin", r.Origin.String()),
		slog.String("kind", r.Kind.String()),
		slog.Any("error", r.Err),
	}
	if r.Origin == threads.OriginRun {
		attrs = append(attrs,
			slog.Uint64("frame", r.Frame),
			slog.Uint64("thread", r.Thread),
			slog.Uint64("instance", uint64(r.Instance)),
			slog.String("class", r.Class),
			slog.String("handler", r.Handler),
		)
	}
	if len(r.Locations) > 0 {
		attrs = append(attrs, slog.Any("locations", r.Locations))
	}
	return slog.GroupValue(attrs...)
}

type Reporter interface {
	Report(Report)
}

type ReporterFunc func(Report)

func (f ReporterFunc) Report(r Report) {
	f(r)
}

// Collector keeps reports until drained.
type Collector struct {
	mu      sync.Mutex
	reports []Report
}

var _ Reporter = new(Collector)

func (c *Collector) Report(r Report) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reports = append(c.reports, r)
}

func (c *Collector) Drain() (ret []Report) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ret = c.reports
	c.reports = nil
	return
}

type LogReporter struct {
	Logger logs.Logger
}

var _ Reporter = LogReporter{}

func (l LogReporter) Report(r Report) {
	l.Logger.Error("script error", "report", r)
}

func newReport(origin threads.Origin, err error) Report {
	report := Report{
		Origin: origin,
		Kind:   KindOf(err),
		Err:    err,
	}
	var scriptErr *threads.ScriptError
	if errors.As(err, &scriptErr) {
		report.Locations = scriptErr.Locations
	}
	return report
}
