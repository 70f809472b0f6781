package hosts

import (
	"context"
	"time"

	"github.com/reusee/stagecoach/logs"
	"github.com/reusee/stagecoach/projects"
	"github.com/reusee/stagecoach/stageconfigs"
)

// Sink receives every frame a Loop produces.
type Sink interface {
	Present(ctx context.Context, frame projects.FrameResult) error
}

type SinkFunc func(ctx context.Context, frame projects.FrameResult) error

var _ Sink = SinkFunc(nil)

func (s SinkFunc) Present(ctx context.Context, frame projects.FrameResult) error {
	return s(ctx, frame)
}

// Loop drives a project. All project calls happen on the goroutine running
// Frame or Run; other goroutines talk to the project through Input.
type Loop struct {
	Project   *projects.Project
	Input     *Input
	Sinks     []Sink
	FrameRate stageconfigs.FrameRate
	Logger    logs.Logger
}

// Frame applies pending input, ticks once and presents the result.
func (l *Loop) Frame(ctx context.Context) projects.FrameResult {
	if l.Input != nil {
		for _, ev := range l.Input.Drain() {
			l.apply(ev)
		}
	}
	result := l.Project.Tick()
	for _, sink := range l.Sinks {
		if err := sink.Present(ctx, result); err != nil {
			l.logger().WarnContext(ctx, "present",
				"frame", result.Frame,
				"error", err,
			)
		}
	}
	return result
}

func (l *Loop) apply(ev Event) {
	switch ev.Kind {
	case KeyDown:
		l.Project.SetKey(ev.Key, true)
		l.Project.KeyPressed(ev.Key)
	case KeyUp:
		l.Project.SetKey(ev.Key, false)
	case Click:
		l.Project.ClickAt(ev.X, ev.Y)
	case GreenFlag:
		l.Project.Start()
	case StopAll:
		l.Project.Stop()
	case Message:
		l.Project.Broadcast(ev.Name)
	}
}

// Run calls Frame at the frame rate until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	rate := l.FrameRate
	if rate <= 0 {
		rate = stageconfigs.DefaultFrameRate
	}
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			l.Frame(ctx)
		}
	}
}

// RunFrames calls Frame n times without waiting between frames.
func (l *Loop) RunFrames(ctx context.Context, n int) error {
	for range n {
		if err := ctx.Err(); err != nil {
			return err
		}
		l.Frame(ctx)
	}
	return nil
}

func (l *Loop) logger() logs.Logger {
	if l.Logger == nil {
		return logs.Discard()
	}
	return l.Logger
}
