package hosts

import (
	"context"
	"errors"
	"testing"

	"github.com/reusee/stagecoach/actors"
	"github.com/reusee/stagecoach/collisions"
	"github.com/reusee/stagecoach/projects"
)

var ball = collisions.Drawable{
	Handle:  "ball",
	Width:   40,
	Height:  40,
	CenterX: 20,
	CenterY: 20,
}

type record struct {
	flags    int
	clicks   int
	pings    int
	pressed  []bool
	reporter *projects.Collector
}

func newProject(t *testing.T) (*projects.Project, *record) {
	t.Helper()
	rec := &record{
		reporter: new(projects.Collector),
	}
	p, err := projects.Build(projects.Program{
		Name: t.Name(),
		Load: func(p *projects.Project) error {
			_, err := p.Declare(&actors.Class{
				Name:      "Ball",
				Costumes:  []collisions.Drawable{ball},
				Transform: collisions.Transform{X: 100, Y: 50, Scale: 1},
			}, projects.Handler{
				Trigger: actors.OnGreenFlag(),
				Body: func(c *projects.Context) error {
					rec.flags++
					return nil
				},
			}, projects.Handler{
				Trigger: actors.OnThisClicked(),
				Body: func(c *projects.Context) error {
					rec.clicks++
					return nil
				},
			}, projects.Handler{
				Trigger: actors.OnMessage("ping"),
				Body: func(c *projects.Context) error {
					rec.pings++
					return nil
				},
			}, projects.Handler{
				Trigger: actors.OnKey("a"),
				Body: func(c *projects.Context) error {
					rec.pressed = append(rec.pressed, c.KeyIsPressed("a"))
					c.Wait()
					rec.pressed = append(rec.pressed, c.KeyIsPressed("a"))
					return nil
				},
			})
			return err
		},
	}, projects.Options{
		Reporter: rec.reporter,
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(p.Close)
	return p, rec
}

func TestLoopFrame(t *testing.T) {
	p, rec := newProject(t)
	input := NewInput()
	var frames []projects.FrameResult
	loop := &Loop{
		Project: p,
		Input:   input,
		Sinks: []Sink{
			SinkFunc(func(_ context.Context, frame projects.FrameResult) error {
				frames = append(frames, frame)
				return nil
			}),
			SinkFunc(func(context.Context, projects.FrameResult) error {
				return errors.New("broken sink")
			}),
		},
	}
	ctx := t.Context()

	input.GreenFlag()
	input.Press("a")
	input.Click(100, 50)
	input.Broadcast("ping")
	res := loop.Frame(ctx)
	if res.Frame != 1 {
		t.Fatalf("got %d", res.Frame)
	}
	if rec.flags != 1 || rec.clicks != 1 || rec.pings != 1 {
		t.Fatalf("got %+v", rec)
	}

	loop.Frame(ctx)
	if len(rec.pressed) != 2 || !rec.pressed[0] || rec.pressed[1] {
		t.Fatalf("got %v", rec.pressed)
	}

	// a click outside every sprite goes to the stage
	input.Click(-200, -150)
	input.Stop()
	loop.Frame(ctx)
	if rec.clicks != 1 {
		t.Fatalf("got %d", rec.clicks)
	}
	if p.Threads() != 0 {
		t.Fatalf("got %d", p.Threads())
	}

	if len(frames) != 3 {
		t.Fatalf("got %d", len(frames))
	}
	if r := frames[0].Render; len(r) != 1 || r[0].Drawable != "ball" {
		t.Fatalf("got %+v", r)
	}
	if reports := rec.reporter.Drain(); len(reports) != 0 {
		t.Fatalf("got %v", reports)
	}
}

func TestLoopRunFrames(t *testing.T) {
	p, _ := newProject(t)
	loop := &Loop{
		Project: p,
	}
	if err := loop.RunFrames(t.Context(), 5); err != nil {
		t.Fatal(err)
	}
	if p.Frame() != 5 {
		t.Fatalf("got %d", p.Frame())
	}
}

func TestLoopRun(t *testing.T) {
	p, _ := newProject(t)
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	loop := &Loop{
		Project:   p,
		FrameRate: 1000,
		Sinks: []Sink{
			SinkFunc(func(_ context.Context, frame projects.FrameResult) error {
				if frame.Frame == 3 {
					cancel()
				}
				return nil
			}),
		},
	}
	err := loop.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}
	if p.Frame() != 3 {
		t.Fatalf("got %d", p.Frame())
	}
}
