package debugs

import (
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/stagecoach/actors"
	"github.com/reusee/stagecoach/collisions"
	"github.com/reusee/stagecoach/modes"
	"github.com/reusee/stagecoach/projects"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

func TestTap(t *testing.T) {
	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Call(func(
		tap Tap,
	) {
		tap(t.Context(), "test", map[string]any{
			"foo": 42,
		})
	})
}

func testProject(t *testing.T) *projects.Project {
	p, err := projects.Build(projects.Program{
		Name: "tap",
		Load: func(p *projects.Project) error {
			_, err := p.Declare(&actors.Class{
				Name: "Ball",
				Costumes: []collisions.Drawable{
					{Handle: "ball", Width: 10, Height: 10},
				},
				Transform: collisions.Transform{X: 3, Y: 4, Scale: 1},
				NewState: func() actors.State {
					return actors.Vars{"score": 7}
				},
			}, projects.Handler{
				Trigger: actors.OnMessage("hit"),
				Body: func(c *projects.Context) error {
					c.State().(actors.Vars)["score"] = 8
					return nil
				},
			})
			return err
		},
	}, projects.Options{
		Reporter: new(projects.Collector),
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(p.Close)
	return p
}

func TestProjectGlobals(t *testing.T) {
	p := testProject(t)
	globals := make(starlark.StringDict)
	for name, value := range ProjectGlobals(p) {
		globals[name] = toStarlarkValue(value)
	}

	thread := &starlark.Thread{Name: "test"}
	eval := func(expr string) starlark.Value {
		v, err := starlark.EvalOptions(&syntax.FileOptions{}, thread, "test", expr, globals)
		if err != nil {
			t.Fatal(err)
		}
		return v
	}
	for expr, want := range map[string]starlark.Value{
		`len(Ball)`:                starlark.MakeInt(1),
		`Ball[0]["x"]`:             starlark.Float(3),
		`Ball[0]["costume"]`:       starlark.String("ball"),
		`Ball[0]["kind"]`:          starlark.String("original"),
		`Ball[0]["vars"]["score"]`: starlark.MakeInt(7),
		`frame`:                    starlark.MakeInt(0),
		`broadcast("hit")`:         starlark.MakeInt(1),
		`tick()`:                   starlark.MakeInt(1),
	} {
		got := eval(expr)
		if ok, err := starlark.Equal(got, want); err != nil || !ok {
			t.Fatalf("%s: got %v, want %v", expr, got, want)
		}
	}
}

func TestTapProject(t *testing.T) {
	p := testProject(t)
	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Call(func(
		tap TapProject,
	) {
		tap(t.Context(), p)
	})
}
