package scripts

import (
	"fmt"

	"github.com/reusee/starlarkutil"
	"github.com/reusee/stagecoach/actors"
	"github.com/reusee/stagecoach/collisions"
	"github.com/reusee/stagecoach/projects"
	"go.starlark.net/starlark"
)

// loader holds what the builtins of one built project share.
type loader struct {
	project *projects.Project
	options Options
	name    string
}

func (l *loader) newThread(name string) *starlark.Thread {
	return &starlark.Thread{
		Name: name,
		Print: func(thread *starlark.Thread, msg string) {
			l.options.Logger.Info(msg, "thread", thread.Name)
		},
	}
}

func (l *loader) predeclared() starlark.StringDict {
	return starlark.StringDict{
		"sprite":  starlark.NewBuiltin("sprite", l.sprite),
		"stage":   starlark.NewBuiltin("stage", l.stage),
		"costume": starlark.NewBuiltin("costume", costume),

		loopBuiltin:   starlark.NewBuiltin(loopBuiltin, l.loop),
		whileBuiltin:  starlark.NewBuiltin(whileBuiltin, l.while),
		stepBuiltin:   starlark.NewBuiltin(stepBuiltin, l.step),
		"frames":      starlark.NewBuiltin("frames", l.frames),
		"forever":     starlark.NewBuiltin("forever", l.forever),
		"wait_frames": starlark.NewBuiltin("wait_frames", l.waitFrames),

		"push_loop_iterations_per_frame": starlark.NewBuiltin("push_loop_iterations_per_frame", l.pushLoopBudget),
		"pop_loop_iterations_per_frame":  starlark.NewBuiltin("pop_loop_iterations_per_frame", l.popLoopBudget),
		"non_yielding_loops":             starlark.NewBuiltin("non_yielding_loops", l.nonYieldingLoops),

		"broadcast":       starlark.NewBuiltin("broadcast", l.broadcast),
		"create_clone_of": starlark.NewBuiltin("create_clone_of", l.createCloneOf),
		"instances_of":    starlark.NewBuiltin("instances_of", l.instancesOf),
		"touching":        starlark.NewBuiltin("touching", l.touching),
		"key_is_pressed":  starlark.NewBuiltin("key_is_pressed", l.keyIsPressed),
		"stop_all":        starlark.NewBuiltin("stop_all", l.stopAll),

		"log": starlarkutil.MakeFunc("log", func(msg string) {
			l.options.Logger.Info(msg, "script", l.name)
		}),
	}
}

func (l *loader) declare(kind actors.Kind, name string, costumes starlark.Value, transform collisions.Transform, visible bool, vars *starlark.Dict) (starlark.Value, error) {
	class := &actors.Class{
		Name:      name,
		Kind:      kind,
		Transform: transform,
		Hidden:    !visible,
	}

	if costumes != nil && costumes != starlark.None {
		iter := starlark.Iterate(costumes)
		if iter == nil {
			return nil, fmt.Errorf("costumes: got %s, want iterable", costumes.Type())
		}
		defer iter.Done()
		var v starlark.Value
		for iter.Next(&v) {
			drawable, err := l.drawable(v)
			if err != nil {
				return nil, err
			}
			class.Costumes = append(class.Costumes, drawable)
		}
	}

	initial := make(starlark.StringDict)
	if vars != nil {
		for _, item := range vars.Items() {
			key, ok := starlark.AsString(item[0])
			if !ok {
				return nil, fmt.Errorf("vars: got %s key, want string", item[0].Type())
			}
			initial[key] = item[1]
		}
	}
	class.NewState = func() actors.State {
		return newState(initial)
	}

	if _, err := l.project.Declare(class); err != nil {
		return nil, err
	}
	return &classValue{
		loader: l,
		class:  class,
	}, nil
}

func (l *loader) drawable(v starlark.Value) (collisions.Drawable, error) {
	switch v := v.(type) {
	case *costumeValue:
		return v.drawable, nil
	case starlark.String:
		return l.options.Catalog.Drawable(string(v))
	}
	return collisions.Drawable{}, fmt.Errorf("costume: got %s, want string or costume", v.Type())
}

func (l *loader) sprite(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	var costumes starlark.Value = starlark.None
	var x, y number
	size := number(1)
	visible := true
	var vars *starlark.Dict
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"name", &name,
		"costumes?", &costumes,
		"x?", &x,
		"y?", &y,
		"size?", &size,
		"visible?", &visible,
		"vars?", &vars,
	); err != nil {
		return nil, err
	}
	return l.declare(actors.Sprite, name, costumes, collisions.Transform{
		X:     float64(x),
		Y:     float64(y),
		Scale: float64(size),
	}, visible, vars)
}

func (l *loader) stage(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	var backdrops starlark.Value = starlark.None
	var vars *starlark.Dict
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"name", &name,
		"backdrops?", &backdrops,
		"vars?", &vars,
	); err != nil {
		return nil, err
	}
	return l.declare(actors.Stage, name, backdrops, collisions.Transform{
		Scale: 1,
	}, true, vars)
}

// number unpacks an int or a float.
type number float64

var _ starlark.Unpacker = new(number)

func (n *number) Unpack(v starlark.Value) error {
	f, ok := starlark.AsFloat(v)
	if !ok {
		return fmt.Errorf("got %s, want number", v.Type())
	}
	*n = number(f)
	return nil
}

// optionalNumber unpacks a number or None.
type optionalNumber struct {
	set   bool
	value float64
}

var _ starlark.Unpacker = new(optionalNumber)

func (o *optionalNumber) Unpack(v starlark.Value) error {
	if v == starlark.None {
		return nil
	}
	var n number
	if err := n.Unpack(v); err != nil {
		return err
	}
	o.set = true
	o.value = float64(n)
	return nil
}

type costumeValue struct {
	drawable collisions.Drawable
}

var _ starlark.Value = new(costumeValue)

func (c *costumeValue) String() string {
	return fmt.Sprintf("costume(%q)", c.drawable.Handle)
}

func (c *costumeValue) Type() string {
	return "costume"
}

func (c *costumeValue) Freeze() {}

func (c *costumeValue) Truth() starlark.Bool {
	return starlark.True
}

func (c *costumeValue) Hash() (uint32, error) {
	return starlark.String(c.drawable.Handle).Hash()
}

func costume(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	var width, height number
	var centerX, centerY optionalNumber
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"name", &name,
		"width", &width,
		"height", &height,
		"center_x?", &centerX,
		"center_y?", &centerY,
	); err != nil {
		return nil, err
	}
	drawable := collisions.Drawable{
		Handle:  name,
		Width:   float64(width),
		Height:  float64(height),
		CenterX: float64(width) / 2,
		CenterY: float64(height) / 2,
	}
	if centerX.set {
		drawable.CenterX = centerX.value
	}
	if centerY.set {
		drawable.CenterY = centerY.value
	}
	return &costumeValue{
		drawable: drawable,
	}, nil
}
