package scripts

import (
	"fmt"
	"slices"

	"github.com/reusee/stagecoach/actors"
	"github.com/reusee/stagecoach/projects"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

type method[T any] func(thread *starlark.Thread, v T, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error)

func bindMethod[T any](name string, v T, fn method[T]) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		return fn(thread, v, b, args, kwargs)
	})
}

// classValue is a declared sprite or stage class.
type classValue struct {
	loader *loader
	class  *actors.Class
}

var (
	_ starlark.HasAttrs   = new(classValue)
	_ starlark.Comparable = new(classValue)
)

func (c *classValue) String() string {
	return fmt.Sprintf("<%s %s>", c.class.Kind, c.class.Name)
}

func (c *classValue) Type() string {
	return c.class.Kind.String()
}

func (c *classValue) Freeze() {}

func (c *classValue) Truth() starlark.Bool {
	return starlark.True
}

func (c *classValue) Hash() (uint32, error) {
	return starlark.String(c.class.Name).Hash()
}

func (c *classValue) CompareSameType(op syntax.Token, y starlark.Value, depth int) (bool, error) {
	other := y.(*classValue)
	switch op {
	case syntax.EQL:
		return c.class == other.class, nil
	case syntax.NEQ:
		return c.class != other.class, nil
	}
	return false, fmt.Errorf("%s %s %s not implemented", c.Type(), op, y.Type())
}

var classMethods = map[string]method[*classValue]{
	"when_green_flag_clicked":  registerer(nil),
	"when_I_receive":           registerer(actors.OnMessage),
	"when_key_pressed":         registerer(actors.OnKey),
	"when_this_sprite_clicked": registerer(nil),
	"when_stage_clicked":       registerer(nil),
	"when_I_start_as_a_clone":  registerer(nil),
	"the_original":             classOriginal,
	"all_instances":            classAllInstances,
	"all_clones":               classAllClones,
}

var noArgTriggers = map[string]func() actors.Trigger{
	"when_green_flag_clicked":  actors.OnGreenFlag,
	"when_this_sprite_clicked": actors.OnThisClicked,
	"when_stage_clicked":       actors.OnStageClicked,
	"when_I_start_as_a_clone":  actors.OnCloneStart,
}

// registerer returns a method binding a handler function to a trigger. A nil
// withName means the trigger takes no argument.
func registerer(withName func(string) actors.Trigger) method[*classValue] {
	return func(thread *starlark.Thread, c *classValue, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var trigger actors.Trigger
		var value starlark.Value
		if withName == nil {
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &value); err != nil {
				return nil, err
			}
			trigger = noArgTriggers[b.Name()]()
		} else {
			var name string
			if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &name, &value); err != nil {
				return nil, err
			}
			trigger = withName(name)
		}
		fn, ok := value.(starlark.Callable)
		if !ok {
			return nil, fmt.Errorf("%s: got %s, want callable", b.Name(), value.Type())
		}
		if err := c.loader.project.On(c.class, projects.Handler{
			Trigger: trigger,
			Name:    fn.Name(),
			Body:    c.loader.body(fn),
		}); err != nil {
			return nil, fmt.Errorf("%s: %w", b.Name(), err)
		}
		return fn, nil
	}
}

func classOriginal(thread *starlark.Thread, c *classValue, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	inst, err := c.loader.project.Registry().Original(c.class.Name)
	if err != nil {
		return nil, err
	}
	return c.loader.instance(inst), nil
}

func classAllInstances(thread *starlark.Thread, c *classValue, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	return c.loader.instanceList(c.loader.project.InstancesOf(c.class.Name)), nil
}

func classAllClones(thread *starlark.Thread, c *classValue, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	instances := slices.DeleteFunc(c.loader.project.InstancesOf(c.class.Name), func(inst *actors.Instance) bool {
		return inst.Kind != actors.Clone
	})
	return c.loader.instanceList(instances), nil
}

func (c *classValue) Attr(name string) (starlark.Value, error) {
	if name == "name" {
		return starlark.String(c.class.Name), nil
	}
	if fn, ok := classMethods[name]; ok {
		return bindMethod(name, c, fn), nil
	}
	return nil, nil
}

func (c *classValue) AttrNames() []string {
	names := []string{"name"}
	for name := range classMethods {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// instanceValue is the script view of a sprite or stage instance: its
// variables as attributes plus the instance methods.
type instanceValue struct {
	loader *loader
	inst   *actors.Instance
}

var (
	_ starlark.HasAttrs    = new(instanceValue)
	_ starlark.HasSetField = new(instanceValue)
	_ starlark.Comparable  = new(instanceValue)
)

func (l *loader) instance(inst *actors.Instance) *instanceValue {
	return &instanceValue{
		loader: l,
		inst:   inst,
	}
}

func (l *loader) instanceList(instances []*actors.Instance) *starlark.List {
	elems := make([]starlark.Value, 0, len(instances))
	for _, inst := range instances {
		elems = append(elems, l.instance(inst))
	}
	return starlark.NewList(elems)
}

func (v *instanceValue) String() string {
	return "<" + v.inst.String() + ">"
}

func (v *instanceValue) Type() string {
	return "instance"
}

func (v *instanceValue) Freeze() {}

func (v *instanceValue) Truth() starlark.Bool {
	return starlark.True
}

func (v *instanceValue) Hash() (uint32, error) {
	return uint32(v.inst.ID), nil
}

func (v *instanceValue) CompareSameType(op syntax.Token, y starlark.Value, depth int) (bool, error) {
	other := y.(*instanceValue)
	switch op {
	case syntax.EQL:
		return v.inst.ID == other.inst.ID, nil
	case syntax.NEQ:
		return v.inst.ID != other.inst.ID, nil
	}
	return false, fmt.Errorf("%s %s %s not implemented", v.Type(), op, y.Type())
}

func (v *instanceValue) state() *state {
	s, ok := v.inst.State.(*state)
	if !ok {
		s = newState(nil)
		v.inst.State = s
	}
	return s
}

func (v *instanceValue) Attr(name string) (starlark.Value, error) {
	switch name {
	case "id":
		return starlark.MakeUint64(uint64(v.inst.ID)), nil
	case "class_name":
		return starlark.String(v.inst.Class.Name), nil
	case "is_clone":
		return starlark.Bool(v.inst.Kind == actors.Clone), nil
	}
	if fn, ok := instanceMethods[name]; ok {
		return bindMethod(name, v, fn), nil
	}
	if value, ok := v.state().Get(name); ok {
		return value, nil
	}
	return nil, nil
}

var instanceFields = []string{"id", "class_name", "is_clone"}

func (v *instanceValue) AttrNames() []string {
	names := slices.Clone(instanceFields)
	for name := range instanceMethods {
		names = append(names, name)
	}
	names = append(names, v.state().Names()...)
	slices.Sort(names)
	return names
}

func (v *instanceValue) SetField(name string, value starlark.Value) error {
	if _, ok := instanceMethods[name]; ok || slices.Contains(instanceFields, name) {
		return fmt.Errorf("cannot assign to %s.%s", v.inst.Class.Name, name)
	}
	v.state().Set(name, value)
	return nil
}

func (l *loader) body(fn starlark.Callable) projects.Body {
	return func(c *projects.Context) error {
		thread := l.newThread(c.Thread().Name)
		_, err := starlark.Call(thread, fn, starlark.Tuple{l.instance(c.Self())}, nil)
		return scriptError(err)
	}
}
