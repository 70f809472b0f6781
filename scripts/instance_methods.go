package scripts

import (
	"fmt"

	"go.starlark.net/starlark"
)

var instanceMethods = map[string]method[*instanceValue]{
	"go_to_xy":          instanceGoToXY,
	"change_x":          instanceChange(true),
	"change_y":          instanceChange(false),
	"set_x":             instanceSet(true),
	"set_y":             instanceSet(false),
	"get_x":             instanceGet(true),
	"get_y":             instanceGet(false),
	"set_size":          instanceSetSize,
	"get_size":          instanceGetSize,
	"show":              instanceShow(true),
	"hide":              instanceShow(false),
	"set_visibility":    instanceSetVisibility,
	"switch_costume":    instanceSwitchCostume,
	"delete_this_clone": instanceDeleteThisClone,
	"touching":          instanceTouching,
}

func instanceGoToXY(thread *starlark.Thread, v *instanceValue, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var x, y number
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &x, &y); err != nil {
		return nil, err
	}
	v.inst.Transform.X = float64(x)
	v.inst.Transform.Y = float64(y)
	return starlark.None, nil
}

func instanceChange(isX bool) method[*instanceValue] {
	return func(thread *starlark.Thread, v *instanceValue, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var d number
		if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &d); err != nil {
			return nil, err
		}
		if isX {
			v.inst.Transform.X += float64(d)
		} else {
			v.inst.Transform.Y += float64(d)
		}
		return starlark.None, nil
	}
}

func instanceSet(isX bool) method[*instanceValue] {
	return func(thread *starlark.Thread, v *instanceValue, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var n number
		if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &n); err != nil {
			return nil, err
		}
		if isX {
			v.inst.Transform.X = float64(n)
		} else {
			v.inst.Transform.Y = float64(n)
		}
		return starlark.None, nil
	}
}

func instanceGet(isX bool) method[*instanceValue] {
	return func(thread *starlark.Thread, v *instanceValue, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
			return nil, err
		}
		if isX {
			return starlark.Float(v.inst.Transform.X), nil
		}
		return starlark.Float(v.inst.Transform.Y), nil
	}
}

func instanceSetSize(thread *starlark.Thread, v *instanceValue, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var size number
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &size); err != nil {
		return nil, err
	}
	if size < 0 {
		return nil, fmt.Errorf("%s: negative size %v", b.Name(), float64(size))
	}
	v.inst.Transform.Scale = float64(size)
	return starlark.None, nil
}

func instanceGetSize(thread *starlark.Thread, v *instanceValue, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	return starlark.Float(v.inst.Transform.Scale), nil
}

func instanceShow(visible bool) method[*instanceValue] {
	return func(thread *starlark.Thread, v *instanceValue, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
			return nil, err
		}
		v.inst.Visible = visible
		return starlark.None, nil
	}
}

func instanceSetVisibility(thread *starlark.Thread, v *instanceValue, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var visible bool
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &visible); err != nil {
		return nil, err
	}
	v.inst.Visible = visible
	return starlark.None, nil
}

func instanceSwitchCostume(thread *starlark.Thread, v *instanceValue, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &name); err != nil {
		return nil, err
	}
	if err := v.inst.SwitchCostume(name); err != nil {
		return nil, err
	}
	return starlark.None, nil
}

func instanceDeleteThisClone(thread *starlark.Thread, v *instanceValue, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	c, err := v.loader.project.Current()
	if err != nil {
		return nil, fmt.Errorf("cannot delete a clone outside a Thread: %w", err)
	}
	if c.Self().ID != v.inst.ID {
		return nil, fmt.Errorf("%s: %s can only be deleted by its own scripts", b.Name(), v.inst)
	}
	if err := c.DeleteThisClone(); err != nil {
		return nil, err
	}
	return starlark.None, nil
}

func instanceTouching(thread *starlark.Thread, v *instanceValue, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var other starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &other); err != nil {
		return nil, err
	}
	ok, err := v.loader.touchingTarget(v, other)
	if err != nil {
		return nil, err
	}
	return starlark.Bool(ok), nil
}
