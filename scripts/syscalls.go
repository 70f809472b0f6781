package scripts

import (
	"fmt"

	"github.com/reusee/stagecoach/actors"
	"go.starlark.net/starlark"
)

func (l *loader) broadcast(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var msg string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &msg); err != nil {
		return nil, err
	}
	if l.project.Building() {
		return nil, fmt.Errorf("cannot broadcast while the project builds")
	}
	l.project.Broadcast(msg)
	return starlark.None, nil
}

// instanceID resolves an instance or a class (meaning its original).
func (l *loader) instanceID(v starlark.Value) (actors.ID, error) {
	switch v := v.(type) {
	case *instanceValue:
		return v.inst.ID, nil
	case *classValue:
		inst, err := l.project.Registry().Original(v.class.Name)
		if err != nil {
			return 0, err
		}
		return inst.ID, nil
	}
	return 0, fmt.Errorf("got %s, want instance or class", v.Type())
}

func (l *loader) createCloneOf(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var of starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &of); err != nil {
		return nil, err
	}
	id, err := l.instanceID(of)
	if err != nil {
		return nil, err
	}
	clone, err := l.project.CreateCloneOf(id)
	if err != nil {
		return nil, err
	}
	return l.instance(clone), nil
}

func (l *loader) className(v starlark.Value) (string, error) {
	switch v := v.(type) {
	case *classValue:
		return v.class.Name, nil
	case starlark.String:
		return string(v), nil
	}
	return "", fmt.Errorf("got %s, want class", v.Type())
}

func (l *loader) instancesOf(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var class starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &class); err != nil {
		return nil, err
	}
	name, err := l.className(class)
	if err != nil {
		return nil, err
	}
	return l.instanceList(l.project.InstancesOf(name)), nil
}

// touchingTarget reports whether a touches b, where b may be a class meaning any
// of its instances other than a.
func (l *loader) touchingTarget(a *instanceValue, b starlark.Value) (bool, error) {
	switch b := b.(type) {
	case *instanceValue:
		return l.project.Touching(a.inst.ID, b.inst.ID)
	case *classValue:
		for _, other := range l.project.InstancesOf(b.class.Name) {
			if other.ID == a.inst.ID {
				continue
			}
			ok, err := l.project.Touching(a.inst.ID, other.ID)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	}
	return false, fmt.Errorf("got %s, want instance or class", b.Type())
}

func (l *loader) touching(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var x, y starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 2, &x, &y); err != nil {
		return nil, err
	}
	a, ok := x.(*instanceValue)
	if !ok {
		id, err := l.instanceID(x)
		if err != nil {
			return nil, err
		}
		inst, err := l.project.Registry().Get(id)
		if err != nil {
			return nil, err
		}
		a = l.instance(inst)
	}
	ret, err := l.touchingTarget(a, y)
	if err != nil {
		return nil, err
	}
	return starlark.Bool(ret), nil
}

func (l *loader) keyIsPressed(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var key string
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &key); err != nil {
		return nil, err
	}
	return starlark.Bool(l.project.KeyIsPressed(key)), nil
}

func (l *loader) stopAll(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	if _, err := l.project.Current(); err != nil {
		return nil, fmt.Errorf("cannot stop outside a Thread: %w", err)
	}
	l.project.Stop()
	return starlark.None, nil
}
