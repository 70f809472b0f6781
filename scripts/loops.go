package scripts

import (
	"fmt"

	"github.com/reusee/stagecoach/threads"
	"go.starlark.net/starlark"
)

// loopIterable is the iterable of a rewritten for statement. Every
// iteration steps the loop runner of the Thread that started iterating.
type loopIterable struct {
	loader *loader
	inner  starlark.Iterable
}

var _ starlark.Iterable = new(loopIterable)

func (l *loopIterable) String() string {
	return l.inner.String()
}

func (l *loopIterable) Type() string {
	return l.inner.Type()
}

func (l *loopIterable) Freeze() {
	l.inner.Freeze()
}

func (l *loopIterable) Truth() starlark.Bool {
	return l.inner.Truth()
}

func (l *loopIterable) Hash() (uint32, error) {
	return l.inner.Hash()
}

func (l *loopIterable) Iterate() starlark.Iterator {
	return &loopIterator{
		inner: l.inner.Iterate(),
		loop:  l.loader.project.NewLoop(),
	}
}

type loopIterator struct {
	inner starlark.Iterator
	loop  *threads.Loop
}

func (it *loopIterator) Next(p *starlark.Value) bool {
	if !it.inner.Next(p) {
		return false
	}
	it.loop.Step()
	return true
}

func (it *loopIterator) Done() {
	it.inner.Done()
}

func (l *loader) loop(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var v starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &v); err != nil {
		return nil, err
	}
	iterable, ok := v.(starlark.Iterable)
	if !ok {
		return nil, fmt.Errorf("for loop: got %s, want iterable", v.Type())
	}
	return &loopIterable{
		loader: l,
		inner:  iterable,
	}, nil
}

// whileLoop is the handle of a rewritten while statement. Its iterator runs
// forever; the loop body checks the condition and then steps the handle, so
// a false condition never costs a step.
type whileLoop struct {
	loader *loader
	loop   *threads.Loop
}

var _ starlark.Iterable = new(whileLoop)

func (w *whileLoop) String() string {
	return "while"
}

func (w *whileLoop) Type() string {
	return "while"
}

func (w *whileLoop) Freeze() {}

func (w *whileLoop) Truth() starlark.Bool {
	return starlark.True
}

func (w *whileLoop) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable: %s", w.Type())
}

func (w *whileLoop) Iterate() starlark.Iterator {
	w.loop = w.loader.project.NewLoop()
	return &endlessIterator{
		value: w,
	}
}

func (l *loader) while(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	return &whileLoop{
		loader: l,
	}, nil
}

func (l *loader) step(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var w *whileLoop
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &w); err != nil {
		return nil, err
	}
	w.loop.Step()
	return starlark.None, nil
}

// frames returns its argument. Every for loop already yields; the name is
// kept for scripts that mark their frame loops explicitly.
func (l *loader) frames(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var v starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &v); err != nil {
		return nil, err
	}
	if _, ok := v.(starlark.Iterable); !ok {
		return nil, fmt.Errorf("%s: got %s, want iterable", b.Name(), v.Type())
	}
	return v, nil
}

type foreverValue struct{}

var _ starlark.Iterable = foreverValue{}

func (f foreverValue) String() string {
	return "forever()"
}

func (f foreverValue) Type() string {
	return "forever"
}

func (f foreverValue) Freeze() {}

func (f foreverValue) Truth() starlark.Bool {
	return starlark.True
}

func (f foreverValue) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable: %s", f.Type())
}

func (f foreverValue) Iterate() starlark.Iterator {
	return &endlessIterator{
		value: starlark.None,
	}
}

type endlessIterator struct {
	value starlark.Value
}

func (it *endlessIterator) Next(p *starlark.Value) bool {
	*p = it.value
	return true
}

func (it *endlessIterator) Done() {}

func (l *loader) forever(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	if _, err := l.project.Current(); err != nil {
		return nil, fmt.Errorf("cannot loop forever outside a Thread: %w", err)
	}
	return foreverValue{}, nil
}

func (l *loader) waitFrames(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	n := 1
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0, &n); err != nil {
		return nil, err
	}
	c, err := l.project.Current()
	if err != nil {
		return nil, fmt.Errorf("cannot wait outside a Thread: %w", err)
	}
	for range n {
		c.Wait()
	}
	return starlark.None, nil
}

func (l *loader) pushLoopBudget(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var v starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &v); err != nil {
		return nil, err
	}
	if err := l.project.PushLoopBudget(budgetValue(v)); err != nil {
		return nil, err
	}
	return starlark.None, nil
}

func (l *loader) popLoopBudget(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	if err := l.project.PopLoopBudget(); err != nil {
		return nil, err
	}
	return starlark.None, nil
}

// budgetValue converts a script value for threads.BudgetOf. Values that are
// not integers are passed as is and rejected there.
func budgetValue(v starlark.Value) any {
	i, ok := v.(starlark.Int)
	if !ok {
		return v
	}
	if n, ok := i.Int64(); ok {
		return n
	}
	if i.Sign() > 0 {
		return int64(threads.Unbounded)
	}
	return int64(0)
}

// nonYieldingLoops calls fn(*args) in a batch scope.
func (l *loader) nonYieldingLoops(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%s: missing function argument", b.Name())
	}
	fn, ok := args[0].(starlark.Callable)
	if !ok {
		return nil, fmt.Errorf("%s: got %s, want callable", b.Name(), args[0].Type())
	}
	var budget *int
	for _, kv := range kwargs {
		name, _ := starlark.AsString(kv[0])
		if name != "budget" {
			return nil, fmt.Errorf("%s: unexpected keyword argument %s", b.Name(), name)
		}
		if kv[1] == starlark.None {
			continue
		}
		n, err := threads.BudgetOf(budgetValue(kv[1]))
		if err != nil {
			return nil, err
		}
		budget = &n
	}
	var ret starlark.Value = starlark.None
	err := l.project.Batch(budget, func() error {
		v, err := starlark.Call(thread, fn, args[1:], nil)
		if err != nil {
			return err
		}
		ret = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}
