package scripts

import (
	"fmt"
	"maps"

	"github.com/reusee/stagecoach/actors"
	"go.starlark.net/starlark"
)

// state holds the script variables of one instance.
type state struct {
	vars starlark.StringDict
}

var _ actors.State = new(state)

func newState(initial starlark.StringDict) *state {
	s := &state{
		vars: make(starlark.StringDict, len(initial)),
	}
	for name, value := range initial {
		s.vars[name] = copyValue(value)
	}
	return s
}

// Snapshot copies the variables for a clone. Lists and dicts are copied one
// level deep so that clones do not share them with their parent.
func (s *state) Snapshot() actors.State {
	return newState(s.vars)
}

func (s *state) Names() []string {
	return s.vars.Keys()
}

func (s *state) Get(name string) (starlark.Value, bool) {
	v, ok := s.vars[name]
	return v, ok
}

func (s *state) Set(name string, value starlark.Value) {
	s.vars[name] = value
}

func (s *state) Vars() starlark.StringDict {
	return maps.Clone(s.vars)
}

func copyValue(v starlark.Value) starlark.Value {
	switch v := v.(type) {
	case *starlark.List:
		elems := make([]starlark.Value, v.Len())
		for i := range elems {
			elems[i] = v.Index(i)
		}
		return starlark.NewList(elems)
	case *starlark.Dict:
		d := starlark.NewDict(v.Len())
		for _, item := range v.Items() {
			// keys come from a dict and d is not frozen
			if err := d.SetKey(item[0], item[1]); err != nil {
				panic(fmt.Errorf("copy dict: %w", err))
			}
		}
		return d
	}
	return v
}
