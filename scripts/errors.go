package scripts

import (
	"errors"
	"fmt"

	"github.com/reusee/stagecoach/threads"
	"go.starlark.net/starlark"
)

// scriptError turns a starlark failure into a threads.ScriptError whose
// locations are the starlark call stack.
func scriptError(err error) error {
	if err == nil {
		return nil
	}
	var evalErr *starlark.EvalError
	if !errors.As(err, &evalErr) {
		return err
	}
	locations := make([]string, 0, len(evalErr.CallStack))
	for _, frame := range evalErr.CallStack {
		locations = append(locations, fmt.Sprintf("%s: in %s", frame.Pos, frame.Name))
	}
	cause := evalErr.Unwrap()
	if cause == nil {
		cause = errors.New(evalErr.Msg)
	}
	return &threads.ScriptError{
		Err:       cause,
		Locations: locations,
	}
}
