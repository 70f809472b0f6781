package threads

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/reusee/e5"
)

var (
	ErrInvalidBudget  = errors.New("positive integer required")
	ErrPopBase        = errors.New("cannot pop the base loop budget")
	ErrNoActiveThread = errors.New("no active thread")
)

// ScriptError is the outcome of a failed Thread: the failure plus the chain of
// locations it propagated through, innermost last.
type ScriptError struct {
	Err       error
	Locations []string
}

func (e *ScriptError) Error() string {
	if len(e.Locations) == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s (at %s)", e.Err.Error(), e.Locations[len(e.Locations)-1])
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}

type panicValue struct {
	value any
}

func (p panicValue) Error() string {
	return fmt.Sprintf("panic: %v", p.value)
}

var wrapStacktrace = e5.Wrap.With(e5.WrapStacktrace)

func panicError(p any) error {
	var err error
	if e, ok := p.(error); ok {
		err = e
	} else {
		err = panicValue{value: p}
	}
	var stacktrace *e5.Stacktrace
	if !errors.As(wrapStacktrace(err), &stacktrace) {
		return &ScriptError{
			Err: err,
		}
	}
	return &ScriptError{
		Err:       err,
		Locations: stackLocations(stacktrace),
	}
}

// frames of the coroutine machinery itself are not part of a location chain
var machineryFiles = []string{
	"/threads/thread.go",
	"/threads/errors.go",
}

func isMachinery(function, file string) bool {
	if strings.HasPrefix(function, "runtime.") ||
		strings.HasPrefix(function, "iter.") {
		return true
	}
	for _, suffix := range machineryFiles {
		if strings.HasSuffix(file, suffix) {
			return true
		}
	}
	return false
}

// stackLocations turns a stacktrace, innermost frame first, into locations
// outermost first. Each frame renders as "<sigil> <function> <file>:<line>".
func stackLocations(stacktrace *e5.Stacktrace) (ret []string) {
	for line := range strings.Lines(stacktrace.Error()) {
		line = strings.TrimRight(line, "\n")
		if len(line) < 2 {
			continue
		}
		function, position, ok := strings.Cut(line[2:], " ")
		if !ok {
			continue
		}
		file, _, _ := strings.Cut(position, ":")
		if isMachinery(function, file) {
			continue
		}
		ret = append(ret, fmt.Sprintf("%s: in %s", position, function))
	}
	slices.Reverse(ret)
	return
}
