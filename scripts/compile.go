package scripts

import (
	"fmt"

	"github.com/reusee/stagecoach/assets"
	"github.com/reusee/stagecoach/logs"
	"github.com/reusee/stagecoach/projects"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

type Options struct {
	Catalog assets.Catalog
	Logger  logs.Logger
}

var fileOptions = &syntax.FileOptions{
	Set:             true,
	TopLevelControl: true,
	GlobalReassign:  true,
	Recursion:       true,
	While:           true,
}

// Compile parses and resolves a script. Syntax errors are returned here; the
// top-level code runs when the returned program is built, so misuse of the
// scheduler at top level surfaces as a build error. Every for and while
// statement is rewritten to step the loop runner of the running Thread.
func Compile(name string, src []byte, options Options) (projects.Program, error) {
	if options.Logger == nil {
		options.Logger = logs.Discard()
	}
	names := (&loader{}).predeclared()
	file, err := fileOptions.Parse(name, src, 0)
	if err != nil {
		return projects.Program{}, fmt.Errorf("compile %s: %w", name, err)
	}
	yieldingLoops(file)
	prog, err := starlark.FileProgram(file, names.Has)
	if err != nil {
		return projects.Program{}, fmt.Errorf("compile %s: %w", name, err)
	}
	return projects.Program{
		Name: name,
		Load: func(p *projects.Project) error {
			l := &loader{
				project: p,
				options: options,
				name:    name,
			}
			thread := l.newThread(name)
			_, err := prog.Init(thread, l.predeclared())
			return scriptError(err)
		},
	}, nil
}
