package debugs

import (
	"context"
	"maps"
	"slices"

	"github.com/reusee/stagecoach/actors"
	"github.com/reusee/stagecoach/logs"
	"github.com/reusee/stagecoach/projects"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

type Tap func(ctx context.Context, what string, globals map[string]any)

func (Module) Tap(
	logger logs.Logger,
) Tap {
	return func(ctx context.Context, what string, globals map[string]any) {
		logger.InfoContext(ctx, "tap: "+what,
			"globals", slices.Sorted(maps.Keys(globals)),
		)
		defer func() {
			logger.InfoContext(ctx, "tap end: "+what)
		}()

		mappings := make(starlark.StringDict)
		for name, value := range globals {
			mappings[name] = toStarlarkValue(value)
		}

		thread := &starlark.Thread{
			Name: "repl",
		}
		repl.REPLOptions(&syntax.FileOptions{
			Set:             true,
			While:           true,
			TopLevelControl: true,
		}, thread, mappings)
	}
}

// TapProject opens a REPL over a project between frames.
type TapProject func(ctx context.Context, project *projects.Project)

func (Module) TapProject(
	tap Tap,
) TapProject {
	return func(ctx context.Context, project *projects.Project) {
		tap(ctx, project.Name, ProjectGlobals(project))
	}
}

// ProjectGlobals describes a project for inspection: one list of instances
// per class, the frame counter, and functions to drive it.
func ProjectGlobals(project *projects.Project) map[string]any {
	globals := map[string]any{
		"frame":   project.Frame(),
		"threads": project.Threads(),
		"tick": func() uint64 {
			return project.Tick().Frame
		},
		"broadcast": func(name string) int {
			return project.Broadcast(name)
		},
		"key_pressed": func(key string) int {
			return project.KeyPressed(key)
		},
	}
	for _, class := range project.Classes() {
		var instances []any
		for _, inst := range project.Registry().InstancesOf(class.Name) {
			instances = append(instances, instanceGlobals(inst))
		}
		globals[class.Name] = instances
	}
	return globals
}

func instanceGlobals(inst *actors.Instance) map[string]any {
	ret := map[string]any{
		"id":      uint64(inst.ID),
		"kind":    inst.Kind.String(),
		"visible": inst.Visible,
		"x":       inst.Transform.X,
		"y":       inst.Transform.Y,
		"scale":   inst.Transform.Scale,
	}
	if drawable, ok := inst.Drawable(); ok {
		ret["costume"] = drawable.Handle
	}
	switch state := inst.State.(type) {
	case interface{ Vars() starlark.StringDict }:
		ret["vars"] = state.Vars()
	case actors.Vars:
		ret["vars"] = map[string]any(state)
	}
	return ret
}
