package projects

import (
	"github.com/reusee/stagecoach/actors"
	"github.com/reusee/stagecoach/threads"
)

// Body is the code of a handler. It runs inside its own Thread.
type Body func(c *Context) error

// Handler binds a trigger to a body on a class.
type Handler struct {
	Trigger actors.Trigger
	Name    string
	Body    Body
}

// spawn starts one Thread per handler of inst matching event, in
// registration order. New threads first run on the next tick.
func (p *Project) spawn(inst *actors.Instance, event actors.Trigger) (n int) {
	handlers := p.handlers[inst.Class]
	for idx := range handlers {
		handler := &handlers[idx]
		if !handler.Trigger.Matches(event) {
			continue
		}
		p.lastThreadID++
		t := &task{
			instance: inst.ID,
			class:    inst.Class,
			handler:  handler,
		}
		t.context = &Context{
			project: p,
			task:    t,
		}
		name := handler.Name
		if name == "" {
			name = handler.Trigger.String()
		}
		t.thread = threads.New(threads.Spec{
			ID:       p.lastThreadID,
			Instance: uint64(inst.ID),
			Handler:  idx,
			Name:     inst.Class.Name + "." + name,
			Alive:    p.instanceAlive,
		}, func(*threads.Thread) error {
			if handler.Body == nil {
				return nil
			}
			return handler.Body(t.context)
		})
		p.tasks = append(p.tasks, t)
		n++
		p.logger.DebugContext(p.ctx, "spawn",
			"thread", p.lastThreadID,
			"handler", t.thread.Name,
			"instance", uint64(inst.ID),
			"trigger", event.String(),
		)
	}
	return
}

// dispatch spawns handlers matching event on every live instance accepted by
// filter, in instance creation order.
func (p *Project) dispatch(event actors.Trigger, filter func(*actors.Instance) bool) (n int) {
	for _, inst := range p.registry.Live() {
		if filter != nil && !filter(inst) {
			continue
		}
		n += p.spawn(inst, event)
	}
	return
}

// killAll kills every thread except keep. Failed threads not yet reported
// stay listed until the running tick reports them.
func (p *Project) killAll(keep *task) {
	tasks := p.tasks
	p.tasks = nil
	for _, t := range tasks {
		if t == keep || t.thread.State() == threads.Errored && !t.reported {
			p.tasks = append(p.tasks, t)
			continue
		}
		t.thread.Kill()
	}
}

// killInstance kills the threads running on id except keep.
func (p *Project) killInstance(id actors.ID, keep *task) {
	for _, t := range p.tasks {
		if t.instance != id || t == keep {
			continue
		}
		t.thread.Kill()
	}
}
