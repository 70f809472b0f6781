package projects

import (
	"fmt"

	"github.com/reusee/stagecoach/actors"
	"github.com/reusee/stagecoach/collisions"
	"github.com/reusee/stagecoach/threads"
)

// Context is the handle a handler body uses to reach its Thread, its
// instance and the project.
type Context struct {
	project *Project
	task    *task
}

func (c *Context) Project() *Project {
	return c.project
}

func (c *Context) Thread() *threads.Thread {
	return c.task.thread
}

// Self returns the instance the handler runs on. After the instance has
// been deleted the returned value reports Alive() == false.
func (c *Context) Self() *actors.Instance {
	inst, err := c.project.registry.Get(c.task.instance)
	if err != nil {
		return &actors.Instance{
			ID:    c.task.instance,
			Class: c.task.class,
		}
	}
	return inst
}

func (c *Context) NewLoop() *threads.Loop {
	return c.task.thread.NewLoop()
}

func (c *Context) Range(n int, body func(i int) error) error {
	return c.task.thread.Range(n, body)
}

func (c *Context) While(cond func() bool, body func() error) error {
	return c.task.thread.While(cond, body)
}

// Wait suspends the Thread until the next frame.
func (c *Context) Wait() {
	c.task.thread.Suspend()
}

// Batch runs body with the configured batch budget, then yields once.
func (c *Context) Batch(body func() error) error {
	return c.task.thread.BatchN(c.project.config.BatchBudget, body)
}

func (c *Context) BatchN(n int, body func() error) error {
	return c.task.thread.BatchN(n, body)
}

func (c *Context) PushLoopBudget(v any) error {
	return c.task.thread.Budgets.PushValue(v)
}

func (c *Context) PopLoopBudget() error {
	return c.task.thread.Budgets.Pop()
}

func (c *Context) Broadcast(name string) int {
	return c.project.Broadcast(name)
}

// CreateCloneOf clones an instance and spawns its clone-start handlers.
func (c *Context) CreateCloneOf(id actors.ID) (*actors.Instance, error) {
	return c.project.cloneOf(id)
}

// DeleteThisClone destroys the handler's instance and every thread on it,
// including this one. It returns only on failure.
func (c *Context) DeleteThisClone() error {
	inst, err := c.project.registry.Get(c.task.instance)
	if err != nil {
		return err
	}
	if inst.Kind != actors.Clone {
		// deleting an original is a no-op
		return nil
	}
	if err := c.project.deleteClone(inst.ID, c.task); err != nil {
		return err
	}
	c.task.thread.Exit()
	return nil
}

func (c *Context) InstancesOf(className string) []*actors.Instance {
	return c.project.registry.InstancesOf(className)
}

// Touching reports whether the handler's instance overlaps other.
func (c *Context) Touching(other actors.ID) (bool, error) {
	return c.project.Touching(c.task.instance, other)
}

func (c *Context) KeyIsPressed(key string) bool {
	return c.project.KeyIsPressed(key)
}

func (c *Context) State() actors.State {
	return c.Self().State
}

func (p *Project) cloneOf(id actors.ID) (*actors.Instance, error) {
	clone, err := p.registry.Clone(id)
	if err != nil {
		return nil, err
	}
	p.spawn(clone, actors.OnCloneStart())
	return clone, nil
}

func (p *Project) deleteClone(id actors.ID, keep *task) error {
	if err := p.registry.Delete(id); err != nil {
		return err
	}
	p.killInstance(id, keep)
	p.logger.DebugContext(p.ctx, "clone deleted", "instance", uint64(id))
	return nil
}

// Touching reports whether two instances overlap. The stage and instances
// without a costume touch nothing.
func (p *Project) Touching(a, b actors.ID) (bool, error) {
	instA, err := p.registry.Get(a)
	if err != nil {
		return false, err
	}
	instB, err := p.registry.Get(b)
	if err != nil {
		return false, err
	}
	if instA.Class.Kind == actors.Stage || instB.Class.Kind == actors.Stage {
		return false, nil
	}
	if _, ok := instA.Drawable(); !ok {
		return false, nil
	}
	if _, ok := instB.Drawable(); !ok {
		return false, nil
	}
	return collisions.Touching(instA, instB), nil
}

// Current returns the context of the Thread being resumed.
func (p *Project) Current() (*Context, error) {
	if p.current == nil {
		return nil, threads.ErrNoActiveThread
	}
	return p.current.context, nil
}

// The methods below act on the Thread being resumed, for compilers that
// reach the runtime through the project rather than a Context.

func (p *Project) PushLoopBudget(v any) error {
	c, err := p.Current()
	if err != nil {
		return fmt.Errorf("cannot push loop budget outside a Thread: %w", err)
	}
	return c.PushLoopBudget(v)
}

func (p *Project) PopLoopBudget() error {
	c, err := p.Current()
	if err != nil {
		return fmt.Errorf("cannot pop loop budget outside a Thread: %w", err)
	}
	return c.PopLoopBudget()
}

// NewLoop returns a loop runner for the current Thread, or one that never
// suspends outside any Thread.
func (p *Project) NewLoop() *threads.Loop {
	c, err := p.Current()
	if err != nil {
		return (*threads.Thread)(nil).NewLoop()
	}
	return c.NewLoop()
}

// Batch runs body in a batch scope of the current Thread. A nil budget uses
// the configured batch budget.
func (p *Project) Batch(budget *int, body func() error) error {
	c, err := p.Current()
	if err != nil {
		return fmt.Errorf("cannot run a batch outside a Thread: %w", err)
	}
	if budget == nil {
		return c.Batch(body)
	}
	return c.BatchN(*budget, body)
}

func (p *Project) CreateCloneOf(id actors.ID) (*actors.Instance, error) {
	if p.building {
		return nil, fmt.Errorf("cannot create a clone outside a Thread: %w", threads.ErrNoActiveThread)
	}
	return p.cloneOf(id)
}

func (p *Project) DeleteThisClone() error {
	c, err := p.Current()
	if err != nil {
		return fmt.Errorf("cannot delete a clone outside a Thread: %w", err)
	}
	return c.DeleteThisClone()
}

func (p *Project) InstancesOf(className string) []*actors.Instance {
	return p.registry.InstancesOf(className)
}
