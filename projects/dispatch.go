package projects

import (
	"slices"

	"github.com/reusee/stagecoach/actors"
	"github.com/reusee/stagecoach/stageconfigs"
)

// Start kills every thread, destroys all clones and spawns the green flag
// handlers of every instance. Originals keep their state.
func (p *Project) Start() int {
	current := p.current
	p.killAll(current)
	p.registry.ClearClones()
	n := p.dispatch(actors.OnGreenFlag(), nil)
	p.logger.InfoContext(p.ctx, "start", "threads", n)
	if current != nil {
		// started from a script; the starting thread ends here
		current.thread.Exit()
	}
	return n
}

// Stop kills every thread immediately. Clones are destroyed unless the
// project is configured to keep them.
func (p *Project) Stop() {
	current := p.current
	p.killAll(current)
	if p.config.ClonesOnStop != stageconfigs.KeepClones {
		p.registry.ClearClones()
	}
	clear(p.keys)
	p.logger.InfoContext(p.ctx, "stop")
	if current != nil {
		current.thread.Exit()
	}
}

// Broadcast spawns the handlers of every instance listening for name.
func (p *Project) Broadcast(name string) int {
	return p.dispatch(actors.OnMessage(name), nil)
}

// KeyPressed spawns the handlers of every instance listening for key.
func (p *Project) KeyPressed(key string) int {
	return p.dispatch(actors.OnKey(key), nil)
}

// SetKey records whether key is held down.
func (p *Project) SetKey(key string, down bool) {
	if down {
		p.keys[key] = true
	} else {
		delete(p.keys, key)
	}
}

func (p *Project) KeyIsPressed(key string) bool {
	return p.keys[key]
}

// Clicked spawns the this-sprite-clicked handlers of one instance.
func (p *Project) Clicked(id actors.ID) (int, error) {
	inst, err := p.registry.Get(id)
	if err != nil {
		return 0, err
	}
	return p.spawn(inst, actors.OnThisClicked()), nil
}

func (p *Project) StageClicked() int {
	return p.dispatch(actors.OnStageClicked(), nil)
}

// ClickAt dispatches a click at a stage position to the topmost visible
// sprite containing it, or to the stage when no sprite does.
func (p *Project) ClickAt(x, y float64) int {
	if inst := p.HitTest(x, y); inst != nil {
		return p.spawn(inst, actors.OnThisClicked())
	}
	return p.StageClicked()
}

// HitTest returns the topmost visible sprite whose bounding box contains the point.
func (p *Project) HitTest(x, y float64) *actors.Instance {
	instances := p.registry.Live()
	for _, inst := range slices.Backward(instances) {
		if inst.Class.Kind != actors.Sprite || !inst.IsVisible() {
			continue
		}
		if _, ok := inst.Drawable(); !ok {
			continue
		}
		if inst.Bounds().Contains(x, y) {
			return inst
		}
	}
	return nil
}
