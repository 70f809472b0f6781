package projects

import (
	"cmp"
	"slices"

	"github.com/reusee/stagecoach/actors"
	"github.com/reusee/stagecoach/threads"
)

// Instruction tells a renderer to draw one instance.
type Instruction struct {
	Kind     string    `json:"kind"`
	Instance actors.ID `json:"instance"`
	Class    string    `json:"class"`
	Drawable string    `json:"drawable"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	Scale    float64   `json:"scale"`
}

const RenderImage = "RenderImage"

// FrameResult is what one tick produced.
type FrameResult struct {
	Frame  uint64        `json:"frame"`
	Render []Instruction `json:"render"`
	Errors []Report      `json:"-"`
}

// Tick advances the project by one frame. Every thread live at the start of
// the tick is resumed once, in creation order. Threads spawned during the tick
// first run on the next one. Newly failed threads are reported exactly once.
func (p *Project) Tick() FrameResult {
	if p.ticking {
		p.logger.WarnContext(p.ctx, "tick", "error", ErrReentrantTick)
		return FrameResult{
			Frame: p.frame,
		}
	}
	p.ticking = true
	defer func() {
		p.ticking = false
		p.current = nil
	}()
	p.frame++

	for _, t := range slices.Clone(p.tasks) {
		if t.thread.State().Terminal() {
			continue
		}
		p.current = t
		state := t.thread.Resume()
		p.current = nil
		if state.Terminal() {
			p.logger.DebugContext(p.ctx, "thread done",
				"thread", t.thread.ID,
				"handler", t.thread.Name,
				"state", state.String(),
			)
		}
	}

	var reports []Report
	live := p.tasks[:0]
	for _, t := range p.tasks {
		if t.thread.State() == threads.Errored && !t.reported {
			t.reported = true
			report := newReport(threads.OriginRun, t.thread.Err())
			report.Frame = p.frame
			report.Thread = t.thread.ID
			report.Instance = t.instance
			report.Class = t.class.Name
			report.Handler = t.thread.Name
			p.reporter.Report(report)
			reports = append(reports, report)
		}
		if !t.thread.State().Terminal() {
			live = append(live, t)
		}
	}
	clear(p.tasks[len(live):])
	p.tasks = live

	return FrameResult{
		Frame:  p.frame,
		Render: p.Render(),
		Errors: reports,
	}
}

// Render lists one instruction per visible instance with a costume: the
// stage first, then sprites by id.
func (p *Project) Render() (ret []Instruction) {
	instances := p.registry.Live()
	slices.SortStableFunc(instances, func(a, b *actors.Instance) int {
		if a.Class.Kind != b.Class.Kind {
			if a.Class.Kind == actors.Stage {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.ID, b.ID)
	})
	for _, inst := range instances {
		if !inst.IsVisible() {
			continue
		}
		drawable, ok := inst.Drawable()
		if !ok {
			continue
		}
		ret = append(ret, Instruction{
			Kind:     RenderImage,
			Instance: inst.ID,
			Class:    inst.Class.Name,
			Drawable: drawable.Handle,
			X:        inst.Transform.X,
			Y:        inst.Transform.Y,
			Scale:    inst.Transform.Scale,
		})
	}
	return
}
