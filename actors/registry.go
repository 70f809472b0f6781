package actors

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrUnknownInstance = errors.New("unknown instance")
	ErrCloneLimit      = errors.New("too many clones")
	ErrCloneStage      = errors.New("the stage cannot be cloned")
	ErrNotClone        = errors.New("only clones can be deleted")
)

// Registry owns every live instance of a project. Instances are kept in
// creation order; ids are never reused.
type Registry struct {
	lastID    ID
	instances []*Instance
	byID      map[ID]*Instance
	maxClones int
	numClones int
}

// NewRegistry returns an empty registry. maxClones <= 0 means no limit.
func NewRegistry(maxClones int) *Registry {
	return &Registry{
		byID:      make(map[ID]*Instance),
		maxClones: maxClones,
	}
}

func (r *Registry) add(inst *Instance) *Instance {
	r.lastID++
	inst.ID = r.lastID
	inst.alive = true
	r.instances = append(r.instances, inst)
	r.byID[inst.ID] = inst
	return inst
}

func (r *Registry) AddOriginal(class *Class) *Instance {
	return r.add(&Instance{
		Kind:      Original,
		Class:     class,
		State:     class.newState(),
		Visible:   !class.Hidden,
		Transform: class.Transform,
	})
}

// Clone allocates a new instance of of's class with a snapshot of its state
// and transform.
func (r *Registry) Clone(of ID) (*Instance, error) {
	parent, err := r.Get(of)
	if err != nil {
		return nil, err
	}
	if parent.Class.Kind == Stage {
		return nil, ErrCloneStage
	}
	if r.maxClones > 0 && r.numClones >= r.maxClones {
		return nil, fmt.Errorf("%w: limit is %d", ErrCloneLimit, r.maxClones)
	}
	var state State
	if parent.State != nil {
		state = parent.State.Snapshot()
	}
	r.numClones++
	return r.add(&Instance{
		Kind:      Clone,
		Class:     parent.Class,
		State:     state,
		Visible:   parent.Visible,
		Transform: parent.Transform,
		Costume:   parent.Costume,
	}), nil
}

func (r *Registry) Delete(id ID) error {
	inst, err := r.Get(id)
	if err != nil {
		return err
	}
	if inst.Kind != Clone {
		return fmt.Errorf("%w: %s", ErrNotClone, inst)
	}
	r.remove(inst)
	return nil
}

func (r *Registry) remove(inst *Instance) {
	inst.alive = false
	delete(r.byID, inst.ID)
	r.instances = slices.DeleteFunc(r.instances, func(i *Instance) bool {
		return i == inst
	})
	if inst.Kind == Clone {
		r.numClones--
	}
}

func (r *Registry) Get(id ID) (*Instance, error) {
	inst, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownInstance, id)
	}
	return inst, nil
}

func (r *Registry) Alive(id ID) bool {
	_, ok := r.byID[id]
	return ok
}

// Live returns all live instances in creation order.
func (r *Registry) Live() []*Instance {
	return slices.Clone(r.instances)
}

func (r *Registry) Len() int {
	return len(r.instances)
}

// InstancesOf returns the original of the class followed by its clones in
// creation order.
func (r *Registry) InstancesOf(className string) (ret []*Instance) {
	for _, inst := range r.instances {
		if inst.Class.Name == className && inst.Kind == Original {
			ret = append(ret, inst)
		}
	}
	for _, inst := range r.instances {
		if inst.Class.Name == className && inst.Kind == Clone {
			ret = append(ret, inst)
		}
	}
	return
}

func (r *Registry) Original(className string) (*Instance, error) {
	for _, inst := range r.instances {
		if inst.Class.Name == className && inst.Kind == Original {
			return inst, nil
		}
	}
	return nil, fmt.Errorf("%w: no original of %s", ErrUnknownInstance, className)
}

func (r *Registry) Originals() (ret []*Instance) {
	for _, inst := range r.instances {
		if inst.Kind == Original {
			ret = append(ret, inst)
		}
	}
	return
}

// ClearClones destroys every clone and returns their ids.
func (r *Registry) ClearClones() (ids []ID) {
	for _, inst := range slices.Clone(r.instances) {
		if inst.Kind == Clone {
			ids = append(ids, inst.ID)
			r.remove(inst)
		}
	}
	return
}
