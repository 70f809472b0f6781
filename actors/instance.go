package actors

import (
	"fmt"

	"github.com/reusee/stagecoach/collisions"
)

type ID uint64

type InstanceKind uint8

const (
	Original InstanceKind = iota
	Clone
)

func (k InstanceKind) String() string {
	if k == Clone {
		return "clone"
	}
	return "original"
}

// Instance is one live occurrence of a Class.
type Instance struct {
	ID        ID
	Kind      InstanceKind
	Class     *Class
	State     State
	Visible   bool
	Transform collisions.Transform
	Costume   int

	alive bool
}

func (i *Instance) String() string {
	return fmt.Sprintf("%s#%d(%s)", i.Class.Name, i.ID, i.Kind)
}

func (i *Instance) Alive() bool {
	return i.alive
}

// Drawable returns the current costume, if the class has any.
func (i *Instance) Drawable() (collisions.Drawable, bool) {
	if i.Costume < 0 || i.Costume >= len(i.Class.Costumes) {
		return collisions.Drawable{}, false
	}
	return i.Class.Costumes[i.Costume], true
}

func (i *Instance) SwitchCostume(handle string) error {
	idx := i.Class.CostumeIndex(handle)
	if idx < 0 {
		return fmt.Errorf("%s has no costume %q", i.Class.Name, handle)
	}
	i.Costume = idx
	return nil
}

func (i *Instance) IsVisible() bool {
	return i.alive && i.Visible
}

func (i *Instance) Bounds() collisions.Box {
	drawable, _ := i.Drawable()
	return collisions.BoundingBox(drawable, i.Transform)
}

var _ collisions.Body = new(Instance)
