package actors

import (
	"maps"

	"github.com/reusee/stagecoach/collisions"
)

type Kind uint8

const (
	Sprite Kind = iota
	Stage
)

func (k Kind) String() string {
	if k == Stage {
		return "stage"
	}
	return "sprite"
}

// Class is a script-defined template for sprites or the stage.
type Class struct {
	Name     string
	Kind     Kind
	Costumes []collisions.Drawable
	// initial placement of the original instance
	Transform collisions.Transform
	Hidden    bool
	// NewState returns the script-visible state of the original instance
	NewState func() State
}

// State is the script-visible state of an instance. It is owned by the script
// collaborator; the core only snapshots it when cloning.
type State interface {
	Snapshot() State
}

// Vars is a plain State.
type Vars map[string]any

func (v Vars) Snapshot() State {
	return maps.Clone(v)
}

func (c *Class) newState() State {
	if c.NewState != nil {
		return c.NewState()
	}
	return Vars{}
}

func (c *Class) CostumeIndex(handle string) int {
	for i, costume := range c.Costumes {
		if costume.Handle == handle {
			return i
		}
	}
	return -1
}
