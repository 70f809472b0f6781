package actors

import (
	"errors"
	"testing"

	"github.com/reusee/stagecoach/collisions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(instances []*Instance) (ret []ID) {
	for _, inst := range instances {
		ret = append(ret, inst.ID)
	}
	return
}

func TestRegistryClones(t *testing.T) {
	r := NewRegistry(0)
	stage := r.AddOriginal(&Class{Name: "Stage", Kind: Stage})
	alien := &Class{
		Name: "Alien",
		Costumes: []collisions.Drawable{
			{Handle: "green", Width: 10, Height: 10, CenterX: 5, CenterY: 5},
			{Handle: "red", Width: 20, Height: 20, CenterX: 10, CenterY: 10},
		},
		Transform: collisions.Transform{X: 3, Y: 4, Scale: 1},
	}
	original := r.AddOriginal(alien)
	original.State.(Vars)["n"] = 1
	require.NoError(t, original.SwitchCostume("red"))

	a, err := r.Clone(original.ID)
	require.NoError(t, err)
	b, err := r.Clone(a.ID)
	require.NoError(t, err)
	c, err := r.Clone(original.ID)
	require.NoError(t, err)

	assert.Equal(t, Clone, a.Kind)
	assert.Equal(t, 1, a.State.(Vars)["n"])
	assert.Equal(t, original.Transform, b.Transform)
	assert.Equal(t, 1, b.Costume)
	assert.True(t, a.ID < b.ID && b.ID < c.ID)

	// snapshots are independent
	a.State.(Vars)["n"] = 2
	assert.Equal(t, 1, original.State.(Vars)["n"])

	assert.Equal(t, []ID{original.ID, a.ID, b.ID, c.ID}, ids(r.InstancesOf("Alien")))

	require.NoError(t, r.Delete(b.ID))
	assert.False(t, b.Alive())
	assert.False(t, r.Alive(b.ID))
	assert.Equal(t, []ID{original.ID, a.ID, c.ID}, ids(r.InstancesOf("Alien")))

	err = r.Delete(b.ID)
	assert.True(t, errors.Is(err, ErrUnknownInstance))
	err = r.Delete(original.ID)
	assert.True(t, errors.Is(err, ErrNotClone))
	_, err = r.Clone(stage.ID)
	assert.True(t, errors.Is(err, ErrCloneStage))

	// ids are not reused
	d, err := r.Clone(original.ID)
	require.NoError(t, err)
	assert.True(t, d.ID > c.ID)

	cleared := r.ClearClones()
	assert.Equal(t, []ID{a.ID, c.ID, d.ID}, cleared)
	assert.Equal(t, []ID{stage.ID, original.ID}, ids(r.Live()))
	assert.Equal(t, []ID{stage.ID, original.ID}, ids(r.Originals()))
}

func TestRegistryCloneLimit(t *testing.T) {
	r := NewRegistry(2)
	original := r.AddOriginal(&Class{Name: "Ball"})
	_, err := r.Clone(original.ID)
	require.NoError(t, err)
	second, err := r.Clone(original.ID)
	require.NoError(t, err)
	_, err = r.Clone(original.ID)
	require.True(t, errors.Is(err, ErrCloneLimit))
	require.NoError(t, r.Delete(second.ID))
	_, err = r.Clone(original.ID)
	require.NoError(t, err)
}

func TestInstanceBounds(t *testing.T) {
	r := NewRegistry(0)
	square := r.AddOriginal(&Class{
		Name: "Square",
		Costumes: []collisions.Drawable{
			{Handle: "square", Width: 80, Height: 80, CenterX: 20, CenterY: 30},
		},
		Transform: collisions.Transform{X: -50, Y: -90, Scale: 1},
	})
	assert.Equal(t, collisions.Box{XMin: -70, XMax: 10, YMin: -140, YMax: -60}, square.Bounds())
	assert.True(t, square.IsVisible())
	square.Visible = false
	assert.False(t, square.IsVisible())
	assert.Error(t, square.SwitchCostume("circle"))
}

func TestTriggerMatches(t *testing.T) {
	assert.True(t, OnMessage("run").Matches(OnMessage("run")))
	assert.False(t, OnMessage("run").Matches(OnMessage("walk")))
	assert.False(t, OnKey("a").Matches(OnMessage("a")))
	assert.True(t, OnGreenFlag().Matches(OnGreenFlag()))
	assert.Equal(t, "key(a)", OnKey("a").String())
}
