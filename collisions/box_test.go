package collisions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testBody struct {
	visible bool
	box     Box
}

func (t testBody) IsVisible() bool {
	return t.visible
}

func (t testBody) Bounds() Box {
	return t.box
}

func TestBoundingBox(t *testing.T) {
	// 80x80 costume with its centre 20 from the left and 30 from the top
	square := BoundingBox(
		Drawable{Width: 80, Height: 80, CenterX: 20, CenterY: 30},
		Transform{X: -50, Y: -90, Scale: 1},
	)
	assert.Equal(t, Box{XMin: -70, XMax: 10, YMin: -140, YMax: -60}, square)

	rectangle := BoundingBox(
		Drawable{Width: 60, Height: 30, CenterX: 30, CenterY: 10},
		Transform{X: -10, Y: -90, Scale: 1},
	)
	assert.Equal(t, Box{XMin: -40, XMax: 20, YMin: -110, YMax: -80}, rectangle)

	scaled := BoundingBox(
		Drawable{Width: 10, Height: 10, CenterX: 5, CenterY: 5},
		Transform{X: 0, Y: 0, Scale: 2},
	)
	assert.Equal(t, Box{XMin: -10, XMax: 10, YMin: -10, YMax: 10}, scaled)
}

func TestOverlapsInclusive(t *testing.T) {
	a := Box{XMin: 0, XMax: 10, YMin: 0, YMax: 10}
	edge := Box{XMin: 10, XMax: 20, YMin: 10, YMax: 20}
	apart := Box{XMin: 10.5, XMax: 20, YMin: 0, YMax: 10}
	require.True(t, a.Overlaps(edge))
	require.True(t, edge.Overlaps(a))
	require.False(t, a.Overlaps(apart))
	require.False(t, apart.Overlaps(a))
	require.True(t, a.Contains(10, 0))
	require.False(t, a.Contains(10.1, 0))
}

func TestTouchingVisibility(t *testing.T) {
	square := Box{XMin: -70, XMax: 10, YMin: -140, YMax: -60}
	rectangle := Box{XMin: -40, XMax: 20, YMin: -110, YMax: -80}
	for _, showSquare := range []bool{false, true} {
		for _, showRectangle := range []bool{false, true} {
			a := testBody{visible: showSquare, box: square}
			b := testBody{visible: showRectangle, box: rectangle}
			expected := showSquare && showRectangle
			assert.Equal(t, expected, Touching(a, b))
			assert.Equal(t, Touching(a, b), Touching(b, a))
		}
	}
	assert.False(t, Touching(nil, testBody{visible: true}))
}

func TestTouchingSymmetric(t *testing.T) {
	boxes := []Box{
		{XMin: 0, XMax: 1, YMin: 0, YMax: 1},
		{XMin: 1, XMax: 2, YMin: 1, YMax: 2},
		{XMin: 5, XMax: 6, YMin: -1, YMax: 0},
		{XMin: -3, XMax: 3, YMin: -3, YMax: 3},
	}
	for _, a := range boxes {
		for _, b := range boxes {
			x := testBody{visible: true, box: a}
			y := testBody{visible: true, box: b}
			require.Equal(t, Touching(x, y), Touching(y, x), "%v %v", a, b)
		}
	}
}
