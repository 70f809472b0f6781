package collisions

import "fmt"

// Drawable is the part of an asset the core needs: pixel dimensions and the
// visual origin within the image. Pixel rows grow downward.
type Drawable struct {
	Handle  string  `json:"handle" yaml:"handle"`
	Width   float64 `json:"width" yaml:"width"`
	Height  float64 `json:"height" yaml:"height"`
	CenterX float64 `json:"centerX" yaml:"centerX"`
	CenterY float64 `json:"centerY" yaml:"centerY"`
}

// Transform places a drawable on the stage. Stage y grows upward.
type Transform struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Scale float64 `json:"scale"`
}

// Box is an axis-aligned bounding box in stage coordinates.
type Box struct {
	XMin, XMax float64
	YMin, YMax float64
}

func (b Box) String() string {
	return fmt.Sprintf("x[%g, %g] y[%g, %g]", b.XMin, b.XMax, b.YMin, b.YMax)
}

func BoundingBox(d Drawable, t Transform) Box {
	s := t.Scale
	return Box{
		XMin: t.X - s*d.CenterX,
		XMax: t.X + s*(d.Width-d.CenterX),
		YMin: t.Y - s*(d.Height-d.CenterY),
		YMax: t.Y + s*d.CenterY,
	}
}

// Overlaps reports whether the closed boxes intersect on both axes.
func (b Box) Overlaps(other Box) bool {
	return b.XMin <= other.XMax &&
		other.XMin <= b.XMax &&
		b.YMin <= other.YMax &&
		other.YMin <= b.YMax
}

func (b Box) Contains(x, y float64) bool {
	return x >= b.XMin && x <= b.XMax &&
		y >= b.YMin && y <= b.YMax
}
