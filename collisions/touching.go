package collisions

// Body is anything with a visibility flag and a bounding box.
type Body interface {
	IsVisible() bool
	Bounds() Box
}

// Touching reports whether two bodies overlap. Invisible bodies never touch
// anything.
func Touching(a, b Body) bool {
	if a == nil || b == nil {
		return false
	}
	if !a.IsVisible() || !b.IsVisible() {
		return false
	}
	return a.Bounds().Overlaps(b.Bounds())
}
