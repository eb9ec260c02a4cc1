// Package physics provides vector math, axis-aligned collision tests and a
// broad-phase spatial grid for the playfield.
package physics

// Vec2 is a 2D vector in world units. The playfield origin is at its centre,
// with x growing to the right and y growing upwards.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Box is an axis-aligned bounding box described by its centre and half-extents.
type Box struct {
	Center Vec2
	Half   Vec2
}

// BoxAt returns a box of the given half-extents centred on pos.
func BoxAt(pos, half Vec2) Box {
	return Box{Center: pos, Half: half}
}

// Min returns the bottom-left corner.
func (b Box) Min() Vec2 {
	return Vec2{X: b.Center.X - b.Half.X, Y: b.Center.Y - b.Half.Y}
}

// Max returns the top-right corner.
func (b Box) Max() Vec2 {
	return Vec2{X: b.Center.X + b.Half.X, Y: b.Center.Y + b.Half.Y}
}

// Overlaps reports whether the two boxes intersect on both axes.
// Touching edges count as an overlap.
func (b Box) Overlaps(o Box) bool {
	bMin, bMax := b.Min(), b.Max()
	oMin, oMax := o.Min(), o.Max()
	return bMin.X <= oMax.X && oMin.X <= bMax.X &&
		bMin.Y <= oMax.Y && oMin.Y <= bMax.Y
}

// Contains reports whether p lies inside the half-open rectangle [min, max).
func Contains(min, max, p Vec2) bool {
	return p.X >= min.X && p.X < max.X && p.Y >= min.Y && p.Y < max.Y
}

// Clamp limits v to the closed interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
