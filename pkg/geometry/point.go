package geometry

import "github.com/df07/spectral-tracer/pkg/core"

// Point is a zero-volume primitive: it has bounds (a degenerate AABB at
// its location) but never intersects a ray. It exists so
// point lights can participate in the same scene-object arena as every
// other primitive without a special case in the acceleration structure.
type Point struct {
	Position core.Vec3
}

// NewPoint creates a Point primitive.
func NewPoint(position core.Vec3) *Point { return &Point{Position: position} }

// Bounds implements Primitive: a zero-size box at Position.
func (p *Point) Bounds() core.AABB {
	return core.NewAABB(p.Position, p.Position)
}

// Intersect implements Primitive: a Point is never hit by a ray.
func (p *Point) Intersect(core.Ray) (Intersection, bool) {
	return Intersection{}, false
}
