package geometry

import "github.com/df07/spectral-tracer/pkg/core"

// Box is the axis-aligned box primitive: a standalone hittable
// object (as opposed to core.AABB, which is the bounding-volume value
// type used internally by every shape and by the k-d tree).
type Box struct {
	bounds core.AABB
}

// NewBox creates an AABB primitive from explicit corners.
func NewBox(min, max core.Vec3) *Box {
	return &Box{bounds: core.NewAABB(min, max)}
}

// Bounds implements Primitive.
func (b *Box) Bounds() core.AABB { return b.bounds }

// Intersect performs the slab test: output t is the first slab entry in
// the ray's interval and the normal is the unit vector of the face hit.
func (b *Box) Intersect(ray core.Ray) (Intersection, bool) {
	t, normal, ok := b.bounds.HitNormal(ray, ray.TMin, ray.TMax)
	if !ok {
		return Intersection{}, false
	}
	in := Intersection{Point: ray.At(t), T: t}
	in.SetFaceNormal(ray, normal)
	return in, true
}

// Intersects is the short-circuiting occlusion-only test; it never
// computes the hit normal.
func (b *Box) Intersects(ray core.Ray) bool {
	_, ok := b.bounds.Hit(ray, ray.TMin, ray.TMax)
	return ok
}
