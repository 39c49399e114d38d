// Package geometry implements the primitive shapes (box, sphere,
// triangle, point) and the intersection record they produce. Acceleration (the SAH k-d tree) lives in pkg/kdtree and
// depends only on the Primitive interface below.
package geometry

import "github.com/df07/spectral-tracer/pkg/core"

// Primitive is the capability set the k-d tree and integrator require of
// any piece of geometry: bounds and intersect. A primitive that can never be hit (Point) simply
// always returns ok=false from Intersect.
type Primitive interface {
	Bounds() core.AABB
	Intersect(ray core.Ray) (Intersection, bool)
}

// Intersection is what every primitive's Intersect reports: the hit
// point, the outward-facing normal, and the ray parameter t. FrontFace records which side of the
// surface the ray approached from (true when the ray arrives against the
// outward normal). The stable integer id the k-d tree assigns
// each primitive lives outside this struct: it is the
// primitive's position in the slice the tree was built from.
type Intersection struct {
	Point     core.Vec3
	Normal    core.Vec3
	T         float64
	FrontFace bool
}

// SetFaceNormal sets Normal (always pointing outside the surface) and
// FrontFace from the ray direction and the outward geometric normal.
func (in *Intersection) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	in.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	in.Normal = outwardNormal
}
