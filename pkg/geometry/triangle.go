package geometry

import (
	"math"

	"github.com/df07/spectral-tracer/pkg/core"
)

// Triangle is the mesh primitive. Vertices are handed in directly by
// the scene builder; no mesh file format is involved at this level.
type Triangle struct {
	V0, V1, V2 core.Vec3
	normal     core.Vec3 // precomputed geometric (unnormalized-input) normal
}

// NewTriangle creates a triangle and precomputes its face normal.
func NewTriangle(v0, v1, v2 core.Vec3) *Triangle {
	n := v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
	return &Triangle{V0: v0, V1: v1, V2: v2, normal: n}
}

// Bounds implements Primitive.
func (t *Triangle) Bounds() core.AABB {
	return core.NewAABBFromPoints(t.V0, t.V1, t.V2)
}

// Area returns the triangle's surface area, used for area-based emitter
// sampling.
func (t *Triangle) Area() float64 {
	return t.V1.Subtract(t.V0).Cross(t.V2.Subtract(t.V0)).Length() * 0.5
}

const triangleEpsilon = 1e-8

// Intersect implements the Möller–Trumbore ray-triangle test: it fails
// early when |det| is below triangleEpsilon (ray parallel to, or
// grazing, the triangle's plane, or a degenerate triangle). Back faces
// are not culled: a ray approaching from the side opposite the
// winding-order normal is intersected like a front-face hit.
func (t *Triangle) Intersect(ray core.Ray) (Intersection, bool) {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)
	pvec := ray.Direction.Cross(edge2)
	det := edge1.Dot(pvec)
	if math.Abs(det) < triangleEpsilon {
		return Intersection{}, false
	}
	invDet := 1 / det

	tvec := ray.Origin.Subtract(t.V0)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return Intersection{}, false
	}

	qvec := tvec.Cross(edge1)
	v := ray.Direction.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return Intersection{}, false
	}

	tHit := edge2.Dot(qvec) * invDet
	if !ray.Contains(tHit) {
		return Intersection{}, false
	}

	p := ray.At(tHit)
	in := Intersection{Point: p, T: tHit}
	in.SetFaceNormal(ray, t.normal)
	return in, true
}

// SampleSurface uniformly samples a point on the triangle via the
// standard sqrt-based barycentric mapping, returning the point, its
// outward normal, and the pdf in area measure (1/Area).
func (t *Triangle) SampleSurface(u1, u2 float64) (point, normal core.Vec3, pdfArea float64) {
	su0 := math.Sqrt(u1)
	b0 := 1 - su0
	b1 := u2 * su0
	p := t.V0.Multiply(b0).Add(t.V1.Multiply(b1)).Add(t.V2.Multiply(1 - b0 - b1))
	area := t.Area()
	if area <= 0 {
		return p, t.normal, 0
	}
	return p, t.normal, 1 / area
}
