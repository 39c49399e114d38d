package light

import (
	"math"

	"github.com/df07/spectral-tracer/pkg/core"
	"github.com/df07/spectral-tracer/pkg/geometry"
)

// SphereShape adapts geometry.Sphere's cone-sampling strategy, which
// already returns a solid-angle pdf directly.
type SphereShape struct{ *geometry.Sphere }

func (s SphereShape) Sample(ref core.Vec3, u1, u2 float64) (point, normal core.Vec3, pdfSolidAngle float64) {
	return s.Sphere.SampleSurface(ref, u1, u2)
}

func (s SphereShape) PDF(ref core.Vec3, dir core.Vec3) float64 {
	return s.Sphere.PDFSolidAngle(ref, dir)
}

// TriangleShape adapts geometry.Triangle's area-measure sampling,
// converting to a solid-angle pdf with respect to ref.
type TriangleShape struct{ *geometry.Triangle }

func (t TriangleShape) Sample(ref core.Vec3, u1, u2 float64) (point, normal core.Vec3, pdfSolidAngle float64) {
	p, n, pdfArea := t.Triangle.SampleSurface(u1, u2)
	if pdfArea == 0 {
		return p, n, 0
	}
	toRef := ref.Subtract(p)
	distSq := toRef.LengthSquared()
	dist := math.Sqrt(distSq)
	if dist == 0 {
		return p, n, 0
	}
	cosAtLight := math.Abs(n.Dot(toRef.Multiply(1 / dist)))
	if cosAtLight < 1e-8 {
		return p, n, 0
	}
	return p, n, pdfArea * distSq / cosAtLight
}

func (t TriangleShape) PDF(ref core.Vec3, dir core.Vec3) float64 {
	hit, ok := t.Triangle.Intersect(core.NewRay(ref, dir))
	if !ok {
		return 0
	}
	area := t.Triangle.Area()
	if area <= 0 {
		return 0
	}
	pdfArea := 1 / area
	distSq := hit.T * hit.T
	cosAtLight := math.Abs(hit.Normal.Dot(dir))
	if cosAtLight < 1e-8 {
		return 0
	}
	return pdfArea * distSq / cosAtLight
}
