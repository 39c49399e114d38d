package geometry

import (
	"math"

	"github.com/df07/spectral-tracer/pkg/core"
)

// Sphere is a ray-traceable sphere.
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a sphere.
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{Center: center, Radius: radius}
}

// Bounds implements Primitive.
func (s *Sphere) Bounds() core.AABB {
	r := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(s.Center.Subtract(r), s.Center.Add(r))
}

// Intersect solves |p - c|² = r² substituted with the ray equation,
// using the numerically stable quadratic form
// t = -½(b ± sign(b)·√disc) and accepting the smallest root inside the
// ray's valid interval.
func (s *Sphere) Intersect(ray core.Ray) (Intersection, bool) {
	oc := ray.Origin.Subtract(s.Center)
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius
	disc := halfB*halfB - a*c
	if disc < 0 {
		return Intersection{}, false
	}
	sqrtDisc := math.Sqrt(disc)

	// Numerically stable root selection: compute the root with the same
	// sign as -halfB first (avoids catastrophic cancellation), then get
	// the other root via q/a and c/q.
	sign := 1.0
	if halfB < 0 {
		sign = -1.0
	}
	q := -(halfB + sign*sqrtDisc)
	root1 := q / a
	var root2 float64
	if q != 0 {
		root2 = c / q
	} else {
		root2 = root1
	}
	if root1 > root2 {
		root1, root2 = root2, root1
	}

	t := root1
	if !ray.Contains(t) {
		t = root2
		if !ray.Contains(t) {
			return Intersection{}, false
		}
	}

	p := ray.At(t)
	outwardNormal := p.Subtract(s.Center).Multiply(1 / s.Radius)
	in := Intersection{Point: p, T: t}
	in.SetFaceNormal(ray, outwardNormal)
	return in, true
}

// Area returns the sphere's surface area, used to convert an area-measure
// sampling pdf to power.
func (s *Sphere) Area() float64 {
	return 4 * math.Pi * s.Radius * s.Radius
}

// SampleSurface samples a direction toward the sphere from a reference
// point using cone sampling: when the point is outside the sphere we importance-sample the solid angle
// the sphere subtends, which never wastes samples on the self-occluded
// far side. Returns the sampled surface point, its outward normal, and
// the pdf measured in solid angle with respect to the reference point.
func (s *Sphere) SampleSurface(ref core.Vec3, u1, u2 float64) (point, normal core.Vec3, pdfSolidAngle float64) {
	toCenter := s.Center.Subtract(ref)
	distSq := toCenter.LengthSquared()
	dist := math.Sqrt(distSq)

	if dist <= s.Radius {
		// Reference point is inside (or on) the sphere: cone sampling is
		// undefined, fall back to uniform sampling over the whole sphere.
		dir := core.UniformSampleSphere(u1, u2)
		p := s.Center.Add(dir.Multiply(s.Radius))
		n := dir
		area := s.Area()
		d := p.Subtract(ref)
		dd := d.LengthSquared()
		cosAtLight := math.Abs(n.Dot(d.Normalize()))
		if cosAtLight < 1e-7 {
			return p, n, 0
		}
		return p, n, dd / (cosAtLight * area)
	}

	sinThetaMax2 := s.Radius * s.Radius / distSq
	cosThetaMax := math.Sqrt(math.Max(0, 1-sinThetaMax2))

	toWorld := core.LocalToWorld(toCenter.Normalize())
	localDir := core.UniformSampleCone(u1, u2, cosThetaMax)
	dir := toWorld(localDir)

	// Project the sampled cone direction back onto the sphere surface:
	// the closest point on the sphere along that direction from ref.
	cosTheta := localDir.Y
	sinTheta2 := math.Max(0, 1-cosTheta*cosTheta)
	ds := dist*cosTheta - math.Sqrt(math.Max(0, s.Radius*s.Radius-distSq*sinTheta2))
	p := ref.Add(dir.Multiply(ds))
	n := p.Subtract(s.Center).Multiply(1 / s.Radius)

	return p, n, core.UniformConePDF(cosThetaMax)
}

// PDFSolidAngle returns the solid-angle pdf of sampling direction dir
// from ref via SampleSurface, used by the BSDF-sampling side of multiple
// importance sampling against this light.
func (s *Sphere) PDFSolidAngle(ref core.Vec3, dir core.Vec3) float64 {
	toCenter := s.Center.Subtract(ref)
	distSq := toCenter.LengthSquared()
	if distSq <= s.Radius*s.Radius {
		return 0 // reference point inside the sphere: no cone pdf defined
	}
	sinThetaMax2 := s.Radius * s.Radius / distSq
	cosThetaMax := math.Sqrt(math.Max(0, 1-sinThetaMax2))

	cosTheta := toCenter.Normalize().Dot(dir.Normalize())
	if cosTheta < cosThetaMax {
		return 0
	}
	return core.UniformConePDF(cosThetaMax)
}
