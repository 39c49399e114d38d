// Package core provides the vector, ray and logging primitives shared by
// every other package in the renderer.
package core

import (
	"fmt"
	"math"
)

// Vec3 is a 3D vector used for points, directions and normals.
type Vec3 struct {
	X, Y, Z float64
}

// NewVec3 creates a new Vec3.
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) String() string {
	return fmt.Sprintf("{%.4g, %.4g, %.4g}", v.X, v.Y, v.Z)
}

// Add returns the sum of two vectors.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Subtract returns the difference of two vectors.
func (v Vec3) Subtract(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Multiply returns the vector scaled by a scalar.
func (v Vec3) Multiply(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// MultiplyVec returns the component-wise product of two vectors.
func (v Vec3) MultiplyVec(o Vec3) Vec3 { return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }

// Negate returns the additive inverse of the vector.
func (v Vec3) Negate() Vec3 { return Vec3{-v.X, -v.Y, -v.Z} }

// Length returns the Euclidean norm.
func (v Vec3) Length() float64 { return math.Sqrt(v.LengthSquared()) }

// LengthSquared returns the squared Euclidean norm.
func (v Vec3) LengthSquared() float64 { return v.X*v.X + v.Y*v.Y + v.Z*v.Z }

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// AbsDot returns |Dot|.
func (v Vec3) AbsDot(o Vec3) float64 { return math.Abs(v.Dot(o)) }

// Cross returns the cross product of two vectors.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Normalize returns a unit vector in the same direction, or the zero
// vector if v is degenerate.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Multiply(1 / l)
}

// IsUnit reports whether v has unit length within the given tolerance.
func (v Vec3) IsUnit(tolerance float64) bool {
	return math.Abs(v.LengthSquared()-1) < tolerance
}

// IsFinite reports whether every component of v is finite.
func (v Vec3) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

// IsZero reports whether v is exactly the zero vector.
func (v Vec3) IsZero() bool { return v.X == 0 && v.Y == 0 && v.Z == 0 }

// Clamp clamps each component of v to [lo, hi].
func (v Vec3) Clamp(lo, hi float64) Vec3 {
	return Vec3{
		X: math.Max(lo, math.Min(hi, v.X)),
		Y: math.Max(lo, math.Min(hi, v.Y)),
		Z: math.Max(lo, math.Min(hi, v.Z)),
	}
}

// FaceForward flips n so that it lies in the same hemisphere as v.
func (v Vec3) FaceForward(n Vec3) Vec3 {
	if n.Dot(v) < 0 {
		return n.Negate()
	}
	return n
}

// Equals compares two vectors with a small absolute tolerance.
func (v Vec3) Equals(o Vec3) bool {
	const tol = 1e-9
	return math.Abs(v.X-o.X) < tol && math.Abs(v.Y-o.Y) < tol && math.Abs(v.Z-o.Z) < tol
}

// Ray is a parametric ray with an inclusive, mutable parameter interval.
// Direction is expected to be normalized by the caller.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	TMin      float64
	TMax      float64
}

// NewRay creates a ray with the default [0, +Inf) interval.
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, TMin: 0, TMax: math.Inf(1)}
}

// NewRayInterval creates a ray with an explicit valid parameter interval.
func NewRayInterval(origin, direction Vec3, tMin, tMax float64) Ray {
	return Ray{Origin: origin, Direction: direction, TMin: tMin, TMax: tMax}
}

// NewRayTo creates a normalized ray from origin toward target, with TMax
// clamped just short of the target distance so the ray doesn't
// self-intersect the target.
func NewRayTo(origin, target Vec3) Ray {
	d := target.Subtract(origin)
	dist := d.Length()
	return NewRayInterval(origin, d.Normalize(), 1e-4, dist-1e-4)
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 { return r.Origin.Add(r.Direction.Multiply(t)) }

// Contains reports whether t lies within the ray's valid interval.
func (r Ray) Contains(t float64) bool { return t >= r.TMin && t <= r.TMax }

// WithTMax returns a copy of r with a narrowed TMax, the pattern the
// nearest-hit search uses to shrink the search interval as it finds
// closer candidates.
func (r Ray) WithTMax(t float64) Ray {
	r.TMax = t
	return r
}

// Offset displaces p along n by a small bias in the hemisphere of dir,
// used to spawn the next segment of a path without self-intersecting the
// surface it left.
func Offset(p, n, dir Vec3) Vec3 {
	const eps = 1e-4
	if n.Dot(dir) < 0 {
		n = n.Negate()
	}
	return p.Add(n.Multiply(eps))
}
