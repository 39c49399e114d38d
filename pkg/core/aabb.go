package core

import "math"

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max Vec3
}

// NewAABB creates an AABB from explicit corners.
func NewAABB(min, max Vec3) AABB { return AABB{Min: min, Max: max} }

// NewAABBFromPoints returns the smallest AABB containing all points.
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	min, max := points[0], points[0]
	for _, p := range points[1:] {
		min = Vec3{math.Min(min.X, p.X), math.Min(min.Y, p.Y), math.Min(min.Z, p.Z)}
		max = Vec3{math.Max(max.X, p.X), math.Max(max.Y, p.Y), math.Max(max.Z, p.Z)}
	}
	return AABB{Min: min, Max: max}
}

// Union returns the smallest AABB containing both boxes.
func (b AABB) Union(o AABB) AABB {
	return AABB{
		Min: Vec3{math.Min(b.Min.X, o.Min.X), math.Min(b.Min.Y, o.Min.Y), math.Min(b.Min.Z, o.Min.Z)},
		Max: Vec3{math.Max(b.Max.X, o.Max.X), math.Max(b.Max.Y, o.Max.Y), math.Max(b.Max.Z, o.Max.Z)},
	}
}

// Center returns the midpoint of the box.
func (b AABB) Center() Vec3 { return b.Min.Add(b.Max).Multiply(0.5) }

// Size returns the extent of the box along each axis.
func (b AABB) Size() Vec3 { return b.Max.Subtract(b.Min) }

// SurfaceArea returns the surface area of the box. A degenerate
// (zero-volume, e.g. planar) box still has a well-defined, possibly zero,
// surface area used directly by the SAH cost model.
func (b AABB) SurfaceArea() float64 {
	s := b.Size()
	if s.X < 0 || s.Y < 0 || s.Z < 0 {
		return 0
	}
	return 2 * (s.X*s.Y + s.Y*s.Z + s.Z*s.X)
}

// Volume returns the (possibly zero) volume of the box.
func (b AABB) Volume() float64 {
	s := b.Size()
	if s.X < 0 || s.Y < 0 || s.Z < 0 {
		return 0
	}
	return s.X * s.Y * s.Z
}

// Axis returns the min/max extent of the box along the given axis (0=X, 1=Y, 2=Z).
func (b AABB) Axis(axis int) (lo, hi float64) {
	switch axis {
	case 0:
		return b.Min.X, b.Max.X
	case 1:
		return b.Min.Y, b.Max.Y
	default:
		return b.Min.Z, b.Max.Z
	}
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the largest extent.
func (b AABB) LongestAxis() int {
	s := b.Size()
	if s.X > s.Y && s.X > s.Z {
		return 0
	}
	if s.Y > s.Z {
		return 1
	}
	return 2
}

// Contains reports whether p lies within the box (inclusive).
func (b AABB) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Hit tests whether ray intersects the box within [tMin, tMax] using the
// slab method. It short-circuits on the first failing axis without
// computing which face or normal was hit; callers that need the hit
// point compute it themselves from the returned t.
func (b AABB) Hit(ray Ray, tMin, tMax float64) (t float64, ok bool) {
	for axis := 0; axis < 3; axis++ {
		lo, hi := b.Axis(axis)
		var origin, dir float64
		switch axis {
		case 0:
			origin, dir = ray.Origin.X, ray.Direction.X
		case 1:
			origin, dir = ray.Origin.Y, ray.Direction.Y
		default:
			origin, dir = ray.Origin.Z, ray.Direction.Z
		}

		if math.Abs(dir) < 1e-12 {
			if origin < lo || origin > hi {
				return 0, false
			}
			continue
		}

		invDir := 1 / dir
		t1 := (lo - origin) * invDir
		t2 := (hi - origin) * invDir
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}

// HitNormal is AABB.Hit plus the outward face normal of the entry slab,
// used by the standalone box primitive, which reports a normal on
// intersection.
func (b AABB) HitNormal(ray Ray, tMin, tMax float64) (t float64, normal Vec3, ok bool) {
	enterAxis, enterSign := -1, 1.0
	for axis := 0; axis < 3; axis++ {
		lo, hi := b.Axis(axis)
		var origin, dir float64
		switch axis {
		case 0:
			origin, dir = ray.Origin.X, ray.Direction.X
		case 1:
			origin, dir = ray.Origin.Y, ray.Direction.Y
		default:
			origin, dir = ray.Origin.Z, ray.Direction.Z
		}

		if math.Abs(dir) < 1e-12 {
			if origin < lo || origin > hi {
				return 0, Vec3{}, false
			}
			continue
		}

		invDir := 1 / dir
		t1 := (lo - origin) * invDir
		t2 := (hi - origin) * invDir
		sign := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1.0
		}
		if t1 > tMin {
			tMin = t1
			enterAxis = axis
			enterSign = sign
		}
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, Vec3{}, false
		}
	}
	if enterAxis == -1 {
		return tMin, Vec3{}, true // ray origin was already inside the box
	}
	switch enterAxis {
	case 0:
		normal = Vec3{enterSign, 0, 0}
	case 1:
		normal = Vec3{0, enterSign, 0}
	default:
		normal = Vec3{0, 0, enterSign}
	}
	return tMin, normal, true
}
