package geometry

import (
	"math"
	"testing"

	"github.com/df07/spectral-tracer/pkg/core"
)

func TestSphereIntersectCenterHit(t *testing.T) {
	s := NewSphere(core.NewVec3(0, 0, 0), 1)
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	hit, ok := s.Intersect(ray)
	if !ok {
		t.Fatalf("expected hit")
	}
	if math.Abs(hit.T-4) > 1e-9 {
		t.Errorf("expected t=4, got %v", hit.T)
	}
	if !hit.Normal.IsUnit(1e-4) {
		t.Errorf("normal not unit length: %v", hit.Normal)
	}
	if !hit.Normal.Equals(core.NewVec3(0, 0, -1)) {
		t.Errorf("expected normal (0,0,-1), got %v", hit.Normal)
	}
}

func TestSphereOriginOnSurfaceHitsFarRoot(t *testing.T) {
	s := NewSphere(core.NewVec3(0, 0, 0), 1)
	// Ray origin exactly on the sphere surface, heading inward. The usual
	// positive t_start rejects the degenerate near root at t=0.
	ray := core.NewRayInterval(core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 1), 1e-4, math.Inf(1))
	hit, ok := s.Intersect(ray)
	if !ok {
		t.Fatalf("expected hit")
	}
	if math.Abs(hit.T-2) > 1e-6 {
		t.Errorf("expected far root t=2, got %v", hit.T)
	}
}

func TestSphereMiss(t *testing.T) {
	s := NewSphere(core.NewVec3(0, 0, 0), 1)
	ray := core.NewRay(core.NewVec3(5, 5, -5), core.NewVec3(0, 0, 1))
	if _, ok := s.Intersect(ray); ok {
		t.Errorf("expected miss")
	}
}

func TestSphereSampleSurfacePDFPositive(t *testing.T) {
	s := NewSphere(core.NewVec3(0, 0, 0), 1)
	ref := core.NewVec3(0, 0, -5)
	p, n, pdf := s.SampleSurface(ref, 0.3, 0.7)
	if pdf <= 0 {
		t.Errorf("expected positive pdf, got %v", pdf)
	}
	if !n.IsUnit(1e-3) {
		t.Errorf("expected unit normal, got %v", n)
	}
	if p.Subtract(s.Center).Length()-s.Radius > 1e-3 {
		t.Errorf("sample point not on sphere surface: %v", p)
	}
}
