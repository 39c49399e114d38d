package camera

import (
	"math"
	"testing"

	"github.com/df07/spectral-tracer/pkg/core"
)

func TestCamera_ForwardMatchesLookAt(t *testing.T) {
	cam := New(Config{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 1.0,
		VFov:        45.0,
	})

	forward := cam.Forward()
	expected := core.NewVec3(0, 0, -1)
	if math.Abs(forward.X-expected.X) > 1e-6 || math.Abs(forward.Y-expected.Y) > 1e-6 || math.Abs(forward.Z-expected.Z) > 1e-6 {
		t.Errorf("forward = %v, want %v", forward, expected)
	}
}

func TestCamera_CenterPixelPointsForward(t *testing.T) {
	cam := New(Config{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 1.0,
		VFov:        45.0,
	})

	imageHeight := cam.ImageHeight()
	ray := cam.GenerateRay(200, imageHeight/2, 0, 0, 0, 0)
	if math.Abs(ray.Direction.X) > 1e-3 || math.Abs(ray.Direction.Y) > 1e-3 {
		t.Errorf("expected the center ray to point nearly straight forward, got %v", ray.Direction)
	}
	if ray.Direction.Z >= 0 {
		t.Errorf("expected the center ray to point toward -Z, got %v", ray.Direction)
	}
}

func TestCamera_RaysAreNormalized(t *testing.T) {
	cam := New(Config{
		Center:      core.NewVec3(1, 2, 3),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       200,
		AspectRatio: 16.0 / 9.0,
		VFov:        60.0,
	})

	for _, px := range []int{0, 50, 199} {
		ray := cam.GenerateRay(px, 10, 0.5, 0.5, 0, 0)
		if !ray.Direction.IsUnit(1e-9) {
			t.Errorf("ray direction %v is not unit length", ray.Direction)
		}
	}
}

func TestCamera_LensSampleDisplacesOriginWithAperture(t *testing.T) {
	cam := New(Config{
		Center:        core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		Width:         100,
		AspectRatio:   1.0,
		VFov:          45.0,
		Aperture:      0.5,
		FocusDistance: 5,
	})

	r1 := cam.GenerateRay(50, 50, 0.5, 0.5, 0.9, 0.1)
	r2 := cam.GenerateRay(50, 50, 0.5, 0.5, 0.1, 0.9)
	if r1.Origin.Equals(r2.Origin) {
		t.Error("expected different lens samples to displace the ray origin")
	}
}

func TestCamera_NoApertureKeepsOriginFixed(t *testing.T) {
	cam := New(Config{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       100,
		AspectRatio: 1.0,
		VFov:        45.0,
	})

	r1 := cam.GenerateRay(50, 50, 0.5, 0.5, 0.9, 0.1)
	r2 := cam.GenerateRay(50, 50, 0.5, 0.5, 0.1, 0.9)
	if !r1.Origin.Equals(r2.Origin) {
		t.Error("expected the pinhole origin to be unaffected by lens samples when aperture is 0")
	}
}
