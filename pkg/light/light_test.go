package light

import (
	"math"
	"testing"

	"github.com/df07/spectral-tracer/pkg/core"
	"github.com/df07/spectral-tracer/pkg/geometry"
	"github.com/df07/spectral-tracer/pkg/spectrum"
)

func TestSphereEmitter_SampleFacesAwayFromOccludedSide(t *testing.T) {
	sphere := geometry.NewSphere(core.NewVec3(0, 5, 0), 1)
	e := &Emitter{Shape: SphereShape{sphere}, Radiance: spectrum.Broadcast(10)}

	ref := core.NewVec3(0, 0, 0)
	dir, dist, pdf, radiance := e.Sample(ref, 0.3, 0.7)
	if pdf <= 0 {
		t.Fatal("expected a positive pdf for a light visible from ref")
	}
	if dist <= 0 {
		t.Fatal("expected a positive distance")
	}
	if radiance.IsBlack() {
		t.Error("expected nonzero radiance from the front face")
	}
	if dir.Y <= 0 {
		t.Error("expected direction to point up toward the light")
	}
}

func TestTriangleEmitter_PDFMatchesSampleConversion(t *testing.T) {
	tri := geometry.NewTriangle(
		core.NewVec3(-1, 3, -1),
		core.NewVec3(1, 3, -1),
		core.NewVec3(0, 3, 1),
	)
	e := &Emitter{Shape: TriangleShape{tri}, Radiance: spectrum.Broadcast(5)}
	ref := core.NewVec3(0, 0, 0)

	dir, _, pdf, _ := e.Sample(ref, 0.25, 0.25)
	if pdf <= 0 {
		t.Fatal("expected positive pdf")
	}

	gotPDF := e.PDF(ref, dir)
	if math.Abs(gotPDF-pdf) > 1e-6*pdf {
		t.Errorf("PDF(ref, sampled dir) = %v, want %v", gotPDF, pdf)
	}
}

func TestUniformSampler_EqualProbability(t *testing.T) {
	emitters := []*Emitter{
		{Shape: SphereShape{geometry.NewSphere(core.NewVec3(0, 0, 0), 1)}, Radiance: spectrum.Broadcast(1)},
		{Shape: SphereShape{geometry.NewSphere(core.NewVec3(5, 0, 0), 1)}, Radiance: spectrum.Broadcast(100)},
	}
	s := NewUniformSampler(emitters)
	for i := 0; i < s.Count(); i++ {
		if math.Abs(s.Probability(i)-0.5) > 1e-9 {
			t.Errorf("Probability(%d) = %v, want 0.5", i, s.Probability(i))
		}
	}
}

func TestPowerSampler_WeightsByPower(t *testing.T) {
	dim := &Emitter{Shape: SphereShape{geometry.NewSphere(core.NewVec3(0, 0, 0), 1)}, Radiance: spectrum.Broadcast(1)}
	bright := &Emitter{Shape: SphereShape{geometry.NewSphere(core.NewVec3(5, 0, 0), 1)}, Radiance: spectrum.Broadcast(99)}
	s := NewPowerSampler([]*Emitter{dim, bright})

	if s.Probability(1) <= s.Probability(0) {
		t.Errorf("expected the brighter light to have higher selection probability: dim=%v bright=%v", s.Probability(0), s.Probability(1))
	}

	total := s.Probability(0) + s.Probability(1)
	if math.Abs(total-1) > 1e-9 {
		t.Errorf("probabilities should sum to 1, got %v", total)
	}
}

func TestPowerSampler_ZeroPowerFallsBackToUniform(t *testing.T) {
	a := &Emitter{Shape: SphereShape{geometry.NewSphere(core.NewVec3(0, 0, 0), 1)}, Radiance: spectrum.Spectrum{}}
	b := &Emitter{Shape: SphereShape{geometry.NewSphere(core.NewVec3(5, 0, 0), 1)}, Radiance: spectrum.Spectrum{}}
	s := NewPowerSampler([]*Emitter{a, b})
	if math.Abs(s.Probability(0)-0.5) > 1e-9 || math.Abs(s.Probability(1)-0.5) > 1e-9 {
		t.Error("expected uniform fallback when all lights report zero power")
	}
}
