package sampler

import (
	"testing"
)

func TestRandom_SamplesInUnitRange(t *testing.T) {
	r := NewRandom(1)
	for i := 0; i < 1000; i++ {
		v := r.Get1D()
		if v < 0 || v >= 1 {
			t.Fatalf("Get1D() = %v, out of [0,1)", v)
		}
		x, y := r.Get2D()
		if x < 0 || x >= 1 || y < 0 || y >= 1 {
			t.Fatalf("Get2D() = (%v, %v), out of [0,1)^2", x, y)
		}
	}
}

func TestStratified_CoversEveryStratum(t *testing.T) {
	n := 16
	s := NewStratified(7, n, 4, 4)
	seen := make([]bool, n)
	for i := 0; i < n; i++ {
		v := s.Get1D()
		stratum := int(v * float64(n))
		seen[stratum] = true
	}
	for i, ok := range seen {
		if !ok {
			t.Errorf("stratum %d was never sampled", i)
		}
	}
}

func TestStratified_WrapsAroundOnOverrun(t *testing.T) {
	s := NewStratified(3, 4, 2, 2)
	for i := 0; i < 4; i++ {
		s.Get1D()
	}
	// One more draw than was precomputed should not panic.
	v := s.Get1D()
	if v < 0 || v >= 1 {
		t.Errorf("wrapped Get1D() = %v, out of [0,1)", v)
	}
}

func TestSeed_IsDeterministic(t *testing.T) {
	a := Seed(1, 2, 3)
	b := Seed(1, 2, 3)
	if a != b {
		t.Errorf("Seed should be deterministic: %v != %v", a, b)
	}
	if Seed(1, 2, 4) == a {
		t.Error("expected different pixel index to change the seed")
	}
}

func TestRandomSpectral_IndicesInRange(t *testing.T) {
	s := RandomSpectral{NumSamples: 4}
	rng := NewRandom(9)
	idx := s.Sample(36, rng)
	if len(idx) != 4 {
		t.Fatalf("expected 4 indices, got %d", len(idx))
	}
	for _, i := range idx {
		if i < 0 || i >= 36 {
			t.Errorf("index %d out of [0,36)", i)
		}
	}
}

func TestHeroSpectral_EvenlySpaced(t *testing.T) {
	s := HeroSpectral{NumSamples: 4}
	rng := NewRandom(3)
	idx := s.Sample(36, rng)
	if len(idx) != 4 {
		t.Fatalf("expected 4 indices, got %d", len(idx))
	}
	expectedSpacing := 36 / 4
	for i := 1; i < len(idx); i++ {
		diff := idx[i] - idx[i-1]
		if diff < 0 {
			diff += 36
		}
		if diff != expectedSpacing {
			t.Errorf("hero spacing[%d] = %d, want %d", i, diff, expectedSpacing)
		}
	}
}

func TestStratifiedSpectral_OneSamplePerStratum(t *testing.T) {
	s := StratifiedSpectral{NumSamples: 6}
	rng := NewRandom(5)
	idx := s.Sample(36, rng)
	strataWidth := 36 / 6
	for i, v := range idx {
		lo := i * strataWidth
		hi := lo + strataWidth
		if v < lo || v >= hi {
			t.Errorf("sample %d = %d, expected within stratum [%d,%d)", i, v, lo, hi)
		}
	}
}
