package spectrum

import (
	"math"
	"testing"
)

func TestUniform_RoundTripsGrayWithin1LSB(t *testing.T) {
	for _, c := range []float64{0, 0.18, 0.5, 0.73, 1} {
		r, g, b := Uniform(c).To8Bit()
		want := uint8(math.Round(GammaEncode(c) * 255))
		for _, got := range []uint8{r, g, b} {
			diff := int(got) - int(want)
			if diff < -1 || diff > 1 {
				t.Errorf("Uniform(%v) channel = %d, want %d +-1", c, got, want)
			}
		}
	}
}

func TestFromRGB_RecoversInputColor(t *testing.T) {
	in := [3]float64{0.65, 0.05, 0.05}
	s := FromRGB(in[0], in[1], in[2])
	r, g, b := s.ToXYZ().ToLinearRGB()
	for i, got := range []float64{r, g, b} {
		if math.Abs(got-in[i]) > 1e-6 {
			t.Errorf("channel %d = %v, want %v", i, got, in[i])
		}
	}
}

func TestBroadcast_EverySampleEqualsInput(t *testing.T) {
	s := Broadcast(0.3)
	for i := 0; i < N; i++ {
		if s.At(i) != 0.3 {
			t.Fatalf("sample %d = %v, want 0.3", i, s.At(i))
		}
	}
}

func TestBlack_IsBlack(t *testing.T) {
	if !Black().IsBlack() {
		t.Error("expected Black() to be black")
	}
}

func TestAdd_IsCommutativeAndElementwise(t *testing.T) {
	a, b := Broadcast(0.2), Broadcast(0.5)
	sum := a.Add(b)
	for i := 0; i < N; i++ {
		if sum.At(i) != 0.7 {
			t.Fatalf("sample %d = %v, want 0.7", i, sum.At(i))
		}
	}
}

func TestMultiplySpectrum_IsElementwiseProduct(t *testing.T) {
	a := New([N]float64{})
	a = a.Set(0, 2).Set(1, 3)
	b := New([N]float64{})
	b = b.Set(0, 5).Set(1, 7)
	p := a.MultiplySpectrum(b)
	if p.At(0) != 10 || p.At(1) != 21 {
		t.Fatalf("got %v, %v; want 10, 21", p.At(0), p.At(1))
	}
}

func TestDivide_ByZeroYieldsBlack(t *testing.T) {
	s := Broadcast(1).Divide(0)
	if !s.IsBlack() {
		t.Error("expected dividing by zero weight to yield black, not NaN/Inf")
	}
}

func TestClamp_BoundsEverySample(t *testing.T) {
	s := Broadcast(5).Clamp(0, 1)
	for i := 0; i < N; i++ {
		if s.At(i) != 1 {
			t.Fatalf("sample %d = %v, want clamped to 1", i, s.At(i))
		}
	}
}

func TestLambda_SpansVisibleRangeMonotonically(t *testing.T) {
	if Lambda(0) <= LambdaStart {
		t.Errorf("first sample's wavelength %v should be inside (LambdaStart, ...)", Lambda(0))
	}
	if Lambda(N-1) >= LambdaEnd {
		t.Errorf("last sample's wavelength %v should be inside (..., LambdaEnd)", Lambda(N-1))
	}
	for i := 1; i < N; i++ {
		if Lambda(i) <= Lambda(i-1) {
			t.Fatalf("Lambda should be strictly increasing, got %v then %v", Lambda(i-1), Lambda(i))
		}
	}
}

func TestIsFinite_DetectsNaNAndInf(t *testing.T) {
	finite := Broadcast(1)
	if !finite.IsFinite() {
		t.Error("expected a broadcast spectrum to be finite")
	}
	nonFinite := finite.Set(3, posInf())
	if nonFinite.IsFinite() {
		t.Error("expected a spectrum with an Inf sample to be non-finite")
	}
}

func posInf() float64 {
	var zero float64
	return 1 / zero
}
