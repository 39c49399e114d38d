package film

import (
	"math"
	"testing"

	"github.com/df07/spectral-tracer/pkg/filter"
	"github.com/df07/spectral-tracer/pkg/spectrum"
)

func TestSensor_EmptyIsBlackWithZeroWeight(t *testing.T) {
	s := NewSensor(4, 4, filter.Box{RX: 0.5, RY: 0.5})
	if !s.Spectrum(2, 2).IsBlack() {
		t.Error("expected an un-splatted sensor to read black")
	}
	if s.WeightSum(2, 2) != 0 {
		t.Error("expected zero weight sum before any splat")
	}
}

func TestSensor_SplatAtPixelCenterWithBoxFilter(t *testing.T) {
	s := NewSensor(4, 4, filter.Box{RX: 0.5, RY: 0.5})
	s.Splat(2.5, 2.5, 0, 10)
	sp := s.Spectrum(2, 2)
	if math.Abs(sp.At(0)-10) > 1e-9 {
		t.Errorf("sample 0 = %v, want 10", sp.At(0))
	}
	for i := 1; i < spectrum.N; i++ {
		if sp.At(i) != 0 {
			t.Errorf("sample %d = %v, want 0", i, sp.At(i))
		}
	}
}

func TestSensor_SplattingTwiceWithHalvedWeightEqualsOnce(t *testing.T) {
	a := NewSensor(4, 4, filter.Box{RX: 0.5, RY: 0.5})
	a.Splat(2.5, 2.5, 0, 5)

	// Each of the two identical splats carries half of the pixel's total
	// filter weight, so the weight-normalized read-out equals one splat.
	b := NewSensor(4, 4, filter.Box{RX: 0.5, RY: 0.5})
	b.Splat(2.5, 2.5, 0, 5)
	b.Splat(2.5, 2.5, 0, 5)

	if math.Abs(a.Spectrum(2, 2).At(0)-b.Spectrum(2, 2).At(0)) > 1e-9 {
		t.Error("expected splatting once to equal splatting the same sample twice at half weight each")
	}
}

func TestSensor_TriangleFilterSpreadsWeightToNeighbors(t *testing.T) {
	s := NewSensor(5, 5, filter.Triangle{RX: 1.5, RY: 1.5})
	s.Splat(2.5, 2.5, 0, 10)
	if s.WeightSum(2, 2) <= 0 {
		t.Error("expected weight at the splat's own pixel")
	}
	if s.WeightSum(1, 2) <= 0 {
		t.Error("expected a triangle filter to spread weight to the neighboring pixel")
	}
}

func TestSensor_ToSRGB8ProducesCorrectPixelCount(t *testing.T) {
	s := NewSensor(3, 2, filter.Box{RX: 0.5, RY: 0.5})
	out := s.ToSRGB8()
	if len(out) != 6 {
		t.Fatalf("expected 6 pixels, got %d", len(out))
	}
}

func TestTile_MergeIntoMatchesDirectSplat(t *testing.T) {
	f := filter.Box{RX: 0.5, RY: 0.5}

	direct := NewSensor(8, 8, f)
	direct.Splat(4.5, 4.5, 3, 7)

	tiled := NewSensor(8, 8, f)
	tile := NewTile(4, 4, 4, 4, f)
	tile.Splat(4.5, 4.5, 3, 7)
	tile.MergeInto(tiled)

	if math.Abs(direct.Spectrum(4, 4).At(3)-tiled.Spectrum(4, 4).At(3)) > 1e-9 {
		t.Error("tile merge should reproduce a direct splat")
	}
}

func TestTile_CapturesSpilloverPastBlockEdge(t *testing.T) {
	f := filter.Triangle{RX: 1.5, RY: 1.5}

	// A point just inside a 4x4 block near its left edge; its filter
	// footprint extends one pixel to the left, outside the block.
	tiled := NewSensor(8, 8, f)
	tile := NewTile(4, 4, 4, 4, f)
	tile.Splat(4.2, 5.5, 0, 10)
	tile.MergeInto(tiled)

	if tiled.WeightSum(3, 5) <= 0 {
		t.Error("expected the tile's padding to capture weight spilling past the block edge")
	}
}
